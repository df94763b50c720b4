package models

import (
	"fmt"
	"strings"
)

// PeriodFilter 仪表盘统计周期
type PeriodFilter string

const (
	PeriodDaily   PeriodFilter = "diario"
	PeriodWeekly  PeriodFilter = "semanal"
	PeriodMonthly PeriodFilter = "mensual"
)

// DefaultPeriod 默认按月统计
const DefaultPeriod = PeriodMonthly

// Periods 全部周期，按界面顺序
func Periods() []PeriodFilter {
	return []PeriodFilter{PeriodDaily, PeriodWeekly, PeriodMonthly}
}

// ParsePeriodFilter 解析周期，同时接受英文写法
func ParsePeriodFilter(s string) (PeriodFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "diario", "daily":
		return PeriodDaily, nil
	case "semanal", "weekly":
		return PeriodWeekly, nil
	case "mensual", "monthly":
		return PeriodMonthly, nil
	}
	return "", fmt.Errorf("unknown period filter %q", s)
}

func (p PeriodFilter) String() string {
	return string(p)
}

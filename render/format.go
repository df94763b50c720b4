package render

import (
	"fmt"

	"finanzas/models"

	"github.com/shopspring/decimal"
)

// ErrBadAmount 源数据金额缺失或不是数字
var ErrBadAmount = models.ErrInvalidAmount

// NotAvailable 缺失值的显示文本
const NotAvailable = "N/A"

// FormatDecimal 保留两位小数，四舍五入（远离零）
func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatAmount 格式化金额，无效金额返回 ErrBadAmount
func FormatAmount(a models.Amount) (string, error) {
	d, ok := a.Decimal()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrBadAmount, a.Raw())
	}
	return FormatDecimal(d), nil
}

// FormatFloat 格式化 float64 金额
func FormatFloat(f float64) string {
	return FormatDecimal(decimal.NewFromFloat(f))
}

// Money 带货币符号
func Money(s string) string {
	return "$" + s
}

// FormatMoney 带货币符号的金额
func FormatMoney(a models.Amount) (string, error) {
	s, err := FormatAmount(a)
	if err != nil {
		return "", err
	}
	return Money(s), nil
}

// FormatProgress 目标进度，nil 显示 N/A 而不是 0
func FormatProgress(p *float64) string {
	if p == nil {
		return NotAvailable
	}
	return FormatPercent(*p)
}

// FormatPercent 一位小数的百分比
func FormatPercent(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(1) + "%"
}

// Tone 余额颜色语义
type Tone string

const (
	ToneAffirmative Tone = "affirmative"
	ToneWarning     Tone = "warning"
	ToneNeutral     Tone = "neutral"
)

// BalanceTone 正数为肯定色，负数为警示色，零为中性色
func BalanceTone(balance decimal.Decimal) Tone {
	switch balance.Sign() {
	case 1:
		return ToneAffirmative
	case -1:
		return ToneWarning
	default:
		return ToneNeutral
	}
}

// Color 对应的 CSS 颜色
func (t Tone) Color() string {
	switch t {
	case ToneAffirmative:
		return "var(--secondary-color)"
	case ToneWarning:
		return "var(--danger-color)"
	default:
		return "#666"
	}
}

package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount 远程接口返回的金额
// 接口有时返回数字，有时返回数字字符串；缺失或无法解析的值保留原文并标记为无效，
// 由展示层决定报错，而不是静默当作 0
type Amount struct {
	value decimal.Decimal
	valid bool
	raw   string
}

// NewAmount 由 decimal 构造有效金额
func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, valid: true, raw: d.String()}
}

// AmountFromFloat 由 float64 构造有效金额
func AmountFromFloat(f float64) Amount {
	return NewAmount(decimal.NewFromFloat(f))
}

// ParseAmount 解析数字字符串，失败返回无效金额
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{raw: s}
	}
	return Amount{value: d, valid: true, raw: s}
}

// Valid 是否为有效数字
func (a Amount) Valid() bool {
	return a.valid
}

// Decimal 返回数值以及是否有效
func (a Amount) Decimal() (decimal.Decimal, bool) {
	return a.value, a.valid
}

// Raw 返回接口原文（用于错误信息）
func (a Amount) Raw() string {
	return a.raw
}

// OrZero 无效时返回 0，仅用于接口明确允许缺省的字段
func (a Amount) OrZero() decimal.Decimal {
	if !a.valid {
		return decimal.Zero
	}
	return a.value
}

// String 返回规范化数值文本
func (a Amount) String() string {
	if !a.valid {
		return a.raw
	}
	return a.value.String()
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = ParseAmount(s)
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		*a = Amount{raw: string(b)}
		return nil
	}
	*a = Amount{value: d, valid: true, raw: string(b)}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return []byte(a.value.String()), nil
}

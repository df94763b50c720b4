package models

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount 源数据中的金额缺失或不是数字
var ErrInvalidAmount = errors.New("invalid amount")

// InvalidAmountError 定位到具体记录与字段的金额错误
type InvalidAmountError struct {
	Field  string
	Record string
	Raw    string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount in %s of record %q: %q", e.Field, e.Record, e.Raw)
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

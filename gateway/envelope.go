package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// StatusSuccess 远程接口成功状态
const StatusSuccess = "success"

// ErrNoData 成功响应但没有 data 字段
var ErrNoData = errors.New("gateway: envelope has no data")

// Envelope 远程接口统一响应 {status, data, message}
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// OK 是否为业务成功
func (e *Envelope) OK() bool {
	return e != nil && e.Status == StatusSuccess
}

// HasData data 是否存在且不为 null
func (e *Envelope) HasData() bool {
	if e == nil {
		return false
	}
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// Decode 将 data 解析到 v
func (e *Envelope) Decode(v any) error {
	if !e.HasData() {
		return ErrNoData
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("gateway: decode data: %w", err)
	}
	return nil
}

// Failure 非成功状态时返回 *LogicalFailure，否则返回 nil
func (e *Envelope) Failure(action string) error {
	if e.OK() {
		return nil
	}
	lf := &LogicalFailure{Action: action}
	if e != nil {
		lf.Status = e.Status
		lf.Message = e.Message
	}
	return lf
}

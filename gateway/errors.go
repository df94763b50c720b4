package gateway

import (
	"errors"
	"fmt"
)

// ConnectionError 传输层失败：网络错误、读取失败或响应不是 JSON
type ConnectionError struct {
	Action string
	Op     string
	// StatusCode 收到响应时的 HTTP 状态码，未收到响应为 0
	StatusCode int
	// MalformedReply 变更类请求收到了无法解析的响应，服务端可能已经执行
	MalformedReply bool
	Err            error
}

func (e *ConnectionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway %s %s (HTTP %d): %v", e.Action, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway %s %s: %v", e.Action, e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// LogicalFailure 格式正确但 status 不是 success 的响应
type LogicalFailure struct {
	Action  string
	Status  string
	Message string
}

func (e *LogicalFailure) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway %s: status %q", e.Action, e.Status)
	}
	return e.Message
}

// IsConnectionError 是否为传输层失败
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsOutcomeUnknown 变更请求的结果是否未知（响应无法解析）
func IsOutcomeUnknown(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce) && ce.MalformedReply
}

// AsLogicalFailure 提取业务失败
func AsLogicalFailure(err error) (*LogicalFailure, bool) {
	var lf *LogicalFailure
	ok := errors.As(err, &lf)
	return lf, ok
}

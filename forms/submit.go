package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"finanzas/gateway"
	"finanzas/status"
)

// ErrSubmitInFlight 同一表单的上一次提交尚未结束
var ErrSubmitInFlight = errors.New("forms: submission already in flight")

// TextInvalidReply 变更请求的响应无法解析
const TextInvalidReply = "El servidor devolvió una respuesta inválida."

// DateLayout 表单日期格式
const DateLayout = "2006-01-02"

// Notifier 提示输出
type Notifier interface {
	Report(region status.Region, level status.Level, message string)
}

// inflight 提交期间禁用按钮
type inflight struct {
	mu sync.Mutex
	on bool
}

func (f *inflight) acquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.on {
		return false
	}
	f.on = true
	return true
}

func (f *inflight) release() {
	f.mu.Lock()
	f.on = false
	f.mu.Unlock()
}

func (f *inflight) busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on
}

// deliver 发送并把结果写入提示区域
// 传输失败返回 error；业务失败返回 envelope 且 error 为 nil
func deliver(ctx context.Context, n Notifier, region status.Region, successFallback, failureFallback string,
	send func(context.Context) (*gateway.Envelope, error)) (*gateway.Envelope, error) {
	env, err := send(ctx)
	if err != nil {
		switch {
		case gateway.IsOutcomeUnknown(err):
			n.Report(region, status.LevelError, TextInvalidReply)
		default:
			n.Report(region, status.LevelError, fmt.Sprintf("Error de conexión: %s", connectionDetail(err)))
		}
		return nil, err
	}
	if !env.OK() {
		msg := env.Message
		if msg == "" {
			msg = failureFallback
		}
		n.Report(region, status.LevelError, msg)
		return env, nil
	}
	msg := env.Message
	if msg == "" {
		msg = successFallback
	}
	n.Report(region, status.LevelSuccess, msg)
	return env, nil
}

func connectionDetail(err error) string {
	var ce *gateway.ConnectionError
	if errors.As(err, &ce) && ce.Err != nil {
		return ce.Err.Error()
	}
	return err.Error()
}

// Clock 当前时间，测试中可替换
type Clock func() time.Time

func (c Clock) today() string {
	if c == nil {
		return time.Now().Format(DateLayout)
	}
	return c().Format(DateLayout)
}

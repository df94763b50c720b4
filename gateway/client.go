package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// 远程接口只读动作，走 GET 查询串
const (
	ActionGetCategories = "getCategoriasGastos"
	ActionGetSources    = "getFuentesIngreso"
	ActionGetGoal       = "getObjetivoActivo"
	ActionGetExpenses   = "getGastos"
	ActionGetIncomes    = "getIngresos"
	ActionGetSummary    = "getResumenFinanciero"
	ActionGetCharts     = "getDatosGraficos"
	ActionGetLoans      = "getPrestamos"
	ActionInit          = "iniciar"
	ActionReset         = "resetear"
)

// 变更动作，走 POST JSON
const (
	ActionAddExpense    = "agregarGasto"
	ActionUpdateExpense = "actualizarGasto"
	ActionDeleteExpense = "eliminarGasto"
	ActionAddIncome     = "agregarIngreso"
	ActionUpdateIncome  = "actualizarIngreso"
	ActionDeleteIncome  = "eliminarIngreso"
	ActionAddLoan       = "agregarPrestamo"
	ActionDeleteLoan    = "eliminarPrestamo"
	ActionCreateGoal    = "crearObjetivo"
	ActionAddCategory   = "agregarCategoriaGasto"
	ActionAddSource     = "agregarFuenteIngreso"
)

var readActions = map[string]bool{
	ActionGetCategories: true,
	ActionGetSources:    true,
	ActionGetGoal:       true,
	ActionGetExpenses:   true,
	ActionGetIncomes:    true,
	ActionGetSummary:    true,
	ActionGetCharts:     true,
	ActionGetLoans:      true,
	ActionInit:          true,
	ActionReset:         true,
}

// IsReadAction 是否为 GET 动作
func IsReadAction(action string) bool {
	return readActions[action]
}

// Query GET 动作的附加参数
type Query map[string]string

// Doer 可替换的 HTTP 执行器
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client 远程表格接口客户端
type Client struct {
	endpoint  string
	http      Doer
	userAgent string
	logger    *logrus.Logger
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 使用自定义 HTTP 执行器
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithTimeout 设置默认 http.Client 的超时
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithUserAgent 设置 User-Agent
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger 设置日志
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient 创建客户端
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint 远程接口地址
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send 发送一个动作
// 只读动作拼成 GET 查询串，变更动作 POST {action, ...payload}。
// 传输失败或响应不是 JSON 时返回 *ConnectionError；
// status 不是 success 的响应照常返回，由调用方检查。
func (c *Client) Send(ctx context.Context, action string, payload any) (*Envelope, error) {
	fields, err := toFields(payload)
	if err != nil {
		return nil, fmt.Errorf("gateway %s: encode payload: %w", action, err)
	}

	var req *http.Request
	mutating := !IsReadAction(action)
	if mutating {
		req, err = c.newPost(ctx, action, fields)
	} else {
		req, err = c.newGet(ctx, action, fields)
	}
	if err != nil {
		return nil, &ConnectionError{Action: action, Op: "build request", Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	entry := c.logger.WithFields(logrus.Fields{
		"action":     action,
		"method":     req.Method,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Warn("远程请求失败")
		return nil, &ConnectionError{Action: action, Op: "request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		entry.WithError(err).Warn("读取远程响应失败")
		return nil, &ConnectionError{Action: action, Op: "read body", StatusCode: resp.StatusCode, Err: err}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		entry.WithFields(logrus.Fields{"http_status": resp.StatusCode, "body": truncate(body, 256)}).
			WithError(err).Warn("远程响应不是合法 JSON")
		return nil, &ConnectionError{
			Action:         action,
			Op:             "decode envelope",
			StatusCode:     resp.StatusCode,
			MalformedReply: mutating,
			Err:            err,
		}
	}

	entry.WithFields(logrus.Fields{
		"status":   env.Status,
		"duration": time.Since(start).String(),
	}).Debug("远程请求完成")
	return &env, nil
}

func (c *Client) newGet(ctx context.Context, action string, fields map[string]json.RawMessage) (*http.Request, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("action", action)
	for k, raw := range fields {
		if k == "action" {
			continue
		}
		q.Set(k, rawToQueryValue(raw))
	}
	u.RawQuery = q.Encode()
	return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
}

func (c *Client) newPost(ctx context.Context, action string, fields map[string]json.RawMessage) (*http.Request, error) {
	actionJSON, _ := json.Marshal(action)
	fields["action"] = actionJSON
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	// Apps Script 不处理 CORS 预检，沿用 text/plain
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	return req, nil
}

// toFields 将 payload 展开为 JSON 对象字段
func toFields(payload any) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	switch p := payload.(type) {
	case nil:
		return fields, nil
	case Query:
		for k, v := range p {
			raw, _ := json.Marshal(v)
			fields[k] = raw
		}
		return fields, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("payload must encode to a JSON object: %w", err)
	}
	return fields, nil
}

func rawToQueryValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

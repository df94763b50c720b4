package gateway

import (
	"context"
	"errors"

	"finanzas/models"
)

// EntryRequest 支出/收入的新增与更新请求
// PrestamoID、TipoAbono 为 nil 时不发送（未启用借贷关联）
type EntryRequest struct {
	ID          *models.RecordID `json:"id,omitempty"`
	Categoria   string           `json:"categoria,omitempty"`
	Fuente      string           `json:"fuente,omitempty"`
	Monto       string           `json:"monto"`
	Descripcion string           `json:"descripcion"`
	Fecha       string           `json:"fecha"`
	PrestamoID  *string          `json:"prestamoId,omitempty"`
	TipoAbono   *string          `json:"tipoAbono,omitempty"`
}

// LoanRequest 新增借贷请求
type LoanRequest struct {
	Tipo         string `json:"tipo"`
	Contraparte  string `json:"contraparte"`
	MontoInicial string `json:"montoInicial"`
	TasaInteres  string `json:"tasaInteres"`
	Plazo        string `json:"plazo"`
	FechaInicio  string `json:"fechaInicio"`
	Notas        string `json:"notas"`
}

// GoalRequest 新建储蓄目标请求
type GoalRequest struct {
	Nombre      string `json:"nombre"`
	Monto       string `json:"monto"`
	Plazo       string `json:"plazo"`
	FechaInicio string `json:"fecha_inicio"`
}

// CategoryRequest 新增支出类别请求
type CategoryRequest struct {
	Nombre string `json:"nombre"`
	Color  string `json:"color"`
}

// SourceRequest 新增收入来源请求
type SourceRequest struct {
	Nombre string `json:"nombre"`
}

type idRequest struct {
	ID models.RecordID `json:"id"`
}

// fetch 执行只读动作并解析 data
// 业务失败返回 *LogicalFailure；data 缺失时 v 保持零值
func (c *Client) fetch(ctx context.Context, action string, q Query, v any) error {
	env, err := c.Send(ctx, action, q)
	if err != nil {
		return err
	}
	if err := env.Failure(action); err != nil {
		return err
	}
	if err := env.Decode(v); err != nil && !errors.Is(err, ErrNoData) {
		return &ConnectionError{Action: action, Op: "decode data", Err: err}
	}
	return nil
}

// Categories 支出类别
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.fetch(ctx, ActionGetCategories, nil, &out)
	return out, err
}

// Sources 收入来源
func (c *Client) Sources(ctx context.Context) ([]models.Source, error) {
	var out []models.Source
	err := c.fetch(ctx, ActionGetSources, nil, &out)
	return out, err
}

// ActiveGoal 当前储蓄目标，没有时返回 nil
func (c *Client) ActiveGoal(ctx context.Context) (*models.Goal, error) {
	var out *models.Goal
	err := c.fetch(ctx, ActionGetGoal, nil, &out)
	return out, err
}

// Expenses 全部支出
func (c *Client) Expenses(ctx context.Context) ([]models.Expense, error) {
	var out []models.Expense
	err := c.fetch(ctx, ActionGetExpenses, nil, &out)
	return out, err
}

// Incomes 全部收入
func (c *Client) Incomes(ctx context.Context) ([]models.Income, error) {
	var out []models.Income
	err := c.fetch(ctx, ActionGetIncomes, nil, &out)
	return out, err
}

// Summary 指定周期的汇总
func (c *Client) Summary(ctx context.Context, period models.PeriodFilter) (*models.Summary, error) {
	var out *models.Summary
	if err := c.fetch(ctx, ActionGetSummary, Query{"periodo": period.String()}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &LogicalFailure{Action: ActionGetSummary, Status: StatusSuccess, Message: "No hay datos disponibles."}
	}
	return out, nil
}

// ChartSeries 指定周期的图表数据，没有数据时返回 nil
func (c *Client) ChartSeries(ctx context.Context, period models.PeriodFilter) (*models.ChartSeries, error) {
	var out *models.ChartSeries
	err := c.fetch(ctx, ActionGetCharts, Query{"periodo": period.String()}, &out)
	return out, err
}

// Loans 借贷两张表
func (c *Client) Loans(ctx context.Context) (models.LoanBook, error) {
	var out models.LoanBook
	err := c.fetch(ctx, ActionGetLoans, nil, &out)
	return out, err
}

// SaveExpense 新增或更新支出，ID 非空时为更新
func (c *Client) SaveExpense(ctx context.Context, req EntryRequest) (*Envelope, error) {
	if req.ID != nil {
		return c.Send(ctx, ActionUpdateExpense, req)
	}
	return c.Send(ctx, ActionAddExpense, req)
}

// DeleteExpense 删除支出
func (c *Client) DeleteExpense(ctx context.Context, id models.RecordID) (*Envelope, error) {
	return c.Send(ctx, ActionDeleteExpense, idRequest{ID: id})
}

// SaveIncome 新增或更新收入，ID 非空时为更新
func (c *Client) SaveIncome(ctx context.Context, req EntryRequest) (*Envelope, error) {
	if req.ID != nil {
		return c.Send(ctx, ActionUpdateIncome, req)
	}
	return c.Send(ctx, ActionAddIncome, req)
}

// DeleteIncome 删除收入
func (c *Client) DeleteIncome(ctx context.Context, id models.RecordID) (*Envelope, error) {
	return c.Send(ctx, ActionDeleteIncome, idRequest{ID: id})
}

// AddLoan 新增借贷（服务端会同时生成对应的流水）
func (c *Client) AddLoan(ctx context.Context, req LoanRequest) (*Envelope, error) {
	return c.Send(ctx, ActionAddLoan, req)
}

// DeleteLoan 删除借贷
func (c *Client) DeleteLoan(ctx context.Context, id models.RecordID) (*Envelope, error) {
	return c.Send(ctx, ActionDeleteLoan, idRequest{ID: id})
}

// CreateGoal 新建储蓄目标
func (c *Client) CreateGoal(ctx context.Context, req GoalRequest) (*Envelope, error) {
	return c.Send(ctx, ActionCreateGoal, req)
}

// AddCategory 新增支出类别
func (c *Client) AddCategory(ctx context.Context, req CategoryRequest) (*Envelope, error) {
	return c.Send(ctx, ActionAddCategory, req)
}

// AddSource 新增收入来源
func (c *Client) AddSource(ctx context.Context, req SourceRequest) (*Envelope, error) {
	return c.Send(ctx, ActionAddSource, req)
}

// Admin 执行 iniciar / resetear
func (c *Client) Admin(ctx context.Context, action string) (*Envelope, error) {
	if action != ActionInit && action != ActionReset {
		return nil, errors.New("gateway: unknown admin action " + action)
	}
	return c.Send(ctx, action, nil)
}

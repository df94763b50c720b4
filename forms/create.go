package forms

import (
	"context"
	"strings"
	"sync"

	"finanzas/gateway"
	"finanzas/status"
)

// GoalFields 储蓄目标表单
type GoalFields struct {
	Nombre      string `json:"nombre" validate:"required"`
	Monto       string `json:"monto" validate:"required,decimal,positive"`
	Plazo       string `json:"plazo" validate:"required,number"`
	FechaInicio string `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
}

// LoanFields 借贷表单
type LoanFields struct {
	Tipo         string `json:"tipo" validate:"required"`
	Contraparte  string `json:"contraparte" validate:"required"`
	MontoInicial string `json:"montoInicial" validate:"required,decimal,positive"`
	TasaInteres  string `json:"tasaInteres" validate:"omitempty,decimal"`
	Plazo        string `json:"plazo" validate:"omitempty,number"`
	FechaInicio  string `json:"fechaInicio" validate:"required,datetime=2006-01-02"`
	Notas        string `json:"notas"`
}

// CategoryFields 支出类别表单
type CategoryFields struct {
	Nombre string `json:"nombre" validate:"required"`
	Color  string `json:"color" validate:"omitempty,hexcolor"`
}

// SourceFields 收入来源表单
type SourceFields struct {
	Nombre string `json:"nombre" validate:"required"`
}

// CreateView 仅新增表单的快照
type CreateView[T any] struct {
	Fields     T    `json:"fields"`
	Submitting bool `json:"submitting"`
}

// CreateForm 只有新增状态的表单（目标、借贷、类别、来源）
type CreateForm[T any] struct {
	mu       sync.Mutex
	fields   T
	region   status.Region
	pending  string
	success  string
	failure  string
	defaults func() T
	send     func(ctx context.Context, fields T) (*gateway.Envelope, error)
	notify   Notifier
	onSaved  func(ctx context.Context)
	inflight inflight
}

// Fields 当前输入
func (f *CreateForm[T]) Fields() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetFields 更新输入
func (f *CreateForm[T]) SetFields(fields T) {
	f.mu.Lock()
	f.fields = fields
	f.mu.Unlock()
}

// Reset 恢复默认值
func (f *CreateForm[T]) Reset() {
	f.mu.Lock()
	f.fields = f.defaults()
	f.mu.Unlock()
}

// Region 提示区域
func (f *CreateForm[T]) Region() status.Region {
	return f.region
}

// OnSaved 设置保存成功后的回调
func (f *CreateForm[T]) OnSaved(fn func(ctx context.Context)) {
	f.onSaved = fn
}

// View 表单快照
func (f *CreateForm[T]) View() CreateView[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return CreateView[T]{Fields: f.fields, Submitting: f.inflight.busy()}
}

// Submit 校验并提交，成功后恢复默认值
func (f *CreateForm[T]) Submit(ctx context.Context) (*gateway.Envelope, error) {
	if !f.inflight.acquire() {
		return nil, ErrSubmitInFlight
	}
	defer f.inflight.release()

	fields := f.Fields()
	if err := check(fields); err != nil {
		f.notify.Report(f.region, status.LevelError, err.Error())
		return nil, err
	}

	f.notify.Report(f.region, status.LevelInfo, f.pending)
	env, err := deliver(ctx, f.notify, f.region, f.success, f.failure, func(ctx context.Context) (*gateway.Envelope, error) {
		return f.send(ctx, fields)
	})
	if err != nil || !env.OK() {
		return env, err
	}

	f.mu.Lock()
	f.fields = f.defaults()
	f.mu.Unlock()
	if f.onSaved != nil {
		f.onSaved(ctx)
	}
	return env, nil
}

// CreateGateway 仅新增表单用到的远程接口
type CreateGateway interface {
	CreateGoal(ctx context.Context, req gateway.GoalRequest) (*gateway.Envelope, error)
	AddLoan(ctx context.Context, req gateway.LoanRequest) (*gateway.Envelope, error)
	AddCategory(ctx context.Context, req gateway.CategoryRequest) (*gateway.Envelope, error)
	AddSource(ctx context.Context, req gateway.SourceRequest) (*gateway.Envelope, error)
}

// NewGoalForm 储蓄目标表单，开始日期默认今天
func NewGoalForm(gw CreateGateway, notify Notifier, clock Clock) *CreateForm[GoalFields] {
	defaults := func() GoalFields { return GoalFields{FechaInicio: clock.today()} }
	return &CreateForm[GoalFields]{
		fields:   defaults(),
		region:   status.RegionObjetivo,
		pending:  "Creando objetivo...",
		defaults: defaults,
		notify:   notify,
		send: func(ctx context.Context, in GoalFields) (*gateway.Envelope, error) {
			return gw.CreateGoal(ctx, gateway.GoalRequest{
				Nombre:      strings.TrimSpace(in.Nombre),
				Monto:       normalizeDecimal(in.Monto),
				Plazo:       strings.TrimSpace(in.Plazo),
				FechaInicio: in.FechaInicio,
			})
		},
	}
}

// NewLoanForm 借贷表单，服务端会同时生成对应的支出或收入
func NewLoanForm(gw CreateGateway, notify Notifier, clock Clock) *CreateForm[LoanFields] {
	defaults := func() LoanFields { return LoanFields{FechaInicio: clock.today()} }
	return &CreateForm[LoanFields]{
		fields:   defaults(),
		region:   status.RegionPrestamo,
		pending:  "Registrando préstamo y movimiento automático...",
		success:  "Operación exitosa.",
		failure:  "Ocurrió un error en el servidor.",
		defaults: defaults,
		notify:   notify,
		send: func(ctx context.Context, in LoanFields) (*gateway.Envelope, error) {
			return gw.AddLoan(ctx, gateway.LoanRequest{
				Tipo:         in.Tipo,
				Contraparte:  strings.TrimSpace(in.Contraparte),
				MontoInicial: normalizeDecimal(in.MontoInicial),
				TasaInteres:  normalizeDecimal(in.TasaInteres),
				Plazo:        strings.TrimSpace(in.Plazo),
				FechaInicio:  in.FechaInicio,
				Notas:        in.Notas,
			})
		},
	}
}

// DefaultColor 新类别的默认颜色
const DefaultColor = "#007bff"

// NewCategoryForm 支出类别表单
func NewCategoryForm(gw CreateGateway, notify Notifier) *CreateForm[CategoryFields] {
	defaults := func() CategoryFields { return CategoryFields{Color: DefaultColor} }
	return &CreateForm[CategoryFields]{
		fields:   defaults(),
		region:   status.RegionCategoria,
		pending:  "Agregando categoría...",
		defaults: defaults,
		notify:   notify,
		send: func(ctx context.Context, in CategoryFields) (*gateway.Envelope, error) {
			color := in.Color
			if color == "" {
				color = DefaultColor
			}
			return gw.AddCategory(ctx, gateway.CategoryRequest{Nombre: strings.TrimSpace(in.Nombre), Color: color})
		},
	}
}

// NewSourceForm 收入来源表单
func NewSourceForm(gw CreateGateway, notify Notifier) *CreateForm[SourceFields] {
	return &CreateForm[SourceFields]{
		region:   status.RegionFuente,
		pending:  "Agregando fuente...",
		defaults: func() SourceFields { return SourceFields{} },
		notify:   notify,
		send: func(ctx context.Context, in SourceFields) (*gateway.Envelope, error) {
			return gw.AddSource(ctx, gateway.SourceRequest{Nombre: strings.TrimSpace(in.Nombre)})
		},
	}
}

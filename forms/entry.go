package forms

import (
	"context"
	"strings"
	"sync"

	"finanzas/gateway"
	"finanzas/models"
	"finanzas/status"
)

// Mode 表单状态
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// EntryGateway 支出/收入的保存接口
type EntryGateway interface {
	SaveExpense(ctx context.Context, req gateway.EntryRequest) (*gateway.Envelope, error)
	SaveIncome(ctx context.Context, req gateway.EntryRequest) (*gateway.Envelope, error)
}

// entryInput 提交前的校验对象
type entryInput struct {
	Label       string `json:"label" validate:"required"`
	Monto       string `json:"monto" validate:"required,decimal,positive"`
	Fecha       string `json:"fecha" validate:"required,datetime=2006-01-02"`
	Descripcion string `json:"descripcion"`
	PrestamoID  string `json:"prestamoId"`
	TipoAbono   string `json:"tipoAbono"`
}

// EntryView 表单当前状态
type EntryView struct {
	Kind        models.EntryKind   `json:"kind"`
	Mode        Mode               `json:"mode"`
	EditID      *models.RecordID   `json:"editId,omitempty"`
	Fields      models.EntryFields `json:"fields"`
	Submitting  bool               `json:"submitting"`
	ButtonLabel string             `json:"buttonLabel"`
	LoanLinks   bool               `json:"loanLinks"`
}

// EntryForm 支出或收入表单
// 未附带编辑 ID 时为新增，附带时为更新；只有提交成功才回到新增状态（或显式取消）
type EntryForm struct {
	mu        sync.Mutex
	kind      models.EntryKind
	region    status.Region
	fields    models.EntryFields
	editID    *models.RecordID
	loanLinks bool

	gw       EntryGateway
	notify   Notifier
	onSaved  func(ctx context.Context)
	clock    Clock
	inflight inflight
}

// EntryOption 表单选项
type EntryOption func(*EntryForm)

// WithLoanLinks 是否发送 prestamoId / tipoAbono
func WithLoanLinks(on bool) EntryOption {
	return func(f *EntryForm) { f.loanLinks = on }
}

// WithReload 保存成功后重新加载列表
func WithReload(fn func(ctx context.Context)) EntryOption {
	return func(f *EntryForm) { f.onSaved = fn }
}

// WithClock 替换时钟（默认日期）
func WithClock(c Clock) EntryOption {
	return func(f *EntryForm) { f.clock = c }
}

// NewEntryForm 创建支出或收入表单
func NewEntryForm(kind models.EntryKind, gw EntryGateway, notify Notifier, opts ...EntryOption) *EntryForm {
	f := &EntryForm{
		kind:      kind,
		region:    status.RegionGasto,
		gw:        gw,
		notify:    notify,
		loanLinks: true,
	}
	if kind == models.KindIncome {
		f.region = status.RegionIngreso
	}
	for _, opt := range opts {
		opt(f)
	}
	f.fields = models.EntryFields{Fecha: f.clock.today()}
	return f
}

// Kind 表单类型
func (f *EntryForm) Kind() models.EntryKind {
	return f.kind
}

// Region 表单对应的提示区域
func (f *EntryForm) Region() status.Region {
	return f.region
}

// Mode 当前状态
func (f *EntryForm) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editID != nil {
		return ModeEdit
	}
	return ModeCreate
}

// Fields 当前输入
func (f *EntryForm) Fields() models.EntryFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetFields 更新输入（不改变状态）
func (f *EntryForm) SetFields(fields models.EntryFields) {
	f.mu.Lock()
	f.fields = fields
	f.mu.Unlock()
}

// EnterEditMode 附带记录 ID 并预填字段
func (f *EntryForm) EnterEditMode(id models.RecordID, fields models.EntryFields) {
	f.mu.Lock()
	f.editID = &id
	f.fields = fields
	f.mu.Unlock()
	f.notify.Report(f.region, status.LevelInfo, "Editando "+f.noun()+". Modifica los campos y guarda.")
}

// ExitEditMode 取消编辑：清空输入，回到新增状态
func (f *EntryForm) ExitEditMode() {
	f.mu.Lock()
	f.resetLocked()
	f.mu.Unlock()
}

// Prefill 填入借贷月供，不改变状态
func (f *EntryForm) Prefill(fields models.EntryFields) {
	f.mu.Lock()
	fields.Fecha = f.fields.Fecha
	if fields.Fecha == "" {
		fields.Fecha = f.clock.today()
	}
	f.fields = fields
	f.mu.Unlock()
	f.notify.Report(f.region, status.LevelInfo, "Datos de cuota prellenados. Revisa y presiona Guardar.")
}

func (f *EntryForm) resetLocked() {
	f.editID = nil
	f.fields = models.EntryFields{Fecha: f.clock.today()}
}

// View 表单快照
func (f *EntryForm) View() EntryView {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := EntryView{
		Kind:       f.kind,
		Mode:       ModeCreate,
		Fields:     f.fields,
		Submitting: f.inflight.busy(),
		LoanLinks:  f.loanLinks,
	}
	if f.editID != nil {
		id := *f.editID
		v.Mode = ModeEdit
		v.EditID = &id
	}
	v.ButtonLabel = f.buttonLabel(v.Mode)
	return v
}

func (f *EntryForm) buttonLabel(m Mode) string {
	verb := "Registrar"
	if m == ModeEdit {
		verb = "Actualizar"
	}
	if f.kind == models.KindIncome {
		return verb + " Ingreso"
	}
	return verb + " Gasto"
}

func (f *EntryForm) noun() string {
	if f.kind == models.KindIncome {
		return "ingreso"
	}
	return "gasto"
}

// Submit 提交表单
// 新增状态发送 agregar*，编辑状态发送 actualizar* 并带上原 ID。
// 业务失败或传输失败时保留输入与状态；校验失败返回 *ValidationError 且不发请求。
func (f *EntryForm) Submit(ctx context.Context) (*gateway.Envelope, error) {
	if !f.inflight.acquire() {
		return nil, ErrSubmitInFlight
	}
	defer f.inflight.release()

	f.mu.Lock()
	fields := f.fields
	var editID *models.RecordID
	if f.editID != nil {
		id := *f.editID
		editID = &id
	}
	f.mu.Unlock()

	in := entryInput{
		Label:       strings.TrimSpace(fields.Label),
		Monto:       strings.TrimSpace(fields.Monto),
		Fecha:       strings.TrimSpace(fields.Fecha),
		Descripcion: fields.Descripcion,
		PrestamoID:  strings.TrimSpace(fields.PrestamoID),
		TipoAbono:   strings.TrimSpace(fields.TipoAbono),
	}
	if err := check(in); err != nil {
		f.notify.Report(f.region, status.LevelError, err.Error())
		return nil, err
	}

	pending := "Registrando " + f.noun() + "..."
	if editID != nil {
		pending = "Actualizando " + f.noun() + "..."
	}
	f.notify.Report(f.region, status.LevelInfo, pending)

	req := f.request(in, editID)
	env, err := deliver(ctx, f.notify, f.region, "", "", func(ctx context.Context) (*gateway.Envelope, error) {
		if f.kind == models.KindIncome {
			return f.gw.SaveIncome(ctx, req)
		}
		return f.gw.SaveExpense(ctx, req)
	})
	if err != nil || !env.OK() {
		return env, err
	}

	f.mu.Lock()
	f.resetLocked()
	f.mu.Unlock()
	if f.onSaved != nil {
		f.onSaved(ctx)
	}
	return env, nil
}

func (f *EntryForm) request(in entryInput, editID *models.RecordID) gateway.EntryRequest {
	req := gateway.EntryRequest{
		ID:          editID,
		Monto:       normalizeDecimal(in.Monto),
		Descripcion: in.Descripcion,
		Fecha:       in.Fecha,
	}
	if f.kind == models.KindIncome {
		req.Fuente = in.Label
	} else {
		req.Categoria = in.Label
	}
	if f.loanLinks {
		prestamoID, tipoAbono := in.PrestamoID, in.TipoAbono
		req.PrestamoID = &prestamoID
		req.TipoAbono = &tipoAbono
	}
	return req
}

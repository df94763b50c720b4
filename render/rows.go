package render

import (
	"fmt"
	"strings"

	"finanzas/models"
)

// ActionKind 行内按钮动作
type ActionKind string

const (
	ActionEditGasto      ActionKind = "edit-gasto"
	ActionDeleteGasto    ActionKind = "delete-gasto"
	ActionEditIngreso    ActionKind = "edit-ingreso"
	ActionDeleteIngreso  ActionKind = "delete-ingreso"
	ActionPayInstallment ActionKind = "pay-installment"
	ActionDeletePrestamo ActionKind = "delete-prestamo"
)

// ActionBinding 行内按钮绑定，携带记录 ID 与预填字段
type ActionBinding struct {
	Action ActionKind          `json:"action"`
	ID     models.RecordID     `json:"id"`
	Target models.EntryKind    `json:"target,omitempty"`
	Fields *models.EntryFields `json:"fields,omitempty"`
}

// RowView 表格中的一行
type RowView struct {
	Placeholder bool            `json:"placeholder,omitempty"`
	Text        string          `json:"text,omitempty"`
	ColSpan     int             `json:"colspan,omitempty"`
	ID          models.RecordID `json:"id,omitempty"`
	Fecha       string          `json:"fecha,omitempty"`
	Label       string          `json:"label,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
	Monto       string          `json:"monto,omitempty"`
	Tone        Tone            `json:"tone,omitempty"`
	Actions     []ActionBinding `json:"actions,omitempty"`
}

const entryColumns = 5

// 空表与状态占位文本
const (
	TextNoExpenses = "No hay gastos registrados."
	TextNoIncomes  = "No hay ingresos registrados."
	TextLoading    = "Cargando..."
	TextLoadError  = "Error al cargar datos."
)

// PlaceholderRow 单行占位
func PlaceholderRow(text string, colspan int) RowView {
	return RowView{Placeholder: true, Text: text, ColSpan: colspan}
}

// ExpenseRows 支出表格
func ExpenseRows(expenses []models.Expense) ([]RowView, error) {
	entries := make([]models.Entry, len(expenses))
	for i, e := range expenses {
		entries[i] = e.Entry()
	}
	return EntryRows(models.KindExpense, entries)
}

// IncomeRows 收入表格
func IncomeRows(incomes []models.Income) ([]RowView, error) {
	entries := make([]models.Entry, len(incomes))
	for i, in := range incomes {
		entries[i] = in.Entry()
	}
	return EntryRows(models.KindIncome, entries)
}

// EntryRows 支出或收入表格；空输入返回一行占位
// 任一金额无效时返回错误，不会显示为 0
func EntryRows(kind models.EntryKind, entries []models.Entry) ([]RowView, error) {
	if len(entries) == 0 {
		return []RowView{PlaceholderRow(emptyText(kind), entryColumns)}, nil
	}

	editAction, deleteAction, tone := ActionEditGasto, ActionDeleteGasto, ToneWarning
	if kind == models.KindIncome {
		editAction, deleteAction, tone = ActionEditIngreso, ActionDeleteIngreso, ToneAffirmative
	}

	rows := make([]RowView, 0, len(entries))
	for _, e := range entries {
		monto, err := FormatMoney(e.Monto)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, e.ID, err)
		}
		fields := e.Fields()
		rows = append(rows, RowView{
			ID:          e.ID,
			Fecha:       e.Fecha,
			Label:       e.Label,
			Descripcion: e.Descripcion,
			Monto:       monto,
			Tone:        tone,
			Actions: []ActionBinding{
				{Action: editAction, ID: e.ID, Target: kind, Fields: &fields},
				{Action: deleteAction, ID: e.ID, Target: kind},
			},
		})
	}
	return rows, nil
}

func emptyText(kind models.EntryKind) string {
	if kind == models.KindIncome {
		return TextNoIncomes
	}
	return TextNoExpenses
}

// LoanRow 借贷表格中的一行
type LoanRow struct {
	Placeholder  bool            `json:"placeholder,omitempty"`
	Text         string          `json:"text,omitempty"`
	ColSpan      int             `json:"colspan,omitempty"`
	ID           models.RecordID `json:"id,omitempty"`
	FechaInicio  string          `json:"fechaInicio,omitempty"`
	Contraparte  string          `json:"contraparte,omitempty"`
	MontoInicial string          `json:"montoInicial,omitempty"`
	SaldoActual  string          `json:"saldoActual,omitempty"`
	CuotaMensual string          `json:"cuotaMensual,omitempty"`
	Tasa         string          `json:"tasa,omitempty"`
	Estado       string          `json:"estado,omitempty"`
	EstadoClass  string          `json:"estadoClass,omitempty"`
	Tone         Tone            `json:"tone,omitempty"`
	Actions      []ActionBinding `json:"actions,omitempty"`
}

// LoanTables 应收与应付两张表
type LoanTables struct {
	Cobrar []LoanRow `json:"cobrar"`
	Pagar  []LoanRow `json:"pagar"`
}

// 借贷占位文本
const (
	TextNoReceivables = "No hay cuentas por cobrar."
	TextNoPayables    = "No hay deudas por pagar."
)

const loanColumns = 7

// LoanRows 借贷表格
func LoanRows(book models.LoanBook) (LoanTables, error) {
	cobrar, err := loanRows(book.Cobrar, TextNoReceivables, ToneAffirmative, models.KindIncome)
	if err != nil {
		return LoanTables{}, err
	}
	pagar, err := loanRows(book.Pagar, TextNoPayables, ToneWarning, models.KindExpense)
	if err != nil {
		return LoanTables{}, err
	}
	return LoanTables{Cobrar: cobrar, Pagar: pagar}, nil
}

func loanRows(loans []models.Loan, empty string, tone Tone, target models.EntryKind) ([]LoanRow, error) {
	if len(loans) == 0 {
		return []LoanRow{{Placeholder: true, Text: empty, ColSpan: loanColumns}}, nil
	}
	rows := make([]LoanRow, 0, len(loans))
	for _, l := range loans {
		inicial, err := FormatMoney(l.MontoInicial)
		if err != nil {
			return nil, fmt.Errorf("prestamo %s montoInicial: %w", l.ID, err)
		}
		saldo, err := FormatMoney(l.SaldoActual)
		if err != nil {
			return nil, fmt.Errorf("prestamo %s saldoActual: %w", l.ID, err)
		}
		fields := InstallmentFields(l, target)
		rows = append(rows, LoanRow{
			ID:           l.ID,
			FechaInicio:  l.FechaInicio,
			Contraparte:  l.Contraparte,
			MontoInicial: inicial,
			SaldoActual:  saldo,
			CuotaMensual: Money(FormatDecimal(l.CuotaMensual.OrZero())),
			Tasa:         l.Tasa.String() + "%",
			Estado:       l.Estado,
			EstadoClass:  strings.ToLower(l.Estado),
			Tone:         tone,
			Actions: []ActionBinding{
				{Action: ActionPayInstallment, ID: l.ID, Target: target, Fields: &fields},
				{Action: ActionDeletePrestamo, ID: l.ID},
			},
		})
	}
	return rows, nil
}

// 分期预填的默认值
const (
	TipoAbonoCapital       = "CAPITAL"
	InstallmentCategory    = "Deuda"
	InstallmentSource      = "Otros"
	installmentPayDesc     = "Pago de cuota mensual - ID Préstamo: %s"
	installmentCollectDesc = "Cobro de cuota mensual - ID Préstamo: %s"
)

// InstallmentFields 按月供预填支出（还款）或收入（收款）表单
func InstallmentFields(l models.Loan, target models.EntryKind) models.EntryFields {
	f := models.EntryFields{
		Monto:      FormatDecimal(l.CuotaMensual.OrZero()),
		PrestamoID: l.ID.String(),
		TipoAbono:  TipoAbonoCapital,
	}
	if target == models.KindExpense {
		f.Descripcion = fmt.Sprintf(installmentPayDesc, l.ID)
		f.Label = InstallmentCategory
	} else {
		f.Descripcion = fmt.Sprintf(installmentCollectDesc, l.ID)
		f.Label = InstallmentSource
	}
	return f
}

package app

import (
	"slices"

	"finanzas/dashboard"
	"finanzas/forms"
	"finanzas/models"
	"finanzas/render"
	"finanzas/status"
)

// FormsView 全部表单快照
type FormsView struct {
	Gasto     forms.EntryView                        `json:"gasto"`
	Ingreso   forms.EntryView                        `json:"ingreso"`
	Objetivo  forms.CreateView[forms.GoalFields]     `json:"objetivo"`
	Prestamo  forms.CreateView[forms.LoanFields]     `json:"prestamo"`
	Categoria forms.CreateView[forms.CategoryFields] `json:"categoria"`
	Fuente    forms.CreateView[forms.SourceFields]   `json:"fuente"`
}

// View 界面完整快照，前端据此渲染
type View struct {
	Section     Section                         `json:"section"`
	Sections    []Section                       `json:"sections"`
	Filter      models.PeriodFilter             `json:"filter"`
	Periods     []models.PeriodFilter           `json:"periods"`
	Status      map[status.Region]status.Notice `json:"status"`
	Dashboard   dashboard.View                  `json:"dashboard"`
	Forms       FormsView                       `json:"forms"`
	Categories  render.OptionList               `json:"categorias"`
	Sources     render.OptionList               `json:"fuentes"`
	LoanOptions []render.Option                 `json:"prestamoOptions"`
	Expenses    []render.RowView                `json:"gastos"`
	Incomes     []render.RowView                `json:"ingresos"`
	Loans       render.LoanTables               `json:"prestamos"`
	Goal        render.GoalCard                 `json:"objetivo"`
	ConfigBusy  bool                            `json:"configBusy"`
}

// View 当前快照
func (c *Coordinator) View() View {
	v := View{
		Sections:   Sections(),
		Periods:    models.Periods(),
		Status:     c.status.Snapshot(),
		Dashboard:  c.dash.View(),
		ConfigBusy: c.ConfigBusy(),
		Forms: FormsView{
			Gasto:     c.expenseForm.View(),
			Ingreso:   c.incomeForm.View(),
			Objetivo:  c.goalForm.View(),
			Prestamo:  c.loanForm.View(),
			Categoria: c.categoryForm.View(),
			Fuente:    c.sourceForm.View(),
		},
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	v.Section = c.section
	v.Filter = c.filter
	v.Categories = c.categories
	v.Sources = c.sources
	v.LoanOptions = slices.Clone(c.loanOptions)
	v.Expenses = slices.Clone(c.expenses)
	v.Incomes = slices.Clone(c.incomes)
	v.Loans = c.loans
	v.Goal = c.goal
	return v
}

// Book 最近一次加载的借贷（导出与终端客户端使用）
func (c *Coordinator) Book() models.LoanBook {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.book
}

package app

import (
	"context"
	"errors"
	"fmt"

	"finanzas/forms"
	"finanzas/gateway"
	"finanzas/models"
	"finanzas/render"
	"finanzas/status"
)

// ErrNotFound 当前列表中没有该记录
var ErrNotFound = errors.New("app: record not found in loaded list")

// DeleteExpense 删除支出，成功后重新加载
// 删除前的确认由调用方负责
func (c *Coordinator) DeleteExpense(ctx context.Context, id models.RecordID) (*gateway.Envelope, error) {
	id = c.loadedEntryID(models.KindExpense, id)
	env, err := c.deleteEntry(ctx, status.RegionGasto, "Eliminando gasto...", func(ctx context.Context) (*gateway.Envelope, error) {
		return c.gw.DeleteExpense(ctx, id)
	})
	if err == nil && env.OK() {
		c.LoadExpenses(ctx)
	}
	return env, err
}

// DeleteIncome 删除收入，成功后重新加载
func (c *Coordinator) DeleteIncome(ctx context.Context, id models.RecordID) (*gateway.Envelope, error) {
	id = c.loadedEntryID(models.KindIncome, id)
	env, err := c.deleteEntry(ctx, status.RegionIngreso, "Eliminando ingreso...", func(ctx context.Context) (*gateway.Envelope, error) {
		return c.gw.DeleteIncome(ctx, id)
	})
	if err == nil && env.OK() {
		c.LoadIncomes(ctx)
	}
	return env, err
}

// DeleteLoan 删除借贷，成功后刷新借贷与仪表盘
func (c *Coordinator) DeleteLoan(ctx context.Context, id models.RecordID) (*gateway.Envelope, error) {
	c.mu.Lock()
	if l, _, found := findLoan(c.book, id); found {
		id = l.ID
	}
	c.mu.Unlock()
	env, err := c.deleteEntry(ctx, status.RegionPrestamo, "Eliminando préstamo...", func(ctx context.Context) (*gateway.Envelope, error) {
		return c.gw.DeleteLoan(ctx, id)
	})
	if err == nil && env.OK() {
		c.LoadLoans(ctx)
		c.refreshDashboardIfVisible(ctx)
	}
	return env, err
}

func (c *Coordinator) deleteEntry(ctx context.Context, region status.Region, pending string,
	send func(context.Context) (*gateway.Envelope, error)) (*gateway.Envelope, error) {
	c.status.Report(region, status.LevelInfo, pending)
	env, err := send(ctx)
	if err != nil {
		if gateway.IsOutcomeUnknown(err) {
			c.status.Report(region, status.LevelError, forms.TextInvalidReply)
		} else {
			c.status.Report(region, status.LevelError, fmt.Sprintf("Error al eliminar: %s", errText(err)))
		}
		return nil, err
	}
	level := status.LevelSuccess
	if !env.OK() {
		level = status.LevelError
	}
	c.status.Report(region, level, env.Message)
	return env, nil
}

// ConfigAction 初始化或重置远程数据库，成功后重新加载初始数据
// 重置的二次确认由调用方负责
func (c *Coordinator) ConfigAction(ctx context.Context, action string) (*gateway.Envelope, error) {
	if action != gateway.ActionInit && action != gateway.ActionReset {
		return nil, fmt.Errorf("app: unknown config action %q", action)
	}
	if !c.configBusy.CompareAndSwap(false, true) {
		return nil, ErrConfigInFlight
	}
	defer c.configBusy.Store(false)

	c.status.Report(status.RegionConfig, status.LevelInfo, fmt.Sprintf("Procesando la acción de %s...", action))
	env, err := c.gw.Admin(ctx, action)
	if err != nil {
		c.status.Report(status.RegionConfig, status.LevelError, fmt.Sprintf("Error de conexión: %s.", errText(err)))
		return nil, err
	}
	if !env.OK() {
		c.status.Report(status.RegionConfig, status.LevelError, env.Message)
		return env, nil
	}
	c.status.Report(status.RegionConfig, status.LevelSuccess, env.Message)
	c.LoadInitialData(ctx)
	return env, nil
}

// ConfigBusy 初始化/重置按钮是否禁用
func (c *Coordinator) ConfigBusy() bool {
	return c.configBusy.Load()
}

// EditEntry 用已加载行里的字段进入编辑状态，不再请求远程
// 更新时回传服务端签发的原始 ID
func (c *Coordinator) EditEntry(kind models.EntryKind, id models.RecordID) error {
	c.mu.Lock()
	row, found := findRow(c.rows(kind), id)
	c.mu.Unlock()

	var fields *models.EntryFields
	if found {
		for _, a := range row.Actions {
			if a.Fields != nil {
				f := *a.Fields
				fields = &f
			}
		}
	}
	if fields == nil {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	c.EntryForm(kind).EnterEditMode(row.ID, *fields)
	return nil
}

// loadedEntryID 已加载列表中有该记录时取服务端签发的 ID
func (c *Coordinator) loadedEntryID(kind models.EntryKind, id models.RecordID) models.RecordID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row, found := findRow(c.rows(kind), id); found {
		return row.ID
	}
	return id
}

// rows 调用方持有 c.mu
func (c *Coordinator) rows(kind models.EntryKind) []render.RowView {
	if kind == models.KindIncome {
		return c.incomes
	}
	return c.expenses
}

func findRow(rows []render.RowView, id models.RecordID) (render.RowView, bool) {
	for _, r := range rows {
		if !r.Placeholder && r.ID.Equal(id) {
			return r, true
		}
	}
	return render.RowView{}, false
}

// PrefillInstallment 用借贷月供预填支出（应付）或收入（应收）表单，并切换到对应页面
func (c *Coordinator) PrefillInstallment(ctx context.Context, loanID models.RecordID) (models.EntryKind, error) {
	c.mu.Lock()
	loan, receivable, found := findLoan(c.book, loanID)
	c.mu.Unlock()
	if !found {
		return "", fmt.Errorf("prestamo %s: %w", loanID, ErrNotFound)
	}

	target, sec := models.KindExpense, SectionGastos
	if receivable {
		target, sec = models.KindIncome, SectionIngresos
	}
	c.Navigate(ctx, sec)
	c.EntryForm(target).Prefill(render.InstallmentFields(loan, target))
	return target, nil
}

// findLoan 应收表中的借贷预填收入，应付表中的预填支出
func findLoan(book models.LoanBook, id models.RecordID) (models.Loan, bool, bool) {
	for _, l := range book.Cobrar {
		if l.ID.Equal(id) {
			return l, true, true
		}
	}
	for _, l := range book.Pagar {
		if l.ID.Equal(id) {
			return l, false, true
		}
	}
	return models.Loan{}, false, false
}

package app

import (
	"context"
	"errors"
	"fmt"

	"finanzas/config"
	"finanzas/gateway"
	"finanzas/models"
	"finanzas/render"
	"finanzas/status"
)

// 加载提示
const (
	TextInitialLoadFailed = "Error de conexión al cargar datos iniciales."
	TextLoadingExpenses   = "Cargando gastos..."
	TextLoadingIncomes    = "Cargando ingresos..."
)

const entryColumns = 5

// LoadInitialData 加载类别、来源、当前目标与借贷
// 类别或来源请求失败时在仪表盘区域提示；业务失败按空列表处理
func (c *Coordinator) LoadInitialData(ctx context.Context) {
	cats, err := c.gw.Categories(ctx)
	if err != nil && !isLogical(err) {
		c.initialLoadFailed("Categories", err)
		return
	}
	sources, err := c.gw.Sources(ctx)
	if err != nil && !isLogical(err) {
		c.initialLoadFailed("Sources", err)
		return
	}

	c.mu.Lock()
	c.categories = render.CategoryOptions(cats)
	c.sources = render.SourceOptions(sources)
	c.mu.Unlock()

	c.LoadGoal(ctx)
	c.LoadLoans(ctx)
}

func (c *Coordinator) initialLoadFailed(funcName string, err error) {
	config.LogError(c.logger, "app", funcName, "加载初始数据失败", nil, err)
	c.status.Report(status.RegionDashboard, status.LevelError, TextInitialLoadFailed)
}

// LoadExpenses 加载支出表格
func (c *Coordinator) LoadExpenses(ctx context.Context) {
	c.loadEntries(ctx, models.KindExpense)
}

// LoadIncomes 加载收入表格
func (c *Coordinator) LoadIncomes(ctx context.Context) {
	c.loadEntries(ctx, models.KindIncome)
}

func (c *Coordinator) loadEntries(ctx context.Context, kind models.EntryKind) {
	sec, region, loading, noun := SectionGastos, status.RegionGasto, TextLoadingExpenses, "gastos"
	empty := render.TextNoExpenses
	if kind == models.KindIncome {
		sec, region, loading, noun = SectionIngresos, status.RegionIngreso, TextLoadingIncomes, "ingresos"
		empty = render.TextNoIncomes
	}
	tok := c.token(sec)

	c.applyIf(sec, tok, func() {
		c.setRows(kind, []render.RowView{render.PlaceholderRow(render.TextLoading, entryColumns)})
		c.status.Report(region, status.LevelInfo, loading)
	})

	rows, count, err := c.fetchRows(ctx, kind)
	c.applyIf(sec, tok, func() {
		switch {
		case err != nil && isLogical(err), err == nil && count == 0:
			c.setRows(kind, []render.RowView{render.PlaceholderRow(empty, entryColumns)})
			c.status.Report(region, status.LevelWarning, empty)
		case err != nil:
			config.LogError(c.logger, "app", "loadEntries", "加载流水失败", map[string]any{"kind": kind}, err)
			c.setRows(kind, []render.RowView{render.PlaceholderRow(render.TextLoadError, entryColumns)})
			c.status.Report(region, status.LevelError, fmt.Sprintf("Error al cargar %s: %s", noun, errText(err)))
		default:
			c.setRows(kind, rows)
			c.status.Report(region, status.LevelSuccess, fmt.Sprintf("%d %s cargados.", count, noun))
		}
	})
}

func (c *Coordinator) fetchRows(ctx context.Context, kind models.EntryKind) ([]render.RowView, int, error) {
	if kind == models.KindIncome {
		incomes, err := c.gw.Incomes(ctx)
		if err != nil {
			return nil, 0, err
		}
		rows, err := render.IncomeRows(incomes)
		return rows, len(incomes), err
	}
	expenses, err := c.gw.Expenses(ctx)
	if err != nil {
		return nil, 0, err
	}
	rows, err := render.ExpenseRows(expenses)
	return rows, len(expenses), err
}

// setRows 需持锁调用
func (c *Coordinator) setRows(kind models.EntryKind, rows []render.RowView) {
	if kind == models.KindIncome {
		c.incomes = rows
		return
	}
	c.expenses = rows
}

// LoadLoans 加载借贷表格与表单中的借贷下拉框
// 失败时保留上次结果，只记录日志
func (c *Coordinator) LoadLoans(ctx context.Context) {
	book, err := c.gw.Loans(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("app: loans not loaded")
		return
	}
	tables, err := render.LoanRows(book)
	if err != nil {
		config.LogError(c.logger, "app", "LoadLoans", "借贷金额无效", nil, err)
		c.status.Report(status.RegionPrestamo, status.LevelError, fmt.Sprintf("Error al cargar préstamos: %s", err.Error()))
		return
	}
	options, err := render.LoanOptions(book)
	if err != nil {
		config.LogError(c.logger, "app", "LoadLoans", "借贷金额无效", nil, err)
		c.status.Report(status.RegionPrestamo, status.LevelError, fmt.Sprintf("Error al cargar préstamos: %s", err.Error()))
		return
	}

	c.mu.Lock()
	c.book = book
	c.loans = tables
	c.loanOptions = options
	c.mu.Unlock()
}

// LoadGoal 加载当前储蓄目标
func (c *Coordinator) LoadGoal(ctx context.Context) {
	goal, err := c.gw.ActiveGoal(ctx)
	if err != nil && !isLogical(err) {
		c.logger.WithError(err).Warn("app: goal not loaded")
		return
	}
	if err != nil {
		goal = nil
	}
	card, err := render.Goal(goal)
	if err != nil {
		config.LogError(c.logger, "app", "LoadGoal", "目标金额无效", nil, err)
		c.status.Report(status.RegionObjetivo, status.LevelError, fmt.Sprintf("Error al cargar objetivo: %s", err.Error()))
		return
	}
	c.mu.Lock()
	c.goal = card
	c.mu.Unlock()
}

func isLogical(err error) bool {
	_, ok := gateway.AsLogicalFailure(err)
	return ok
}

// errText 连接错误只显示底层原因
func errText(err error) string {
	var ce *gateway.ConnectionError
	if errors.As(err, &ce) && ce.Err != nil {
		return ce.Err.Error()
	}
	return err.Error()
}

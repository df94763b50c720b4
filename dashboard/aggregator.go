package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"finanzas/charts"
	"finanzas/config"
	"finanzas/gateway"
	"finanzas/models"
	"finanzas/render"
	"finanzas/status"

	"github.com/sirupsen/logrus"
)

// 仪表盘提示文本
const (
	TextCalculating = "Calculando resumen financiero..."
	TextNoData      = "No hay datos disponibles."
	TextNoChartData = "No hay datos suficientes para generar gráficos."
)

// Source 仪表盘需要的远程读取
type Source interface {
	Summary(ctx context.Context, period models.PeriodFilter) (*models.Summary, error)
	ChartSeries(ctx context.Context, period models.PeriodFilter) (*models.ChartSeries, error)
	Loans(ctx context.Context) (models.LoanBook, error)
}

// Notifier 提示输出
type Notifier interface {
	Report(region status.Region, level status.Level, message string)
}

// View 仪表盘快照
type View struct {
	Period  models.PeriodFilter `json:"period"`
	Summary *render.SummaryView `json:"summary"`
	Charts  []charts.Spec       `json:"charts"`
}

// Aggregator 仪表盘刷新
// 汇总、图表数据、借贷三个请求互不依赖并发执行，各自只更新自己的区域；
// 每次刷新持有一个代号，被后续刷新取代的结果直接丢弃
type Aggregator struct {
	src      Source
	renderer charts.Renderer
	notify   Notifier
	logger   *logrus.Logger

	mu      sync.Mutex
	gen     uint64
	period  models.PeriodFilter
	summary *render.SummaryView
	handles map[charts.Slot]charts.Chart
}

// NewAggregator 创建仪表盘
func NewAggregator(src Source, renderer charts.Renderer, notify Notifier, logger *logrus.Logger) *Aggregator {
	if logger == nil {
		logger = config.GetLogger()
	}
	return &Aggregator{
		src:      src,
		renderer: renderer,
		notify:   notify,
		logger:   logger,
		period:   models.DefaultPeriod,
		handles:  make(map[charts.Slot]charts.Chart),
	}
}

// Invalidate 让进行中的刷新失效（离开仪表盘时调用）
func (a *Aggregator) Invalidate() {
	a.mu.Lock()
	a.gen++
	a.mu.Unlock()
}

// Refresh 按周期刷新，三个任务全部结束后返回
func (a *Aggregator) Refresh(ctx context.Context, period models.PeriodFilter) {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.period = period
	a.mu.Unlock()

	a.notify.Report(status.RegionDashboard, status.LevelInfo, TextCalculating)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		a.refreshSummary(ctx, gen, period)
	}()
	go func() {
		defer wg.Done()
		a.refreshSeries(ctx, gen, period)
	}()
	go func() {
		defer wg.Done()
		a.refreshLoans(ctx, gen)
	}()
	wg.Wait()
}

// current 在锁内判断结果是否仍属于最新一次刷新
func (a *Aggregator) current(gen uint64, fn func()) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return false
	}
	fn()
	return true
}

func (a *Aggregator) report(gen uint64, level status.Level, msg string) {
	a.current(gen, func() { a.notify.Report(status.RegionDashboard, level, msg) })
}

func (a *Aggregator) refreshSummary(ctx context.Context, gen uint64, period models.PeriodFilter) {
	s, err := a.src.Summary(ctx, period)
	if err != nil {
		if lf, ok := gateway.AsLogicalFailure(err); ok {
			msg := lf.Message
			if msg == "" {
				msg = TextNoData
			}
			a.report(gen, status.LevelWarning, msg)
			return
		}
		config.LogError(a.logger, "dashboard", "refreshSummary", "获取汇总失败", map[string]interface{}{"period": period}, err)
		a.report(gen, status.LevelError, fmt.Sprintf("Error al calcular resumen: %s", errText(err)))
		return
	}
	view, err := render.Summary(*s)
	if err != nil {
		config.LogError(a.logger, "dashboard", "refreshSummary", "汇总金额无效", map[string]interface{}{"period": period}, err)
		a.report(gen, status.LevelError, fmt.Sprintf("Error al calcular resumen: %s", err.Error()))
		return
	}
	a.current(gen, func() {
		a.summary = &view
		a.notify.Report(status.RegionDashboard, status.LevelSuccess, fmt.Sprintf("Resumen %s calculado exitosamente.", period))
	})
}

func (a *Aggregator) refreshSeries(ctx context.Context, gen uint64, period models.PeriodFilter) {
	series, err := a.src.ChartSeries(ctx, period)
	if err != nil {
		if _, ok := gateway.AsLogicalFailure(err); ok {
			a.report(gen, status.LevelWarning, TextNoChartData)
			return
		}
		config.LogError(a.logger, "dashboard", "refreshSeries", "获取图表数据失败", map[string]interface{}{"period": period}, err)
		a.report(gen, status.LevelError, fmt.Sprintf("Error al cargar gráficos: %s", errText(err)))
		return
	}
	if series == nil {
		a.report(gen, status.LevelWarning, TextNoChartData)
		return
	}
	a.current(gen, func() {
		a.replaceLocked(charts.IncomeVsExpense(*series, period))
		a.replaceLocked(charts.ExpenseByCategory(*series, period))
	})
}

// refreshLoans 应收/应付合计在本地求和，失败时只记录日志，旧图表已销毁
func (a *Aggregator) refreshLoans(ctx context.Context, gen uint64) {
	a.current(gen, func() { a.destroyLocked(charts.SlotLoanPortfolio) })

	book, err := a.src.Loans(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("dashboard: loans unavailable, portfolio chart skipped")
		return
	}
	receivable, payable, err := book.Totals()
	if err != nil {
		config.LogError(a.logger, "dashboard", "refreshLoans", "借贷余额无效", nil, err)
		a.report(gen, status.LevelError, fmt.Sprintf("Error al cargar gráficos: %s", err.Error()))
		return
	}
	a.current(gen, func() {
		a.replaceLocked(charts.LoanPortfolio(receivable, payable))
	})
}

// replaceLocked 先销毁同槽位的旧实例再创建
func (a *Aggregator) replaceLocked(spec charts.Spec) {
	a.destroyLocked(spec.Slot)
	c, err := a.renderer.Render(spec)
	if err != nil {
		a.logger.WithError(err).WithField("slot", spec.Slot).Error("dashboard: render chart")
		return
	}
	a.handles[spec.Slot] = c
}

func (a *Aggregator) destroyLocked(slot charts.Slot) {
	if old, ok := a.handles[slot]; ok {
		old.Destroy()
		delete(a.handles, slot)
	}
}

// Close 销毁全部图表
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	for slot := range a.handles {
		a.destroyLocked(slot)
	}
}

// Reset 销毁图表并清空汇总，周期回到默认值
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	for slot := range a.handles {
		a.destroyLocked(slot)
	}
	a.summary = nil
	a.period = models.DefaultPeriod
}

// View 当前快照
func (a *Aggregator) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	v := View{Period: a.period, Charts: []charts.Spec{}}
	if a.summary != nil {
		s := *a.summary
		v.Summary = &s
	}
	for _, slot := range charts.Slots() {
		if c, ok := a.handles[slot]; ok {
			v.Charts = append(v.Charts, c.Spec())
		}
	}
	return v
}

// errText 连接错误只取底层原因
func errText(err error) string {
	var ce *gateway.ConnectionError
	if errors.As(err, &ce) && ce.Err != nil {
		return ce.Err.Error()
	}
	return err.Error()
}

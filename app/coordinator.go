package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"finanzas/charts"
	"finanzas/config"
	"finanzas/dashboard"
	"finanzas/forms"
	"finanzas/gateway"
	"finanzas/models"
	"finanzas/render"
	"finanzas/status"

	"github.com/sirupsen/logrus"
)

// Gateway 协调器用到的全部远程动作，*gateway.Client 实现了它
type Gateway interface {
	dashboard.Source
	forms.EntryGateway
	forms.CreateGateway

	Categories(ctx context.Context) ([]models.Category, error)
	Sources(ctx context.Context) ([]models.Source, error)
	ActiveGoal(ctx context.Context) (*models.Goal, error)
	Expenses(ctx context.Context) ([]models.Expense, error)
	Incomes(ctx context.Context) ([]models.Income, error)
	DeleteExpense(ctx context.Context, id models.RecordID) (*gateway.Envelope, error)
	DeleteIncome(ctx context.Context, id models.RecordID) (*gateway.Envelope, error)
	DeleteLoan(ctx context.Context, id models.RecordID) (*gateway.Envelope, error)
	Admin(ctx context.Context, action string) (*gateway.Envelope, error)
}

var _ Gateway = (*gateway.Client)(nil)

// ErrConfigInFlight 初始化/重置正在进行
var ErrConfigInFlight = errors.New("app: config action already in flight")

// Options 协调器选项
type Options struct {
	// LoanLinks 支出/收入是否发送 prestamoId 与 tipoAbono
	LoanLinks bool
	Clock     forms.Clock
	Logger    *logrus.Logger
	Reporter  *status.Reporter
	Charts    charts.Renderer
}

// Coordinator 界面状态的唯一持有者：周期、当前页面、提示区域、表单、列表与图表
// HTTP 控制台并发处理请求，因此状态由一把锁保护；网络请求期间不持锁
type Coordinator struct {
	gw     Gateway
	logger *logrus.Logger
	status *status.Reporter
	dash   *dashboard.Aggregator

	expenseForm  *forms.EntryForm
	incomeForm   *forms.EntryForm
	goalForm     *forms.CreateForm[forms.GoalFields]
	loanForm     *forms.CreateForm[forms.LoanFields]
	categoryForm *forms.CreateForm[forms.CategoryFields]
	sourceForm   *forms.CreateForm[forms.SourceFields]

	configBusy atomic.Bool

	mu          sync.Mutex
	filter      models.PeriodFilter
	section     Section
	tokens      map[Section]uint64
	categories  render.OptionList
	sources     render.OptionList
	loanOptions []render.Option
	expenses    []render.RowView
	incomes     []render.RowView
	book        models.LoanBook
	loans       render.LoanTables
	goal        render.GoalCard
}

// New 创建协调器
func New(gw Gateway, opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = config.GetLogger()
	}
	rep := opts.Reporter
	if rep == nil {
		rep = status.NewReporter(logger)
	}
	renderer := opts.Charts
	if renderer == nil {
		renderer = charts.NewBoard()
	}

	c := &Coordinator{
		gw:          gw,
		logger:      logger,
		status:      rep,
		dash:        dashboard.NewAggregator(gw, renderer, rep, logger),
		filter:      models.DefaultPeriod,
		section:     SectionDashboard,
		tokens:      make(map[Section]uint64),
		categories:  render.CategoryOptions(nil),
		sources:     render.SourceOptions(nil),
		loanOptions: []render.Option{{Value: "", Label: "Ninguno"}},
		expenses:    []render.RowView{},
		incomes:     []render.RowView{},
	}
	c.loans, _ = render.LoanRows(models.LoanBook{})
	c.goal, _ = render.Goal(nil)

	c.expenseForm = forms.NewEntryForm(models.KindExpense, gw, rep,
		forms.WithLoanLinks(opts.LoanLinks),
		forms.WithClock(opts.Clock),
		forms.WithReload(func(ctx context.Context) {
			c.LoadExpenses(ctx)
			c.LoadLoans(ctx)
		}))
	c.incomeForm = forms.NewEntryForm(models.KindIncome, gw, rep,
		forms.WithLoanLinks(opts.LoanLinks),
		forms.WithClock(opts.Clock),
		forms.WithReload(func(ctx context.Context) {
			c.LoadIncomes(ctx)
			c.LoadLoans(ctx)
		}))

	c.goalForm = forms.NewGoalForm(gw, rep, opts.Clock)
	c.goalForm.OnSaved(c.LoadGoal)
	c.loanForm = forms.NewLoanForm(gw, rep, opts.Clock)
	c.loanForm.OnSaved(func(ctx context.Context) {
		c.LoadLoans(ctx)
		c.refreshDashboardIfVisible(ctx)
	})
	c.categoryForm = forms.NewCategoryForm(gw, rep)
	c.categoryForm.OnSaved(c.LoadInitialData)
	c.sourceForm = forms.NewSourceForm(gw, rep)
	c.sourceForm.OnSaved(c.LoadInitialData)
	return c
}

// Status 提示区域
func (c *Coordinator) Status() *status.Reporter {
	return c.status
}

// EntryForm 支出或收入表单
func (c *Coordinator) EntryForm(kind models.EntryKind) *forms.EntryForm {
	if kind == models.KindIncome {
		return c.incomeForm
	}
	return c.expenseForm
}

// GoalForm 储蓄目标表单
func (c *Coordinator) GoalForm() *forms.CreateForm[forms.GoalFields] {
	return c.goalForm
}

// LoanForm 借贷表单
func (c *Coordinator) LoanForm() *forms.CreateForm[forms.LoanFields] {
	return c.loanForm
}

// CategoryForm 类别表单
func (c *Coordinator) CategoryForm() *forms.CreateForm[forms.CategoryFields] {
	return c.categoryForm
}

// SourceForm 来源表单
func (c *Coordinator) SourceForm() *forms.CreateForm[forms.SourceFields] {
	return c.sourceForm
}

// Filter 当前周期
func (c *Coordinator) Filter() models.PeriodFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Section 当前页面
func (c *Coordinator) Section() Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.section
}

// Navigate 切换页面
// 离开的页面上未完成的加载全部作废；进入仪表盘时按当前周期刷新
func (c *Coordinator) Navigate(ctx context.Context, to Section) {
	c.mu.Lock()
	from := c.section
	c.section = to
	if from != to {
		c.tokens[from]++
	}
	filter := c.filter
	c.mu.Unlock()

	if from == SectionDashboard && to != SectionDashboard {
		c.dash.Invalidate()
	}
	if to == SectionDashboard {
		c.dash.Refresh(ctx, filter)
	}
}

// SetFilter 切换周期并刷新仪表盘
func (c *Coordinator) SetFilter(ctx context.Context, filter models.PeriodFilter) {
	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()
	c.dash.Refresh(ctx, filter)
}

// RefreshDashboard 按当前周期刷新
func (c *Coordinator) RefreshDashboard(ctx context.Context) {
	c.dash.Refresh(ctx, c.Filter())
}

func (c *Coordinator) refreshDashboardIfVisible(ctx context.Context) {
	if c.Section() == SectionDashboard {
		c.RefreshDashboard(ctx)
	}
}

// token 记录发起加载时页面的代号
func (c *Coordinator) token(s Section) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens[s]
}

// applyIf 代号未变时在锁内执行
func (c *Coordinator) applyIf(s Section, tok uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tokens[s] != tok {
		return false
	}
	fn()
	return true
}

// Reset 退出登录时恢复初始状态：默认周期、仪表盘页面、空列表与图表、表单回到新增状态
// 进行中的加载全部作废
func (c *Coordinator) Reset() {
	c.dash.Reset()
	c.expenseForm.ExitEditMode()
	c.incomeForm.ExitEditMode()
	c.goalForm.Reset()
	c.loanForm.Reset()
	c.categoryForm.Reset()
	c.sourceForm.Reset()

	c.mu.Lock()
	for _, s := range Sections() {
		c.tokens[s]++
	}
	c.filter = models.DefaultPeriod
	c.section = SectionDashboard
	c.categories = render.CategoryOptions(nil)
	c.sources = render.SourceOptions(nil)
	c.loanOptions = []render.Option{{Value: "", Label: "Ninguno"}}
	c.expenses = []render.RowView{}
	c.incomes = []render.RowView{}
	c.book = models.LoanBook{}
	c.loans, _ = render.LoanRows(models.LoanBook{})
	c.goal, _ = render.Goal(nil)
	c.mu.Unlock()

	for _, r := range status.Regions() {
		c.status.Clear(r)
	}
}

// Close 销毁图表
func (c *Coordinator) Close() {
	c.dash.Close()
}

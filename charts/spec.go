package charts

import (
	"finanzas/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slot 图表在页面上的位置，每个位置同时只有一个实例
type Slot string

const (
	SlotIncomeVsExpense   Slot = "ingresoVsGastoChart"
	SlotExpenseByCategory Slot = "gastosPorCategoriaChart"
	SlotLoanPortfolio     Slot = "evolucionPrestamosChart"
)

// Slots 按页面顺序
func Slots() []Slot {
	return []Slot{SlotIncomeVsExpense, SlotExpenseByCategory, SlotLoanPortfolio}
}

// Kind 图表类型
type Kind string

const (
	KindBar      Kind = "bar"
	KindDoughnut Kind = "doughnut"
)

// 配色
const (
	ColorIncomeFill    = "rgba(40, 167, 69, 0.7)"
	ColorIncomeBorder  = "rgba(40, 167, 69, 1)"
	ColorExpenseFill   = "rgba(220, 53, 69, 0.7)"
	ColorExpenseBorder = "rgba(220, 53, 69, 1)"
)

// DefaultPalette 接口未返回类别颜色时使用
var DefaultPalette = []string{
	"#007bff", "#28a745", "#dc3545", "#ffc107",
	"#17a2b8", "#6f42c1", "#fd7e14", "#20c997",
}

// Dataset 一组数据
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	BorderColor     []string  `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth"`
}

// Spec 交给渲染器的完整图表描述
type Spec struct {
	Slot           Slot      `json:"slot"`
	Type           Kind      `json:"type"`
	Title          string    `json:"title"`
	Labels         []string  `json:"labels"`
	Datasets       []Dataset `json:"datasets"`
	YAxisTitle     string    `json:"yAxisTitle,omitempty"`
	LegendPosition string    `json:"legendPosition,omitempty"`
}

var titleCaser = cases.Title(language.Spanish)

// PeriodTitle 周期名首字母大写，如 "Mensual"
func PeriodTitle(p models.PeriodFilter) string {
	return titleCaser.String(p.String())
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// IncomeVsExpense 各子周期收入与支出的分组柱状图
func IncomeVsExpense(series models.ChartSeries, period models.PeriodFilter) Spec {
	return Spec{
		Slot:   SlotIncomeVsExpense,
		Type:   KindBar,
		Title:  "Ingresos vs Gastos - " + PeriodTitle(period),
		Labels: orEmpty(series.Labels),
		Datasets: []Dataset{
			{
				Label:           "Ingresos",
				Data:            orEmpty(series.Ingresos),
				BackgroundColor: []string{ColorIncomeFill},
				BorderColor:     []string{ColorIncomeBorder},
				BorderWidth:     1,
			},
			{
				Label:           "Gastos",
				Data:            orEmpty(series.Gastos),
				BackgroundColor: []string{ColorExpenseFill},
				BorderColor:     []string{ColorExpenseBorder},
				BorderWidth:     1,
			},
		},
		YAxisTitle: "Monto ($)",
	}
}

// ExpenseByCategory 按类别的支出占比（环形图）
func ExpenseByCategory(series models.ChartSeries, period models.PeriodFilter) Spec {
	colors := series.Colores
	if len(colors) == 0 {
		colors = DefaultPalette
	}
	return Spec{
		Slot:   SlotExpenseByCategory,
		Type:   KindDoughnut,
		Title:  "Distribución de Gastos por Categoría - " + PeriodTitle(period),
		Labels: orEmpty(series.Categorias),
		Datasets: []Dataset{{
			Data:            orEmpty(series.GastosPorCategoria),
			BackgroundColor: append([]string(nil), colors...),
			BorderColor:     []string{"#fff"},
			BorderWidth:     2,
		}},
		LegendPosition: "right",
	}
}

// LoanPortfolio 应收与应付余额对比
func LoanPortfolio(receivable, payable decimal.Decimal) Spec {
	return Spec{
		Slot:   SlotLoanPortfolio,
		Type:   KindBar,
		Title:  "Resumen de Cartera (Activos vs Pasivos)",
		Labels: []string{"Cuentas por Cobrar", "Deudas por Pagar"},
		Datasets: []Dataset{{
			Label:           "Saldo Actual",
			Data:            []float64{receivable.InexactFloat64(), payable.InexactFloat64()},
			BackgroundColor: []string{ColorIncomeFill, ColorExpenseFill},
			BorderColor:     []string{ColorIncomeBorder, ColorExpenseBorder},
			BorderWidth:     1,
		}},
	}
}

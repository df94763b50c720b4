package charts

import (
	"testing"

	"finanzas/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodTitle(t *testing.T) {
	assert.Equal(t, "Mensual", PeriodTitle(models.PeriodMonthly))
	assert.Equal(t, "Diario", PeriodTitle(models.PeriodDaily))
}

func TestSpecs(t *testing.T) {
	series := models.ChartSeries{
		Labels:             []string{"Ene", "Feb"},
		Ingresos:           []float64{100, 200},
		Gastos:             []float64{50, 75},
		Categorias:         []string{"Comida"},
		GastosPorCategoria: []float64{125},
	}

	bar := IncomeVsExpense(series, models.PeriodMonthly)
	assert.Equal(t, "Ingresos vs Gastos - Mensual", bar.Title)
	require.Len(t, bar.Datasets, 2)
	assert.Equal(t, []float64{50, 75}, bar.Datasets[1].Data)

	pie := ExpenseByCategory(series, models.PeriodWeekly)
	assert.Equal(t, KindDoughnut, pie.Type)
	assert.Equal(t, "Distribución de Gastos por Categoría - Semanal", pie.Title)
	assert.Equal(t, DefaultPalette, pie.Datasets[0].BackgroundColor)

	series.Colores = []string{"#123456"}
	pie = ExpenseByCategory(series, models.PeriodWeekly)
	assert.Equal(t, []string{"#123456"}, pie.Datasets[0].BackgroundColor)

	empty := IncomeVsExpense(models.ChartSeries{}, models.PeriodDaily)
	assert.NotNil(t, empty.Labels)
	assert.NotNil(t, empty.Datasets[0].Data)

	loans := LoanPortfolio(decimal.RequireFromString("1500.5"), decimal.NewFromInt(300))
	assert.Equal(t, []string{"Cuentas por Cobrar", "Deudas por Pagar"}, loans.Labels)
	assert.Equal(t, []float64{1500.5, 300}, loans.Datasets[0].Data)
}

func TestBoard_DestroyRemovesChart(t *testing.T) {
	b := NewBoard()
	c1, err := b.Render(LoanPortfolio(decimal.Zero, decimal.Zero))
	require.NoError(t, err)
	_, err = b.Render(IncomeVsExpense(models.ChartSeries{}, models.PeriodMonthly))
	require.NoError(t, err)

	got := b.Charts()
	require.Len(t, got, 2)
	assert.Equal(t, SlotIncomeVsExpense, got[0].Slot)

	c1.Destroy()
	c1.Destroy()
	assert.Len(t, b.Charts(), 1)

	_, err = b.Render(Spec{})
	assert.Error(t, err)
}

func TestTerminalBoard_View(t *testing.T) {
	tb := NewTerminalBoard()
	assert.Contains(t, tb.View(), "Sin gráficos.")

	c, err := tb.Render(LoanPortfolio(decimal.NewFromInt(200), decimal.NewFromInt(100)))
	require.NoError(t, err)
	out := tb.View()
	assert.Contains(t, out, "Resumen de Cartera (Activos vs Pasivos)")
	assert.Contains(t, out, "Cuentas por Cobrar")
	assert.Contains(t, out, "200.00")
	assert.Contains(t, out, "█")

	c.Destroy()
	assert.Empty(t, tb.Charts())
}

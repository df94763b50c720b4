package dashboard

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"finanzas/charts"
	"finanzas/gateway"
	"finanzas/models"
	"finanzas/status"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu         sync.Mutex
	summaries  map[models.PeriodFilter]*models.Summary
	summaryErr error
	series     *models.ChartSeries
	seriesErr  error
	book       models.LoanBook
	loansErr   error
	gates      map[models.PeriodFilter]chan struct{}
	started    chan models.PeriodFilter
}

func (f *fakeSource) Summary(ctx context.Context, period models.PeriodFilter) (*models.Summary, error) {
	f.mu.Lock()
	gate := f.gates[period]
	f.mu.Unlock()
	if f.started != nil {
		f.started <- period
	}
	if gate != nil {
		<-gate
	}
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summaries[period], nil
}

func (f *fakeSource) ChartSeries(ctx context.Context, period models.PeriodFilter) (*models.ChartSeries, error) {
	return f.series, f.seriesErr
}

func (f *fakeSource) Loans(ctx context.Context) (models.LoanBook, error) {
	return f.book, f.loansErr
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newSource() *fakeSource {
	progress := 45.0
	return &fakeSource{
		summaries: map[models.PeriodFilter]*models.Summary{
			models.PeriodMonthly: {
				TotalIngresos:    models.ParseAmount("1500"),
				TotalGastos:      models.ParseAmount("1200.5"),
				Balance:          models.ParseAmount("299.5"),
				ProgresoObjetivo: &progress,
			},
			models.PeriodDaily: {
				TotalIngresos: models.ParseAmount("10"),
				TotalGastos:   models.ParseAmount("20"),
				Balance:       models.ParseAmount("-10"),
			},
		},
		series: &models.ChartSeries{
			Labels:             []string{"Semana 1"},
			Ingresos:           []float64{1500},
			Gastos:             []float64{1200.5},
			Categorias:         []string{"Comida"},
			GastosPorCategoria: []float64{1200.5},
		},
		book: models.LoanBook{
			Cobrar: []models.Loan{{ID: models.IntID(1), SaldoActual: models.ParseAmount("100")}},
			Pagar:  []models.Loan{{ID: models.IntID(2), SaldoActual: models.ParseAmount("40.5")}},
		},
	}
}

func TestRefresh_RendersAllRegions(t *testing.T) {
	src := newSource()
	board := charts.NewBoard()
	rep := status.NewReporter(quietLogger())
	a := NewAggregator(src, board, rep, quietLogger())

	a.Refresh(context.Background(), models.PeriodMonthly)

	v := a.View()
	require.NotNil(t, v.Summary)
	assert.Equal(t, "$1500.00", v.Summary.TotalIngresos)
	assert.Equal(t, "$1200.50", v.Summary.TotalGastos)
	assert.Equal(t, "$299.50", v.Summary.Balance)
	assert.Equal(t, "45.0%", v.Summary.Progreso)
	assert.Equal(t, "$0.00", v.Summary.TotalCobrar)

	require.Len(t, v.Charts, 3)
	assert.Equal(t, charts.SlotIncomeVsExpense, v.Charts[0].Slot)
	assert.Equal(t, []float64{100, 40.5}, v.Charts[2].Datasets[0].Data)

	n := rep.Get(status.RegionDashboard)
	assert.Equal(t, status.LevelSuccess, n.Level)
	assert.Equal(t, "Resumen mensual calculado exitosamente.", n.Message)
}

func TestRefresh_Idempotent(t *testing.T) {
	src := newSource()
	board := charts.NewBoard()
	a := NewAggregator(src, board, status.NewReporter(quietLogger()), quietLogger())

	a.Refresh(context.Background(), models.PeriodMonthly)
	first := board.Charts()
	firstView := a.View()

	a.Refresh(context.Background(), models.PeriodMonthly)
	assert.Equal(t, first, board.Charts())
	assert.Len(t, board.Charts(), 3)
	assert.Equal(t, firstView, a.View())
}

func TestRefresh_PartialFailure(t *testing.T) {
	src := newSource()
	src.summaryErr = &gateway.ConnectionError{Action: gateway.ActionGetSummary, Op: "request", Err: errors.New("timeout")}
	board := charts.NewBoard()
	rep := status.NewReporter(quietLogger())
	a := NewAggregator(src, board, rep, quietLogger())

	a.Refresh(context.Background(), models.PeriodMonthly)

	assert.Nil(t, a.View().Summary)
	assert.Len(t, board.Charts(), 3)
	n := rep.Get(status.RegionDashboard)
	assert.Equal(t, status.LevelError, n.Level)
	assert.Equal(t, "Error al calcular resumen: timeout", n.Message)
}

func TestRefresh_NoData(t *testing.T) {
	src := newSource()
	src.summaryErr = &gateway.LogicalFailure{Action: gateway.ActionGetSummary, Status: "error"}
	src.series = nil
	src.loansErr = &gateway.LogicalFailure{Action: gateway.ActionGetLoans, Status: "error"}

	var mu sync.Mutex
	var messages []string
	n := notifierFunc(func(r status.Region, l status.Level, msg string) {
		mu.Lock()
		messages = append(messages, msg)
		mu.Unlock()
	})
	board := charts.NewBoard()
	a := NewAggregator(src, board, n, quietLogger())
	a.Refresh(context.Background(), models.PeriodWeekly)

	assert.Contains(t, messages, TextCalculating)
	assert.Contains(t, messages, TextNoData)
	assert.Contains(t, messages, TextNoChartData)
	assert.Empty(t, board.Charts())
}

func TestRefresh_InvalidLoanBalance(t *testing.T) {
	src := newSource()
	src.book.Pagar = append(src.book.Pagar, models.Loan{ID: models.IntID(9), SaldoActual: models.ParseAmount("x")})
	board := charts.NewBoard()
	a := NewAggregator(src, board, status.NewReporter(quietLogger()), quietLogger())

	a.Refresh(context.Background(), models.PeriodMonthly)
	for _, c := range a.View().Charts {
		assert.NotEqual(t, charts.SlotLoanPortfolio, c.Slot)
	}
	assert.Len(t, board.Charts(), 2)
}

func TestRefresh_StaleResultsDropped(t *testing.T) {
	src := newSource()
	gate := make(chan struct{})
	src.gates = map[models.PeriodFilter]chan struct{}{models.PeriodMonthly: gate}
	src.started = make(chan models.PeriodFilter, 2)

	rep := status.NewReporter(quietLogger())
	a := NewAggregator(src, charts.NewBoard(), rep, quietLogger())

	done := make(chan struct{})
	go func() {
		a.Refresh(context.Background(), models.PeriodMonthly)
		close(done)
	}()
	require.Equal(t, models.PeriodMonthly, <-src.started)

	a.Refresh(context.Background(), models.PeriodDaily)
	<-src.started
	close(gate)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stale refresh did not finish")
	}

	v := a.View()
	assert.Equal(t, models.PeriodDaily, v.Period)
	require.NotNil(t, v.Summary)
	assert.Equal(t, "$-10.00", v.Summary.Balance)
	assert.Equal(t, "Resumen diario calculado exitosamente.", rep.Get(status.RegionDashboard).Message)
}

func TestInvalidate_DropsOutstanding(t *testing.T) {
	src := newSource()
	gate := make(chan struct{})
	src.gates = map[models.PeriodFilter]chan struct{}{models.PeriodMonthly: gate}
	src.started = make(chan models.PeriodFilter, 1)

	a := NewAggregator(src, charts.NewBoard(), status.NewReporter(quietLogger()), quietLogger())
	done := make(chan struct{})
	go func() {
		a.Refresh(context.Background(), models.PeriodMonthly)
		close(done)
	}()
	<-src.started
	a.Invalidate()
	close(gate)
	<-done

	assert.Nil(t, a.View().Summary)
}

type notifierFunc func(status.Region, status.Level, string)

func (f notifierFunc) Report(r status.Region, l status.Level, msg string) { f(r, l, msg) }

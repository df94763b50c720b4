package models

// Summary getResumenFinanciero 返回的汇总
type Summary struct {
	TotalIngresos    Amount   `json:"totalIngresos"`
	TotalGastos      Amount   `json:"totalGastos"`
	Balance          Amount   `json:"balance"`
	ProgresoObjetivo *float64 `json:"progresoObjetivo"`
	TotalPorCobrar   Amount   `json:"totalPorCobrar"`
	TotalPorPagar    Amount   `json:"totalPorPagar"`
}

// ChartSeries getDatosGraficos 返回的图表数据
type ChartSeries struct {
	Labels             []string  `json:"labels"`
	Ingresos           []float64 `json:"ingresos"`
	Gastos             []float64 `json:"gastos"`
	Categorias         []string  `json:"categorias"`
	GastosPorCategoria []float64 `json:"gastosPorCategoria"`
	Colores            []string  `json:"colores"`
}

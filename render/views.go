package render

import (
	"fmt"
	"math"

	"finanzas/models"
)

// SummaryView 仪表盘汇总卡片
type SummaryView struct {
	TotalIngresos string `json:"totalIngresos"`
	TotalGastos   string `json:"totalGastos"`
	Balance       string `json:"balance"`
	BalanceTone   Tone   `json:"balanceTone"`
	BalanceColor  string `json:"balanceColor"`
	Progreso      string `json:"progresoObjetivo"`
	TotalCobrar   string `json:"totalCobrar"`
	TotalPagar    string `json:"totalPagar"`
}

// Summary 渲染汇总；收入、支出、余额无效时报错，借贷合计缺省按 0
func Summary(s models.Summary) (SummaryView, error) {
	ingresos, err := FormatMoney(s.TotalIngresos)
	if err != nil {
		return SummaryView{}, fmt.Errorf("totalIngresos: %w", err)
	}
	gastos, err := FormatMoney(s.TotalGastos)
	if err != nil {
		return SummaryView{}, fmt.Errorf("totalGastos: %w", err)
	}
	balance, ok := s.Balance.Decimal()
	if !ok {
		return SummaryView{}, fmt.Errorf("balance: %w: %q", ErrBadAmount, s.Balance.Raw())
	}
	tone := BalanceTone(balance)
	return SummaryView{
		TotalIngresos: ingresos,
		TotalGastos:   gastos,
		Balance:       Money(FormatDecimal(balance)),
		BalanceTone:   tone,
		BalanceColor:  tone.Color(),
		Progreso:      FormatProgress(s.ProgresoObjetivo),
		TotalCobrar:   Money(FormatDecimal(s.TotalPorCobrar.OrZero())),
		TotalPagar:    Money(FormatDecimal(s.TotalPorPagar.OrZero())),
	}, nil
}

// 目标卡片文本
const (
	TextNoGoal         = "No hay objetivo activo. Crea uno arriba."
	TextDefaultGoalMsg = "Sigue ahorrando para alcanzar tu meta!"
)

// GoalCard 当前储蓄目标卡片
type GoalCard struct {
	Empty        bool    `json:"empty"`
	Text         string  `json:"text,omitempty"`
	Nombre       string  `json:"nombre,omitempty"`
	Progreso     string  `json:"progreso,omitempty"`
	BarWidth     float64 `json:"barWidth,omitempty"`
	Meta         string  `json:"meta,omitempty"`
	AhorroActual string  `json:"ahorroActual,omitempty"`
	Plazo        string  `json:"plazo,omitempty"`
	FechaInicio  string  `json:"fechaInicio,omitempty"`
	Mensaje      string  `json:"mensaje,omitempty"`
}

// Goal 渲染目标卡片，nil 为空状态
func Goal(g *models.Goal) (GoalCard, error) {
	if g == nil {
		return GoalCard{Empty: true, Text: TextNoGoal}, nil
	}
	meta, err := FormatMoney(g.MontoMeta)
	if err != nil {
		return GoalCard{}, fmt.Errorf("monto_meta: %w", err)
	}
	msg := g.Mensaje
	if msg == "" {
		msg = TextDefaultGoalMsg
	}
	return GoalCard{
		Nombre:       g.Nombre,
		Progreso:     FormatPercent(g.Progreso),
		BarWidth:     math.Max(0, math.Min(g.Progreso, 100)),
		Meta:         meta,
		AhorroActual: Money(FormatFloat(g.AhorroActual)),
		Plazo:        fmt.Sprintf("%d meses", g.PlazoMeses),
		FechaInicio:  g.FechaInicio,
		Mensaje:      msg,
	}, nil
}

// Option 下拉选项
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// OptionList 下拉框内容；Placeholder 为不可选的首项，Empty 时 ListText 为列表占位
type OptionList struct {
	Placeholder string   `json:"placeholder"`
	Options     []Option `json:"options"`
	Empty       bool     `json:"empty"`
	ListText    string   `json:"listText,omitempty"`
}

// DefaultCategoryColor 类别缺省颜色
const DefaultCategoryColor = "#007bff"

// CategoryOptions 支出类别下拉框与列表
func CategoryOptions(cats []models.Category) OptionList {
	if len(cats) == 0 {
		return OptionList{Placeholder: "No hay categorías registradas", Empty: true, ListText: "No hay categorías.", Options: []Option{}}
	}
	opts := make([]Option, 0, len(cats))
	for _, c := range cats {
		name := c.Nombre
		if name == "" {
			name = fmt.Sprintf("(ID %s)", c.ID)
		}
		color := c.Color
		if color == "" {
			color = DefaultCategoryColor
		}
		opts = append(opts, Option{Value: name, Label: name, Color: color})
	}
	return OptionList{Placeholder: "Seleccione una categoría", Options: opts}
}

// SourceOptions 收入来源下拉框与列表
func SourceOptions(sources []models.Source) OptionList {
	if len(sources) == 0 {
		return OptionList{Placeholder: "No hay fuentes registradas", Empty: true, ListText: "No hay fuentes.", Options: []Option{}}
	}
	opts := make([]Option, 0, len(sources))
	for _, s := range sources {
		name := s.Nombre
		if name == "" {
			name = fmt.Sprintf("(ID %s)", s.ID)
		}
		opts = append(opts, Option{Value: name, Label: name})
	}
	return OptionList{Placeholder: "Seleccione una fuente", Options: opts}
}

// LoanOptions 支出/收入表单中可关联的进行中借贷，首项为“Ninguno”
func LoanOptions(book models.LoanBook) ([]Option, error) {
	opts := []Option{{Value: "", Label: "Ninguno"}}
	for _, l := range book.All() {
		if !l.Active() {
			continue
		}
		saldo, err := FormatMoney(l.SaldoActual)
		if err != nil {
			return nil, fmt.Errorf("prestamo %s saldoActual: %w", l.ID, err)
		}
		kind := "Pago"
		if l.Receivable() {
			kind = "Cobro"
		}
		opts = append(opts, Option{
			Value: l.ID.String(),
			Label: fmt.Sprintf("%s: %s (Bal: %s)", kind, l.Contraparte, saldo),
		})
	}
	return opts, nil
}

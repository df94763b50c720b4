package main

import (
	"fmt"
	"io"

	"finanzas/render"
	"finanzas/status"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#4F81BD")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#28a745"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffc107"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc3545"))
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

var toneStyles = map[render.Tone]lipgloss.Style{
	render.ToneAffirmative: successStyle,
	render.ToneWarning:     errorStyle,
	render.ToneNeutral:     mutedStyle,
}

// noticeLine 提示区域的一行文本
func noticeLine(n status.Notice) string {
	if !n.Visible || n.Message == "" {
		return ""
	}
	style := mutedStyle
	switch n.Level {
	case status.LevelSuccess:
		style = successStyle
	case status.LevelWarning:
		style = warningStyle
	case status.LevelError:
		style = errorStyle
	}
	return style.Render(n.Message)
}

func printNotice(w io.Writer, n status.Notice) {
	if line := noticeLine(n); line != "" {
		fmt.Fprintln(w, line)
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// entryTable 支出/收入表格；占位行显示为单行文本
func entryTable(labelHeader string, rows []render.RowView) string {
	if len(rows) == 1 && rows[0].Placeholder {
		return mutedStyle.Render(rows[0].Text)
	}
	t := newTable("ID", "Fecha", labelHeader, "Descripción", "Monto")
	for _, r := range rows {
		if r.Placeholder {
			continue
		}
		t.Row(r.ID.String(), r.Fecha, r.Label, r.Descripcion, r.Monto)
	}
	return t.String()
}

// loanTable 一张借贷表
func loanTable(title string, rows []render.LoanRow) string {
	heading := lipgloss.NewStyle().Bold(true).Render(title)
	if len(rows) == 1 && rows[0].Placeholder {
		return lipgloss.JoinVertical(lipgloss.Left, heading, mutedStyle.Render(rows[0].Text))
	}
	t := newTable("ID", "Inicio", "Contraparte", "Monto Inicial", "Saldo", "Cuota", "Tasa", "Estado")
	for _, r := range rows {
		if r.Placeholder {
			continue
		}
		t.Row(r.ID.String(), r.FechaInicio, r.Contraparte, r.MontoInicial, r.SaldoActual, r.CuotaMensual, r.Tasa, r.Estado)
	}
	return lipgloss.JoinVertical(lipgloss.Left, heading, t.String())
}

// summaryBox 仪表盘汇总卡片
func summaryBox(s render.SummaryView) string {
	balance := toneStyles[s.BalanceTone].Render(s.Balance)
	lines := []string{
		fmt.Sprintf("Ingresos:           %s", s.TotalIngresos),
		fmt.Sprintf("Gastos:             %s", s.TotalGastos),
		fmt.Sprintf("Balance:            %s", balance),
		fmt.Sprintf("Progreso objetivo:  %s", s.Progreso),
		fmt.Sprintf("Por cobrar:         %s", s.TotalCobrar),
		fmt.Sprintf("Por pagar:          %s", s.TotalPagar),
	}
	return summaryStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

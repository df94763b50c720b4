package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

// TerminalBoard 在终端里用横向条形图近似绘制
type TerminalBoard struct {
	live liveSet

	TitleStyle   lipgloss.Style
	IncomeStyle  lipgloss.Style
	ExpenseStyle lipgloss.Style
	LabelStyle   lipgloss.Style
	FrameStyle   lipgloss.Style
}

// NewTerminalBoard 创建终端面板
func NewTerminalBoard() *TerminalBoard {
	return &TerminalBoard{
		TitleStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#007bff")),
		IncomeStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#28a745")),
		ExpenseStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#dc3545")),
		LabelStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		FrameStyle:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// Render 登记新实例
func (t *TerminalBoard) Render(spec Spec) (Chart, error) {
	if spec.Slot == "" {
		return nil, fmt.Errorf("charts: spec without slot")
	}
	return &handle{set: &t.live, id: t.live.add(spec), spec: spec}, nil
}

// Charts 当前存活的图表
func (t *TerminalBoard) Charts() []Spec {
	return t.live.list()
}

// View 绘制所有存活的图表
func (t *TerminalBoard) View() string {
	specs := t.live.list()
	if len(specs) == 0 {
		return t.LabelStyle.Render("Sin gráficos.")
	}
	blocks := make([]string, 0, len(specs))
	for _, s := range specs {
		blocks = append(blocks, t.FrameStyle.Render(t.renderSpec(s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (t *TerminalBoard) renderSpec(s Spec) string {
	lines := []string{t.TitleStyle.Render(s.Title)}
	peak := 0.0
	for _, ds := range s.Datasets {
		for _, v := range ds.Data {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	labelWidth := 0
	for _, l := range s.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	for i, label := range s.Labels {
		for j, ds := range s.Datasets {
			if i >= len(ds.Data) {
				continue
			}
			name := ""
			if j == 0 {
				name = label
			}
			style := t.styleFor(s, j, i)
			bar := style.Render(strings.Repeat("█", scale(ds.Data[i], peak)))
			lines = append(lines, fmt.Sprintf("%s %s %.2f",
				t.LabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, name)), bar, ds.Data[i]))
		}
	}
	if len(s.Labels) == 0 {
		lines = append(lines, t.LabelStyle.Render("No hay datos."))
	}
	return strings.Join(lines, "\n")
}

// styleFor 分组柱状图按数据集着色，其余按数据点着色
func (t *TerminalBoard) styleFor(s Spec, dataset, point int) lipgloss.Style {
	if len(s.Datasets) > 1 {
		if dataset == 0 {
			return t.IncomeStyle
		}
		return t.ExpenseStyle
	}
	colors := s.Datasets[dataset].BackgroundColor
	if point < len(colors) {
		if c := hexColor(colors[point]); c != "" {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		}
	}
	if point%2 == 0 {
		return t.IncomeStyle
	}
	return t.ExpenseStyle
}

func hexColor(c string) string {
	switch c {
	case ColorIncomeFill:
		return "#28a745"
	case ColorExpenseFill:
		return "#dc3545"
	}
	if strings.HasPrefix(c, "#") {
		return c
	}
	return ""
}

func scale(v, peak float64) int {
	if peak <= 0 {
		return 0
	}
	n := int(math.Round(math.Abs(v) / peak * barWidth))
	if n == 0 && v != 0 {
		n = 1
	}
	return n
}

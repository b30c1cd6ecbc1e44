package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/mood/internal/history"
)

// chartView is a rendered chart held while the history panel is shown. It is
// acquired when the panel opens or re-renders and released when it closes.
type chartView struct {
	series   history.ChartSeries
	rendered string
	released bool
}

func acquireChart(series history.ChartSeries) *chartView {
	return &chartView{series: series, rendered: renderChart(series)}
}

func (c *chartView) View() string {
	if c == nil || c.released {
		return ""
	}
	return c.rendered
}

func (c *chartView) release() {
	if c == nil {
		return
	}
	c.released = true
	c.rendered = ""
}

// renderChart draws one vertical bar per point, y ticks from Very Happy down
// to Very Sad, and the short dates underneath.
func renderChart(series history.ChartSeries) string {
	axisWidth := 0
	for v := 1; v <= history.MaxValue; v++ {
		axisWidth = max(axisWidth, len(history.AxisLabel(v)))
	}
	colWidth := 3
	for _, label := range series.Labels() {
		colWidth = max(colWidth, len(label)+1)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(history.SeriesTitle))
	b.WriteByte('\n')

	for level := history.MaxValue; level >= 1; level-- {
		fmt.Fprintf(&b, "%*s │", axisWidth, history.AxisLabel(level))
		for _, p := range series.Points {
			cell := strings.Repeat(" ", colWidth)
			if min(p.Value, history.MaxValue) >= level {
				cell = colorStyle(p.Color).Render("██") + strings.Repeat(" ", colWidth-2)
			}
			b.WriteByte(' ')
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "%*s └%s\n", axisWidth, "", strings.Repeat("─", len(series.Points)*(colWidth+1)))
	fmt.Fprintf(&b, "%*s  ", axisWidth, "")
	for _, label := range series.Labels() {
		fmt.Fprintf(&b, " %-*s", colWidth, label)
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%*s  %s: %s, %s: %s", axisWidth, "", "y", history.YAxisTitle, "x", history.XAxisTitle)
	return b.String()
}

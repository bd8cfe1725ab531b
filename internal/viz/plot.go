// Package viz renders simulation output to the terminal: spanwise
// distribution plots, time series charts and a live view.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/sondreal/liftline/internal/geo"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
)

// SpanwisePlot charts a spanwise distribution, one value per control point.
func SpanwisePlot(values []float64, caption string) string {
	if len(values) < 2 {
		return ""
	}
	graph := asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(graph)
}

// SeriesPlot charts a time series.
func SeriesPlot(values []float64, caption string) string {
	if len(values) < 2 {
		return ""
	}
	graph := asciigraph.Plot(values,
		asciigraph.Height(8),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(graph)
}

// RunSummary is the terminal report printed after a run.
type RunSummary struct {
	Name       string
	Steps      int
	Duration   float64
	TotalForce geo.Vec3
	Residual   float64
	Iterations int
	Converged  bool
}

func (s RunSummary) Render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(s.Name)) + "\n\n")
	b.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", s.Steps)) + "\n")
	b.WriteString(labelStyle.Render("Simulated time") + valueStyle.Render(fmt.Sprintf("%.2f s", s.Duration)) + "\n")
	b.WriteString(labelStyle.Render("Total force") + valueStyle.Render(fmt.Sprintf("[%.1f, %.1f, %.1f] N",
		s.TotalForce.X, s.TotalForce.Y, s.TotalForce.Z)) + "\n")
	b.WriteString(labelStyle.Render("Residual") + valueStyle.Render(fmt.Sprintf("%.2e", s.Residual)) + "\n")
	b.WriteString(labelStyle.Render("Iterations") + valueStyle.Render(fmt.Sprintf("%d", s.Iterations)) + "\n")
	if s.Converged {
		b.WriteString(labelStyle.Render("Status") + okStyle.Render("converged") + "\n")
	} else {
		b.WriteString(labelStyle.Render("Status") + warnStyle.Render("not converged") + "\n")
	}
	return panelStyle.Render(b.String())
}

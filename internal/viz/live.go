package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/sondreal/liftline/internal/sim"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// LiveModel steps a simulation in real time and charts its output.
type LiveModel struct {
	simulation *sim.Simulation
	name       string
	nrSteps    int

	running  bool
	stepsRun int
	last     sim.StepResult
	err      error

	forceHistory    []float64
	residualHistory []float64
}

func NewLiveModel(s *sim.Simulation, name string, nrSteps int) LiveModel {
	return LiveModel{
		simulation:      s,
		name:            name,
		nrSteps:         nrSteps,
		running:         true,
		forceHistory:    make([]float64, 0, historyCapacity),
		residualHistory: make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.err == nil && m.stepsRun < m.nrSteps {
			result, err := m.simulation.Step()
			if err != nil {
				m.err = err
				m.running = false
			} else {
				m.last = result
				m.stepsRun++
				m.push(&m.forceHistory, result.TotalForce.Length())
				m.push(&m.residualHistory, result.Solver.Residual)
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *LiveModel) push(history *[]float64, v float64) {
	*history = append(*history, v)
	if len(*history) > historyCapacity {
		*history = (*history)[1:]
	}
}

func (m LiveModel) View() string {
	var left strings.Builder
	if len(m.forceHistory) > 1 {
		chart := asciigraph.Plot(m.forceHistory,
			asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("total force [N]"))
		left.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.last.Solver.Circulation) > 1 {
		chart := asciigraph.Plot(m.last.Solver.Circulation,
			asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("circulation"))
		left.WriteString(graphStyle.Render(chart) + "\n")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	status := "RUNNING"
	if m.err != nil {
		status = warnStyle.Render("ERROR: " + m.err.Error())
	} else if m.stepsRun >= m.nrSteps {
		status = okStyle.Render("DONE")
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f s", m.last.Time)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.stepsRun, m.nrSteps)) + "\n")
	s.WriteString(labelStyle.Render("Residual") + valueStyle.Render(fmt.Sprintf("%.2e", m.last.Solver.Residual)) + "\n")
	s.WriteString(labelStyle.Render("Iterations") + valueStyle.Render(fmt.Sprintf("%d", m.last.Solver.Iterations)) + "\n")
	s.WriteString(labelStyle.Render("Force") + valueStyle.Render(fmt.Sprintf("[%.0f, %.0f, %.0f]",
		m.last.TotalForce.X, m.last.TotalForce.Y, m.last.TotalForce.Z)) + "\n")
	if len(m.last.WingAngles) > 0 {
		angles := make([]string, len(m.last.WingAngles))
		for i, a := range m.last.WingAngles {
			angles[i] = fmt.Sprintf("%.3f", a)
		}
		s.WriteString(labelStyle.Render("Wing angles") + valueStyle.Render(strings.Join(angles, " ")) + "\n")
	}
	s.WriteString(helpStyle.Render("\nSP:Pause Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left.String(), statsStyle.Render(s.String()))
}

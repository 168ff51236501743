package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/dsoppit/wavesim/internal/fdtd"
	"github.com/dsoppit/wavesim/internal/metrics"
)

const (
	heatCols = 72
	heatRows = 30
)

type TickMsg time.Time

// Model runs the integrator one step per tick and renders the field as a
// heatmap with a stats panel and an energy sparkline.
type Model struct {
	integ         *fdtd.Integrator
	step          int
	frameRate     int
	running       bool
	done          bool
	err           error
	snap          fdtd.Field
	peak          float64
	energyHistory []float64
	showHelp      bool
}

// NewModel wraps an integrator for live viewing.
func NewModel(integ *fdtd.Integrator, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		integ:         integ,
		frameRate:     frameRate,
		running:       true,
		peak:          1e-12,
		energyHistory: make([]float64, 0, integ.NSteps()),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "h", "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done && m.err == nil {
			snap, err := m.integ.Step(m.step)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.snap = snap
			m.step++
			m.energyHistory = append(m.energyHistory, metrics.FieldEnergy(snap))
			for _, v := range snap {
				if a := math.Abs(v); a > m.peak {
					m.peak = a
				}
			}
			if m.step >= m.integ.NSteps() {
				m.done = true
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	g := m.integ.Grid()

	var canvas string
	if m.snap != nil {
		canvas = RenderField(m.snap, g.Nx, g.Ny, heatCols, heatRows, m.peak)
	} else {
		canvas = strings.Repeat(strings.Repeat(" ", heatCols)+"\n", heatRows)
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("wavesim live") + "\n")
	stats.WriteString(statLine("step", fmt.Sprintf("%d / %d", m.step, m.integ.NSteps())))
	stats.WriteString(statLine("t", fmt.Sprintf("%.3e s", float64(m.step)*g.Dt)))
	stats.WriteString(statLine("grid", fmt.Sprintf("%d x %d", g.Nx, g.Ny)))
	stats.WriteString(statLine("dt", fmt.Sprintf("%.3e s", g.Dt)))
	stats.WriteString(statLine("courant", fmt.Sprintf("Ox=%.3f Oy=%.3f", g.Ox, g.Oy)))
	stats.WriteString(statLine("boundary", m.integ.Boundary().String()))
	stats.WriteString(statLine("peak |u|", fmt.Sprintf("%.3e", m.peak)))
	if len(m.energyHistory) > 0 {
		stats.WriteString(statLine("energy", fmt.Sprintf("%.3e", m.energyHistory[len(m.energyHistory)-1])))
	}
	switch {
	case m.err != nil:
		stats.WriteString("\n" + errStyle.Render(m.err.Error()))
	case m.done:
		stats.WriteString("\n" + valueStyle.Render("run complete"))
	case !m.running:
		stats.WriteString("\n" + valueStyle.Render("paused"))
	}

	if len(m.energyHistory) > 1 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(36),
			asciigraph.Caption("energy"),
		)
		stats.WriteString("\n" + graphStyle.Render(graph))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(canvas),
		statsStyle.Render(stats.String()),
	)

	help := "space pause · q quit"
	if m.showHelp {
		help = "space: pause/resume · h: toggle help · q: quit\nthe heatmap shows the field at the latest step, blue negative, red positive"
	}
	return view + "\n" + helpStyle.Render(help)
}

func statLine(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// Package tui runs a live terminal view of a Brownian walk: the x-y trail
// on a braille canvas next to the growing squared displacement.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/brownsim/internal/langevin"
	"github.com/san-kum/brownsim/internal/noise"
	"github.com/san-kum/brownsim/internal/physics"
	"github.com/san-kum/brownsim/internal/viz"
)

const (
	canvasWidth  = 48
	canvasHeight = 18
	trailCap     = 4000
	sparkWidth   = 40
	sparkHeight  = 8
	stepsPerTick = 50
)

type TickMsg time.Time

type Model struct {
	params  physics.Parameters
	regime  langevin.Regime
	dt      float64
	seed    uint64
	integ   langevin.Integrator
	state   langevin.State
	t       float64
	steps   int
	running bool
	trailX  []float64
	trailY  []float64
	sqDisp  []float64
}

func NewModel(p physics.Parameters, regime langevin.Regime, dt float64, seed uint64) (Model, error) {
	m := Model{
		params:  p,
		regime:  regime,
		dt:      dt,
		seed:    seed,
		running: true,
		trailX:  make([]float64, 0, trailCap),
		trailY:  make([]float64, 0, trailCap),
		sqDisp:  make([]float64, 0, trailCap),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) reset() error {
	integ, err := langevin.New(m.regime, m.params, m.dt, noise.New(m.seed))
	if err != nil {
		return err
	}
	m.integ = integ
	m.state = make(langevin.State, integ.StateDim())
	m.t = 0
	m.steps = 0
	m.trailX = append(m.trailX[:0], 0)
	m.trailY = append(m.trailY[:0], 0)
	m.sqDisp = m.sqDisp[:0]
	return nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "r":
			// reset cannot fail: the integrator was already constructed once
			_ = m.reset()
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerTick; i++ {
				m.state = m.integ.Step(m.state)
				m.t += m.dt
				m.steps++
			}
			if len(m.trailX) < trailCap {
				m.trailX = append(m.trailX, m.state[0])
				m.trailY = append(m.trailY, m.state[1])
			}
			if len(m.sqDisp) < trailCap {
				m.sqDisp = append(m.sqDisp, m.state[0]*m.state[0]+m.state[1]*m.state[1])
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	canvas := viz.RenderWalk(m.trailX, m.trailY, canvasWidth, canvasHeight)

	status := "running"
	if !m.running {
		status = "paused"
	}
	stats := viz.HeaderStyle.Render(fmt.Sprintf("%s walk — %s", m.regime, status)) + "\n\n"
	stats += viz.LabelStyle.Render("t") + viz.ValueStyle.Render(fmt.Sprintf("%.3e s", m.t)) + "\n"
	stats += viz.LabelStyle.Render("steps") + viz.ValueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n"
	stats += viz.LabelStyle.Render("x") + viz.ValueStyle.Render(fmt.Sprintf("%.3e m", m.state[0])) + "\n"
	stats += viz.LabelStyle.Render("y") + viz.ValueStyle.Render(fmt.Sprintf("%.3e m", m.state[1])) + "\n"
	if len(m.sqDisp) > 0 {
		stats += viz.LabelStyle.Render("|r|²") +
			viz.ValueStyle.Render(fmt.Sprintf("%.3e m²", m.sqDisp[len(m.sqDisp)-1])) + "\n"
	}
	if len(m.sqDisp) >= 2 {
		stats += "\n" + asciigraph.Plot(m.sqDisp,
			asciigraph.Height(sparkHeight),
			asciigraph.Width(sparkWidth),
			asciigraph.Caption("squared displacement"),
		)
	}
	stats += "\n\n" + viz.HelpStyle.Render("space pause · r reset · q quit")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(canvas),
		viz.PanelStyle.Render(stats),
	)
}

// Run starts the live view and blocks until the user quits.
func Run(p physics.Parameters, regime langevin.Regime, dt float64, seed uint64) error {
	m, err := NewModel(p, regime, dt, seed)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}

package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/sim"
)

const (
	historyCapacity = 600
	minDelay        = 10 * time.Millisecond
	maxDelay        = 2 * time.Second
)

var (
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(44)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Reseeder builds a fresh starting grid when the user asks for one.
type Reseeder func() (*grid.Grid, error)

// Model drives a Simulation from Bubble Tea ticks.
type Model struct {
	sim        *sim.Simulation
	reseed     Reseeder
	running    bool
	delay      time.Duration
	theme      Theme
	braille    bool
	showHelp   bool
	popHistory []float64
	err        error
}

func NewModel(s *sim.Simulation, reseed Reseeder, delay time.Duration, theme string) Model {
	m := Model{
		sim:        s,
		reseed:     reseed,
		running:    true,
		delay:      clampDelay(delay),
		theme:      GetTheme(theme),
		popHistory: make([]float64, 0, historyCapacity),
	}
	m.record()
	return m
}

func clampDelay(d time.Duration) time.Duration {
	if d < minDelay {
		return minDelay
	}
	if d > maxDelay {
		return maxDelay
	}
	return d
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n", "right":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "+", "=":
			m.delay = clampDelay(m.delay / 2)
		case "-", "_":
			m.delay = clampDelay(m.delay * 2)
		case "b":
			m.braille = !m.braille
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.sim.State().Alive {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one generation and records its population.
func (m *Model) step() {
	m.sim.Step()
	m.record()
}

func (m *Model) record() {
	m.popHistory = append(m.popHistory, float64(m.sim.State().Population))
	if len(m.popHistory) > historyCapacity {
		m.popHistory = m.popHistory[1:]
	}
}

// reset installs a freshly seeded grid at generation 0.
func (m *Model) reset() {
	if m.reseed == nil {
		return
	}
	g, err := m.reseed()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.sim.Reset(g)
	m.popHistory = m.popHistory[:0]
	m.record()
}

func (m Model) Running() bool                { return m.running }
func (m Model) Delay() time.Duration         { return m.delay }
func (m Model) Theme() Theme                 { return m.theme }
func (m Model) PopulationHistory() []float64 { return m.popHistory }

func (m Model) status() string {
	switch {
	case !m.sim.State().Alive:
		return StatusExtinct.Render("EXTINCT")
	case m.running:
		return StatusRunning.Render("RUNNING")
	default:
		return StatusPaused.Render("PAUSED")
	}
}

func (m Model) board() string {
	g := m.sim.Grid()
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border)
	if m.braille {
		return border.Foreground(m.theme.Alive).Render(CanvasFor(g).String())
	}

	alive, dead := m.theme.CellStyles()
	rows := make([]string, g.Height())
	for y := range rows {
		var b strings.Builder
		// render runs of equal cells with one style call each
		x := 0
		for x < g.Width() {
			c := g.Get(x, y)
			n := 1
			for x+n < g.Width() && g.Get(x+n, y) == c {
				n++
			}
			if c == grid.Alive {
				b.WriteString(alive.Render(strings.Repeat("█", n)))
			} else {
				b.WriteString(dead.Render(strings.Repeat("·", n)))
			}
			x += n
		}
		rows[y] = b.String()
	}
	return border.Render(strings.Join(rows, "\n"))
}

// View renders the board beside the stats panel.
func (m Model) View() string {
	st := m.sim.State()
	g := m.sim.Grid()
	title := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)

	var s strings.Builder
	s.WriteString(HeaderStyle.Render("LIFESIM") + "\n")
	s.WriteString(m.status() + "\n\n")
	s.WriteString(MetricLabel.Render("Generation") + MetricValue.Render(fmt.Sprintf("%d", st.Generation)) + "\n")
	s.WriteString(MetricLabel.Render("Population") + MetricValue.Render(fmt.Sprintf("%d", st.Population)) + "\n")
	density := float64(st.Population) / float64(g.Width()*g.Height())
	s.WriteString(MetricLabel.Render("Density") + ProgressBar(density, 16) + fmt.Sprintf(" %.1f%%", density*100) + "\n")
	s.WriteString(MetricLabel.Render("Board") + fmt.Sprintf("%dx%d", g.Width(), g.Height()) + "\n")
	s.WriteString(MetricLabel.Render("Delay") + m.delay.String() + "\n")
	s.WriteString(MetricLabel.Render("Theme") + title.Render(m.theme.Name) + "\n")
	s.WriteString("\n" + Sparkline(m.popHistory, 30) + "\n")
	if len(m.popHistory) > 1 {
		chart := asciigraph.Plot(m.popHistory, asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("population"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(StatusExtinct.Render("reseed: "+m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause N:Step R:Reseed Q:Quit\n+/-:Speed B:Braille T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, m.board(), statsStyle.Render(s.String()))
	if m.showHelp {
		return KeyHint.Render(`
  Space  pause / resume
  N      single step while paused
  R      reseed the board
  + / -  halve / double the delay
  B      toggle braille view
  T      cycle themes
  ?      toggle this help
  Q      quit
`) + "\n" + mainView
	}
	return mainView
}

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/sim"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer writes each generation to a terminal as a bordered block of
// glyphs followed by a status line.
type LiveRenderer struct {
	out        io.Writer
	alive      string
	dead       string
	clear      bool
	aliveStyle *lipgloss.Style
	deadStyle  *lipgloss.Style
	err        error
}

type Option func(*LiveRenderer)

func WithGlyphs(alive, dead string) Option {
	return func(r *LiveRenderer) {
		if alive != "" {
			r.alive = alive
		}
		if dead != "" {
			r.dead = dead
		}
	}
}

// WithClear controls whether each frame starts by clearing the screen.
func WithClear(clear bool) Option {
	return func(r *LiveRenderer) { r.clear = clear }
}

func WithStyles(alive, dead lipgloss.Style) Option {
	return func(r *LiveRenderer) {
		r.aliveStyle = &alive
		r.deadStyle = &dead
	}
}

func NewLiveRenderer(out io.Writer, opts ...Option) *LiveRenderer {
	r := &LiveRenderer{
		out:   out,
		alive: "█",
		dead:  ".",
		clear: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Frame draws g inside a box, one glyph per cell in row-major order.
func (r *LiveRenderer) Frame(g *grid.Grid) string {
	cellWidth := max(lipgloss.Width(r.alive), lipgloss.Width(r.dead))
	// pad the narrower glyph so rows line up with the border
	alive := r.alive + strings.Repeat(" ", cellWidth-lipgloss.Width(r.alive))
	dead := r.dead + strings.Repeat(" ", cellWidth-lipgloss.Width(r.dead))
	if r.aliveStyle != nil {
		alive = r.aliveStyle.Render(alive)
	}
	if r.deadStyle != nil {
		dead = r.deadStyle.Render(dead)
	}
	rule := strings.Repeat("─", g.Width()*cellWidth)

	var b strings.Builder
	b.WriteString("┌" + rule + "┐\n")
	for y := 0; y < g.Height(); y++ {
		b.WriteString("│")
		for x := 0; x < g.Width(); x++ {
			if g.Get(x, y) == grid.Alive {
				b.WriteString(alive)
			} else {
				b.WriteString(dead)
			}
		}
		b.WriteString("│\n")
	}
	b.WriteString("└" + rule + "┘\n")
	return b.String()
}

// Status formats the generation counter line shown under each frame.
func Status(s sim.State) string {
	return fmt.Sprintf("generation: %d  population: %d", s.Generation, s.Population)
}

func (r *LiveRenderer) OnGeneration(g *grid.Grid, s sim.State) {
	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}
	b.WriteString(r.Frame(g))
	b.WriteString(Status(s) + "\n")
	r.write(b.String())
}

func (r *LiveRenderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.out, s)
}

// Err returns the first write error, if any.
func (r *LiveRenderer) Err() error { return r.err }

func (r *LiveRenderer) Start() { r.write(hideCursor) }
func (r *LiveRenderer) Stop()  { r.write(showCursor) }

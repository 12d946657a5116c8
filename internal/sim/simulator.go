package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/life"
)

// maxPrealloc caps up-front history allocation; longer runs grow by append.
const maxPrealloc = 1024

// Simulation owns the current grid and the generation counter.
type Simulation struct {
	grid      *grid.Grid
	state     State
	observers []Observer
	metrics   []Metric
	logger    *log.Logger
}

func New(g *grid.Grid) *Simulation {
	return &Simulation{
		grid:      g,
		state:     stateOf(g, 0),
		observers: make([]Observer, 0),
		metrics:   make([]Metric, 0),
		logger:    log.New(io.Discard),
	}
}

func stateOf(g *grid.Grid, gen int) State {
	pop := g.Population()
	return State{Generation: gen, Alive: pop > 0, Population: pop}
}

func (s *Simulation) AddMetric(m Metric)      { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer)  { s.observers = append(s.observers, o) }
func (s *Simulation) SetLogger(l *log.Logger) { s.logger = l }
func (s *Simulation) Grid() *grid.Grid        { return s.grid }
func (s *Simulation) State() State            { return s.state }
func (s *Simulation) Metrics() []Metric       { return s.metrics }

// Step advances one generation. The counter moves even when the grid is
// already extinct.
func (s *Simulation) Step() State {
	s.grid = life.Next(s.grid)
	s.state = stateOf(s.grid, s.state.Generation+1)
	return s.state
}

// Reset installs g as generation 0 and clears metric history.
func (s *Simulation) Reset(g *grid.Grid) {
	s.grid = g
	s.state = stateOf(g, 0)
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Simulation) notify() {
	for _, m := range s.metrics {
		m.Observe(s.grid, s.state)
	}
	for _, obs := range s.observers {
		obs.OnGeneration(s.grid, s.state)
	}
}

// Run steps until the grid goes extinct, cfg.MaxGenerations steps have been
// taken, or ctx is done. Observers see the starting generation and every
// generation after it.
func (s *Simulation) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	start := s.state.Generation
	result := &Result{
		Population: make([]int, 0, min(cfg.MaxGenerations, maxPrealloc)+1),
		Metrics:    make(map[string]float64),
	}

	s.logger.Debug("run started",
		"width", s.grid.Width(), "height", s.grid.Height(),
		"population", s.state.Population, "max", cfg.MaxGenerations)

	result.Population = append(result.Population, s.state.Population)
	s.notify()

	var runErr error
	for {
		if !s.state.Alive {
			result.Reason = StopExtinct
			s.logger.Info("population extinct", "generation", s.state.Generation)
			break
		}
		if cfg.MaxGenerations > 0 && s.state.Generation-start >= cfg.MaxGenerations {
			result.Reason = StopLimit
			s.logger.Debug("generation limit reached", "generation", s.state.Generation)
			break
		}
		if err := wait(ctx, cfg.Delay); err != nil {
			result.Reason = StopCanceled
			runErr = err
			s.logger.Debug("run canceled", "generation", s.state.Generation)
			break
		}

		s.Step()
		result.Population = append(result.Population, s.state.Population)
		s.notify()
	}

	result.Generations = s.state.Generation
	result.Extinct = !s.state.Alive
	result.Final = s.grid
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func validateConfig(cfg RunConfig) error {
	if cfg.MaxGenerations < 0 {
		return fmt.Errorf("max generations must be non-negative, got %d", cfg.MaxGenerations)
	}
	if cfg.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %v", cfg.Delay)
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil || d <= 0 {
		return err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

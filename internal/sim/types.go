package sim

import (
	"time"

	"github.com/san-kum/lifesim/internal/grid"
)

// State is the driver-owned view of a running simulation.
type State struct {
	Generation int
	Alive      bool
	Population int
}

type Observer interface {
	OnGeneration(g *grid.Grid, s State)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(g *grid.Grid, s State)

func (f ObserverFunc) OnGeneration(g *grid.Grid, s State) { f(g, s) }

type Metric interface {
	Name() string
	Observe(g *grid.Grid, s State)
	Value() float64
	Reset()
}

// RunConfig bounds a Run. MaxGenerations of 0 means run until extinction or
// cancellation.
type RunConfig struct {
	MaxGenerations int
	Delay          time.Duration
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		MaxGenerations: 0,
		Delay:          100 * time.Millisecond,
	}
}

// StopReason says why a Run returned.
type StopReason string

const (
	StopExtinct  StopReason = "extinct"
	StopLimit    StopReason = "limit"
	StopCanceled StopReason = "canceled"
)

type Result struct {
	Generations int
	Extinct     bool
	Reason      StopReason
	Population  []int
	Metrics     map[string]float64
	Final       *grid.Grid
}

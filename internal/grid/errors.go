package grid

import (
	"errors"
	"fmt"
)

// Domain errors for grid construction and lookup.
var (
	// ErrInvalidSize indicates a non-positive width or height.
	ErrInvalidSize = errors.New("grid: width and height must be positive")

	// ErrInvalidProbability indicates a live-cell percentage outside [0, 100].
	ErrInvalidProbability = errors.New("grid: probability must be within [0, 100]")

	// ErrDensity indicates a cell set that does not cover the grid exactly once.
	ErrDensity = errors.New("grid: cells do not cover the grid")

	// ErrLookup indicates a coordinate with no backing cell.
	ErrLookup = errors.New("grid: no cell at coordinates")
)

// LookupError reports the coordinates of a failed lookup along with the grid
// bounds it was checked against.
type LookupError struct {
	X, Y int
	W, H int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("grid: no cell at (%d, %d) in %dx%d grid", e.X, e.Y, e.W, e.H)
}

func (e *LookupError) Unwrap() error {
	return ErrLookup
}

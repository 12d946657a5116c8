package grid

import "math/rand/v2"

// NewRNG returns a deterministic generator for seeding grids.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

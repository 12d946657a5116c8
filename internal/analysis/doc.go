// Package analysis characterizes the long-run behaviour of a simulation.
//
//   - [FindCycle]: exact recurrence of a grid state (still lifes, oscillators,
//     spaceships that wrap around the torus)
//   - [PowerSpectrum] and [DominantPeriod]: periodicity of a population series
//
// # Cycle Detection
//
// A grid that repeats an earlier state is periodic from then on:
//
//	c, ok := analysis.FindCycle(g, 1000)
//	if ok && c.Period == 1 {
//	    // settled into still lifes
//	}
package analysis

// Package viz provides the interactive terminal view of a running board.
//
// The view is a Bubble Tea program:
//
//   - [Model]: steps the simulation on a timer and draws board and stats
//   - [Canvas]: braille packing for boards larger than the terminal
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reseed the board
//	+/-   - Faster/Slower
//	B     - Toggle braille view
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz

package grid

// Coord addresses a cell. X grows to the right, Y grows downward.
type Coord struct {
	X, Y int
}

// Wrap maps v onto [0, max) with toroidal arithmetic, so -1 becomes max-1.
// max must be positive.
func Wrap(v, max int) int {
	return ((v % max) + max) % max
}

// Offset returns the coordinate dx, dy away from c on a w×h torus.
func (c Coord) Offset(dx, dy, w, h int) Coord {
	return Coord{X: Wrap(c.X+dx, w), Y: Wrap(c.Y+dy, h)}
}

package grid

// Cell is the state of a single grid position.
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

// CellOf converts a boolean into a Cell.
func CellOf(alive bool) Cell {
	if alive {
		return Alive
	}
	return Dead
}

func (c Cell) IsAlive() bool { return c == Alive }

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}

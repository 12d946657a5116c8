package grid

import (
	"fmt"
	"sort"
	"strings"
)

// Pattern is a small rectangular arrangement of live and dead cells.
type Pattern struct {
	Name  string
	w, h  int
	cells []Cell
}

// ParsePattern reads plaintext rows where 'O' or '#' marks a live cell and
// '.' or '_' a dead one. Short rows are padded with dead cells.
func ParsePattern(name string, rows ...string) (Pattern, error) {
	if len(rows) == 0 {
		return Pattern{}, fmt.Errorf("pattern %s: no rows", name)
	}
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	if w == 0 {
		return Pattern{}, fmt.Errorf("pattern %s: empty rows", name)
	}
	p := Pattern{Name: name, w: w, h: len(rows), cells: make([]Cell, w*len(rows))}
	for y, r := range rows {
		for x, ch := range r {
			switch ch {
			case 'O', '#':
				p.cells[y*w+x] = Alive
			case '.', '_':
			default:
				return Pattern{}, fmt.Errorf("pattern %s: unexpected %q at row %d col %d", name, ch, y, x)
			}
		}
	}
	return p, nil
}

func mustParse(name string, rows ...string) Pattern {
	p, err := ParsePattern(name, rows...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) Width() int  { return p.w }
func (p Pattern) Height() int { return p.h }

// At returns the pattern cell at (x, y) relative to its top-left corner.
func (p Pattern) At(x, y int) Cell {
	return p.cells[y*p.w+x]
}

// Population counts the live cells in the pattern.
func (p Pattern) Population() int {
	n := 0
	for _, c := range p.cells {
		if c == Alive {
			n++
		}
	}
	return n
}

func (p Pattern) String() string {
	var b strings.Builder
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			if p.At(x, y) == Alive {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var patterns = map[string]Pattern{}

func register(p Pattern) { patterns[p.Name] = p }

func init() {
	register(mustParse("block", "OO", "OO"))
	register(mustParse("blinker", "...", "OOO", "..."))
	register(mustParse("toad", ".OOO", "OOO."))
	register(mustParse("beacon", "OO..", "OO..", "..OO", "..OO"))
	register(mustParse("glider", ".O.", "..O", "OOO"))
	register(mustParse("lwss", ".O..O", "O....", "O...O", "OOOO."))
	register(mustParse("r-pentomino", ".OO", "OO.", ".O."))
	register(mustParse("diehard", "......O.", "OO......", ".O...OOO"))
	register(mustParse("acorn", ".O.....", "...O...", "OO..OOO"))
}

// LookupPattern returns the registered pattern called name.
func LookupPattern(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// PatternNames lists registered patterns in alphabetical order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

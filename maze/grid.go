package maze

import (
	"fmt"
	"strings"
)

const (
	wallRune    = '#'
	passageRune = '.'
)

// Grid is a width x height field of cells indexed [row][col].
// A Grid returned by a Generator is a finished snapshot and is not mutated afterwards.
type Grid struct {
	Width  int      // Number of columns
	Height int      // Number of rows
	Cells  [][]Cell // Cells[row][col]
}

// NewGrid allocates a grid with every cell set to Wall.
func NewGrid(width, height int) (*Grid, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}

	cells := make([][]Cell, height)
	for row := range cells {
		cells[row] = make([]Cell, width)
	}
	return &Grid{Width: width, Height: height, Cells: cells}, nil
}

// InBound reports whether (row, col) lies inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// At returns the cell at p. Out of bound positions read as Wall.
func (g *Grid) At(p CellPosition) Cell {
	if !g.InBound(p.Row, p.Col) {
		return Wall
	}
	return g.Cells[p.Row][p.Col]
}

func (g *Grid) carve(p CellPosition) {
	g.Cells[p.Row][p.Col] = Passage
}

// Start returns the first passage of a row-major scan from (0, 0).
func (g *Grid) Start() (CellPosition, bool) {
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.Cells[row][col] == Passage {
				return CellPosition{Row: row, Col: col}, true
			}
		}
	}
	return CellPosition{}, false
}

// End returns the first passage of a reverse row-major scan from (Height-1, Width-1).
func (g *Grid) End() (CellPosition, bool) {
	for row := g.Height - 1; row >= 0; row-- {
		for col := g.Width - 1; col >= 0; col-- {
			if g.Cells[row][col] == Passage {
				return CellPosition{Row: row, Col: col}, true
			}
		}
	}
	return CellPosition{}, false
}

// PassageCount returns the number of Passage cells.
func (g *Grid) PassageCount() int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c == Passage {
				n++
			}
		}
	}
	return n
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for row := range g.Cells {
		for col := range g.Cells[row] {
			if g.Cells[row][col] != other.Cells[row][col] {
				return false
			}
		}
	}
	return true
}

// Rows encodes the grid as one string per row, '#' for walls and '.' for passages.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	var b strings.Builder
	for row := range g.Cells {
		b.Reset()
		for _, c := range g.Cells[row] {
			if c == Passage {
				b.WriteRune(passageRune)
			} else {
				b.WriteRune(wallRune)
			}
		}
		rows[row] = b.String()
	}
	return rows
}

// ParseGrid decodes rows produced by Grid.Rows.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}

	width := len(rows[0])
	g, err := NewGrid(width, len(rows))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGrid, err)
	}

	for row, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, row, len(line), width)
		}
		for col := 0; col < len(line); col++ {
			switch line[col] {
			case passageRune:
				g.Cells[row][col] = Passage
			case wallRune:
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %d,%d", ErrMalformedGrid, line[col], row, col)
			}
		}
	}
	return g, nil
}

// String draws the grid with block characters and marks the start and end cells.
func (g *Grid) String() string {
	start, hasStart := g.Start()
	end, _ := g.End()

	var b strings.Builder
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			p := CellPosition{Row: row, Col: col}
			switch {
			case hasStart && p == start:
				b.WriteRune('S')
			case hasStart && p == end:
				b.WriteRune('E')
			case g.Cells[row][col] == Passage:
				b.WriteRune(' ')
			default:
				b.WriteRune('█')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

package maze

import (
	"fmt"
	"strings"
)

// WallMaze is a rectangular maze of rooms, each carrying its own wall flags.
type WallMaze struct {
	Width  int      // Width of the maze (number of room columns)
	Height int      // Height of the maze (number of room rows)
	Rooms  [][]Room // 2D grid of rooms forming the maze
}

// NewWallMaze allocates a maze with every wall standing and no room visited.
func NewWallMaze(width, height int) (*WallMaze, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}

	rooms := make([][]Room, height)
	for i := range rooms {
		rooms[i] = make([]Room, width)
		for j := range rooms[i] {
			rooms[i][j] = closedRoom()
		}
	}

	return &WallMaze{
		Width:  width,
		Height: height,
		Rooms:  rooms,
	}, nil
}

// InBound reports whether (row, col) is a room of the maze.
func (m *WallMaze) InBound(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

func (m *WallMaze) room(p CellPosition) *Room {
	return &m.Rooms[p.Row][p.Col]
}

// neighbors finds all in-bound moves from a given room, in Directions order.
func (m *WallMaze) neighbors(pos CellPosition) []Move {
	result := make([]Move, 0, len(Directions))
	for _, dir := range Directions {
		neighbor := pos.Add(dir.Delta())
		if m.InBound(neighbor.Row, neighbor.Col) {
			result = append(result, Move{From: pos, To: neighbor, Direction: dir})
		}
	}
	return result
}

// openWall removes the wall between two adjacent rooms on both sides.
func (m *WallMaze) openWall(move Move) {
	from, to := m.room(move.From), m.room(move.To)
	switch move.Direction {
	case North:
		from.NorthWall, to.SouthWall = false, false
	case South:
		from.SouthWall, to.NorthWall = false, false
	case East:
		from.EastWall, to.WestWall = false, false
	case West:
		from.WestWall, to.EastWall = false, false
	}
}

// Rasterize lays the rooms out on a width x height Grid: room (r, c) becomes
// cell (2r, 2c) and an open wall between two rooms becomes the cell between them.
// The grid must be the size the rooms were derived from, i.e. (width+1)/2 room
// columns and (height+1)/2 room rows.
func (m *WallMaze) Rasterize(width, height int) (*Grid, error) {
	if (width+1)/2 != m.Width || (height+1)/2 != m.Height {
		return nil, fmt.Errorf("%w: %dx%d rooms do not fit a %dx%d grid", ErrInvalidDimensions, m.Width, m.Height, width, height)
	}

	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			r := m.Rooms[row][col]
			g.Cells[2*row][2*col] = Passage
			if !r.EastWall && 2*col+1 < width {
				g.Cells[2*row][2*col+1] = Passage
			}
			if !r.SouthWall && 2*row+1 < height {
				g.Cells[2*row+1][2*col] = Passage
			}
		}
	}
	return g, nil
}

// String provides a textual representation of the maze.
func (m *WallMaze) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", m.Width) + "\n")

	for row := 0; row < m.Height; row++ {
		b.WriteString("|")
		for col := 0; col < m.Width; col++ {
			if m.Rooms[row][col].EastWall {
				b.WriteString("   |")
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n+")
		for col := 0; col < m.Width; col++ {
			if m.Rooms[row][col].SouthWall {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

package maze

// Cell is a single square of a Grid: either a wall or an open passage.
type Cell uint8

const (
	// Wall blocks movement. Every cell of a fresh grid is a Wall.
	Wall Cell = iota
	// Passage is a carved, walkable cell.
	Passage
)

func (c Cell) String() string {
	if c == Passage {
		return "passage"
	}
	return "wall"
}

// Room is a cell of a WallMaze. It carries a flag for each of its four sides.
type Room struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the room.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the room.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the room.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the room.
	Visited   bool // Visited is set once a generator has reached the room.
}

// closedRoom returns a room with all four walls standing.
func closedRoom() Room {
	return Room{NorthWall: true, SouthWall: true, EastWall: true, WestWall: true}
}

// CellPosition represents the position of a cell in a grid.
type CellPosition struct {
	Row int `json:"row" bson:"row"` // Row index of the cell
	Col int `json:"col" bson:"col"` // Column index of the cell
}

// Add returns the position offset by d.
func (p CellPosition) Add(d CellPosition) CellPosition {
	return CellPosition{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Direction names one of the four orthogonal neighbours.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in the fixed order generators iterate them.
// Generation is only reproducible because this order never changes.
var Directions = [4]Direction{North, East, South, West}

var directionDeltas = [4]CellPosition{
	North: {Row: -1, Col: 0},
	East:  {Row: 0, Col: 1},
	South: {Row: 1, Col: 0},
	West:  {Row: 0, Col: -1},
}

// Delta returns the unit offset of the direction.
func (d Direction) Delta() CellPosition {
	return directionDeltas[d]
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "Unknown"
}

// Move represents a step from one cell to an adjacent one.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction Direction    // Direction of the move
}

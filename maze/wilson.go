package maze

import "github.com/beka-birhanu/vinom-maze/rng"

// GenerateWilson builds a uniform spanning tree maze with Wilson's algorithm:
// a random walk from an unvisited room runs until it hits the tree, and its
// loop-erased path is then carved into the tree.
func GenerateWilson(width, height int, src rng.Source) (*WallMaze, error) {
	m, err := NewWallMaze(width, height)
	if err != nil {
		return nil, err
	}

	remaining := newRoomSet(width, height)
	first := remaining.at(rng.Intn(src, remaining.len()))
	m.room(first).Visited = true
	remaining.remove(first)

	// exits[row][col] is the last direction the current walk left a room by.
	exits := make([][]Direction, height)
	for i := range exits {
		exits[i] = make([]Direction, width)
	}

	for remaining.len() > 0 {
		start := remaining.at(rng.Intn(src, remaining.len()))
		m.randomWalk(start, exits, src)

		for cell := start; !m.room(cell).Visited; {
			dir := exits[cell.Row][cell.Col]
			next := cell.Add(dir.Delta())
			m.openWall(Move{From: cell, To: next, Direction: dir})
			m.room(cell).Visited = true
			remaining.remove(cell)
			cell = next
		}
	}

	return m, nil
}

// randomWalk walks from start until it steps onto a visited room, recording in
// exits the last direction taken out of every room it passes. Overwriting the
// exit of a revisited room is what erases the loop.
func (m *WallMaze) randomWalk(start CellPosition, exits [][]Direction, src rng.Source) {
	for cell := start; ; {
		neighbors := m.neighbors(cell)
		move := neighbors[rng.Intn(src, len(neighbors))]
		exits[cell.Row][cell.Col] = move.Direction
		if m.room(move.To).Visited {
			return
		}
		cell = move.To
	}
}

// roomSet is an indexable set of room positions with O(1) removal.
type roomSet struct {
	items []CellPosition
	index map[CellPosition]int
}

func newRoomSet(width, height int) *roomSet {
	s := &roomSet{
		items: make([]CellPosition, 0, width*height),
		index: make(map[CellPosition]int, width*height),
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			p := CellPosition{Row: row, Col: col}
			s.index[p] = len(s.items)
			s.items = append(s.items, p)
		}
	}
	return s
}

func (s *roomSet) len() int { return len(s.items) }

func (s *roomSet) at(i int) CellPosition { return s.items[i] }

// remove swaps the last item into p's slot.
func (s *roomSet) remove(p CellPosition) {
	i, ok := s.index[p]
	if !ok {
		return
	}
	last := s.items[len(s.items)-1]
	s.items[i] = last
	s.index[last] = i
	s.items = s.items[:len(s.items)-1]
	delete(s.index, p)
}

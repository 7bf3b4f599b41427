package maze

import "github.com/beka-birhanu/vinom-maze/rng"

// dfsFrame is one room on the backtracker's stack together with the directions
// it has yet to try.
type dfsFrame struct {
	pos  CellPosition
	dirs [4]Direction
	next int
}

// GenerateBacktracker carves a maze by randomized depth-first search from room
// (0, 0). Each room shuffles its four directions when first entered and tries
// them in that order before backtracking. The stack is explicit, so depth is
// bounded only by memory.
func GenerateBacktracker(width, height int, src rng.Source) (*WallMaze, error) {
	m, err := NewWallMaze(width, height)
	if err != nil {
		return nil, err
	}

	start := CellPosition{Row: 0, Col: 0}
	m.room(start).Visited = true
	stack := []dfsFrame{{pos: start, dirs: shuffledDirections(src)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		dir := top.dirs[top.next]
		top.next++

		nbr := top.pos.Add(dir.Delta())
		if !m.InBound(nbr.Row, nbr.Col) || m.room(nbr).Visited {
			continue
		}

		m.openWall(Move{From: top.pos, To: nbr, Direction: dir})
		m.room(nbr).Visited = true
		stack = append(stack, dfsFrame{pos: nbr, dirs: shuffledDirections(src)})
	}

	return m, nil
}

// shuffledDirections returns a Fisher-Yates shuffle of Directions, one draw per swap.
func shuffledDirections(src rng.Source) [4]Direction {
	dirs := Directions
	for i := len(dirs) - 1; i > 0; i-- {
		j := rng.Intn(src, i+1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}

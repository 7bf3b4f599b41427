package maze

import "slices"

// Reachable returns the number of passages connected to from, including from itself.
func (g *Grid) Reachable(from CellPosition) int {
	if g.At(from) != Passage {
		return 0
	}

	seen := map[CellPosition]struct{}{from: {}}
	queue := []CellPosition{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dir := range Directions {
			next := cur.Add(dir.Delta())
			if g.At(next) != Passage {
				continue
			}
			if _, ok := seen[next]; !ok {
				seen[next] = struct{}{}
				queue = append(queue, next)
			}
		}
	}
	return len(seen)
}

// PassageEdges counts orthogonally adjacent passage pairs.
func (g *Grid) PassageEdges() int {
	n := 0
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.Cells[row][col] != Passage {
				continue
			}
			if col+1 < g.Width && g.Cells[row][col+1] == Passage {
				n++
			}
			if row+1 < g.Height && g.Cells[row+1][col] == Passage {
				n++
			}
		}
	}
	return n
}

// IsPerfect reports whether the passages form a single tree: all of them
// reachable from the start and exactly one fewer adjacency than passages.
func (g *Grid) IsPerfect() bool {
	start, ok := g.Start()
	if !ok {
		return false
	}
	passages := g.PassageCount()
	return g.Reachable(start) == passages && g.PassageEdges() == passages-1
}

// Solve returns the shortest passage-only path from start to end, both included.
// It returns nil when either end is a wall or no path exists.
func (g *Grid) Solve(start, end CellPosition) []CellPosition {
	if g.At(start) != Passage || g.At(end) != Passage {
		return nil
	}

	cameFrom := map[CellPosition]CellPosition{start: start}
	queue := []CellPosition{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			var path []CellPosition
			for p := end; p != start; p = cameFrom[p] {
				path = append(path, p)
			}
			path = append(path, start)
			slices.Reverse(path)
			return path
		}

		for _, dir := range Directions {
			next := cur.Add(dir.Delta())
			if g.At(next) != Passage {
				continue
			}
			if _, seen := cameFrom[next]; !seen {
				cameFrom[next] = cur
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// Solution solves the grid from its start cell to its end cell.
func (g *Grid) Solution() []CellPosition {
	start, ok := g.Start()
	if !ok {
		return nil
	}
	end, _ := g.End()
	return g.Solve(start, end)
}

package maze

import (
	"slices"

	"github.com/beka-birhanu/vinom-maze/rng"
)

// frontierWall is a carving candidate: the wall cell at (Row, Col) and the unit
// direction through it. The cell beyond the wall is the candidate's target.
type frontierWall struct {
	Row, Col   int
	DRow, DCol int
}

func (w frontierWall) target() CellPosition {
	return CellPosition{Row: w.Row + w.DRow, Col: w.Col + w.DCol}
}

func (w frontierWall) wall() CellPosition {
	return CellPosition{Row: w.Row, Col: w.Col}
}

// GeneratePrim grows a maze from (0, 0) by repeatedly carving a random wall off
// the frontier of the carved region. Exactly one value is drawn from src per
// frontier pop.
func GeneratePrim(width, height int, src rng.Source) (*Grid, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	start := CellPosition{Row: 0, Col: 0}
	g.carve(start)
	frontier := g.frontierOf(start, nil)

	for len(frontier) > 0 {
		idx := rng.Intn(src, len(frontier))
		candidate := frontier[idx]
		frontier = slices.Delete(frontier, idx, idx+1)

		target := candidate.target()
		if g.At(target) == Passage {
			continue
		}
		g.carve(candidate.wall())
		g.carve(target)
		frontier = g.frontierOf(target, frontier)
	}

	return g, nil
}

// frontierOf appends the walls around p that lead to an in-bound, uncarved cell two steps away.
func (g *Grid) frontierOf(p CellPosition, frontier []frontierWall) []frontierWall {
	for _, dir := range Directions {
		d := dir.Delta()
		beyond := CellPosition{Row: p.Row + 2*d.Row, Col: p.Col + 2*d.Col}
		if !g.InBound(beyond.Row, beyond.Col) || g.At(beyond) == Passage {
			continue
		}
		frontier = append(frontier, frontierWall{Row: p.Row + d.Row, Col: p.Col + d.Col, DRow: d.Row, DCol: d.Col})
	}
	return frontier
}

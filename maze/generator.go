/*
Package maze generates perfect mazes over a rectangular grid.

Three algorithms are available: a randomized-frontier growth (Prim's-style)
carving directly into a Wall/Passage Grid, and a depth-first backtracker and
Wilson's loop-erased random walk working on a WallMaze of rooms with per-side
wall flags. Every algorithm draws randomness only from the rng.Source it is
given, so a fixed seed reproduces a maze exactly.

Through the Generator interface all three produce the same shape of result: a
width x height Grid whose rooms sit on even coordinates and whose passages form
a spanning tree.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-maze/rng"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrUnknownAlgorithm  = errors.New("unknown maze algorithm")
	ErrMalformedGrid     = errors.New("malformed maze grid")
)

// Algorithm names a generation strategy.
type Algorithm string

const (
	Prim        Algorithm = "prim"
	Backtracker Algorithm = "backtracker"
	Wilson      Algorithm = "wilson"

	// DefaultAlgorithm is used when no algorithm is requested.
	DefaultAlgorithm = Prim
)

// Algorithms lists the supported strategies.
var Algorithms = []Algorithm{Prim, Backtracker, Wilson}

// ParseAlgorithm resolves a user supplied name. The empty string selects DefaultAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultAlgorithm, nil
	}
	for _, a := range Algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Generator produces a perfect maze Grid of exactly width x height cells.
type Generator interface {
	Generate(width, height int, src rng.Source) (*Grid, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(width, height int, src rng.Source) (*Grid, error)

// Generate calls f.
func (f GeneratorFunc) Generate(width, height int, src rng.Source) (*Grid, error) {
	return f(width, height, src)
}

// New returns the Generator for the algorithm.
func New(a Algorithm) (Generator, error) {
	switch a {
	case Prim:
		return GeneratorFunc(GeneratePrim), nil
	case Backtracker:
		return roomGenerator(GenerateBacktracker), nil
	case Wilson:
		return roomGenerator(GenerateWilson), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
}

// roomGenerator runs a WallMaze algorithm on the rooms that fit in a width x height
// grid and rasterizes the result back to that exact size.
func roomGenerator(gen func(width, height int, src rng.Source) (*WallMaze, error)) Generator {
	return GeneratorFunc(func(width, height int, src rng.Source) (*Grid, error) {
		if err := validateDimensions(width, height); err != nil {
			return nil, err
		}
		m, err := gen((width+1)/2, (height+1)/2, src)
		if err != nil {
			return nil, err
		}
		return m.Rasterize(width, height)
	})
}

func validateDimensions(width, height int) error {
	if min(width, height) <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

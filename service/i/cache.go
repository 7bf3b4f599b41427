package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/domain"
)

// MazeCache keeps recently generated mazes keyed by their spec.
type MazeCache interface {
	// Get returns the cached maze for spec, or nil without error on a miss.
	Get(ctx context.Context, spec domain.MazeSpec) (*domain.Maze, error)

	// Set stores m under its spec.
	Set(ctx context.Context, m *domain.Maze) error

	// Lock serializes generation of the same spec across instances.
	// The returned func releases the lock.
	Lock(ctx context.Context, spec domain.MazeSpec) (func(), error)
}

package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze in the repository.
	Save(ctx context.Context, m *domain.Maze) error

	// ByID retrieves a maze by its unique ID.
	// Returns domain.ErrMazeNotFound if no maze has that ID.
	ByID(ctx context.Context, id uuid.UUID) (*domain.Maze, error)

	// ByOwner lists the newest mazes saved by an owner, at most limit of them.
	ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*domain.Maze, error)
}

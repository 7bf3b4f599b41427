package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GenerateRequest asks for a maze. A nil Seed means "pick one from the clock".
type GenerateRequest struct {
	Width     int
	Height    int
	Algorithm string
	Seed      *int64
}

// MazeService generates, stores and looks up mazes.
type MazeService interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.Maze, error)
	// Regenerate discards any requested seed and generates from a fresh one.
	Regenerate(ctx context.Context, req GenerateRequest) (*domain.Maze, error)
	Save(ctx context.Context, req GenerateRequest, owner uuid.UUID) (*domain.Maze, error)
	ByID(ctx context.Context, id uuid.UUID) (*domain.Maze, error)
	ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*domain.Maze, error)
	Solve(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error)
	Recent(ctx context.Context, limit int64) ([]domain.MazeSpec, error)
}

// Package domain holds the records the maze service stores and returns.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeSpec identifies a maze completely: the same spec always yields the same grid.
type MazeSpec struct {
	Width     int            `json:"width" bson:"width"`
	Height    int            `json:"height" bson:"height"`
	Algorithm maze.Algorithm `json:"algorithm" bson:"algorithm"`
	Seed      int64          `json:"seed" bson:"seed"`
}

// Maze is a generated maze together with the spec it came from.
type Maze struct {
	ID        uuid.UUID         `json:"id" bson:"_id"`
	Spec      MazeSpec          `json:"spec" bson:"spec"`
	Rows      []string          `json:"rows" bson:"rows"`
	Start     maze.CellPosition `json:"start" bson:"start"`
	End       maze.CellPosition `json:"end" bson:"end"`
	OwnerID   uuid.UUID         `json:"owner_id,omitempty" bson:"ownerId,omitempty"`
	CreatedAt time.Time         `json:"created_at" bson:"createdAt"`
}

// NewMaze snapshots a generated grid.
func NewMaze(spec MazeSpec, g *maze.Grid) *Maze {
	start, _ := g.Start()
	end, _ := g.End()
	return &Maze{
		ID:        uuid.New(),
		Spec:      spec,
		Rows:      g.Rows(),
		Start:     start,
		End:       end,
		CreatedAt: time.Now().UTC(),
	}
}

// Saved reports whether the maze was stored for an owner. Only saved mazes can
// be looked up by ID.
func (m *Maze) Saved() bool {
	return m.OwnerID != uuid.Nil
}

// Grid decodes the stored rows.
func (m *Maze) Grid() (*maze.Grid, error) {
	return maze.ParseGrid(m.Rows)
}

// ErrMazeNotFound is returned when no stored maze matches a lookup.
var ErrMazeNotFound = errors.New("maze not found")

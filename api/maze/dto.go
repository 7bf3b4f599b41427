// Package mazeapi provides request and response shapes for the maze endpoints.
package mazeapi

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GenerateRequest asks for a maze of the given size. Seed is optional.
type GenerateRequest struct {
	Width     int    `json:"width" binding:"required"`
	Height    int    `json:"height" binding:"required"`
	Algorithm string `json:"algorithm"`
	Seed      *int64 `json:"seed"`
}

// SaveRequest asks to persist the maze of a fully specified generation.
type SaveRequest struct {
	Width     int    `json:"width" binding:"required"`
	Height    int    `json:"height" binding:"required"`
	Algorithm string `json:"algorithm"`
	Seed      *int64 `json:"seed" binding:"required"`
}

// MazeResponse is a maze as returned to clients. ID is only set for saved
// mazes; generated ones are reproduced from their seed instead.
type MazeResponse struct {
	ID        *uuid.UUID        `json:"id,omitempty"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Algorithm string            `json:"algorithm"`
	Seed      int64             `json:"seed"`
	Rows      []string          `json:"rows"`
	Start     maze.CellPosition `json:"start"`
	End       maze.CellPosition `json:"end"`
	CreatedAt time.Time         `json:"created_at"`
}

// SolutionResponse is the shortest route from start to end.
type SolutionResponse struct {
	ID   uuid.UUID           `json:"id"`
	Path []maze.CellPosition `json:"path"`
}

// SpecResponse describes one recent generation.
type SpecResponse struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Algorithm string `json:"algorithm"`
	Seed      int64  `json:"seed"`
}

func newMazeResponse(m *domain.Maze) *MazeResponse {
	res := &MazeResponse{
		Width:     m.Spec.Width,
		Height:    m.Spec.Height,
		Algorithm: string(m.Spec.Algorithm),
		Seed:      m.Spec.Seed,
		Rows:      m.Rows,
		Start:     m.Start,
		End:       m.End,
		CreatedAt: m.CreatedAt,
	}
	if m.Saved() {
		id := m.ID
		res.ID = &id
	}
	return res
}

func newSpecResponses(specs []domain.MazeSpec) []SpecResponse {
	res := make([]SpecResponse, 0, len(specs))
	for _, s := range specs {
		res = append(res, SpecResponse{
			Width:     s.Width,
			Height:    s.Height,
			Algorithm: string(s.Algorithm),
			Seed:      s.Seed,
		})
	}
	return res
}

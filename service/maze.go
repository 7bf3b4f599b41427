package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/rng"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 101
	defaultHistoryKey   = "maze:recent"
	historyMemberFmt    = "%s:%d:%d:%d"
)

var (
	ErrDimensionTooLarge = errors.New("maze dimension too large")
	ErrStorageDisabled   = errors.New("maze storage is not configured")
	ErrSeedRequired      = errors.New("seed is required to save a maze")
)

// Config wires a MazeService. Repo, Cache and History are optional; without
// them the service generates without caching, persistence or seed history.
type Config struct {
	Repo         i.MazeRepo
	Cache        i.MazeCache
	History      i.SortedQueue
	Logger       i.Logger
	MaxDimension int
	HistoryKey   string
	NewSeed      func() int64
}

// MazeService generates mazes from seeds and keeps track of them.
type MazeService struct {
	repo         i.MazeRepo
	cache        i.MazeCache
	history      i.SortedQueue
	logger       i.Logger
	maxDimension int
	historyKey   string
	newSeed      func() int64
}

var _ i.MazeService = &MazeService{}

// NewMazeService creates a MazeService, filling unset options with defaults.
func NewMazeService(c *Config) (*MazeService, error) {
	if c == nil || c.Logger == nil {
		return nil, errors.New("maze service requires a logger")
	}

	s := &MazeService{
		repo:         c.Repo,
		cache:        c.Cache,
		history:      c.History,
		logger:       c.Logger,
		maxDimension: c.MaxDimension,
		historyKey:   c.HistoryKey,
		newSeed:      c.NewSeed,
	}
	if s.maxDimension <= 0 {
		s.maxDimension = defaultMaxDimension
	}
	if s.historyKey == "" {
		s.historyKey = defaultHistoryKey
	}
	if s.newSeed == nil {
		s.newSeed = rng.NextSeed
	}
	return s, nil
}

// Generate returns the maze for the request, generating it unless it is cached.
func (s *MazeService) Generate(ctx context.Context, req i.GenerateRequest) (*domain.Maze, error) {
	spec, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, spec)
}

// Regenerate ignores the requested seed and generates from a fresh one.
func (s *MazeService) Regenerate(ctx context.Context, req i.GenerateRequest) (*domain.Maze, error) {
	req.Seed = nil
	return s.Generate(ctx, req)
}

// Save regenerates the requested maze and persists it for owner. The seed is
// required: a saved maze must be reproducible.
func (s *MazeService) Save(ctx context.Context, req i.GenerateRequest, owner uuid.UUID) (*domain.Maze, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	if req.Seed == nil {
		return nil, ErrSeedRequired
	}

	spec, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	grid, err := s.build(spec)
	if err != nil {
		return nil, err
	}

	m := domain.NewMaze(spec, grid)
	m.OwnerID = owner
	if err := s.repo.Save(ctx, m); err != nil {
		s.logger.Error(fmt.Sprintf("saving maze %s: %s", m.ID, err))
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Saved maze %s for owner %s (seed %d)", m.ID, owner, spec.Seed))
	return m, nil
}

// ByID returns a saved maze.
func (s *MazeService) ByID(ctx context.Context, id uuid.UUID) (*domain.Maze, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	return s.repo.ByID(ctx, id)
}

// ByOwner lists the newest mazes saved by owner.
func (s *MazeService) ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*domain.Maze, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	return s.repo.ByOwner(ctx, owner, limit)
}

// Solve returns the path from start to end of a saved maze.
func (s *MazeService) Solve(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error) {
	m, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	grid, err := m.Grid()
	if err != nil {
		return nil, err
	}
	return grid.Solution(), nil
}

// Recent lists the most recently generated specs, newest first.
func (s *MazeService) Recent(ctx context.Context, limit int64) ([]domain.MazeSpec, error) {
	if s.history == nil {
		return []domain.MazeSpec{}, nil
	}

	members, err := s.history.Tops(ctx, s.historyKey, limit)
	if err != nil {
		return nil, err
	}

	specs := make([]domain.MazeSpec, 0, len(members))
	for _, member := range members {
		spec, err := parseHistoryMember(member)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("skipping history entry %q: %s", member, err))
			continue
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (s *MazeService) resolve(req i.GenerateRequest) (domain.MazeSpec, error) {
	algorithm, err := maze.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return domain.MazeSpec{}, err
	}
	if min(req.Width, req.Height) <= 0 {
		return domain.MazeSpec{}, fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimensions, req.Width, req.Height)
	}
	if max(req.Width, req.Height) > s.maxDimension {
		return domain.MazeSpec{}, fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionTooLarge, req.Width, req.Height, s.maxDimension)
	}

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	return domain.MazeSpec{
		Width:     req.Width,
		Height:    req.Height,
		Algorithm: algorithm,
		Seed:      seed,
	}, nil
}

func (s *MazeService) generate(ctx context.Context, spec domain.MazeSpec) (*domain.Maze, error) {
	if m := s.cached(ctx, spec); m != nil {
		s.record(ctx, spec)
		return m, nil
	}

	if s.cache != nil {
		unlock, err := s.cache.Lock(ctx, spec)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("generating without lock: %s", err))
		} else {
			defer unlock()
			// another instance may have finished while we waited
			if m := s.cached(ctx, spec); m != nil {
				s.record(ctx, spec)
				return m, nil
			}
		}
	}

	grid, err := s.build(spec)
	if err != nil {
		return nil, err
	}
	m := domain.NewMaze(spec, grid)

	if s.cache != nil {
		if err := s.cache.Set(ctx, m); err != nil {
			s.logger.Warning(fmt.Sprintf("caching maze %s: %s", m.ID, err))
		}
	}
	s.record(ctx, spec)
	return m, nil
}

func (s *MazeService) build(spec domain.MazeSpec) (*maze.Grid, error) {
	gen, err := maze.New(spec.Algorithm)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	grid, err := gen.Generate(spec.Width, spec.Height, rng.Seeded(spec.Seed))
	if err != nil {
		s.logger.Error(fmt.Sprintf("generating %s maze %dx%d: %s", spec.Algorithm, spec.Width, spec.Height, err))
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Seed: %d (algorithm=%s size=%dx%d took=%s)", spec.Seed, spec.Algorithm, spec.Width, spec.Height, time.Since(started)))
	return grid, nil
}

func (s *MazeService) cached(ctx context.Context, spec domain.MazeSpec) *domain.Maze {
	if s.cache == nil {
		return nil
	}
	m, err := s.cache.Get(ctx, spec)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("reading maze cache: %s", err))
		return nil
	}
	if m != nil {
		s.logger.Info(fmt.Sprintf("Seed: %d served from cache", spec.Seed))
	}
	return m
}

func (s *MazeService) record(ctx context.Context, spec domain.MazeSpec) {
	if s.history == nil {
		return
	}
	score := float64(time.Now().UnixNano())
	if err := s.history.Enqueue(ctx, s.historyKey, score, historyMember(spec)); err != nil {
		s.logger.Warning(fmt.Sprintf("recording seed %d: %s", spec.Seed, err))
	}
}

func historyMember(spec domain.MazeSpec) string {
	return fmt.Sprintf(historyMemberFmt, spec.Algorithm, spec.Width, spec.Height, spec.Seed)
}

func parseHistoryMember(member string) (domain.MazeSpec, error) {
	parts := strings.Split(member, ":")
	if len(parts) != 4 {
		return domain.MazeSpec{}, errors.New("expected algorithm:width:height:seed")
	}

	algorithm, err := maze.ParseAlgorithm(parts[0])
	if err != nil {
		return domain.MazeSpec{}, err
	}
	width, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.MazeSpec{}, err
	}
	height, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.MazeSpec{}, err
	}
	seed, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return domain.MazeSpec{}, err
	}

	return domain.MazeSpec{Width: width, Height: height, Algorithm: algorithm, Seed: seed}, nil
}

package service

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/domain"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mazes map[uuid.UUID]*domain.Maze
	err   error
}

func (r *memoryRepo) Save(_ context.Context, m *domain.Maze) error {
	if r.err != nil {
		return r.err
	}
	r.mazes[m.ID] = m
	return nil
}

func (r *memoryRepo) ByID(_ context.Context, id uuid.UUID) (*domain.Maze, error) {
	m, ok := r.mazes[id]
	if !ok {
		return nil, domain.ErrMazeNotFound
	}
	return m, nil
}

func (r *memoryRepo) ByOwner(_ context.Context, owner uuid.UUID, limit int64) ([]*domain.Maze, error) {
	var out []*domain.Maze
	for _, m := range r.mazes {
		if m.OwnerID == owner && int64(len(out)) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

type memoryCache struct {
	mazes map[domain.MazeSpec]*domain.Maze
	locks int
	mu    sync.Mutex
}

func (c *memoryCache) Get(_ context.Context, spec domain.MazeSpec) (*domain.Maze, error) {
	return c.mazes[spec], nil
}

func (c *memoryCache) Set(_ context.Context, m *domain.Maze) error {
	c.mazes[m.Spec] = m
	return nil
}

func (c *memoryCache) Lock(_ context.Context, _ domain.MazeSpec) (func(), error) {
	c.mu.Lock()
	c.locks++
	return c.mu.Unlock, nil
}

type memoryQueue struct {
	scores map[string]float64
}

func (q *memoryQueue) Enqueue(_ context.Context, _ string, score float64, member string) error {
	q.scores[member] = score
	return nil
}

func (q *memoryQueue) Tops(_ context.Context, _ string, amount int64) ([]string, error) {
	members := make([]string, 0, len(q.scores))
	for m := range q.scores {
		members = append(members, m)
	}
	sort.Slice(members, func(a, b int) bool { return q.scores[members[a]] > q.scores[members[b]] })
	if int64(len(members)) > amount {
		members = members[:amount]
	}
	return members, nil
}

func (q *memoryQueue) Count(_ context.Context, _ string) int64 {
	return int64(len(q.scores))
}

type fixture struct {
	svc   *MazeService
	repo  *memoryRepo
	cache *memoryCache
	queue *memoryQueue
	logs  *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:  &memoryRepo{mazes: map[uuid.UUID]*domain.Maze{}},
		cache: &memoryCache{mazes: map[domain.MazeSpec]*domain.Maze{}},
		queue: &memoryQueue{scores: map[string]float64{}},
		logs:  &bytes.Buffer{},
	}
	l, err := logger.New("MAZE", config.ColorCyan, f.logs)
	require.NoError(t, err)

	seeds := int64(1000)
	f.svc, err = NewMazeService(&Config{
		Repo:         f.repo,
		Cache:        f.cache,
		History:      f.queue,
		Logger:       l,
		MaxDimension: 41,
		NewSeed: func() int64 {
			seeds++
			return seeds
		},
	})
	require.NoError(t, err)
	return f
}

func seed(v int64) *int64 { return &v }

func TestMazeServiceGenerate(t *testing.T) {
	t.Run("Same seed gives the same rows and logs the seed", func(t *testing.T) {
		f := newFixture(t)
		req := i.GenerateRequest{Width: 11, Height: 9, Seed: seed(42)}

		first, err := f.svc.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, maze.Prim, first.Spec.Algorithm)
		assert.Equal(t, int64(42), first.Spec.Seed)
		assert.Contains(t, f.logs.String(), "Seed: 42")

		// bypass the cache to prove determinism
		other := newFixture(t)
		second, err := other.svc.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first.Rows, second.Rows)
		assert.Equal(t, first.Start, second.Start)
		assert.Equal(t, first.End, second.End)
	})

	t.Run("Second request is served from cache", func(t *testing.T) {
		f := newFixture(t)
		req := i.GenerateRequest{Width: 7, Height: 7, Algorithm: "wilson", Seed: seed(5)}

		first, err := f.svc.Generate(context.Background(), req)
		require.NoError(t, err)
		second, err := f.svc.Generate(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, f.cache.locks)
		assert.Contains(t, f.logs.String(), "served from cache")
	})

	t.Run("Missing seed comes from the seed source", func(t *testing.T) {
		f := newFixture(t)
		m, err := f.svc.Generate(context.Background(), i.GenerateRequest{Width: 5, Height: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(1001), m.Spec.Seed)
	})

	t.Run("Regenerate discards the requested seed", func(t *testing.T) {
		f := newFixture(t)
		req := i.GenerateRequest{Width: 15, Height: 15, Algorithm: "backtracker", Seed: seed(7)}

		m, err := f.svc.Regenerate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(1001), m.Spec.Seed)

		again, err := f.svc.Regenerate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(1002), again.Spec.Seed)
		assert.NotEqual(t, m.ID, again.ID)
	})

	t.Run("Rejects bad requests", func(t *testing.T) {
		f := newFixture(t)
		cases := []struct {
			name string
			req  i.GenerateRequest
			want error
		}{
			{"zero width", i.GenerateRequest{Width: 0, Height: 5}, maze.ErrInvalidDimensions},
			{"negative height", i.GenerateRequest{Width: 5, Height: -2}, maze.ErrInvalidDimensions},
			{"too large", i.GenerateRequest{Width: 42, Height: 5}, ErrDimensionTooLarge},
			{"unknown algorithm", i.GenerateRequest{Width: 5, Height: 5, Algorithm: "eller"}, maze.ErrUnknownAlgorithm},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.svc.Generate(context.Background(), tc.req)
				assert.True(t, errors.Is(err, tc.want))
			})
		}
	})
}

func TestMazeServiceSave(t *testing.T) {
	t.Run("Persists with owner and solves", func(t *testing.T) {
		f := newFixture(t)
		owner := uuid.New()

		m, err := f.svc.Save(context.Background(), i.GenerateRequest{Width: 9, Height: 9, Seed: seed(3)}, owner)
		require.NoError(t, err)
		assert.Equal(t, owner, m.OwnerID)

		stored, err := f.svc.ByID(context.Background(), m.ID)
		require.NoError(t, err)
		assert.Equal(t, m.Rows, stored.Rows)

		path, err := f.svc.Solve(context.Background(), m.ID)
		require.NoError(t, err)
		require.NotEmpty(t, path)
		assert.Equal(t, m.Start, path[0])
		assert.Equal(t, m.End, path[len(path)-1])

		owned, err := f.svc.ByOwner(context.Background(), owner, 10)
		require.NoError(t, err)
		assert.Len(t, owned, 1)
	})

	t.Run("Requires a seed", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Save(context.Background(), i.GenerateRequest{Width: 9, Height: 9}, uuid.New())
		assert.ErrorIs(t, err, ErrSeedRequired)
	})

	t.Run("Surfaces repository errors", func(t *testing.T) {
		f := newFixture(t)
		f.repo.err = errors.New("disk full")
		_, err := f.svc.Save(context.Background(), i.GenerateRequest{Width: 9, Height: 9, Seed: seed(3)}, uuid.New())
		assert.EqualError(t, err, "disk full")
	})

	t.Run("Unknown id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrMazeNotFound)
	})

	t.Run("Without a repository", func(t *testing.T) {
		l, err := logger.New("MAZE", config.ColorCyan, &bytes.Buffer{})
		require.NoError(t, err)
		svc, err := NewMazeService(&Config{Logger: l})
		require.NoError(t, err)

		_, err = svc.ByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrStorageDisabled)

		recent, err := svc.Recent(context.Background(), 5)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})
}

func TestMazeServiceRecent(t *testing.T) {
	f := newFixture(t)
	for _, s := range []int64{1, 2, 3} {
		_, err := f.svc.Generate(context.Background(), i.GenerateRequest{Width: 5, Height: 7, Seed: seed(s)})
		require.NoError(t, err)
	}
	f.queue.scores["garbage"] = 1

	recent, err := f.svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, domain.MazeSpec{Width: 5, Height: 7, Algorithm: maze.Prim, Seed: 3}, recent[0])
	assert.Contains(t, f.logs.String(), "skipping history entry")
}

func TestHistoryMember(t *testing.T) {
	spec := domain.MazeSpec{Width: 21, Height: 11, Algorithm: maze.Wilson, Seed: -9}
	parsed, err := parseHistoryMember(historyMember(spec))
	require.NoError(t, err)
	assert.Equal(t, spec, parsed)

	_, err = parseHistoryMember("prim:1:2")
	assert.Error(t, err)
}

func TestNewMazeServiceRequiresLogger(t *testing.T) {
	_, err := NewMazeService(&Config{})
	assert.Error(t, err)
}

func TestMazeServiceRegenerateWithClockSeeds(t *testing.T) {
	l, err := logger.New("MAZE", config.ColorCyan, &bytes.Buffer{})
	require.NoError(t, err)
	c := &memoryCache{mazes: map[domain.MazeSpec]*domain.Maze{}}
	svc, err := NewMazeService(&Config{Cache: c, Logger: l})
	require.NoError(t, err)

	req := i.GenerateRequest{Width: 9, Height: 9}
	seen := map[int64]bool{}
	for range 200 {
		first, err := svc.Regenerate(context.Background(), req)
		require.NoError(t, err)
		second, err := svc.Regenerate(context.Background(), req)
		require.NoError(t, err)

		assert.NotEqual(t, first.Spec.Seed, second.Spec.Seed)
		seen[first.Spec.Seed] = true
		seen[second.Spec.Seed] = true
	}
	assert.Len(t, seen, 400)
	assert.Equal(t, 400, c.locks, "every regenerate should miss the cache")
}

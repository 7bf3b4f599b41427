package mazeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/rng"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMazeService struct {
	saved    map[uuid.UUID]*domain.Maze
	recent   []domain.MazeSpec
	lastReq  i.GenerateRequest
	lastUser uuid.UUID
}

func newStubMazeService() *stubMazeService {
	return &stubMazeService{saved: map[uuid.UUID]*domain.Maze{}}
}

func (s *stubMazeService) build(req i.GenerateRequest) (*domain.Maze, error) {
	s.lastReq = req
	algorithm, err := maze.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}
	if req.Width > 41 || req.Height > 41 {
		return nil, service.ErrDimensionTooLarge
	}
	seed := int64(7)
	if req.Seed != nil {
		seed = *req.Seed
	}
	gen, err := maze.New(algorithm)
	if err != nil {
		return nil, err
	}
	g, err := gen.Generate(req.Width, req.Height, rng.Seeded(seed))
	if err != nil {
		return nil, err
	}
	return domain.NewMaze(domain.MazeSpec{Width: req.Width, Height: req.Height, Algorithm: algorithm, Seed: seed}, g), nil
}

func (s *stubMazeService) Generate(_ context.Context, req i.GenerateRequest) (*domain.Maze, error) {
	return s.build(req)
}

func (s *stubMazeService) Regenerate(_ context.Context, req i.GenerateRequest) (*domain.Maze, error) {
	req.Seed = nil
	return s.build(req)
}

func (s *stubMazeService) Save(_ context.Context, req i.GenerateRequest, owner uuid.UUID) (*domain.Maze, error) {
	m, err := s.build(req)
	if err != nil {
		return nil, err
	}
	m.OwnerID = owner
	s.lastUser = owner
	s.saved[m.ID] = m
	return m, nil
}

func (s *stubMazeService) ByID(_ context.Context, id uuid.UUID) (*domain.Maze, error) {
	m, ok := s.saved[id]
	if !ok {
		return nil, domain.ErrMazeNotFound
	}
	return m, nil
}

func (s *stubMazeService) ByOwner(_ context.Context, owner uuid.UUID, _ int64) ([]*domain.Maze, error) {
	var res []*domain.Maze
	for _, m := range s.saved {
		if m.OwnerID == owner {
			res = append(res, m)
		}
	}
	return res, nil
}

func (s *stubMazeService) Solve(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error) {
	m, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := m.Grid()
	if err != nil {
		return nil, err
	}
	return g.Solution(), nil
}

func (s *stubMazeService) Recent(_ context.Context, limit int64) ([]domain.MazeSpec, error) {
	return s.recent[:min(int(limit), len(s.recent))], nil
}

type stubTokenizer struct{ userID string }

func (t stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "token" {
		return nil, assert.AnError
	}
	return map[string]interface{}{identity.UserIDClaim: t.userID}, nil
}

func newTestRouter(t *testing.T, svc i.MazeService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c, err := NewMazeController(svc)
	require.NoError(t, err)

	router := gin.New()
	public := router.Group("/api/v1")
	c.RegisterPublic(public)
	protected := router.Group("/api/v1")
	protected.Use(identity.Authoriz(stubTokenizer{userID: userID}))
	c.RegisterProtected(protected)
	return router
}

func do(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerate(t *testing.T) {
	svc := newStubMazeService()
	router := newTestRouter(t, svc, uuid.NewString())

	t.Run("with seed", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/mazes", `{"width":11,"height":7,"seed":42}`, "")
		require.Equal(t, http.StatusOK, w.Code)

		var res MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, int64(42), res.Seed)
		assert.Equal(t, "prim", res.Algorithm)
		assert.Len(t, res.Rows, 7)
		assert.Len(t, res.Rows[0], 11)
		assert.Equal(t, maze.CellPosition{Row: 0, Col: 0}, res.Start)
		assert.Nil(t, res.ID)
		assert.NotContains(t, w.Body.String(), `"id"`)
	})

	t.Run("missing width", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/mazes", `{"height":7}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative dimension", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/mazes", `{"width":-3,"height":7}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/mazes", `{"width":5,"height":5,"algorithm":"kruskal"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too large", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/mazes", `{"width":500,"height":5}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegenerateDropsSeed(t *testing.T) {
	svc := newStubMazeService()
	router := newTestRouter(t, svc, uuid.NewString())

	w := do(router, http.MethodPost, "/api/v1/mazes/regenerate", `{"width":9,"height":9,"seed":42}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastReq.Seed)
}

func TestRecent(t *testing.T) {
	svc := newStubMazeService()
	svc.recent = []domain.MazeSpec{
		{Width: 9, Height: 9, Algorithm: maze.Prim, Seed: 3},
		{Width: 5, Height: 5, Algorithm: maze.Wilson, Seed: 2},
	}
	router := newTestRouter(t, svc, uuid.NewString())

	w := do(router, http.MethodGet, "/api/v1/mazes/recent?limit=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res []SpecResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 1)
	assert.Equal(t, int64(3), res[0].Seed)

	w = do(router, http.MethodGet, "/api/v1/mazes/recent?limit=zero", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveAndFetch(t *testing.T) {
	svc := newStubMazeService()
	owner := uuid.New()
	router := newTestRouter(t, svc, owner.String())

	t.Run("requires token", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/mazes/saved", `{"width":9,"height":9,"seed":1}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires seed", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/mazes/saved", `{"width":9,"height":9}`, "token")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w := do(router, http.MethodPost, "/api/v1/mazes/saved", `{"width":9,"height":9,"algorithm":"backtracker","seed":5}`, "token")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, owner, svc.lastUser)

	var saved MazeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.NotNil(t, saved.ID)

	t.Run("by id", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/mazes/"+saved.ID.String(), "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var res MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, saved.Rows, res.Rows)
		assert.Equal(t, "backtracker", res.Algorithm)
	})

	t.Run("solution", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/mazes/"+saved.ID.String()+"/solution", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var res SolutionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.NotEmpty(t, res.Path)
		assert.Equal(t, saved.Start, res.Path[0])
		assert.Equal(t, saved.End, res.Path[len(res.Path)-1])
	})

	t.Run("image", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/mazes/"+saved.ID.String()+"/image?cell=2", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))
	})

	t.Run("mine", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/mazes/saved", "", "token")
		require.Equal(t, http.StatusOK, w.Code)

		var res []MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res, 1)
		require.NotNil(t, res[0].ID)
		assert.Equal(t, *saved.ID, *res[0].ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/mazes/"+uuid.NewString(), "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/mazes/not-a-uuid", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

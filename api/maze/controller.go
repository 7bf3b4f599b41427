package mazeapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/raster"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultCellSize    = 16
	maxCellSize        = 64
	defaultRecentLimit = 20
	maxListLimit       = 100
	requestTimeout     = 2 * time.Second
)

// MazeController exposes maze generation over HTTP.
type MazeController struct {
	mazeService i.MazeService
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("maze controller requires a maze service")
	}
	return &MazeController{mazeService: ms}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.POST("/regenerate", mc.regenerate)
		mazes.GET("/recent", mc.recent)
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/solution", mc.solution)
		mazes.GET("/:ID/image", mc.image)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	saved := route.Group("/mazes/saved")
	{
		saved.POST("", mc.save)
		saved.GET("", mc.mine)
	}
}

// generate builds a maze, from the given seed when there is one.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	m, err := mc.mazeService.Generate(timeoutCtx, toServiceRequest(request))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(m))
}

// regenerate ignores any seed in the body and builds from a fresh one.
func (mc *MazeController) regenerate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	m, err := mc.mazeService.Regenerate(timeoutCtx, toServiceRequest(request))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(m))
}

func (mc *MazeController) recent(ctx *gin.Context) {
	limit, err := queryInt(ctx, "limit", defaultRecentLimit, maxListLimit)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	specs, err := mc.mazeService.Recent(ctx, int64(limit))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSpecResponses(specs))
}

func (mc *MazeController) byID(ctx *gin.Context) {
	m, ok := mc.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponse(m))
}

func (mc *MazeController) solution(ctx *gin.Context) {
	ID, ok := pathID(ctx)
	if !ok {
		return
	}

	path, err := mc.mazeService.Solve(ctx, ID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &SolutionResponse{ID: ID, Path: path})
}

// image renders the stored maze as a PNG, one square of `cell` pixels per grid cell.
func (mc *MazeController) image(ctx *gin.Context) {
	cellSize, err := queryInt(ctx, "cell", defaultCellSize, maxCellSize)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, ok := mc.lookup(ctx)
	if !ok {
		return
	}
	g, err := m.Grid()
	if err != nil {
		writeError(ctx, err)
		return
	}

	var buf bytes.Buffer
	layout := raster.Layout{CellSize: cellSize}
	if err := raster.WritePNG(&buf, g, layout, raster.DefaultPalette); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

// save regenerates the requested maze deterministically and stores it for the caller.
func (mc *MazeController) save(ctx *gin.Context) {
	owner, err := identity.UserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var request SaveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := i.GenerateRequest{
		Width:     request.Width,
		Height:    request.Height,
		Algorithm: request.Algorithm,
		Seed:      request.Seed,
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	m, err := mc.mazeService.Save(timeoutCtx, req, owner)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(m))
}

// mine lists the caller's saved mazes, newest first.
func (mc *MazeController) mine(ctx *gin.Context) {
	owner, err := identity.UserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	limit, err := queryInt(ctx, "limit", defaultRecentLimit, maxListLimit)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mazes, err := mc.mazeService.ByOwner(ctx, owner, int64(limit))
	if err != nil {
		writeError(ctx, err)
		return
	}

	res := make([]*MazeResponse, 0, len(mazes))
	for _, m := range mazes {
		res = append(res, newMazeResponse(m))
	}
	ctx.JSON(http.StatusOK, res)
}

func (mc *MazeController) lookup(ctx *gin.Context) (*domain.Maze, bool) {
	ID, ok := pathID(ctx)
	if !ok {
		return nil, false
	}

	m, err := mc.mazeService.ByID(ctx, ID)
	if err != nil {
		writeError(ctx, err)
		return nil, false
	}
	return m, true
}

func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return uuid.Nil, false
	}
	return ID, true
}

// queryInt reads a positive integer query parameter, capped at max.
func queryInt(ctx *gin.Context, name string, def, max int) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return min(v, max), nil
}

func toServiceRequest(r GenerateRequest) i.GenerateRequest {
	return i.GenerateRequest{
		Width:     r.Width,
		Height:    r.Height,
		Algorithm: r.Algorithm,
		Seed:      r.Seed,
	}
}

// writeError maps service errors onto status codes.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, maze.ErrUnknownAlgorithm),
		errors.Is(err, service.ErrDimensionTooLarge),
		errors.Is(err, service.ErrSeedRequired):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStorageDisabled):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

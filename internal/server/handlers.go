package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lawnchairsociety/mazecarver/internal/config"
	"github.com/lawnchairsociety/mazecarver/internal/database"
	"github.com/lawnchairsociety/mazecarver/internal/layout"
	"github.com/lawnchairsociety/mazecarver/internal/logger"
	"github.com/lawnchairsociety/mazecarver/internal/maze"
	"github.com/lawnchairsociety/mazecarver/internal/session"
)

// getMaze generates a maze from query parameters.
func (s *Server) getMaze(ctx *gin.Context) {
	opts := s.opts

	var err error
	if opts.Width, err = queryInt(ctx, "width", opts.Width); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if opts.Height, err = queryInt(ctx, "height", opts.Height); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if opts.StartX, err = queryInt(ctx, "start_x", opts.StartX); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if opts.StartY, err = queryInt(ctx, "start_y", opts.StartY); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if side, ok := ctx.GetQuery("exit_side"); ok {
		if opts.ExitSide, err = layout.ParseExitSide(side); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	seed, err := s.querySeed(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := s.newGame(opts, seed)
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toMazeResponse(g))
}

// listSaves returns every save, most recently played first.
func (s *Server) listSaves(ctx *gin.Context) {
	saves, err := s.saves.ListSaves()
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	response := make([]SaveResponse, 0, len(saves))
	for _, save := range saves {
		response = append(response, toSaveResponse(save))
	}
	ctx.JSON(http.StatusOK, response)
}

// createSave starts a new game and stores it.
func (s *Server) createSave(ctx *gin.Context) {
	var request CreateSaveRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	opts := s.opts
	if request.Width != 0 {
		opts.Width = request.Width
	}
	if request.Height != 0 {
		opts.Height = request.Height
	}

	var seed int64
	if request.Seed != nil {
		seed = *request.Seed
	} else {
		seed = session.NewSeed(s.seeds)
	}

	g, err := s.newGame(opts, seed)
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	save := g.Snapshot()
	if err := s.saves.CreateSave(&save); err != nil {
		s.writeError(ctx, err)
		return
	}

	logger.Info("Game created", "save_id", save.ID, "seed", save.Seed,
		"width", save.Width, "height", save.Height)
	ctx.JSON(http.StatusCreated, toSaveResponse(&save))
}

func (s *Server) getSave(ctx *gin.Context) {
	save, err := s.saves.GetSave(ctx.Param("id"))
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toSaveResponse(save))
}

// updateSave overwrites the progress of a game after checking it still
// fits the maze.
func (s *Server) updateSave(ctx *gin.Context) {
	var request UpdateSaveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	save, err := s.saves.GetSave(ctx.Param("id"))
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	save.Lives = request.Lives
	save.HasKey = request.HasKey
	save.PlayTime = request.PlayTime
	save.PlayerX = request.X
	save.PlayerY = request.Y

	if _, err := session.Restore(save, s.opts); err != nil {
		s.writeError(ctx, err)
		return
	}
	if err := s.saves.UpdateSave(save); err != nil {
		s.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSaveResponse(save))
}

func (s *Server) deleteSave(ctx *gin.Context) {
	if err := s.saves.DeleteSave(ctx.Param("id")); err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// moveSave moves the player of a saved game one cell through an open passage.
func (s *Server) moveSave(ctx *gin.Context) {
	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, ok := maze.ParseDirection(request.Direction)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown direction %q", request.Direction)})
		return
	}

	g, save, err := s.loadGame(ctx.Param("id"))
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	if err := g.Move(dir); err != nil {
		s.writeError(ctx, err)
		return
	}

	updated, removed, err := g.Persist(s.saves)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	updated.CreatedAt = save.CreatedAt

	if g.Escaped {
		logger.Info("Player escaped", "save_id", g.ID, "seed", g.Seed, "play_time", g.PlayTime)
	}
	ctx.JSON(http.StatusOK, MoveResponse{Save: toSaveResponse(&updated), Escaped: g.Escaped, GameOver: removed})
}

// hitSave takes a life from the player of a saved game. It is called by
// whatever chases the player. The last life ends the game and deletes the save.
func (s *Server) hitSave(ctx *gin.Context) {
	g, save, err := s.loadGame(ctx.Param("id"))
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	g.LoseLife()
	updated, removed, err := g.Persist(s.saves)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	updated.CreatedAt = save.CreatedAt

	if removed {
		logger.Info("Game over", "save_id", g.ID, "seed", g.Seed)
	}
	ctx.JSON(http.StatusOK, HitResponse{Save: toSaveResponse(&updated), GameOver: removed})
}

// hintSave points from a cell (the player's by default) toward the key or exit.
func (s *Server) hintSave(ctx *gin.Context) {
	g, _, err := s.loadGame(ctx.Param("id"))
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	from := g.Player
	if from.X, err = queryInt(ctx, "x", from.X); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if from.Y, err = queryInt(ctx, "y", from.Y); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dir, err := g.Hint(from)
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, HintResponse{
		From:      toPointDTO(from),
		Direction: dir.String(),
		Target:    toPointDTO(g.Target(from)),
	})
}

// newGame checks the requested size against the configured limits before
// generating.
func (s *Server) newGame(opts session.Options, seed int64) (*session.Game, error) {
	if err := s.cfg.Maze.CheckSize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	return session.New(opts, seed)
}

func (s *Server) loadGame(id string) (*session.Game, *database.Save, error) {
	save, err := s.saves.GetSave(id)
	if err != nil {
		return nil, nil, err
	}
	g, err := session.Restore(save, s.opts)
	if err != nil {
		return nil, nil, err
	}
	return g, save, nil
}

func (s *Server) querySeed(ctx *gin.Context) (int64, error) {
	raw, ok := ctx.GetQuery("seed")
	if !ok || raw == "" {
		return session.NewSeed(s.seeds), nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seed %q", raw)
	}
	return seed, nil
}

func queryInt(ctx *gin.Context, key string, def int) (int, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

// writeError maps domain errors to HTTP status codes.
func (s *Server) writeError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, config.ErrSizeOutOfRange),
		errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, maze.ErrNoPath),
		errors.Is(err, layout.ErrNoKeyCell),
		errors.Is(err, session.ErrInvalidSave):
		status = http.StatusBadRequest
	case errors.Is(err, database.ErrSaveNotFound):
		status = http.StatusNotFound
	case errors.Is(err, database.ErrSaveExists),
		errors.Is(err, session.ErrFingerprintMismatch),
		errors.Is(err, session.ErrBlocked),
		errors.Is(err, session.ErrExitLocked),
		errors.Is(err, session.ErrFinished):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", ctx.Request.URL.Path, "error", err)
		ctx.JSON(status, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

package server

import (
	"time"

	"github.com/lawnchairsociety/mazecarver/internal/database"
	"github.com/lawnchairsociety/mazecarver/internal/maze"
	"github.com/lawnchairsociety/mazecarver/internal/session"
)

// WallsDTO is the derived wall tuple of one cell.
type WallsDTO struct {
	Top    bool `json:"top"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
	Right  bool `json:"right"`
}

// CellDTO is one cell with its derived walls.
type CellDTO struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Walls WallsDTO `json:"walls"`
}

// PointDTO is a grid coordinate.
type PointDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MazeResponse describes a generated maze and its layout.
type MazeResponse struct {
	Seed        int64     `json:"seed"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Start       PointDTO  `json:"start"`
	Exit        PointDTO  `json:"exit"`
	ExitSide    string    `json:"exit_side"`
	Key         PointDTO  `json:"key"`
	Fingerprint string    `json:"fingerprint"`
	Cells       []CellDTO `json:"cells"`
}

// CreateSaveRequest starts a new game. Zero values take the server defaults.
type CreateSaveRequest struct {
	Seed   *int64 `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// UpdateSaveRequest overwrites the progress of a game.
type UpdateSaveRequest struct {
	Lives    int     `json:"lives" binding:"gte=0"`
	HasKey   bool    `json:"has_key"`
	PlayTime float64 `json:"play_time" binding:"gte=0"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
}

// MoveRequest moves the player of a saved game one cell.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// SaveResponse is a saved game.
type SaveResponse struct {
	ID          string    `json:"id"`
	Seed        int64     `json:"seed"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Lives       int       `json:"lives"`
	HasKey      bool      `json:"has_key"`
	PlayTime    float64   `json:"play_time"`
	Position    PointDTO  `json:"position"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MoveResponse reports the game after a move. Once the game is over its
// save has been deleted.
type MoveResponse struct {
	Save     SaveResponse `json:"save"`
	Escaped  bool         `json:"escaped"`
	GameOver bool         `json:"game_over"`
}

// HitResponse reports the game after the player was caught.
type HitResponse struct {
	Save     SaveResponse `json:"save"`
	GameOver bool         `json:"game_over"`
}

// HintResponse names the next step toward the key or exit.
type HintResponse struct {
	From      PointDTO `json:"from"`
	Direction string   `json:"direction"`
	Target    PointDTO `json:"target"`
}

// RowMessage is one maze row streamed over WebSocket.
type RowMessage struct {
	Row   int       `json:"row"`
	Cells []CellDTO `json:"cells"`
}

// DoneMessage ends a streamed maze.
type DoneMessage struct {
	Done        bool   `json:"done"`
	Seed        int64  `json:"seed"`
	Fingerprint string `json:"fingerprint"`
}

// ErrorMessage reports a failed WebSocket request.
type ErrorMessage struct {
	Error string `json:"error"`
}

// StreamRequest asks for a maze over WebSocket.
type StreamRequest struct {
	Seed   *int64 `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func toPointDTO(p maze.Point) PointDTO {
	return PointDTO{X: p.X, Y: p.Y}
}

func toCellDTO(m *maze.Maze, c maze.Cell) CellDTO {
	w := m.WallsOf(c)
	return CellDTO{
		X: c.X,
		Y: c.Y,
		Walls: WallsDTO{
			Top:    w.Top,
			Bottom: w.Bottom,
			Left:   w.Left,
			Right:  w.Right,
		},
	}
}

func toMazeResponse(g *session.Game) MazeResponse {
	cells := g.Maze.Cells()
	dtos := make([]CellDTO, len(cells))
	for i, c := range cells {
		dtos[i] = toCellDTO(g.Maze, c)
	}
	return MazeResponse{
		Seed:        g.Seed,
		Width:       g.Maze.Width(),
		Height:      g.Maze.Height(),
		Start:       toPointDTO(g.Layout.Start),
		Exit:        toPointDTO(g.Layout.Exit),
		ExitSide:    g.Layout.ExitSide.String(),
		Key:         toPointDTO(g.Layout.Key),
		Fingerprint: g.Maze.Fingerprint(),
		Cells:       dtos,
	}
}

func toSaveResponse(s *database.Save) SaveResponse {
	return SaveResponse{
		ID:          s.ID,
		Seed:        s.Seed,
		Width:       s.Width,
		Height:      s.Height,
		Lives:       s.Lives,
		HasKey:      s.HasKey,
		PlayTime:    s.PlayTime,
		Position:    PointDTO{X: s.PlayerX, Y: s.PlayerY},
		Fingerprint: s.Fingerprint,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

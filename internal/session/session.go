// Package session tracks a single game played on a generated maze: the
// player position, the key, lives and play time.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/lawnchairsociety/mazecarver/internal/config"
	"github.com/lawnchairsociety/mazecarver/internal/database"
	"github.com/lawnchairsociety/mazecarver/internal/layout"
	"github.com/lawnchairsociety/mazecarver/internal/maze"
)

// maxSeed bounds the seeds handed out by NewSeed.
const maxSeed = 999999

// StartingLives is the number of lives a new game begins with.
const StartingLives = 2

var (
	// ErrFingerprintMismatch is returned when a save no longer regenerates
	// the maze it was recorded on.
	ErrFingerprintMismatch = errors.New("maze fingerprint mismatch")

	// ErrInvalidSave is returned when a save holds a position off the grid.
	ErrInvalidSave = errors.New("invalid save")

	// ErrBlocked is returned when moving through a wall.
	ErrBlocked = errors.New("a wall blocks the way")

	// ErrExitLocked is returned when leaving through the exit without the key.
	ErrExitLocked = errors.New("the exit is locked")

	// ErrFinished is returned for moves after the player has escaped or
	// run out of lives.
	ErrFinished = errors.New("game already finished")
)

// SaveStore is the persistence a game needs. *database.Database implements it.
type SaveStore interface {
	CreateSave(s *database.Save) error
	UpdateSave(s *database.Save) error
	DeleteSave(id string) error
}

// Options controls how a game's maze is generated and laid out.
type Options struct {
	Width    int
	Height   int
	StartX   int
	StartY   int
	ExitSide layout.ExitSide
}

// OptionsFrom builds Options from the maze section of the configuration.
func OptionsFrom(cfg config.MazeConfig) (Options, error) {
	side, err := layout.ParseExitSide(cfg.ExitSide)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:    cfg.DefaultWidth,
		Height:   cfg.DefaultHeight,
		StartX:   cfg.StartX,
		StartY:   cfg.StartY,
		ExitSide: side,
	}, nil
}

// Game is one play-through of a maze.
type Game struct {
	ID       string
	Seed     int64
	Maze     *maze.Maze
	Layout   layout.Layout
	Lives    int
	HasKey   bool
	Escaped  bool
	PlayTime time.Duration
	Player   maze.Point
}

// NewSeed draws a fresh game seed in [0, 999999).
func NewSeed(rng maze.Source) int64 {
	return int64(rng.Intn(maxSeed))
}

// New generates the maze for seed and places the start, exit and key.
// The maze and the layout draw from one source, so a seed fixes both.
func New(opts Options, seed int64) (*Game, error) {
	rng := maze.NewSource(seed)

	m, err := maze.Generate(opts.Width, opts.Height, opts.StartX, opts.StartY, rng)
	if err != nil {
		return nil, err
	}

	l, err := layout.Place(m, maze.Point{X: opts.StartX, Y: opts.StartY}, opts.ExitSide, rng)
	if err != nil {
		return nil, err
	}

	return &Game{
		Seed:   seed,
		Maze:   m,
		Layout: l,
		Lives:  StartingLives,
		Player: l.Start,
	}, nil
}

// Snapshot returns the persistable state of the game.
func (g *Game) Snapshot() database.Save {
	return database.Save{
		ID:          g.ID,
		Seed:        g.Seed,
		Width:       g.Maze.Width(),
		Height:      g.Maze.Height(),
		Lives:       g.Lives,
		HasKey:      g.HasKey,
		PlayTime:    g.PlayTime.Seconds(),
		PlayerX:     g.Player.X,
		PlayerY:     g.Player.Y,
		Fingerprint: g.Maze.Fingerprint(),
	}
}

// Restore rebuilds a game from a save. The maze size comes from the save;
// the start and exit side come from opts. A save with a fingerprint must
// regenerate to the same maze.
func Restore(save *database.Save, opts Options) (*Game, error) {
	opts.Width = save.Width
	opts.Height = save.Height

	g, err := New(opts, save.Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}

	if save.Fingerprint != "" && save.Fingerprint != g.Maze.Fingerprint() {
		return nil, fmt.Errorf("%w: save %s", ErrFingerprintMismatch, save.ID)
	}
	if save.Lives < 1 {
		return nil, fmt.Errorf("%w: save %s has no lives left", ErrInvalidSave, save.ID)
	}
	if !g.Maze.InBounds(save.PlayerX, save.PlayerY) {
		return nil, fmt.Errorf("%w: position (%d,%d) outside %dx%d maze",
			ErrInvalidSave, save.PlayerX, save.PlayerY, save.Width, save.Height)
	}

	g.ID = save.ID
	g.Lives = save.Lives
	g.HasKey = save.HasKey
	g.PlayTime = time.Duration(save.PlayTime * float64(time.Second))
	g.Player = maze.Point{X: save.PlayerX, Y: save.PlayerY}
	return g, nil
}

// Move steps the player one cell in direction d. Stepping through the open
// exit side of the exit cell while holding the key finishes the game.
func (g *Game) Move(d maze.Direction) error {
	if g.Over() {
		return ErrFinished
	}

	if g.Player == g.Layout.Exit && d == g.Layout.ExitSide.Direction() {
		if !g.CanExit(g.Player) {
			return ErrExitLocked
		}
		g.Escaped = true
		return nil
	}

	if !g.Maze.Open(g.Player, d) {
		return ErrBlocked
	}

	g.Player = g.Player.Step(d)
	g.CollectKey(g.Player)
	return nil
}

// CollectKey picks up the key if p is the key cell. It reports whether the
// key was picked up by this call.
func (g *Game) CollectKey(p maze.Point) bool {
	if g.HasKey || p != g.Layout.Key {
		return false
	}
	g.HasKey = true
	return true
}

// CanExit reports whether a player at p may leave the maze.
func (g *Game) CanExit(p maze.Point) bool {
	return g.HasKey && p == g.Layout.Exit
}

// Target is the cell a player at p should head for: the key until it is
// held, then the exit. Standing on the key counts as holding it.
func (g *Game) Target(p maze.Point) maze.Point {
	if g.HasKey || p == g.Layout.Key {
		return g.Layout.Exit
	}
	return g.Layout.Key
}

// Hint returns the first step from p along the unique path to the target.
// On the exit cell with the key it points through the exit side.
func (g *Game) Hint(p maze.Point) (maze.Direction, error) {
	target := g.Target(p)
	if p == target {
		return g.Layout.ExitSide.Direction(), nil
	}

	path, err := g.Maze.Path(p, target)
	if err != nil {
		return 0, err
	}

	d, _ := p.DirectionTo(path[1])
	return d, nil
}

// Over reports whether the game has ended, by escaping or by losing every life.
func (g *Game) Over() bool {
	return g.Escaped || g.Lives <= 0
}

// Persist writes the game to store and returns what was written. A game
// without an ID is created and takes the new ID. A finished game is not kept:
// its save is deleted and removed is true.
func (g *Game) Persist(store SaveStore) (save database.Save, removed bool, err error) {
	save = g.Snapshot()

	if g.Over() {
		if g.ID == "" {
			return save, true, nil
		}
		if err := store.DeleteSave(g.ID); err != nil && !errors.Is(err, database.ErrSaveNotFound) {
			return save, false, err
		}
		return save, true, nil
	}

	if g.ID == "" {
		if err := store.CreateSave(&save); err != nil {
			return save, false, err
		}
		g.ID = save.ID
		return save, false, nil
	}
	if err := store.UpdateSave(&save); err != nil {
		return save, false, err
	}
	return save, false, nil
}

// LoseLife takes one life away and reports whether any remain.
func (g *Game) LoseLife() bool {
	if g.Lives > 0 {
		g.Lives--
	}
	return g.Lives > 0
}

// AddPlayTime accumulates time spent in the game.
func (g *Game) AddPlayTime(d time.Duration) {
	if d > 0 {
		g.PlayTime += d
	}
}

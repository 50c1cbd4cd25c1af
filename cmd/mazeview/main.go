package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lawnchairsociety/mazecarver/internal/database"
	"github.com/lawnchairsociety/mazecarver/internal/layout"
	"github.com/lawnchairsociety/mazecarver/internal/maze"
	"github.com/lawnchairsociety/mazecarver/internal/session"
	"github.com/lawnchairsociety/mazecarver/internal/view"
)

type viewer struct {
	screen  tcell.Screen
	game    *session.Game
	db      *database.Database
	message string
	last    time.Time
}

func main() {
	width := flag.Int("width", 10, "Maze width in cells")
	height := flag.Int("height", 10, "Maze height in cells")
	seed := flag.Int64("seed", -1, "Seed for random generation (default: random)")
	exitSide := flag.String("exit-side", "top", "Side of the exit cell left open: top or right")
	dbFile := flag.String("db", "", "Path to save database (progress is saved on quit)")
	load := flag.String("load", "", "ID of a save to continue (requires -db)")
	flag.Parse()

	side, err := layout.ParseExitSide(*exitSide)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts := session.Options{Width: *width, Height: *height, ExitSide: side}

	var db *database.Database
	if *dbFile != "" {
		db, err = database.Open(*dbFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	game, err := startGame(db, opts, *seed, *load)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	v := &viewer{
		screen:  screen,
		game:    game,
		db:      db,
		message: "Arrows or WASD to move, ? for a hint, q to quit",
		last:    time.Now(),
	}
	v.run()
	screen.Fini()

	removed, err := v.save()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save: %v\n", err)
		os.Exit(1)
	}
	if game.Escaped {
		fmt.Printf("Escaped in %s.\n", game.PlayTime.Truncate(time.Second))
	}
	switch {
	case removed && game.ID != "":
		fmt.Printf("Save %s removed.\n", game.ID)
	case game.ID != "":
		fmt.Printf("Save ID: %s\n", game.ID)
	}
}

func startGame(db *database.Database, opts session.Options, seed int64, load string) (*session.Game, error) {
	if load != "" {
		if db == nil {
			return nil, errors.New("-load requires -db")
		}
		save, err := db.GetSave(load)
		if err != nil {
			return nil, err
		}
		return session.Restore(save, opts)
	}

	if seed < 0 {
		seed = session.NewSeed(maze.NewSource(time.Now().UnixNano()))
	}
	return session.New(opts, seed)
}

func (v *viewer) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	v.draw()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				v.tick()
				return
			}
		case <-ticker.C:
		}
		v.tick()
		v.draw()
	}
}

// tick adds wall-clock time to the game until the player escapes.
func (v *viewer) tick() {
	now := time.Now()
	if !v.game.Escaped {
		v.game.AddPlayTime(now.Sub(v.last))
	}
	v.last = now
}

func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}

		var dir maze.Direction
		switch {
		case ev.Key() == tcell.KeyUp || ev.Rune() == 'w':
			dir = maze.Up
		case ev.Key() == tcell.KeyDown || ev.Rune() == 's':
			dir = maze.Down
		case ev.Key() == tcell.KeyLeft || ev.Rune() == 'a':
			dir = maze.Left
		case ev.Key() == tcell.KeyRight || ev.Rune() == 'd':
			dir = maze.Right
		case ev.Rune() == 'q':
			return false
		case ev.Rune() == '?':
			v.hint()
			return true
		default:
			return true
		}
		v.move(dir)

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) move(dir maze.Direction) {
	hadKey := v.game.HasKey
	switch err := v.game.Move(dir); {
	case err == nil && v.game.Escaped:
		v.message = "You escaped! Press q to quit"
	case err == nil && !hadKey && v.game.HasKey:
		v.message = "You picked up the key"
	case err == nil:
		v.message = ""
	default:
		v.message = err.Error()
	}
}

func (v *viewer) hint() {
	d, err := v.game.Hint(v.game.Player)
	if err != nil {
		v.message = err.Error()
		return
	}
	v.message = "Hint: go " + d.String()
}

func (v *viewer) draw() {
	view.Draw(v.screen, v.game)
	view.DrawMessage(v.screen, v.game, v.message)
	v.screen.Show()
}

// save stores the game when a database is configured. A finished game has
// its save deleted instead, and removed is true.
func (v *viewer) save() (removed bool, err error) {
	if v.db == nil {
		return false, nil
	}
	_, removed, err = v.game.Persist(v.db)
	return removed, err
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lawnchairsociety/mazecarver/internal/config"
	"github.com/lawnchairsociety/mazecarver/internal/database"
	"github.com/lawnchairsociety/mazecarver/internal/logger"
	"github.com/lawnchairsociety/mazecarver/internal/server"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	envFile := flag.String("env", ".env", "Path to .env file with MAZE_* overrides")
	addr := flag.String("addr", "", "Listen address (overrides http.address)")
	listSaves := flag.Bool("list-saves", false, "Print stored saves and exit")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.LoadConfig(*configFile, *envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.HTTP.Address = *addr
	}

	db, err := database.OpenWithConfig(databaseConfig(cfg.Database))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	logger.Info("Save database initialized", "driver", cfg.Database.Driver)

	if *listSaves {
		printSaves(db)
		return
	}

	srv, err := server.New(cfg, db)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	logger.Info("Maze server running",
		"address", cfg.HTTP.Address,
		"default_size", fmt.Sprintf("%dx%d", cfg.Maze.DefaultWidth, cfg.Maze.DefaultHeight),
		"exit_side", cfg.Maze.ExitSide)
	logger.Info("Press Ctrl+C to shutdown")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// databaseConfig maps the YAML database section to connection settings.
func databaseConfig(c config.DatabaseConfig) database.Config {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.Postgres.Host
	pg.Port = c.Postgres.Port
	pg.User = c.Postgres.User
	pg.Password = c.Postgres.Password
	pg.Database = c.Postgres.Database
	pg.SSLMode = c.Postgres.SSLMode

	return database.Config{
		Driver:     c.Driver,
		SQLitePath: c.SQLitePath,
		Postgres:   pg,
	}
}

// printSaves lists stored saves on stdout.
func printSaves(db *database.Database) {
	has, err := db.HasSaves()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !has {
		fmt.Println("No saves.")
		return
	}

	saves, err := db.ListSaves()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, s := range saves {
		fmt.Printf("%s  seed=%-6d %dx%d  lives=%d key=%v pos=(%d,%d)  updated %s\n",
			s.ID, s.Seed, s.Width, s.Height, s.Lives, s.HasKey, s.PlayerX, s.PlayerY,
			s.UpdatedAt.Format(time.RFC3339))
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrSizeOutOfRange is returned when a maze dimension falls outside the
// configured limits.
var ErrSizeOutOfRange = errors.New("maze size out of range")

// Config holds all settings for the maze tools and server.
type Config struct {
	Maze     MazeConfig     `yaml:"maze"`
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// MazeConfig holds generation defaults and limits.
type MazeConfig struct {
	// DefaultWidth and DefaultHeight are used when a request omits a size.
	DefaultWidth  int `yaml:"default_width"`
	DefaultHeight int `yaml:"default_height"`

	// MinSize and MaxSize bound both dimensions of requested mazes.
	MinSize int `yaml:"min_size"`
	MaxSize int `yaml:"max_size"`

	// StartX and StartY are the carving start and the player spawn.
	// Coordinates off the grid fall back to (0,0).
	StartX int `yaml:"start_x"`
	StartY int `yaml:"start_y"`

	// ExitSide is "top" or "right".
	ExitSide string `yaml:"exit_side"`
}

// DatabaseConfig selects and configures save storage.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver     string         `yaml:"driver"`
	SQLitePath string         `yaml:"sqlite_path"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// HTTPConfig holds settings for the HTTP and WebSocket server.
type HTTPConfig struct {
	Address string `yaml:"address"`

	// GinMode is one of "debug", "release" or "test".
	GinMode     string            `yaml:"gin_mode"`
	WebSocket   WebSocketConfig   `yaml:"websocket"`
	Connections ConnectionsConfig `yaml:"connections"`
}

// ConnectionsConfig limits concurrent WebSocket connections.
type ConnectionsConfig struct {
	MaxPerIP int `yaml:"max_per_ip"` // 0 = unlimited
	MaxTotal int `yaml:"max_total"`  // 0 = unlimited
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum inbound WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// DefaultConfig returns a Config with the game's stock defaults.
func DefaultConfig() *Config {
	return &Config{
		Maze: MazeConfig{
			DefaultWidth:  10,
			DefaultHeight: 10,
			MinSize:       5,
			MaxSize:       500,
			ExitSide:      "top",
		},
		Database: DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: "data/mazecarver.db",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
		},
		HTTP: HTTPConfig{
			Address: ":8080",
			GinMode: "release",
			WebSocket: WebSocketConfig{
				AllowedOrigins: []string{}, // Same-origin only by default
				MaxMessageSize: 4096,
			},
			Connections: ConnectionsConfig{
				MaxPerIP: 10,
				MaxTotal: 1000,
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies variables
// from the given .env files (".env" if none are named) and the process
// environment. A missing YAML or .env file is not an error.
func LoadConfig(path string, envFiles ...string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return config, err
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables already set in the environment.
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return config, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return config, err
	}

	return config, config.Validate()
}

// applyEnv overrides settings from MAZE_* environment variables.
func (c *Config) applyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"MAZE_WIDTH", &c.Maze.DefaultWidth},
		{"MAZE_HEIGHT", &c.Maze.DefaultHeight},
		{"MAZE_START_X", &c.Maze.StartX},
		{"MAZE_START_Y", &c.Maze.StartY},
		{"MAZE_PG_PORT", &c.Database.Postgres.Port},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", v.key, err)
		}
		*v.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"MAZE_EXIT_SIDE", &c.Maze.ExitSide},
		{"MAZE_DB_DRIVER", &c.Database.Driver},
		{"MAZE_SQLITE_PATH", &c.Database.SQLitePath},
		{"MAZE_PG_HOST", &c.Database.Postgres.Host},
		{"MAZE_PG_USER", &c.Database.Postgres.User},
		{"MAZE_PG_PASSWORD", &c.Database.Postgres.Password},
		{"MAZE_PG_DATABASE", &c.Database.Postgres.Database},
		{"MAZE_PG_SSLMODE", &c.Database.Postgres.SSLMode},
		{"MAZE_HTTP_ADDRESS", &c.HTTP.Address},
		{"GIN_MODE", &c.HTTP.GinMode},
	}
	for _, v := range strs {
		if raw := os.Getenv(v.key); raw != "" {
			*v.dst = raw
		}
	}

	return nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	m := c.Maze
	if m.MinSize < 1 || m.MaxSize < m.MinSize {
		return fmt.Errorf("invalid maze size limits [%d, %d]", m.MinSize, m.MaxSize)
	}
	if err := m.CheckSize(m.DefaultWidth, m.DefaultHeight); err != nil {
		return fmt.Errorf("default size: %w", err)
	}

	switch strings.ToLower(m.ExitSide) {
	case "top", "right":
	default:
		return fmt.Errorf("invalid exit_side %q", m.ExitSide)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid database driver %q", c.Database.Driver)
	}

	switch c.HTTP.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin_mode %q", c.HTTP.GinMode)
	}

	return nil
}

// CheckSize reports whether width and height are within [MinSize, MaxSize].
func (m *MazeConfig) CheckSize(width, height int) error {
	if width < m.MinSize || width > m.MaxSize || height < m.MinSize || height > m.MaxSize {
		return fmt.Errorf("%w: %dx%d not within [%d, %d]", ErrSizeOutOfRange, width, height, m.MinSize, m.MaxSize)
	}
	return nil
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host (same-origin policy).
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client
	}

	// "http://localhost:3000" -> "localhost:3000"
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}

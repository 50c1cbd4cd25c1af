package labyrinth

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lawnchairsociety/mazecarver/internal/maze"
	"gopkg.in/yaml.v3"
)

// FileName is the name WriteYAML gives the labyrinth file.
const FileName = "labyrinth.yaml"

// LabyrinthConfig represents the structure of the labyrinth YAML file
type LabyrinthConfig struct {
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	Seed        int64     `yaml:"seed"`
	Fingerprint string    `yaml:"fingerprint"`
	ExitSide    string    `yaml:"exit_side"`
	StartRoom   string    `yaml:"start_room"`
	ExitRoom    string    `yaml:"exit_room"`
	KeyRoom     string    `yaml:"key_room"`
	Rooms       yaml.Node `yaml:"rooms"`
}

// RoomConfigYAML represents a room in the YAML config
type RoomConfigYAML struct {
	Name     string            `yaml:"name"`
	Type     string            `yaml:"type"`
	X        int               `yaml:"x"`
	Y        int               `yaml:"y"`
	Features []string          `yaml:"features,omitempty"`
	Walls    WallsYAML         `yaml:"walls"`
	Exits    map[string]string `yaml:"exits,omitempty"`
}

// WallsYAML is the wall tuple of a room.
type WallsYAML struct {
	Top    bool `yaml:"top"`
	Bottom bool `yaml:"bottom"`
	Left   bool `yaml:"left"`
	Right  bool `yaml:"right"`
}

// WriteYAML writes the labyrinth to dir/labyrinth.yaml, rooms in row order,
// and returns the file path.
func (l *Labyrinth) WriteYAML(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	rooms := yaml.Node{Kind: yaml.MappingNode}
	for _, room := range l.SortedRooms() {
		var value yaml.Node
		if err := value.Encode(roomToYAML(room)); err != nil {
			return "", fmt.Errorf("failed to encode room %s: %w", room.ID, err)
		}
		rooms.Content = append(rooms.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: room.ID},
			&value,
		)
	}

	doc := LabyrinthConfig{
		Width:       l.Width,
		Height:      l.Height,
		Seed:        l.Seed,
		Fingerprint: l.Fingerprint,
		ExitSide:    l.ExitSide,
		StartRoom:   l.StartRoom,
		ExitRoom:    l.ExitRoom,
		KeyRoom:     l.KeyRoom,
		Rooms:       rooms,
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "# Generated maze: %dx%d grid, seed %d\n", l.Width, l.Height, l.Seed)
	fmt.Fprintf(f, "# Total rooms: %d\n\n", len(rooms.Content)/2)

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to flush YAML: %w", err)
	}

	return path, nil
}

func roomToYAML(room *Room) RoomConfigYAML {
	return RoomConfigYAML{
		Name:     room.Name,
		Type:     room.Type,
		X:        room.X,
		Y:        room.Y,
		Features: room.Features,
		Walls: WallsYAML{
			Top:    room.Walls.Top,
			Bottom: room.Walls.Bottom,
			Left:   room.Walls.Left,
			Right:  room.Walls.Right,
		},
		Exits: room.Exits,
	}
}

// LoadFromYAML loads the labyrinth from a YAML file
func LoadFromYAML(filename string) (*Labyrinth, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read labyrinth file: %w", err)
	}

	var config LabyrinthConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse labyrinth YAML: %w", err)
	}

	return CreateLabyrinth(&config)
}

// CreateLabyrinth creates a labyrinth from a configuration
func CreateLabyrinth(config *LabyrinthConfig) (*Labyrinth, error) {
	if config == nil || config.Rooms.Kind == 0 {
		return nil, fmt.Errorf("labyrinth configuration is empty")
	}

	var rooms map[string]RoomConfigYAML
	if err := config.Rooms.Decode(&rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("labyrinth configuration is empty")
	}

	lab := New()
	lab.Width = config.Width
	lab.Height = config.Height
	lab.Seed = config.Seed
	lab.Fingerprint = config.Fingerprint
	lab.ExitSide = config.ExitSide
	lab.StartRoom = config.StartRoom
	lab.ExitRoom = config.ExitRoom
	lab.KeyRoom = config.KeyRoom

	for roomID, def := range rooms {
		exits := def.Exits
		if exits == nil {
			exits = make(map[string]string)
		}
		lab.addRoom(&Room{
			ID:       roomID,
			Name:     def.Name,
			Type:     def.Type,
			X:        def.X,
			Y:        def.Y,
			Features: def.Features,
			Walls: maze.Walls{
				Top:    def.Walls.Top,
				Bottom: def.Walls.Bottom,
				Left:   def.Walls.Left,
				Right:  def.Walls.Right,
			},
			Exits: exits,
		})
	}

	// Passages run both ways.
	for roomID, room := range lab.Rooms {
		for direction, target := range room.Exits {
			other, ok := lab.Rooms[target]
			if !ok {
				return nil, fmt.Errorf("room %s exit %s leads to unknown room %s", roomID, direction, target)
			}
			d, ok := maze.ParseDirection(direction)
			if !ok {
				return nil, fmt.Errorf("room %s has unknown exit direction %q", roomID, direction)
			}
			if other.Exits[d.Opposite().String()] != roomID {
				return nil, fmt.Errorf("room %s exit %s has no way back from %s", roomID, direction, target)
			}
		}
	}

	return lab, nil
}

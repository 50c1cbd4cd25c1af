// Package labyrinth exports a generated maze as a graph of named rooms and
// loads such graphs back from YAML.
package labyrinth

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lawnchairsociety/mazecarver/internal/layout"
	"github.com/lawnchairsociety/mazecarver/internal/maze"
)

// ErrMismatch is returned by Verify when a labyrinth does not describe the
// given maze.
var ErrMismatch = errors.New("labyrinth does not match maze")

// Room features.
const (
	FeatureStart   = "start"
	FeatureExit    = "exit"
	FeatureKey     = "key"
	FeatureDeadEnd = "dead_end"
)

// Room is one maze cell seen as a place.
type Room struct {
	ID       string
	Name     string
	Type     string
	X, Y     int
	Features []string
	Walls    maze.Walls
	Exits    map[string]string // direction name -> room ID
}

// HasFeature reports whether the room carries the named feature.
func (r *Room) HasFeature(feature string) bool {
	for _, f := range r.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Labyrinth is a maze converted to rooms.
type Labyrinth struct {
	Width       int
	Height      int
	Seed        int64
	Fingerprint string
	ExitSide    string
	StartRoom   string
	ExitRoom    string
	KeyRoom     string
	Rooms       map[string]*Room
}

// New creates a new empty labyrinth
func New() *Labyrinth {
	return &Labyrinth{
		Rooms: make(map[string]*Room),
	}
}

// RoomID names the room for cell (x, y).
func RoomID(x, y int) string {
	return fmt.Sprintf("cell_%d_%d", x, y)
}

// Build converts m and its layout into rooms. Exits follow the open
// passages; walls are the derived walls with the exit side opened.
func Build(m *maze.Maze, l layout.Layout, seed int64) *Labyrinth {
	lab := New()
	lab.Width = m.Width()
	lab.Height = m.Height()
	lab.Seed = seed
	lab.Fingerprint = m.Fingerprint()
	lab.ExitSide = l.ExitSide.String()
	lab.StartRoom = RoomID(l.Start.X, l.Start.Y)
	lab.ExitRoom = RoomID(l.Exit.X, l.Exit.Y)
	lab.KeyRoom = RoomID(l.Key.X, l.Key.Y)

	for _, c := range m.Cells() {
		p := c.Point()
		walls, _ := l.WallsAt(m, p)

		room := &Room{
			ID:    RoomID(p.X, p.Y),
			Type:  "passage",
			X:     p.X,
			Y:     p.Y,
			Walls: walls,
			Exits: make(map[string]string),
		}

		exits := m.Exits(p)
		for _, d := range exits {
			n := p.Step(d)
			room.Exits[d.String()] = RoomID(n.X, n.Y)
		}

		switch p {
		case l.Start:
			room.Type = FeatureStart
			room.Features = append(room.Features, FeatureStart)
		case l.Exit:
			room.Type = FeatureExit
			room.Features = append(room.Features, FeatureExit)
		}
		if p == l.Key {
			room.Features = append(room.Features, FeatureKey)
		}
		if len(exits) == 1 {
			room.Features = append(room.Features, FeatureDeadEnd)
		}
		room.Name = roomName(room, len(exits))

		lab.addRoom(room)
	}

	return lab
}

// roomName picks a name from the room's role, or from its shape.
func roomName(room *Room, exits int) string {
	switch {
	case room.HasFeature(FeatureStart):
		return "Entrance"
	case room.HasFeature(FeatureExit):
		return "Exit Gate"
	case room.HasFeature(FeatureKey):
		return "Key Chamber"
	}

	variant := (room.X + room.Y*3) % 3
	switch exits {
	case 1:
		return []string{"Dead End", "Sealed Alcove", "Collapsed Passage"}[variant]
	case 2:
		return []string{"Winding Passage", "Stone Corridor", "Dusty Hallway"}[variant]
	case 3:
		return []string{"Junction", "Fork in the Path", "Branching Passage"}[variant]
	default:
		return []string{"Crossroads", "Central Chamber", "Meeting of Paths"}[variant]
	}
}

func (l *Labyrinth) addRoom(room *Room) {
	l.Rooms[room.ID] = room
}

// GetRoom returns a room by ID
func (l *Labyrinth) GetRoom(roomID string) *Room {
	return l.Rooms[roomID]
}

// RoomCount returns the number of rooms in the labyrinth
func (l *Labyrinth) RoomCount() int {
	return len(l.Rooms)
}

// SortedRooms returns the rooms row by row from y = 0.
func (l *Labyrinth) SortedRooms() []*Room {
	rooms := make([]*Room, 0, len(l.Rooms))
	for _, room := range l.Rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Y != rooms[j].Y {
			return rooms[i].Y < rooms[j].Y
		}
		return rooms[i].X < rooms[j].X
	})
	return rooms
}

// Start returns the cell of the start room.
func (l *Labyrinth) Start() (maze.Point, error) {
	room := l.GetRoom(l.StartRoom)
	if room == nil {
		return maze.Point{}, fmt.Errorf("start room %q not found", l.StartRoom)
	}
	return maze.Point{X: room.X, Y: room.Y}, nil
}

// Regenerate carves the maze the labyrinth was built from, using its seed,
// size and start room.
func (l *Labyrinth) Regenerate() (*maze.Maze, error) {
	start, err := l.Start()
	if err != nil {
		return nil, err
	}
	return maze.Generate(l.Width, l.Height, start.X, start.Y, maze.NewSource(l.Seed))
}

// Verify checks that the labyrinth describes m: same size, same fingerprint
// when one is recorded, and exits matching the open passages of every cell.
func (l *Labyrinth) Verify(m *maze.Maze) error {
	if l.Width != m.Width() || l.Height != m.Height() {
		return fmt.Errorf("%w: size %dx%d, maze is %dx%d",
			ErrMismatch, l.Width, l.Height, m.Width(), m.Height())
	}
	if l.Fingerprint != "" && l.Fingerprint != m.Fingerprint() {
		return fmt.Errorf("%w: fingerprint %s, maze is %s", ErrMismatch, l.Fingerprint, m.Fingerprint())
	}
	if l.RoomCount() != m.Size() {
		return fmt.Errorf("%w: %d rooms for %d cells", ErrMismatch, l.RoomCount(), m.Size())
	}

	for _, c := range m.Cells() {
		p := c.Point()
		room := l.GetRoom(RoomID(p.X, p.Y))
		if room == nil {
			return fmt.Errorf("%w: missing room %s", ErrMismatch, RoomID(p.X, p.Y))
		}
		for _, d := range maze.AllDirections() {
			target, hasExit := room.Exits[d.String()]
			if hasExit != m.Open(p, d) {
				return fmt.Errorf("%w: room %s exit %s", ErrMismatch, room.ID, d)
			}
			if hasExit {
				n := p.Step(d)
				if target != RoomID(n.X, n.Y) {
					return fmt.Errorf("%w: room %s exit %s leads to %s", ErrMismatch, room.ID, d, target)
				}
			}
		}
	}

	return nil
}

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSaveNotFound is returned when a save lookup fails.
var ErrSaveNotFound = errors.New("save not found")

// ErrSaveExists is returned when trying to create a save with an ID already in use.
var ErrSaveExists = errors.New("save already exists")

// Save is the persisted state of a game in progress. The maze itself is not
// stored; it is regenerated from Seed, Width and Height and checked against
// Fingerprint.
type Save struct {
	ID          string
	Seed        int64
	Width       int
	Height      int
	Lives       int
	HasKey      bool
	PlayTime    float64
	PlayerX     int
	PlayerY     int
	Fingerprint string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const saveColumns = "id, seed, width, height, lives, has_key, play_time, player_x, player_y, fingerprint, created_at, updated_at"

// CreateSave inserts a new save. An empty ID is replaced with a random UUID.
func (d *Database) CreateSave(s *Save) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Second)
	s.CreatedAt = now
	s.UpdatedAt = now

	return d.insertSave(s)
}

// ImportSave inserts a save copied from another database, keeping its ID
// and timestamps.
func (d *Database) ImportSave(s *Save) error {
	if s.ID == "" {
		return fmt.Errorf("failed to import save: empty ID")
	}
	return d.insertSave(s)
}

func (d *Database) insertSave(s *Save) error {
	_, err := d.db.Exec(
		d.qb.Build("INSERT INTO saves ("+saveColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		s.ID, s.Seed, s.Width, s.Height, s.Lives, s.HasKey, s.PlayTime,
		s.PlayerX, s.PlayerY, s.Fingerprint, s.CreatedAt.Unix(), s.UpdatedAt.Unix(),
	)
	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return ErrSaveExists
		}
		return fmt.Errorf("failed to create save: %w", err)
	}
	return nil
}

// GetSave retrieves a save by ID.
func (d *Database) GetSave(id string) (*Save, error) {
	row := d.db.QueryRow(d.qb.Build("SELECT "+saveColumns+" FROM saves WHERE id = ?"), id)
	s, err := scanSave(row)
	if err == sql.ErrNoRows {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get save: %w", err)
	}
	return s, nil
}

// UpdateSave overwrites the mutable fields of an existing save.
func (d *Database) UpdateSave(s *Save) error {
	now := time.Now().UTC().Truncate(time.Second)

	result, err := d.db.Exec(
		d.qb.Build(`UPDATE saves SET lives = ?, has_key = ?, play_time = ?, player_x = ?, player_y = ?, updated_at = ?
			WHERE id = ?`),
		s.Lives, s.HasKey, s.PlayTime, s.PlayerX, s.PlayerY, now.Unix(), s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update save: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrSaveNotFound
	}

	s.UpdatedAt = now
	return nil
}

// DeleteSave removes a save by ID.
func (d *Database) DeleteSave(id string) error {
	result, err := d.db.Exec(d.qb.Build("DELETE FROM saves WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrSaveNotFound
	}
	return nil
}

// ListSaves returns all saves, most recently updated first.
func (d *Database) ListSaves() ([]*Save, error) {
	rows, err := d.db.Query("SELECT " + saveColumns + " FROM saves ORDER BY updated_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var saves []*Save
	for rows.Next() {
		s, err := scanSave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		saves = append(saves, s)
	}
	return saves, rows.Err()
}

// HasSaves reports whether at least one save exists.
func (d *Database) HasSaves() (bool, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM saves").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count saves: %w", err)
	}
	return count > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSave(row scanner) (*Save, error) {
	var s Save
	var createdAt, updatedAt int64
	err := row.Scan(
		&s.ID, &s.Seed, &s.Width, &s.Height, &s.Lives, &s.HasKey, &s.PlayTime,
		&s.PlayerX, &s.PlayerY, &s.Fingerprint, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = time.Unix(createdAt, 0).UTC()
	s.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &s, nil
}

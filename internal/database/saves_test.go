package database

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestSave() *Save {
	return &Save{
		Seed:        42,
		Width:       10,
		Height:      12,
		Lives:       2,
		PlayTime:    1.5,
		PlayerX:     3,
		PlayerY:     4,
		Fingerprint: "abc123",
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "saves.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.IsType(t, &SQLiteDialect{}, db.Dialect())
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.CreateSave(newTestSave()))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	has, err := db.HasSaves()
	require.NoError(t, err)
	assert.True(t, has)
}

func TestOpenWithConfig_UnknownDriver(t *testing.T) {
	_, err := OpenWithConfig(Config{Driver: "oracle"})
	assert.Error(t, err)
}

func TestCreateSave_AssignsID(t *testing.T) {
	db := openTestDB(t)

	s := newTestSave()
	require.NoError(t, db.CreateSave(s))
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.CreatedAt.IsZero())

	got, err := db.GetSave(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Seed, got.Seed)
	assert.Equal(t, 10, got.Width)
	assert.Equal(t, 12, got.Height)
	assert.Equal(t, 2, got.Lives)
	assert.False(t, got.HasKey)
	assert.InDelta(t, 1.5, got.PlayTime, 1e-9)
	assert.Equal(t, 3, got.PlayerX)
	assert.Equal(t, 4, got.PlayerY)
	assert.Equal(t, "abc123", got.Fingerprint)
	assert.Equal(t, s.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestCreateSave_Duplicate(t *testing.T) {
	db := openTestDB(t)

	s := newTestSave()
	s.ID = "fixed"
	require.NoError(t, db.CreateSave(s))

	dup := newTestSave()
	dup.ID = "fixed"
	assert.ErrorIs(t, db.CreateSave(dup), ErrSaveExists)
}

func TestGetSave_NotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetSave("missing")
	assert.ErrorIs(t, err, ErrSaveNotFound)
}

func TestUpdateSave(t *testing.T) {
	db := openTestDB(t)

	s := newTestSave()
	require.NoError(t, db.CreateSave(s))

	s.Lives = 1
	s.HasKey = true
	s.PlayTime = 99.25
	s.PlayerX = 9
	s.PlayerY = 11
	require.NoError(t, db.UpdateSave(s))

	got, err := db.GetSave(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Lives)
	assert.True(t, got.HasKey)
	assert.InDelta(t, 99.25, got.PlayTime, 1e-9)
	assert.Equal(t, 9, got.PlayerX)
	assert.Equal(t, 11, got.PlayerY)
	// Maze identity is fixed at creation.
	assert.Equal(t, int64(42), got.Seed)
}

func TestUpdateSave_NotFound(t *testing.T) {
	db := openTestDB(t)

	s := newTestSave()
	s.ID = "missing"
	assert.ErrorIs(t, db.UpdateSave(s), ErrSaveNotFound)
}

func TestDeleteSave(t *testing.T) {
	db := openTestDB(t)

	s := newTestSave()
	require.NoError(t, db.CreateSave(s))
	require.NoError(t, db.DeleteSave(s.ID))

	_, err := db.GetSave(s.ID)
	assert.ErrorIs(t, err, ErrSaveNotFound)
	assert.ErrorIs(t, db.DeleteSave(s.ID), ErrSaveNotFound)
}

func TestListSaves(t *testing.T) {
	db := openTestDB(t)

	saves, err := db.ListSaves()
	require.NoError(t, err)
	assert.Empty(t, saves)

	has, err := db.HasSaves()
	require.NoError(t, err)
	assert.False(t, has)

	for i := 0; i < 3; i++ {
		s := newTestSave()
		s.ID = "save-" + strconv.Itoa(i)
		s.Seed = int64(i)
		require.NoError(t, db.CreateSave(s))
	}

	saves, err = db.ListSaves()
	require.NoError(t, err)
	require.Len(t, saves, 3)

	ids := make(map[string]bool)
	for _, s := range saves {
		ids[s.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestImportSave_KeepsTimestamps(t *testing.T) {
	src := openTestDB(t)
	dst := openTestDB(t)

	s := newTestSave()
	require.NoError(t, src.CreateSave(s))
	original, err := src.GetSave(s.ID)
	require.NoError(t, err)
	original.CreatedAt = original.CreatedAt.Add(-48 * time.Hour)
	original.UpdatedAt = original.UpdatedAt.Add(-24 * time.Hour)

	require.NoError(t, dst.ImportSave(original))
	assert.ErrorIs(t, dst.ImportSave(original), ErrSaveExists)

	got, err := dst.GetSave(s.ID)
	require.NoError(t, err)
	assert.Equal(t, original.CreatedAt.Unix(), got.CreatedAt.Unix())
	assert.Equal(t, original.UpdatedAt.Unix(), got.UpdatedAt.Unix())
	assert.Equal(t, original.Fingerprint, got.Fingerprint)

	assert.Error(t, dst.ImportSave(&Save{}))
}

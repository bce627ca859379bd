package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"users", "habits", "habit_completions", "mood_samples", "correlations"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_habits_user", "idx_completions_user_ts", "idx_mood_user_ts"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_MoodLevelCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO users (id, phone, created_at, updated_at) VALUES ('u1', '+100', 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO mood_samples (id, user_id, timestamp, level) VALUES ('m1', 'u1', 'x', 11)`)
	assert.Error(t, err, "level outside 1..10 must be rejected")

	_, err = db.Exec(`INSERT INTO mood_samples (id, user_id, timestamp, level) VALUES ('m2', 'u1', 'x', 10)`)
	assert.NoError(t, err)
}

func TestMigrate_CorrelationPrimaryKey(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO users (id, phone, created_at, updated_at) VALUES ('u1', '+100', 'x', 'x')`)
	require.NoError(t, err)
	insert := `INSERT INTO correlations (user_id, factor_name, impact, confidence, computed_at) VALUES ('u1', 'gym', 0.4, 1, 'x')`
	_, err = db.Exec(insert)
	require.NoError(t, err)
	_, err = db.Exec(insert)
	assert.Error(t, err, "duplicate (user_id, factor_name) must be rejected")
}

func TestOpenDB_FileUsesWAL(t *testing.T) {
	db, err := OpenDB(t.TempDir() + "/wal.db")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

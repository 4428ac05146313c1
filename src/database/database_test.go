package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradingjournal/backend/src/logger"
	_ "modernc.org/sqlite"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func tableNames(t *testing.T, db *sql.DB) map[string]bool {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table'`)
	require.NoError(t, err)
	defer rows.Close()

	names := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names[name] = true
	}
	require.NoError(t, rows.Err())
	return names
}

func TestRunMigrationsResolvesRelativePath(t *testing.T) {
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(on)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	prev := DB
	DB = db
	t.Cleanup(func() { DB = prev })

	RunMigrations("tradingjournal", filepath.Join("..", "..", "db", "migrations"))

	names := tableNames(t, db)
	assert.True(t, names["users"])
	assert.True(t, names["sessions"])
	assert.True(t, names["accounts"])
	assert.True(t, names["trading_plans"])
	assert.True(t, names["trading_daily_books"])
}

func TestRunMigrationsAcceptsAbsolutePath(t *testing.T) {
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(on)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	prev := DB
	DB = db
	t.Cleanup(func() { DB = prev })

	abs, err := filepath.Abs(filepath.Join("..", "..", "db", "migrations"))
	require.NoError(t, err)

	RunMigrations("tradingjournal", abs)

	names := tableNames(t, db)
	assert.True(t, names["accounts"])
}

package services

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"github.com/username/tradingjournal/backend/src/logger"
	_ "modernc.org/sqlite"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// newTestDB opens an in-memory sqlite database and applies the initial
// schema migration.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(on)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "db", "migrations", "000001_initial_schema.up.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

// newTestUser inserts a user row and returns its ID.
func newTestUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()
	res, err := db.Exec(`
	INSERT INTO users (username, email, password, auth_provider, is_active, created_at, updated_at)
	VALUES (?, ?, 'x', 'local', 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, username, username+"@example.com")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func newProjectionCache() *cache.Cache {
	return cache.New(DefaultCacheExpiration, CacheCleanupInterval)
}

// Package testdb opens throwaway databases with the production schema for tests.
package testdb

import (
	"fmt"
	"path/filepath"
	"testing"

	"makanapa/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SQLitePath returns a database file location inside the test's temp dir.
func SQLitePath(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "makanapa.db")
}

// SQLiteDSN enables foreign keys and a busy timeout on the given file.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

// OpenSQLite opens (or reopens) the database file at path and migrates it.
func OpenSQLite(t testing.TB, path string) *gorm.DB {
	t.Helper()

	db, err := postgres.Open(postgres.Config{Driver: "sqlite", DSN: SQLiteDSN(path)})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewSQLite opens a fresh migrated database.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	return OpenSQLite(t, SQLitePath(t))
}

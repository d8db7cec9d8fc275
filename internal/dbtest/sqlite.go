// Package dbtest opens throwaway gorm databases for store tests.
package dbtest

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"paroquia-backend/internal/repo"
)

// Open returns a migrated in-memory SQLite database private to t. SQLite has
// no row locks; the locking clause is dropped by the dialect.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", "file::memory:?_time_format=sqlite")
	require.NoError(t, err)
	// every connection would get its own in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

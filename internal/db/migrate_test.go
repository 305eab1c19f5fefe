package db

import (
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), GormConfig())
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gormDB
}

func TestMigrateFSAppliesInOrderOnce(t *testing.T) {
	gormDB := openSQLite(t)
	fsys := fstest.MapFS{
		"migrations/0002_index.sql": {Data: []byte("CREATE INDEX idx_notes_body ON notes (body);")},
		"migrations/0001_init.sql":  {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);")},
		"migrations/0003_empty.sql": {Data: []byte("  \n")},
		"migrations/README.md":      {Data: []byte("not a migration")},
	}

	applied, err := MigrateFS(gormDB, fsys, "migrations")
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_index.sql"}, applied)

	applied, err = MigrateFS(gormDB, fsys, "migrations")
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestMigrateFSStopsOnFailure(t *testing.T) {
	gormDB := openSQLite(t)
	fsys := fstest.MapFS{
		"migrations/0001_init.sql":   {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
		"migrations/0002_broken.sql": {Data: []byte("CREATE TABLE broken (")},
	}

	applied, err := MigrateFS(gormDB, fsys, "migrations")
	require.Error(t, err)
	assert.Equal(t, []string{"0001_init.sql"}, applied)

	done, err := isMigrationApplied(gormDB, "0002_broken.sql")
	require.NoError(t, err)
	assert.False(t, done)
}

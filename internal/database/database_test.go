package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StaffDesk-io/staffdesk/internal/config"
)

func sqliteConfig(path string) *config.Config {
	cfg := &config.Config{}
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = path
	return cfg
}

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "staffdesk.db")

	db, dbType, err := Open(sqliteConfig(dbPath))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "sqlite", dbType)

	for _, table := range []string{"users", "tokens", "employees", "schema_migrations"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist after migrations", table)
		assert.Equal(t, table, name)
	}
}

func TestOpenSQLiteInMemory(t *testing.T) {
	db, dbType, err := Open(sqliteConfig(":memory:"))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "sqlite", dbType)

	_, err = db.Exec("INSERT INTO users (name, email, password) VALUES (?, ?, ?)",
		"Test User", "test@example.com", "hashed")
	assert.NoError(t, err)
}

func TestOpenUnsupportedType(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Type = "oracle"

	_, _, err := Open(cfg)
	assert.Error(t, err)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "staffdesk.db")

	db, _, err := Open(sqliteConfig(dbPath))
	require.NoError(t, err)

	// Running them again against the same database must be a no-op.
	require.NoError(t, RunMigrations(db, "sqlite"))
	db.Close()

	db2, _, err := Open(sqliteConfig(dbPath))
	require.NoError(t, err)
	defer db2.Close()

	var count int
	require.NoError(t, db2.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, len(getSQLiteMigrations()), count)
}

func TestMigrationVersionsAreOrdered(t *testing.T) {
	for _, migrations := range [][]Migration{getSQLiteMigrations(), getPostgresMigrations()} {
		for i, m := range migrations {
			assert.Equal(t, i+1, m.Version, "migration versions must be sequential")
			assert.NotEmpty(t, m.Description)
			assert.NotEmpty(t, m.SQL)
		}
	}
}

package db

import (
	"fitness_tracker/internal/config"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector_Drivers(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBName: "fitness"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}
}

func TestDialector_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DatabaseURL: filepath.Join(t.TempDir(), "fitness.db"), IsProd: true}

	gdb, err := Open(cfg)
	require.NoError(t, err)
	defer Close(gdb)

	require.NoError(t, Migrate(gdb))
	for _, table := range []string{"users", "exercises", "workouts", "workout_exercises"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}

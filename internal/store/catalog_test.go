package store

import (
	"context"
	"fitness_tracker/internal/domain"
	"fitness_tracker/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	catalog := NewCatalog(gdb)

	n, err := catalog.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, BuiltinExerciseCount, n)

	n, err = catalog.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// A fresh process sees a populated store and inserts nothing
	n, err = NewCatalog(gdb).Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	var count int64
	require.NoError(t, gdb.Model(&domain.Exercise{}).Count(&count).Error)
	assert.Equal(t, int64(BuiltinExerciseCount), count)
}

func TestCatalog_SeedSkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	require.NoError(t, gdb.Create(&domain.Exercise{Name: "Burpees", Category: "Cardio"}).Error)

	exercises, err := NewCatalog(gdb).List(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Burpees", exercises[0].Name)
}

func TestCatalog_FirstAccessSeeds(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(testutil.NewDB(t))

	exercises, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, BuiltinExerciseCount)
	assert.Equal(t, "Push-ups", exercises[0].Name)

	again, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, again, BuiltinExerciseCount)
}

func TestCatalog_GetAndCreate(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(testutil.NewDB(t))

	created, err := catalog.Create(ctx, domain.ExerciseInput{Name: "  Burpees  "})
	require.NoError(t, err)
	assert.Equal(t, "Burpees", created.Name)
	assert.Equal(t, domain.DefaultExerciseCategory, created.Category)
	assert.Equal(t, domain.DefaultExerciseImage, created.Image)
	assert.Empty(t, created.Muscle)
	assert.Empty(t, created.Description)

	got, err := catalog.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	// The built-in set was seeded before the insert
	all, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, BuiltinExerciseCount+1)

	_, err = catalog.Get(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = catalog.Create(ctx, domain.ExerciseInput{Name: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

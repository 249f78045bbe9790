package store

import (
	"context"                         // Request scoped operations
	"errors"                          // Error classification
	"fitness_tracker/internal/domain" // Domain models and errors
	"fmt"                             // Error wrapping
	"strings"                         // Input normalization
	"sync/atomic"                     // Seed flag

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// builtinExercises is the catalog inserted into an empty store
var builtinExercises = []domain.Exercise{
	{Name: "Push-ups", Category: "Chest", Muscle: "Chest, Triceps", Description: "Classic bodyweight exercise for upper body strength", Image: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400&h=300&fit=crop"},
	{Name: "Squats", Category: "Legs", Muscle: "Quadriceps, Glutes", Description: "Fundamental lower body exercise", Image: "https://images.unsplash.com/photo-1549060279-7e168fcee0c2?w=400&h=300&fit=crop"},
	{Name: "Pull-ups", Category: "Back", Muscle: "Lats, Biceps", Description: "Upper body pulling exercise", Image: "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=400&h=300&fit=crop"},
	{Name: "Deadlifts", Category: "Back", Muscle: "Hamstrings, Glutes, Back", Description: "Compound movement for posterior chain", Image: "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=400&h=300&fit=crop"},
	{Name: "Bench Press", Category: "Chest", Muscle: "Chest, Shoulders, Triceps", Description: "Classic chest building exercise", Image: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400&h=300&fit=crop"},
	{Name: "Plank", Category: "Core", Muscle: "Abs, Core", Description: "Isometric core strengthening exercise", Image: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400&h=300&fit=crop"},
	{Name: "Lunges", Category: "Legs", Muscle: "Quadriceps, Glutes", Description: "Unilateral leg exercise", Image: "https://images.unsplash.com/photo-1549060279-7e168fcee0c2?w=400&h=300&fit=crop"},
	{Name: "Shoulder Press", Category: "Shoulders", Muscle: "Deltoids, Triceps", Description: "Overhead pressing movement", Image: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400&h=300&fit=crop"},
}

// BuiltinExerciseCount is the size of the bootstrap catalog
var BuiltinExerciseCount = len(builtinExercises)

// Catalog is the shared exercise collection
type Catalog struct {
	db     *gorm.DB    // Database handle
	seeded atomic.Bool // Set once Seed has confirmed a non-empty catalog
}

// NewCatalog creates the exercise catalog
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Seed inserts the built-in exercises when the catalog is empty and reports how many were inserted
func (c *Catalog) Seed(ctx context.Context) (int, error) {
	inserted := 0
	err := c.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Exercise{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil // Already seeded or populated
		}
		rows := make([]domain.Exercise, len(builtinExercises))
		copy(rows, builtinExercises)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		inserted = len(rows)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed exercises: %w", err)
	}
	c.seeded.Store(true)
	if inserted > 0 {
		logrus.WithField("count", inserted).Info("Exercise catalog seeded")
	}
	return inserted, nil
}

// ensureSeeded runs Seed on the first catalog access after start-up
func (c *Catalog) ensureSeeded(ctx context.Context) error {
	if c.seeded.Load() {
		return nil
	}
	_, err := c.Seed(ctx)
	return err
}

// List returns every exercise ordered by id
func (c *Catalog) List(ctx context.Context) ([]domain.Exercise, error) {
	if err := c.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	var exercises []domain.Exercise
	if err := c.db.WithContext(ctx).Order("id").Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// Get returns a single exercise or ErrNotFound
func (c *Catalog) Get(ctx context.Context, id uint) (*domain.Exercise, error) {
	if err := c.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	var exercise domain.Exercise
	err := c.db.WithContext(ctx).First(&exercise, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("find exercise: %w", err)
	}
	return &exercise, nil
}

// Create adds an exercise; only the name is required
func (c *Catalog) Create(ctx context.Context, in domain.ExerciseInput) (*domain.Exercise, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := c.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	exercise := domain.Exercise{
		Name:        name,
		Category:    in.Category,
		Muscle:      in.Muscle,
		Description: in.Description,
		Image:       in.Image,
	}
	if exercise.Category == "" {
		exercise.Category = domain.DefaultExerciseCategory
	}
	if exercise.Image == "" {
		exercise.Image = domain.DefaultExerciseImage
	}
	if err := c.db.WithContext(context.WithoutCancel(ctx)).Create(&exercise).Error; err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return &exercise, nil
}

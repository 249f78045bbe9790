package store

import (
	"context"                         // Request scoped operations
	"errors"                          // Error classification
	"fitness_tracker/internal/domain" // Domain models and errors
	"fmt"                             // Error wrapping
	"strings"                         // Input normalization
	"time"                            // Clock

	"gorm.io/gorm" // GORM ORM library
)

// Workouts is the workout aggregate store. Every operation is scoped to the owning user.
type Workouts struct {
	db      *gorm.DB         // Database handle
	catalog *Catalog         // Joined at read time, seeded before first use
	now     func() time.Time // Clock for the date fallback
}

// NewWorkouts creates the workout store. Entries resolve their exercise through catalog.
func NewWorkouts(db *gorm.DB, catalog *Catalog) *Workouts {
	return &Workouts{db: db, catalog: catalog, now: time.Now}
}

// ensureCatalog seeds the catalog the entries join against
func (s *Workouts) ensureCatalog(ctx context.Context) error {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.ensureSeeded(ctx)
}

// entryRow is a workout entry joined with its exercise
type entryRow struct {
	domain.WorkoutEntry
	JoinedName  *string `gorm:"column:joined_name"`
	JoinedImage *string `gorm:"column:joined_image"`
}

func validateEntries(entries []domain.EntryInput) error {
	for i, e := range entries {
		if e.ExerciseID == 0 || e.Sets <= 0 || e.Reps <= 0 {
			return fmt.Errorf("%w: exercise %d needs exerciseId, sets > 0 and reps > 0", domain.ErrValidation, i+1)
		}
	}
	return nil
}

// insertEntries writes entries for workoutID inside tx
func insertEntries(tx *gorm.DB, workoutID uint, entries []domain.EntryInput) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]domain.WorkoutEntry, len(entries))
	for i, e := range entries {
		rows[i] = domain.WorkoutEntry{
			WorkoutID:  workoutID,
			ExerciseID: e.ExerciseID,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Weight:     e.Weight,
		}
		if e.Notes != nil {
			rows[i].Notes = *e.Notes
		}
	}
	return tx.Create(&rows).Error
}

// Create stores a workout and its entries atomically
func (s *Workouts) Create(ctx context.Context, userID uint, in domain.WorkoutInput) (*domain.Workout, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validateEntries(in.Entries); err != nil {
		return nil, err
	}
	if err := s.ensureCatalog(ctx); err != nil {
		return nil, err
	}
	workout := domain.Workout{
		Name:     name,
		Date:     dateOrNow(in.Date, s.now),
		Duration: in.Duration,
		UserID:   userID,
	}
	// Start transaction, detached from request cancellation
	err := s.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workout).Error; err != nil {
			return err // Rollback if workout insert fails
		}
		return insertEntries(tx, workout.ID, in.Entries) // Rollback if any entry fails
	})
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	return s.Get(ctx, userID, workout.ID)
}

// List returns the user's workouts, newest first, with resolved entries
func (s *Workouts) List(ctx context.Context, userID uint) ([]domain.Workout, error) {
	if err := s.ensureCatalog(ctx); err != nil {
		return nil, err
	}
	var workouts []domain.Workout
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc").
		Order("id desc").
		Find(&workouts).Error
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	if err := s.attachEntries(s.db.WithContext(ctx), workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Get returns one of the user's workouts; someone else's workout is ErrNotFound
func (s *Workouts) Get(ctx context.Context, userID, workoutID uint) (*domain.Workout, error) {
	if err := s.ensureCatalog(ctx); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	workout, err := findOwned(db, userID, workoutID)
	if err != nil {
		return nil, err
	}
	list := []domain.Workout{*workout}
	if err := s.attachEntries(db, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// Update applies a partial update; a present entries list replaces all entries
func (s *Workouts) Update(ctx context.Context, userID, workoutID uint, patch domain.WorkoutPatch) (*domain.Workout, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		updates["name"] = name
	}
	if patch.Date != nil {
		// An unparseable date on update keeps the stored one
		if t, ok := parseDate(*patch.Date); ok {
			updates["date"] = t
		}
	}
	if patch.DurationSet {
		updates["duration"] = patch.Duration
	}
	if patch.EntriesSet {
		if err := validateEntries(patch.Entries); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		workout, err := findOwned(tx, userID, workoutID)
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(workout).Updates(updates).Error; err != nil {
				return err
			}
		}
		if patch.EntriesSet {
			if err := tx.Where("workout_id = ?", workout.ID).Delete(&domain.WorkoutEntry{}).Error; err != nil {
				return err
			}
			if err := insertEntries(tx, workout.ID, patch.Entries); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if err != nil {
		return nil, fmt.Errorf("update workout: %w", err)
	}
	return s.Get(ctx, userID, workoutID)
}

// Delete removes the workout and its entries atomically
func (s *Workouts) Delete(ctx context.Context, userID, workoutID uint) error {
	err := s.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		workout, err := findOwned(tx, userID, workoutID) // Ownership check inside the transaction
		if err != nil {
			return err
		}
		// Delete entries first, then the workout itself
		if err := tx.Where("workout_id = ?", workout.ID).Delete(&domain.WorkoutEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(workout).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return err
	} else if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// findOwned loads a workout filtered by owner, collapsing absence and foreign ownership
func findOwned(db *gorm.DB, userID, workoutID uint) (*domain.Workout, error) {
	var workout domain.Workout
	err := db.Where("id = ? AND user_id = ?", workoutID, userID).First(&workout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("find workout: %w", err)
	}
	return &workout, nil
}

// attachEntries loads entries for the given workouts, joining exercise name and image
func (s *Workouts) attachEntries(db *gorm.DB, workouts []domain.Workout) error {
	if len(workouts) == 0 {
		return nil
	}
	ids := make([]uint, len(workouts))
	index := make(map[uint]int, len(workouts))
	for i := range workouts {
		ids[i] = workouts[i].ID
		index[workouts[i].ID] = i
		workouts[i].Entries = []domain.WorkoutEntry{}
	}
	var rows []entryRow
	err := db.Table("workout_exercises AS we").
		Select("we.*, e.name AS joined_name, e.image AS joined_image").
		Joins("LEFT JOIN exercises AS e ON e.id = we.exercise_id").
		Where("we.workout_id IN ?", ids).
		Order("we.id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("load workout entries: %w", err)
	}
	for _, r := range rows {
		entry := r.WorkoutEntry
		entry.ExerciseName = domain.UnknownExerciseName
		entry.ExerciseImage = domain.UnknownExerciseImage
		if r.JoinedName != nil {
			entry.ExerciseName = *r.JoinedName
			if r.JoinedImage != nil {
				entry.ExerciseImage = *r.JoinedImage
			}
		}
		i := index[entry.WorkoutID]
		workouts[i].Entries = append(workouts[i].Entries, entry)
	}
	return nil
}

package domain

import "time" // Timestamps

// Workout Model
type Workout struct {
	ID        uint      `gorm:"primaryKey"`        // Primary key
	Name      string    `gorm:"size:100;not null"` // Workout name
	Date      time.Time `gorm:"not null;index"`    // When the workout happened
	Duration  *int      // Duration in minutes, optional
	UserID    uint      `gorm:"not null;index"` // Owning user
	CreatedAt time.Time // Creation time

	Entries []WorkoutEntry `gorm:"-"` // Resolved at read time, never persisted through this field
}

// TableName pins the workouts table name
func (Workout) TableName() string {
	return "workouts"
}

// WorkoutEntry Model, one exercise performed within a workout
type WorkoutEntry struct {
	ID         uint      `gorm:"primaryKey"`     // Primary key
	WorkoutID  uint      `gorm:"not null;index"` // Parent workout
	ExerciseID uint      `gorm:"not null;index"` // Weak reference to the catalog
	Sets       int       `gorm:"not null"`       // Number of sets
	Reps       int       `gorm:"not null"`       // Reps per set
	Weight     *float64  // Weight in kg, optional
	Notes      string    `gorm:"type:text"` // Free text, empty by default
	CreatedAt  time.Time // Creation time

	ExerciseName  string `gorm:"-"` // Joined from exercises at read time
	ExerciseImage string `gorm:"-"` // Joined from exercises at read time
}

// TableName pins the workout_exercises table name
func (WorkoutEntry) TableName() string {
	return "workout_exercises"
}

// EntryInput is one exercise entry supplied on create or replace
type EntryInput struct {
	ExerciseID uint
	Sets       int
	Reps       int
	Weight     *float64
	Notes      *string
}

// WorkoutInput carries the fields accepted when creating a workout
type WorkoutInput struct {
	Name     string
	Date     string // Parsed leniently, falls back to now
	Duration *int
	Entries  []EntryInput
}

// WorkoutPatch is a partial update. Nil pointers and unset flags leave the
// stored value untouched.
type WorkoutPatch struct {
	Name        *string
	Date        *string
	DurationSet bool // Duration key present; a nil Duration then clears it
	Duration    *int
	EntriesSet  bool // Exercises key present; entries are replaced wholesale
	Entries     []EntryInput
}

package domain

import "time" // Timestamps

// Default values for catalog entries created without the optional fields
const (
	DefaultExerciseCategory = "Other"
	DefaultExerciseImage    = "💪"
)

// Placeholders shown for workout entries whose exercise no longer exists
const (
	UnknownExerciseName  = "Unknown"
	UnknownExerciseImage = "💪"
)

// Exercise Model
type Exercise struct {
	ID          uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Name        string    `gorm:"size:100;not null" json:"name"`    // Display name
	Category    string    `gorm:"size:50;not null" json:"category"` // e.g. Chest, Legs
	Muscle      string    `gorm:"size:200" json:"muscle"`           // Muscles worked
	Description string    `gorm:"type:text" json:"description"`     // Free text
	Image       string    `gorm:"size:500" json:"image"`            // Emoji or image URL
	CreatedAt   time.Time `json:"-"`                                // Creation time
}

// TableName pins the exercises table name
func (Exercise) TableName() string {
	return "exercises"
}

// ExerciseInput carries the fields accepted when creating a catalog entry
type ExerciseInput struct {
	Name        string
	Category    string
	Muscle      string
	Description string
	Image       string
}

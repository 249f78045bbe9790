package db

import (
	"fitness_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table managed by AutoMigrate
func Models() []any {
	return []any{&domain.User{}, &domain.Exercise{}, &domain.Workout{}, &domain.WorkoutEntry{}}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

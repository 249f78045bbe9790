package main

import (
	"context"                         // Seed context
	"flag"                            // Command line flags
	"fitness_tracker/internal/config" // Custom import path (Config)
	"fitness_tracker/internal/db"     // Custom import path (Database)
	"fitness_tracker/internal/store"  // Exercise catalog

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", true, "insert the built-in exercises into an empty catalog")
	flag.Parse()

	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	if *seed {
		n, err := store.NewCatalog(gdb).Seed(context.Background())
		if err != nil {
			logrus.Fatalf("seed failed: %v", err)
		}
		logrus.WithField("inserted", n).Info("Seed completed.")
	}
}

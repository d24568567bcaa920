package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ecommerce-platform/internal/config"
	"ecommerce-platform/internal/database"
)

func main() {
	var (
		statusFlag = flag.Bool("status", false, "Show migration status")
		upFlag     = flag.Bool("up", false, "Run pending migrations")
		downFlag   = flag.Int("down", 0, "Roll back the given number of migrations")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch {
	case *statusFlag:
		state, err := database.MigrationStatus(ctx, db.DB)
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		if !state.Applied {
			fmt.Println("No migrations applied")
			return
		}
		fmt.Printf("Version: %d (dirty: %v)\n", state.Version, state.Dirty)
	case *upFlag:
		if err := db.RunMigrations(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("All migrations completed successfully!")
	case *downFlag > 0:
		if err := database.RollbackMigrations(ctx, db.DB, *downFlag); err != nil {
			log.Fatalf("Failed to roll back migrations: %v", err)
		}
		fmt.Printf("Rolled back %d migration(s)\n", *downFlag)
	default:
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/migrate -status   # Show migration status")
		fmt.Println("  go run ./cmd/migrate -up       # Run pending migrations")
		fmt.Println("  go run ./cmd/migrate -down N   # Roll back N migrations")
		os.Exit(1)
	}
}

package main

import (
	"log"

	"collabhub-be/internal/config"
	"collabhub-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.Database.Connection, cfg.Database.SQLitePath)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	if cfg.Database.Connection != "" {
		log.Println("Step 1: Setting up extensions...")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
			log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Migration completed successfully.")
}

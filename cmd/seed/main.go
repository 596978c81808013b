package main

import (
	"context"
	"log"

	"collabhub-be/internal/config"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/database"
	"collabhub-be/pkg/matching"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.Database.Connection, cfg.Database.SQLitePath)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)

	color.Cyan("Seeding demo profiles...")
	users, err := seedUsers(ctx, uowFactory)
	if err != nil {
		log.Fatalf("Error: seeding users failed: %v", err)
	}

	color.Cyan("Seeding skill quiz bank...")
	if err := seedQuestions(ctx, uowFactory); err != nil {
		log.Fatalf("Error: seeding questions failed: %v", err)
	}

	printRanking(users, matching.NewRanker(matching.WithAIMatchScore(cfg.Rules.AIMatchScore)))
	color.Green("Seeding completed!")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"
	"trivia-api/internal/service"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	seedFile := flag.String("file", cfg.Seed.File, "path to the seed data file")
	migrateFirst := flag.Bool("migrate", false, "apply migrations before seeding")
	flag.Parse()

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if *migrateFirst {
		if err := database.RunMigrations(cfg.DB); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	db, err := database.NewSQLXDB(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	seeder := service.NewSeedService(
		repository.NewTransactionManagerAdapter(db),
		repository.NewQuestionDatabaseAdapter(db),
		repository.NewCategoryDatabaseAdapter(db),
	)

	log.Info("Loading seed data", zap.String("path", *seedFile))
	if _, err := seeder.SeedFromFile(ctx, *seedFile); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}
}

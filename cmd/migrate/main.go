package main

import (
	"flag"
	"log"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back every applied migration instead of migrating up")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if *down {
		if err := database.RollbackMigrations(cfg.DB); err != nil {
			l.Fatal("Failed to roll back migrations", zap.Error(err))
		}
		return
	}

	if err := database.RunMigrations(cfg.DB); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
}

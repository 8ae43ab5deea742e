// @title Trivia API
// @version 1.0
// @description Trivia questions and categories, with search and a quiz mode.
// @contact.name API Support
// @license.name MIT
// @host localhost:5000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "trivia-api/cmd/api/docs"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"
	"trivia-api/internal/server"
	"trivia-api/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal("Server stopped with error", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

func run(cfg *config.Config, appLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewSQLXDB(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	appLogger.Info("Connected to database", zap.String("driver", cfg.DB.Driver))

	// Initialize repositories
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	categoryRepository := repository.NewCategoryDatabaseAdapter(db)

	// Initialize services
	triviaService := service.NewTriviaService(questionRepository, categoryRepository, cfg)

	app := server.New(cfg.Server, triviaService, true)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

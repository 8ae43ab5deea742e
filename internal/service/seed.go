package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// SeedService loads starter categories and questions
type SeedService interface {
	Seed(ctx context.Context, data *dto.SeedFile) (*dto.SeedResult, error)
	SeedFromFile(ctx context.Context, path string) (*dto.SeedResult, error)
}

type seedService struct {
	tm         domain.TransactionManager
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
}

// NewSeedService creates a new instance of seedService
func NewSeedService(
	tm domain.TransactionManager,
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
) SeedService {
	return &seedService{
		tm:         tm,
		questions:  questions,
		categories: categories,
	}
}

// LoadSeedFile reads and decodes a seed data file
func LoadSeedFile(path string) (*dto.SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var data dto.SeedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed file %s: %w", path, err)
	}
	return &data, nil
}

// SeedFromFile implements SeedService
func (s *seedService) SeedFromFile(ctx context.Context, path string) (*dto.SeedResult, error) {
	data, err := LoadSeedFile(path)
	if err != nil {
		return nil, err
	}
	return s.Seed(ctx, data)
}

// Seed implements SeedService. It runs in one transaction: categories are
// upserted by id, and questions are inserted only into an empty table so a
// second run adds nothing.
func (s *seedService) Seed(ctx context.Context, data *dto.SeedFile) (*dto.SeedResult, error) {
	if data == nil {
		return nil, fmt.Errorf("seed data is required")
	}
	log := logger.Get()
	result := &dto.SeedResult{}

	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		for _, sc := range data.Categories {
			if err := s.categories.Upsert(ctx, &domain.Category{ID: sc.ID, Type: sc.Type}); err != nil {
				return err
			}
			result.Categories++
		}

		existing, err := s.questions.Count(ctx)
		if err != nil {
			return err
		}
		if existing > 0 {
			log.Info("Questions already present, skipping question seed", zap.Int("existing", existing))
			result.QuestionsSkipped = true
			return nil
		}

		for _, sq := range data.Questions {
			q := domain.NewQuestion(sq.Question, sq.Answer, sq.Category, sq.Difficulty)
			if _, err := s.questions.Insert(ctx, q); err != nil {
				return fmt.Errorf("failed to seed question %q: %w", sq.Question, err)
			}
			result.Questions++
		}
		return nil
	})
	if err != nil {
		log.Error("Seeding rolled back", zap.Error(err))
		return nil, err
	}

	log.Info("Seed data loaded",
		zap.Int("categories", result.Categories),
		zap.Int("questions", result.Questions),
		zap.Bool("questions_skipped", result.QuestionsSkipped))
	return result, nil
}

package service

import (
	"context"
	"math/rand"

	"trivia-api/internal/config"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultQuestionsPerPage is used when no page size is configured
const DefaultQuestionsPerPage = 10

// defaultCurrentCategory is reported by routes that are not scoped to a category
const defaultCurrentCategory int64 = 1

const categoriesFlightKey = "categories"

// TriviaService defines the interface for trivia operations
type TriviaService interface {
	GetCategories(ctx context.Context) (*dto.CategoriesResponse, error)
	GetCategoryQuestions(ctx context.Context, categoryID int64) (*dto.CategoryQuestionsResponse, error)
	GetQuestionsPage(ctx context.Context, page int) (*dto.QuestionsPageResponse, error)
	GetCategoryQuestionsPage(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsPageResponse, error)
	SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error)
	PlayQuiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error)
}

// triviaService implements TriviaService
type triviaService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	validator  *validation.Validator
	perPage    int
	intn       func(n int) int
	sfGroup    singleflight.Group
}

// NewTriviaService creates a new instance of triviaService
func NewTriviaService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	cfg *config.Config,
) TriviaService {
	return newTriviaService(questions, categories, cfg, rand.Intn)
}

func newTriviaService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	cfg *config.Config,
	intn func(n int) int,
) *triviaService {
	perPage := DefaultQuestionsPerPage
	if cfg != nil && cfg.Pagination.QuestionsPerPage > 0 {
		perPage = cfg.Pagination.QuestionsPerPage
	}
	return &triviaService{
		questions:  questions,
		categories: categories,
		validator:  validation.NewValidator(),
		perPage:    perPage,
		intn:       intn,
	}
}

// GetCategories implements TriviaService
func (s *triviaService) GetCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	categories, err := s.listCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list categories", err)
	}
	total, err := s.categories.Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count categories", err)
	}

	return &dto.CategoriesResponse{
		Success:         true,
		TotalCategories: total,
		Categories:      domain.CategoryMap(categories),
	}, nil
}

// GetCategoryQuestions implements TriviaService. Unknown categories yield an empty list.
func (s *triviaService) GetCategoryQuestions(ctx context.Context, categoryID int64) (*dto.CategoryQuestionsResponse, error) {
	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list category questions", err)
	}
	total, err := s.questions.CountByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count category questions", err)
	}

	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       dto.NewQuestionResponses(questions),
		TotalQuestions:  total,
		CurrentCategory: categoryID,
	}, nil
}

// GetQuestionsPage implements TriviaService
func (s *triviaService) GetQuestionsPage(ctx context.Context, page int) (*dto.QuestionsPageResponse, error) {
	questions, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list questions", err)
	}
	total, err := s.questions.Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count questions", err)
	}
	categories, err := s.listCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list categories", err)
	}

	return &dto.QuestionsPageResponse{
		Success:         true,
		TotalQuestions:  total,
		Questions:       dto.NewQuestionResponses(paginate(questions, page, s.perPage)),
		Categories:      domain.CategoryMap(categories),
		CurrentCategory: defaultCurrentCategory,
	}, nil
}

// GetCategoryQuestionsPage implements TriviaService
func (s *triviaService) GetCategoryQuestionsPage(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsPageResponse, error) {
	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list category questions", err)
	}
	total, err := s.questions.CountByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count category questions", err)
	}
	categories, err := s.listCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list categories", err)
	}

	return &dto.CategoryQuestionsPageResponse{
		Success:         true,
		CurrentCategory: categoryID,
		TotalQuestions:  total,
		Questions:       dto.NewQuestionResponses(paginate(questions, page, s.perPage)),
		Categories:      dto.NewCategoryResponses(categories),
	}, nil
}

// SearchQuestions implements TriviaService
func (s *triviaService) SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error) {
	if req == nil {
		req = &dto.SearchQuestionsRequest{}
	}
	if err := s.validator.ValidateSearchTerm(req.SearchTerm); err != nil {
		return nil, err
	}
	term := *req.SearchTerm

	questions, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, domain.NewInternalError("Failed to search questions", err)
	}
	total, err := s.questions.CountSearch(ctx, term)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count search results", err)
	}

	logger.Get().Debug("Questions searched",
		zap.String("search_term", term),
		zap.Int("total", total))

	return &dto.SearchQuestionsResponse{
		Success:         true,
		TotalQuestions:  total,
		Questions:       dto.NewQuestionResponses(questions),
		CurrentCategory: defaultCurrentCategory,
	}, nil
}

// CreateQuestion implements TriviaService. Any insert failure, including an
// unknown category, is reported as UNPROCESSABLE.
func (s *triviaService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	if err := s.validator.ValidateCreateQuestion(req); err != nil {
		return nil, err
	}

	difficulty := 1
	if req.Difficulty != nil {
		difficulty = int(*req.Difficulty)
	}
	question := domain.NewQuestion(*req.Question, *req.Answer, int64(*req.Category), difficulty)

	id, err := s.questions.Insert(ctx, question)
	if err != nil {
		return nil, domain.NewUnprocessableError("Failed to create question", err)
	}

	logger.Get().Info("Question created",
		zap.Int64("question_id", id),
		zap.Int64("category", question.Category))

	return &dto.CreateQuestionResponse{
		Success: true,
		Created: id,
	}, nil
}

// DeleteQuestion implements TriviaService. A missing row is NOT_FOUND; any
// other failure is BAD_REQUEST.
func (s *triviaService) DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
	if err := s.questions.Delete(ctx, id); err != nil {
		if domain.HasCode(err, domain.CodeNotFound) {
			return nil, err
		}
		return nil, domain.NewBadRequestError("Failed to delete question", err)
	}

	logger.Get().Info("Question deleted", zap.Int64("question_id", id))

	return &dto.DeleteQuestionResponse{
		Success: true,
		Deleted: id,
	}, nil
}

// listCategories loads every category. Concurrent callers share one query.
func (s *triviaService) listCategories(ctx context.Context) ([]*domain.Category, error) {
	res, err, _ := s.sfGroup.Do(categoriesFlightKey, func() (interface{}, error) {
		return s.categories.ListAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.([]*domain.Category), nil
}

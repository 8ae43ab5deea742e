package service

import (
	"context"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// noQuestionLeft is returned in place of a question once the pool is exhausted
const noQuestionLeft = ""

// PlayQuiz implements TriviaService. It draws one question uniformly at random
// from the category's questions that are not in previous_questions.
// Category 0 is a literal id, not "all categories".
func (s *triviaService) PlayQuiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	if err := s.validator.ValidateQuizRequest(req); err != nil {
		return nil, err
	}

	categoryID := defaultCurrentCategory
	if req.QuizCategory.ID != nil {
		categoryID = int64(*req.QuizCategory.ID)
	}
	previous := req.PreviousIDs()

	pool, err := s.questions.ListByCategoryExcluding(ctx, categoryID, previous)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz questions", err)
	}

	if len(pool) == 0 {
		logger.Get().Debug("Quiz pool exhausted",
			zap.Int64("category", categoryID),
			zap.Int("previous", len(previous)))
		return &dto.QuizResponse{Success: true, Question: noQuestionLeft}, nil
	}

	picked := dto.NewQuestionResponse(pool[s.intn(len(pool))])
	return &dto.QuizResponse{Success: true, Question: &picked}, nil
}

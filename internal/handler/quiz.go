package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.TriviaService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.TriviaService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// PlayQuiz godoc
// @Summary Get the next quiz question
// @Description Picks a random question of quiz_category that is not in previous_questions. question is "" once none remain.
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body dto.QuizRequest true "Quiz state"
// @Success 200 {object} dto.QuizResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) PlayQuiz(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := decodeJSON(c, &req); err != nil {
		return domain.NewInternalError("Invalid quiz request body", err)
	}

	resp, err := h.service.PlayQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

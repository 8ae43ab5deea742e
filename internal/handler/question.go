package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	service service.TriviaService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.TriviaService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

// GetQuestions godoc
// @Summary List questions
// @Description Returns one page of questions with the category map. A full page holds nine questions.
// @Tags questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.QuestionsPageResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestionsPage(c.UserContext(), middleware.Page(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCategoryQuestionsPage godoc
// @Summary List questions of a category, paginated
// @Description Returns one page of the category's questions with the category list
// @Tags questions
// @Produce json
// @Param id path int true "Category ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.CategoryQuestionsPageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetCategoryQuestionsPage(c *fiber.Ctx) error {
	categoryID, err := pathID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetCategoryQuestionsPage(c.UserContext(), categoryID, middleware.Page(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PostQuestions godoc
// @Summary Search or create questions
// @Description A body carrying searchTerm runs a search; any other body creates a question.
// @Tags questions
// @Accept json
// @Produce json
// @Param body body dto.QuestionsPostRequest true "Search or create request"
// @Success 200 {object} dto.SearchQuestionsResponse
// @Success 200 {object} dto.CreateQuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) PostQuestions(c *fiber.Ctx) error {
	var req dto.QuestionsPostRequest
	if err := decodeJSON(c, &req); err != nil {
		if !isFieldTypeError(err) {
			logger.Get().Warn("Failed to parse questions request", zap.Error(err))
			return domain.NewBadRequestError("Invalid request body", err)
		}
		// Well-formed JSON with a mistyped field: a search only needs
		// searchTerm, anything else is a failed insert.
		var search dto.SearchQuestionsRequest
		if searchErr := decodeJSON(c, &search); searchErr != nil {
			return domain.NewBadRequestError("Invalid request body", searchErr)
		}
		if search.SearchTerm == nil {
			return domain.NewUnprocessableError("Invalid question fields", err)
		}
		req.SearchTerm = search.SearchTerm
	}

	if req.IsSearch() {
		resp, err := h.service.SearchQuestions(c.UserContext(), &dto.SearchQuestionsRequest{SearchTerm: req.SearchTerm})
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}

	resp, err := h.service.CreateQuestion(c.UserContext(), &req.CreateQuestionRequest)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SearchQuestions godoc
// @Summary Search questions
// @Description Returns questions whose text contains searchTerm
// @Tags questions
// @Accept json
// @Produce json
// @Param body body dto.SearchQuestionsRequest true "Search request"
// @Success 200 {object} dto.SearchQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions/search [post]
func (h *QuestionHandler) SearchQuestions(c *fiber.Ctx) error {
	var req dto.SearchQuestionsRequest
	if err := decodeJSON(c, &req); err != nil {
		return domain.NewBadRequestError("Invalid request body", err)
	}

	resp, err := h.service.SearchQuestions(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.DeleteQuestion(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

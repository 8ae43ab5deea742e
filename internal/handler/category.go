package handler

import (
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service service.TriviaService
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(service service.TriviaService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// GetCategories godoc
// @Summary List categories
// @Description Returns every category as an id to type map
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	resp, err := h.service.GetCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCategoryQuestions godoc
// @Summary List questions of a category
// @Description Returns every question of the category, unpaginated. Unknown categories return an empty list.
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories/{id}/questions [get]
func (h *CategoryHandler) GetCategoryQuestions(c *fiber.Ctx) error {
	categoryID, err := pathID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetCategoryQuestions(c.UserContext(), categoryID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

package validation

import (
	"strconv"
	"strings"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSearchTerm requires a non-empty search term
func (v *Validator) ValidateSearchTerm(term *string) error {
	if term == nil || *term == "" {
		return domain.NewBadRequestError("searchTerm is required", nil)
	}
	return nil
}

// ValidateCreateQuestion checks that the fields of a new question are present.
// Empty strings are accepted; difficulty may be omitted.
func (v *Validator) ValidateCreateQuestion(req *dto.CreateQuestionRequest) error {
	if req == nil {
		return domain.NewUnprocessableError("question body is required", nil)
	}

	var missing []string
	if req.Question == nil {
		missing = append(missing, "question")
	}
	if req.Answer == nil {
		missing = append(missing, "answer")
	}
	if req.Category == nil {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return domain.NewUnprocessableError("missing required fields: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// ValidateQuizRequest requires quiz_category; a missing id is left to the caller
func (v *Validator) ValidateQuizRequest(req *dto.QuizRequest) error {
	if req == nil || req.QuizCategory == nil {
		return domain.NewInternalError("quiz_category is required", nil)
	}
	return nil
}

// ParsePage parses the page query parameter. Missing or malformed values
// fall back to the first page, and pages below 1 are clamped to 1.
func (v *Validator) ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

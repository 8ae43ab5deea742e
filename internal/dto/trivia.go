package dto

import "trivia-api/internal/domain"

// QuestionResponse represents a question in API responses
// @Description Trivia question
type QuestionResponse struct {
	ID         int64  `json:"id" example:"5"`
	Question   string `json:"question" example:"What boxer's original name is Cassius Clay?"`
	Answer     string `json:"answer" example:"Muhammad Ali"`
	Category   int64  `json:"category" example:"4"`
	Difficulty int    `json:"difficulty" example:"1"`
}

// CategoryResponse represents a category in list form
type CategoryResponse struct {
	ID   int64  `json:"id" example:"1"`
	Type string `json:"type" example:"Science"`
}

// CategoriesResponse is returned by GET /categories
type CategoriesResponse struct {
	Success         bool             `json:"success" example:"true"`
	TotalCategories int              `json:"total_categories" example:"6"`
	Categories      map[int64]string `json:"categories"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions
type CategoryQuestionsResponse struct {
	Success         bool               `json:"success" example:"true"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions" example:"3"`
	CurrentCategory int64              `json:"current_category" example:"1"`
}

// QuestionsPageResponse is returned by GET /questions
type QuestionsPageResponse struct {
	Success         bool               `json:"success" example:"true"`
	TotalQuestions  int                `json:"total_questions" example:"19"`
	Questions       []QuestionResponse `json:"questions"`
	Categories      map[int64]string   `json:"categories"`
	CurrentCategory int64              `json:"current_category" example:"1"`
}

// CategoryQuestionsPageResponse is returned by GET /questions/{categoryId}
type CategoryQuestionsPageResponse struct {
	Success         bool               `json:"success" example:"true"`
	CurrentCategory int64              `json:"current_category" example:"1"`
	TotalQuestions  int                `json:"total_questions" example:"3"`
	Questions       []QuestionResponse `json:"questions"`
	Categories      []CategoryResponse `json:"categories"`
}

// SearchQuestionsResponse is returned by question search
type SearchQuestionsResponse struct {
	Success         bool               `json:"success" example:"true"`
	TotalQuestions  int                `json:"total_questions" example:"2"`
	Questions       []QuestionResponse `json:"questions"`
	CurrentCategory int64              `json:"current_category" example:"1"`
}

// CreateQuestionResponse is returned after a question is inserted
type CreateQuestionResponse struct {
	Success bool  `json:"success" example:"true"`
	Created int64 `json:"created" example:"24"`
}

// DeleteQuestionResponse is returned after a question is deleted
type DeleteQuestionResponse struct {
	Success bool  `json:"success" example:"true"`
	Deleted int64 `json:"deleted" example:"24"`
}

// QuizResponse is returned by POST /quizzes. Question holds a
// QuestionResponse, or the empty string once the pool is exhausted.
type QuizResponse struct {
	Success  bool        `json:"success" example:"true"`
	Question interface{} `json:"question" swaggertype:"object"`
}

// ErrorResponse is the error envelope shared by every route
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   int    `json:"error" example:"404"`
	Message string `json:"message" example:"Not found"`
}

// NewQuestionResponse formats a domain question
func NewQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// NewQuestionResponses formats a list of questions; never returns nil.
func NewQuestionResponses(questions []*domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, NewQuestionResponse(q))
	}
	return out
}

// NewCategoryResponses formats categories in list form; never returns nil.
func NewCategoryResponses(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Type: c.Type})
	}
	return out
}

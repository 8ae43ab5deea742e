package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexInt decodes a JSON number or a numeric string. The trivia web client
// sends select-box values such as category ids as strings.
type FlexInt int64

// InvalidIntError is returned when a FlexInt value is not an integer
type InvalidIntError struct {
	Value string
	Err   error
}

func (e *InvalidIntError) Error() string {
	return fmt.Sprintf("invalid integer %s: %v", e.Value, e.Err)
}

func (e *InvalidIntError) Unwrap() error {
	return e.Err
}

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return &InvalidIntError{Value: string(b), Err: err}
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return &InvalidIntError{Value: string(b), Err: err}
		}
		*f = FlexInt(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return &InvalidIntError{Value: string(b), Err: err}
	}
	*f = FlexInt(n)
	return nil
}

// QuestionsPostRequest is the body of the dual-purpose POST /questions.
// A present searchTerm selects search; otherwise the body creates a question.
type QuestionsPostRequest struct {
	SearchTerm *string `json:"searchTerm"`
	CreateQuestionRequest
}

// IsSearch reports whether the body asks for a search
func (r *QuestionsPostRequest) IsSearch() bool {
	return r.SearchTerm != nil
}

// SearchQuestionsRequest is the body of POST /questions/search
type SearchQuestionsRequest struct {
	SearchTerm *string `json:"searchTerm" example:"title"`
}

// CreateQuestionRequest carries the fields of a new question
type CreateQuestionRequest struct {
	Question   *string  `json:"question" example:"Q24"`
	Answer     *string  `json:"answer" example:"A24"`
	Category   *FlexInt `json:"category" swaggertype:"integer" example:"1"`
	Difficulty *FlexInt `json:"difficulty" swaggertype:"integer" example:"1"`
}

// QuizCategory identifies the category a quiz is played in
type QuizCategory struct {
	ID   *FlexInt `json:"id" swaggertype:"integer" example:"1"`
	Type string   `json:"type,omitempty" example:"Science"`
}

// QuizRequest is the body of POST /quizzes
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category"`
	PreviousQuestions []FlexInt     `json:"previous_questions" swaggertype:"array,integer"`
}

// PreviousIDs returns previous_questions as int64 ids
func (r *QuizRequest) PreviousIDs() []int64 {
	ids := make([]int64, len(r.PreviousQuestions))
	for i, id := range r.PreviousQuestions {
		ids[i] = int64(id)
	}
	return ids
}

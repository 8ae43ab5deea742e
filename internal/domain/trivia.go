package domain

import "context"

// Question is a single trivia question.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// NewQuestion creates a Question that has not been persisted yet.
func NewQuestion(question, answer string, category int64, difficulty int) *Question {
	return &Question{
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}
}

// Category groups questions under a label such as "Science".
type Category struct {
	ID   int64
	Type string
}

// CategoryMap returns categories keyed by id.
func CategoryMap(categories []*Category) map[int64]string {
	m := make(map[int64]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// ListAll returns every question in insertion order
	ListAll(ctx context.Context) ([]*Question, error)

	// ListByCategory returns the questions of one category
	ListByCategory(ctx context.Context, categoryID int64) ([]*Question, error)

	// ListByCategoryExcluding returns the questions of one category whose id is not in excludedIDs
	ListByCategoryExcluding(ctx context.Context, categoryID int64, excludedIDs []int64) ([]*Question, error)

	// Search returns questions whose text matches LIKE %term%
	Search(ctx context.Context, term string) ([]*Question, error)

	Count(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
	CountSearch(ctx context.Context, term string) (int, error)

	// Insert persists a new question and returns its generated id
	Insert(ctx context.Context, question *Question) (int64, error)

	// Delete removes a question. It returns a NOT_FOUND DomainError when no row matched.
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	ListAll(ctx context.Context) ([]*Category, error)
	Count(ctx context.Context) (int, error)

	// Upsert inserts a category with an explicit id, leaving an existing row untouched
	Upsert(ctx context.Context, category *Category) error
}

// TransactionManager runs fn inside a storage transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

package repository

import (
	"context"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id, question, answer, category, difficulty`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db DBTX) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// ListAll implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListAll(ctx context.Context) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id`
	questions, err := a.selectQuestions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// ListByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE category = ? ORDER BY id`
	questions, err := a.selectQuestions(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions for category %d: %w", categoryID, err)
	}
	return questions, nil
}

// ListByCategoryExcluding implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListByCategoryExcluding(ctx context.Context, categoryID int64, excludedIDs []int64) ([]*domain.Question, error) {
	if len(excludedIDs) == 0 {
		return a.ListByCategory(ctx, categoryID)
	}

	query, args, err := sqlx.In(
		`SELECT `+questionColumns+` FROM questions WHERE category = ? AND id NOT IN (?) ORDER BY id`,
		categoryID, excludedIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build exclusion query: %w", err)
	}

	questions, err := a.selectQuestions(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unseen questions for category %d: %w", categoryID, err)
	}
	return questions, nil
}

// Search implements domain.QuestionRepository. The term is not escaped, so
// '%' and '_' in it keep their LIKE meaning.
func (a *QuestionDatabaseAdapter) Search(ctx context.Context, term string) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE question LIKE ? ORDER BY id`
	questions, err := a.selectQuestions(ctx, query, likePattern(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return questions, nil
}

// Count implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) Count(ctx context.Context) (int, error) {
	count, err := a.count(ctx, `SELECT COUNT(*) FROM questions`)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// CountByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	count, err := a.count(ctx, `SELECT COUNT(*) FROM questions WHERE category = ?`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions for category %d: %w", categoryID, err)
	}
	return count, nil
}

// CountSearch implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountSearch(ctx context.Context, term string) (int, error) {
	count, err := a.count(ctx, `SELECT COUNT(*) FROM questions WHERE question LIKE ?`, likePattern(term))
	if err != nil {
		return 0, fmt.Errorf("failed to count search results: %w", err)
	}
	return count, nil
}

// Insert implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) Insert(ctx context.Context, question *domain.Question) (int64, error) {
	if question == nil {
		return 0, fmt.Errorf("cannot save nil question")
	}
	exec := GetExecutor(ctx, a.db)
	m := toModelQuestion(question)

	query := exec.Rebind(`INSERT INTO questions (question, answer, category, difficulty)
		VALUES (?, ?, ?, ?) RETURNING id`)

	var id int64
	if err := exec.GetContext(ctx, &id, query, m.Question, m.Answer, m.Category, m.Difficulty); err != nil {
		return 0, fmt.Errorf("failed to save question: %w", err)
	}
	question.ID = id
	return id, nil
}

// Delete implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) Delete(ctx context.Context, id int64) error {
	exec := GetExecutor(ctx, a.db)

	result, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM questions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuestionNotFoundError(id)
	}
	return nil
}

func (a *QuestionDatabaseAdapter) selectQuestions(ctx context.Context, query string, args ...interface{}) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, err
	}

	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions, nil
}

func (a *QuestionDatabaseAdapter) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	exec := GetExecutor(ctx, a.db)

	var count int
	if err := exec.GetContext(ctx, &count, exec.Rebind(query), args...); err != nil {
		return 0, err
	}
	return count, nil
}

func likePattern(term string) string {
	return "%" + term + "%"
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		Category:   m.Category,
		Difficulty: m.Difficulty,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

package repository

import (
	"context"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

// CategoryDatabaseAdapter implements domain.CategoryRepository using sqlx
type CategoryDatabaseAdapter struct {
	db DBTX
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db DBTX) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// ListAll returns all categories ordered by id
func (r *CategoryDatabaseAdapter) ListAll(ctx context.Context) ([]*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.Category
	query := `SELECT id, type FROM categories ORDER BY id`
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*domain.Category, len(rows))
	for i := range rows {
		categories[i] = toDomainCategory(&rows[i])
	}
	return categories, nil
}

// Count returns the number of categories
func (r *CategoryDatabaseAdapter) Count(ctx context.Context) (int, error) {
	exec := GetExecutor(ctx, r.db)

	var count int
	if err := exec.GetContext(ctx, &count, `SELECT COUNT(*) FROM categories`); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// Upsert inserts a category with its explicit id; an existing id is left as is
func (r *CategoryDatabaseAdapter) Upsert(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return fmt.Errorf("cannot save nil category")
	}
	exec := GetExecutor(ctx, r.db)

	m := toModelCategory(category)
	query := exec.Rebind(`INSERT INTO categories (id, type) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`)
	if _, err := exec.ExecContext(ctx, query, m.ID, m.Type); err != nil {
		return fmt.Errorf("failed to save category %d: %w", category.ID, err)
	}
	return nil
}

func toDomainCategory(m *models.Category) *domain.Category {
	return &domain.Category{
		ID:   m.ID,
		Type: m.Type,
	}
}

func toModelCategory(c *domain.Category) *models.Category {
	return &models.Category{
		ID:   c.ID,
		Type: c.Type,
	}
}

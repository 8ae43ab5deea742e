package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// passthroughTM runs fn without a transaction and counts calls
type passthroughTM struct {
	calls int
}

func (p *passthroughTM) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

var testSeed = &dto.SeedFile{
	Categories: []dto.SeedCategory{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}},
	Questions: []dto.SeedQuestion{
		{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
		{Question: "Which Dutch graphic artist created many optical illusions?", Answer: "Escher", Category: 2, Difficulty: 1},
	},
}

func TestSeed_EmptyDatabase(t *testing.T) {
	ctx := context.Background()
	tm := &passthroughTM{}
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)

	categoryRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.Category")).Return(nil).Twice()
	questionRepo.On("Count", ctx).Return(0, nil)
	questionRepo.On("Insert", ctx, mock.AnythingOfType("*domain.Question")).Return(int64(1), nil).Twice()

	result, err := NewSeedService(tm, questionRepo, categoryRepo).Seed(ctx, testSeed)
	require.NoError(t, err)
	assert.Equal(t, 1, tm.calls)
	assert.Equal(t, &dto.SeedResult{Categories: 2, Questions: 2}, result)
	categoryRepo.AssertExpectations(t)
	questionRepo.AssertExpectations(t)
}

func TestSeed_QuestionsAlreadyPresent(t *testing.T) {
	ctx := context.Background()
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)

	categoryRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	questionRepo.On("Count", ctx).Return(19, nil)

	result, err := NewSeedService(&passthroughTM{}, questionRepo, categoryRepo).Seed(ctx, testSeed)
	require.NoError(t, err)
	assert.True(t, result.QuestionsSkipped)
	assert.Zero(t, result.Questions)
	questionRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSeed_InsertFailure(t *testing.T) {
	ctx := context.Background()
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)

	categoryRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	questionRepo.On("Count", ctx).Return(0, nil)
	questionRepo.On("Insert", ctx, mock.Anything).Return(int64(0), errors.New("FOREIGN KEY constraint failed"))

	_, err := NewSeedService(&passthroughTM{}, questionRepo, categoryRepo).Seed(ctx, testSeed)
	assert.Error(t, err)
}

func TestSeed_NilData(t *testing.T) {
	_, err := NewSeedService(&passthroughTM{}, nil, nil).Seed(context.Background(), nil)
	assert.Error(t, err)
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"categories": [{"id": 1, "type": "Science"}],
		"questions": [{"question": "Q", "answer": "A", "category": 1, "difficulty": 2}]
	}`), 0o600))

	data, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, []dto.SeedCategory{{ID: 1, Type: "Science"}}, data.Categories)
	assert.Equal(t, []dto.SeedQuestion{{Question: "Q", Answer: "A", Category: 1, Difficulty: 2}}, data.Questions)

	_, err = LoadSeedFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	_, err = LoadSeedFile(bad)
	assert.Error(t, err)
}

var _ domain.TransactionManager = (*passthroughTM)(nil)

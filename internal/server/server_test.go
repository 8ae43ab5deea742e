package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"
	"trivia-api/internal/server"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postgresDSNEnv points the suite at a disposable Postgres database as well.
const postgresDSNEnv = "TRIVIA_TEST_POSTGRES_DSN"

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "warn"}); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

type testEnv struct {
	app *fiber.App
	db  *sqlx.DB
}

func seedFilePath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "configs", "seed", "trivia.json")
}

// dialects returns the databases the suite runs against
func dialects(t *testing.T) map[string]config.DBConfig {
	t.Helper()
	out := map[string]config.DBConfig{
		config.DriverSQLite: {Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "trivia.db")},
	}
	if dsn := os.Getenv(postgresDSNEnv); dsn != "" {
		out[config.DriverPostgres] = config.DBConfig{Driver: config.DriverPostgres, DSN: dsn, MaxOpenConns: 5}
	}
	return out
}

func setupEnv(t *testing.T, dbCfg config.DBConfig) *testEnv {
	t.Helper()
	ctx := context.Background()

	if dbCfg.Driver == config.DriverPostgres {
		require.NoError(t, database.RollbackMigrations(dbCfg))
	}
	require.NoError(t, database.RunMigrations(dbCfg))

	db, err := database.NewSQLXDB(dbCfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	categoryRepo := repository.NewCategoryDatabaseAdapter(db)
	tm := repository.NewTransactionManagerAdapter(db)

	_, err = service.NewSeedService(tm, questionRepo, categoryRepo).SeedFromFile(ctx, seedFilePath(t))
	require.NoError(t, err)

	cfg := &config.Config{Pagination: config.PaginationConfig{QuestionsPerPage: 10}}
	triviaService := service.NewTriviaService(questionRepo, categoryRepo, cfg)

	return &testEnv{
		app: server.New(config.ServerConfig{}, triviaService, false),
		db:  db,
	}
}

func forEachDialect(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	for name, dbCfg := range dialects(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, setupEnv(t, dbCfg))
		})
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func (e *testEnv) countQuestions(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.Get(&n, `SELECT COUNT(*) FROM questions`))
	return n
}

func (e *testEnv) categoryIDs(t *testing.T) []int64 {
	t.Helper()
	var ids []int64
	require.NoError(t, e.db.Select(&ids, `SELECT id FROM categories ORDER BY id`))
	return ids
}

type pageBody struct {
	Success         bool                   `json:"success"`
	TotalQuestions  int                    `json:"total_questions"`
	Questions       []dto.QuestionResponse `json:"questions"`
	Categories      map[string]string      `json:"categories"`
	CurrentCategory int64                  `json:"current_category"`
}

func TestGetQuestions_Pagination(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		total := env.countQuestions(t)
		require.Equal(t, 19, total)

		seen := map[int64]bool{}
		wantLens := map[int]int{1: 9, 2: 9, 3: 0}
		for page, wantLen := range wantLens {
			resp, raw := env.do(t, http.MethodGet, fmt.Sprintf("/questions?page=%d", page), nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			body := decode[pageBody](t, raw)
			assert.True(t, body.Success)
			assert.Len(t, body.Questions, wantLen, "page %d", page)
			assert.LessOrEqual(t, len(body.Questions), 9)
			assert.Equal(t, total, body.TotalQuestions)
			assert.Equal(t, int64(1), body.CurrentCategory)
			assert.Len(t, body.Categories, 6)
			for _, q := range body.Questions {
				seen[q.ID] = true
			}
		}
		// The tenth question never appears on any page.
		assert.Len(t, seen, 18)

		resp, raw := env.do(t, http.MethodGet, "/questions", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decode[pageBody](t, raw).Questions, 9)

		resp, raw = env.do(t, http.MethodGet, "/questions?page=bogus", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decode[pageBody](t, raw).Questions, 9)
	})
}

func TestGetCategories(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		resp, first := env.do(t, http.MethodGet, "/categories", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[struct {
			Success         bool              `json:"success"`
			TotalCategories int               `json:"total_categories"`
			Categories      map[string]string `json:"categories"`
		}](t, first)
		assert.True(t, body.Success)
		assert.Equal(t, 6, body.TotalCategories)
		assert.Equal(t, "Science", body.Categories["1"])

		var keys []string
		for k := range body.Categories {
			keys = append(keys, k)
		}
		var ids []string
		for _, id := range env.categoryIDs(t) {
			ids = append(ids, fmt.Sprint(id))
		}
		assert.ElementsMatch(t, ids, keys)

		_, second := env.do(t, http.MethodGet, "/categories", nil)
		assert.Equal(t, string(first), string(second))
	})
}

func TestCategoryQuestions(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		resp, raw := env.do(t, http.MethodGet, "/categories/2/questions", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[struct {
			Success         bool                   `json:"success"`
			Questions       []dto.QuestionResponse `json:"questions"`
			TotalQuestions  int                    `json:"total_questions"`
			CurrentCategory int64                  `json:"current_category"`
		}](t, raw)
		assert.True(t, body.Success)
		assert.Equal(t, int64(2), body.CurrentCategory)
		assert.Equal(t, 4, body.TotalQuestions)
		assert.Len(t, body.Questions, 4)
		for _, q := range body.Questions {
			assert.Equal(t, int64(2), q.Category)
		}

		resp, raw = env.do(t, http.MethodGet, "/categories/1000/questions", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true,"questions":[],"total_questions":0,"current_category":1000}`, string(raw))
	})
}

func TestCategoryQuestionsPage(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		resp, raw := env.do(t, http.MethodGet, "/questions/3?page=1", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[dto.CategoryQuestionsPageResponse](t, raw)
		assert.True(t, body.Success)
		assert.Equal(t, int64(3), body.CurrentCategory)
		assert.Equal(t, 3, body.TotalQuestions)
		assert.Len(t, body.Questions, 3)
		require.Len(t, body.Categories, 6)
		assert.Equal(t, dto.CategoryResponse{ID: 1, Type: "Science"}, body.Categories[0])
	})
}

func TestCreateAndDeleteQuestion(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		resp, raw := env.do(t, http.MethodPost, "/questions", map[string]interface{}{
			"question": "Q24", "answer": "Q24", "category": 1, "difficulty": 1,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		created := decode[dto.CreateQuestionResponse](t, raw)
		assert.True(t, created.Success)
		assert.Positive(t, created.Created)

		resp, raw = env.do(t, http.MethodGet, "/categories/1/questions", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		found := false
		for _, q := range decode[dto.CategoryQuestionsResponse](t, raw).Questions {
			if q.ID == created.Created && q.Question == "Q24" {
				found = true
			}
		}
		assert.True(t, found, "created question listed under its category")

		path := fmt.Sprintf("/questions/%d", created.Created)
		resp, raw = env.do(t, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, fmt.Sprintf(`{"success":true,"deleted":%d}`, created.Created), string(raw))

		resp, raw = env.do(t, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":404,"message":"Not found"}`, string(raw))

		resp, _ = env.do(t, http.MethodDelete, "/questions/100000", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		assert.Equal(t, 19, env.countQuestions(t))
	})
}

func TestCreateQuestion_EmptyText(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		resp, raw := env.do(t, http.MethodPost, "/questions", map[string]interface{}{
			"question": "", "answer": "", "category": 1, "difficulty": 1,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		created := decode[dto.CreateQuestionResponse](t, raw)
		assert.Equal(t, 20, env.countQuestions(t))

		resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/questions/%d", created.Created), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestCreateQuestion_Unprocessable(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		resp, raw := env.do(t, http.MethodPost, "/questions", map[string]interface{}{
			"question": "Q", "answer": "A", "category": 1000, "difficulty": 1,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":422,"message":"Unprocessable"}`, string(raw))

		resp, _ = env.do(t, http.MethodPost, "/questions", map[string]interface{}{"answer": "A"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		for _, category := range []interface{}{"abc", 1.5} {
			resp, raw = env.do(t, http.MethodPost, "/questions", map[string]interface{}{
				"question": "Q", "answer": "A", "category": category, "difficulty": 1,
			})
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "category %v", category)
			assert.JSONEq(t, `{"success":false,"error":422,"message":"Unprocessable"}`, string(raw))
		}

		resp, _ = env.do(t, http.MethodPost, "/questions", map[string]interface{}{
			"question": "Q", "answer": "A", "category": 1, "difficulty": "hard",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		assert.Equal(t, 19, env.countQuestions(t))
	})
}

func TestSearchQuestions(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		resp, raw := env.do(t, http.MethodPost, "/questions", map[string]string{"searchTerm": ""})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":400,"message":"Bad request"}`, string(raw))

		for _, path := range []string{"/questions", "/questions/search"} {
			resp, raw = env.do(t, http.MethodPost, path, map[string]string{"searchTerm": "title"})
			require.Equal(t, http.StatusOK, resp.StatusCode, path)

			body := decode[dto.SearchQuestionsResponse](t, raw)
			assert.True(t, body.Success)
			assert.Equal(t, int64(1), body.CurrentCategory)
			assert.Equal(t, 2, body.TotalQuestions, path)
			require.Len(t, body.Questions, 2, path)
			for _, q := range body.Questions {
				assert.Contains(t, q.Question, "title")
			}
		}

		// Matching is case-sensitive.
		resp, raw = env.do(t, http.MethodPost, "/questions/search", map[string]string{"searchTerm": "TITLE"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, decode[dto.SearchQuestionsResponse](t, raw).Questions)

		resp, _ = env.do(t, http.MethodPost, "/questions/search", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPlayQuiz(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		var scienceIDs []int64
		require.NoError(t, env.db.Select(&scienceIDs, `SELECT id FROM questions WHERE category = 1 ORDER BY id`))
		require.Len(t, scienceIDs, 3)

		previous := []int64{}
		for range scienceIDs {
			resp, raw := env.do(t, http.MethodPost, "/quizzes", map[string]interface{}{
				"quiz_category":      map[string]interface{}{"id": 1, "type": "Science"},
				"previous_questions": previous,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			body := decode[struct {
				Success  bool                 `json:"success"`
				Question dto.QuestionResponse `json:"question"`
			}](t, raw)
			assert.True(t, body.Success)
			assert.Equal(t, int64(1), body.Question.Category)
			assert.Contains(t, scienceIDs, body.Question.ID)
			assert.NotContains(t, previous, body.Question.ID)
			previous = append(previous, body.Question.ID)
		}

		resp, raw := env.do(t, http.MethodPost, "/quizzes", map[string]interface{}{
			"quiz_category":      map[string]interface{}{"id": "1"},
			"previous_questions": previous,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true,"question":""}`, string(raw))

		resp, raw = env.do(t, http.MethodPost, "/quizzes", map[string]interface{}{
			"quiz_category":      map[string]interface{}{"id": 0, "type": "click"},
			"previous_questions": []int64{},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true,"question":""}`, string(raw))

		resp, raw = env.do(t, http.MethodPost, "/quizzes", map[string]interface{}{"previous_questions": []int64{}})
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":500,"message":"Internal error"}`, string(raw))
	})
}

func TestRouting(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		resp, raw := env.do(t, http.MethodPatch, "/questions/5", map[string]string{})
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":405,"message":"Method not allowed"}`, string(raw))

		resp, raw = env.do(t, http.MethodGet, "/nowhere", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":404,"message":"Not found"}`, string(raw))

		resp, _ = env.do(t, http.MethodGet, "/categories", nil)
		assert.True(t, strings.Contains(resp.Header.Get(fiber.HeaderAccessControlAllowMethods), "PATCH"))
		assert.Equal(t, "Content-Type,Authorization,true", resp.Header.Get(fiber.HeaderAccessControlAllowHeaders))
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	})
}

func TestPanicResponseCarriesAccessControlHeaders(t *testing.T) {
	forEachDialect(t, func(t *testing.T, env *testEnv) {
		env.app.Get("/panic", func(c *fiber.Ctx) error {
			panic("boom")
		})

		resp, raw := env.do(t, http.MethodGet, "/panic", nil)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":500,"message":"Internal error"}`, string(raw))
		assert.Equal(t, "Content-Type,Authorization,true", resp.Header.Get(fiber.HeaderAccessControlAllowHeaders))
		assert.Equal(t, "GET, POST, PATCH, DELETE, OPTIONS", resp.Header.Get(fiber.HeaderAccessControlAllowMethods))
	})
}

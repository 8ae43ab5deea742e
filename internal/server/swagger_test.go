package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "trivia-api/cmd/api/docs"
	"trivia-api/internal/config"
	"trivia-api/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDocs(t *testing.T) {
	app := server.New(config.ServerConfig{}, nil, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Trivia API", doc.Info.Title)
	for _, path := range []string{"/categories", "/categories/{id}/questions", "/questions", "/questions/{id}", "/questions/search", "/quizzes"} {
		assert.Contains(t, doc.Paths, path)
	}
}

func TestSwaggerDisabled(t *testing.T) {
	app := server.New(config.ServerConfig{}, nil, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

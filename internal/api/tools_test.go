package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidPeleg6/recipe-creator/internal/api"
	"github.com/DavidPeleg6/recipe-creator/internal/mocks"
	"github.com/DavidPeleg6/recipe-creator/internal/service"
)

func setupRouter(h *api.ToolsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestExecuteSQLEndpoint(t *testing.T) {
	t.Run("forwards query and limit", func(t *testing.T) {
		executor := &mocks.MockQueryExecutor{Result: service.QueryResult{
			Success:  true,
			RowCount: 2,
			Message:  "Found 2 recipe(s)",
		}}
		router := setupRouter(api.NewToolsHandler(executor, &mocks.MockRecipeSaver{}, nil, nil))

		w := postJSON(t, router, "/api/v1/tools/execute-sql", api.ExecuteSQLRequest{
			Query:    "SELECT * FROM saved_recipes",
			RowLimit: 10,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "SELECT * FROM saved_recipes", executor.LastQuery)
		assert.Equal(t, 10, executor.LastLimit)

		var result service.QueryResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.Success)
		assert.Equal(t, 2, result.RowCount)
	})

	t.Run("guardrail denial is 200 with structured failure", func(t *testing.T) {
		executor := &mocks.MockQueryExecutor{Result: service.QueryResult{
			Success: false,
			Message: "Query blocked: DELETE not allowed - use UPDATE SET is_deleted = true",
			Error:   "DELETE not allowed - use UPDATE SET is_deleted = true",
		}}
		router := setupRouter(api.NewToolsHandler(executor, &mocks.MockRecipeSaver{}, nil, nil))

		w := postJSON(t, router, "/api/v1/tools/execute-sql", api.ExecuteSQLRequest{
			Query: "DELETE FROM saved_recipes",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var result service.QueryResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "DELETE not allowed")
	})

	t.Run("missing query is a 400", func(t *testing.T) {
		executor := &mocks.MockQueryExecutor{}
		router := setupRouter(api.NewToolsHandler(executor, &mocks.MockRecipeSaver{}, nil, nil))

		w := postJSON(t, router, "/api/v1/tools/execute-sql", map[string]int{"row_limit": 5})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, executor.Executions)
	})
}

func TestSaveRecipeEndpoint(t *testing.T) {
	t.Run("forwards recipe text", func(t *testing.T) {
		saver := &mocks.MockRecipeSaver{Result: service.SaveResult{
			Status:     service.SaveStatusSaved,
			RecipeID:   "abc",
			RecipeName: "Espresso Martini",
			Message:    "Recipe 'Espresso Martini' saved successfully!",
		}}
		router := setupRouter(api.NewToolsHandler(&mocks.MockQueryExecutor{}, saver, nil, nil))

		w := postJSON(t, router, "/api/v1/tools/save-recipe", api.SaveRecipeRequest{
			RecipeText:     "shake vodka with espresso",
			ConversationID: "conv-1",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, saver.Saves)
		assert.Equal(t, "shake vodka with espresso", saver.LastText)

		var result service.SaveResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, service.SaveStatusSaved, result.Status)
	})

	t.Run("rejection is 200 with structured result", func(t *testing.T) {
		saver := &mocks.MockRecipeSaver{Result: service.SaveResult{
			Status: service.SaveStatusRejected,
			Error:  "Invalid recipe: instructions: at least one instruction is required",
		}}
		router := setupRouter(api.NewToolsHandler(&mocks.MockQueryExecutor{}, saver, nil, nil))

		w := postJSON(t, router, "/api/v1/tools/save-recipe", api.SaveRecipeRequest{RecipeText: "x"})

		assert.Equal(t, http.StatusOK, w.Code)

		var result service.SaveResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, service.SaveStatusRejected, result.Status)
	})

	t.Run("missing text is a 400", func(t *testing.T) {
		saver := &mocks.MockRecipeSaver{}
		router := setupRouter(api.NewToolsHandler(&mocks.MockQueryExecutor{}, saver, nil, nil))

		w := postJSON(t, router, "/api/v1/tools/save-recipe", map[string]string{"conversation_id": "c"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, saver.Saves)
	})
}

func TestWebSearchEndpoint(t *testing.T) {
	t.Run("returns formatted results", func(t *testing.T) {
		search := &mocks.MockWebSearcher{Output: "**Classic Negroni**\n..."}
		router := setupRouter(api.NewToolsHandler(&mocks.MockQueryExecutor{}, &mocks.MockRecipeSaver{}, search, nil))

		w := postJSON(t, router, "/api/v1/tools/web-search", api.WebSearchRequest{Query: "negroni"})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.WebSearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Results, "Classic Negroni")
	})

	t.Run("unconfigured search reports unavailable", func(t *testing.T) {
		router := setupRouter(api.NewToolsHandler(&mocks.MockQueryExecutor{}, &mocks.MockRecipeSaver{}, nil, nil))

		w := postJSON(t, router, "/api/v1/tools/web-search", api.WebSearchRequest{Query: "negroni"})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.WebSearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "not configured")
	})

	t.Run("search errors come back structured", func(t *testing.T) {
		search := &mocks.MockWebSearcher{Err: errors.New("upstream timeout")}
		router := setupRouter(api.NewToolsHandler(&mocks.MockQueryExecutor{}, &mocks.MockRecipeSaver{}, search, nil))

		w := postJSON(t, router, "/api/v1/tools/web-search", api.WebSearchRequest{Query: "negroni"})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.WebSearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "upstream timeout")
	})
}

func TestYouTubeTranscriptEndpoint(t *testing.T) {
	t.Run("returns transcript", func(t *testing.T) {
		youtube := &mocks.MockTranscriptFetcher{Transcript: "Transcript for video abc123:\n\nFirst, crack the eggs"}
		router := setupRouter(api.NewToolsHandler(&mocks.MockQueryExecutor{}, &mocks.MockRecipeSaver{}, nil, youtube))

		w := postJSON(t, router, "/api/v1/tools/youtube-transcript", api.TranscriptRequest{
			VideoURL: "https://www.youtube.com/watch?v=abc123",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.TranscriptResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Transcript, "crack the eggs")
	})

	t.Run("fetch errors come back structured", func(t *testing.T) {
		youtube := &mocks.MockTranscriptFetcher{Err: errors.New("no transcript available for video abc123")}
		router := setupRouter(api.NewToolsHandler(&mocks.MockQueryExecutor{}, &mocks.MockRecipeSaver{}, nil, youtube))

		w := postJSON(t, router, "/api/v1/tools/youtube-transcript", api.TranscriptRequest{VideoURL: "abc123"})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.TranscriptResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "no transcript available")
	})
}

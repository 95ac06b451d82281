// Package api exposes the assistant's tool surface over HTTP. Each endpoint
// wraps one service-layer tool; guardrail denials and collaborator failures
// come back as structured payloads with a 200 status, so callers can relay
// them verbatim instead of branching on transport errors.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DavidPeleg6/recipe-creator/internal/service"
)

// ToolsHandler serves the tool endpoints. The search and transcript services
// may be nil when their upstream credentials are not configured; the
// corresponding endpoints then report the tool as unavailable.
type ToolsHandler struct {
	executor service.QueryExecutor
	saver    service.RecipeSaver
	search   service.WebSearcher
	youtube  service.TranscriptFetcher
}

func NewToolsHandler(executor service.QueryExecutor, saver service.RecipeSaver, search service.WebSearcher, youtube service.TranscriptFetcher) *ToolsHandler {
	return &ToolsHandler{
		executor: executor,
		saver:    saver,
		search:   search,
		youtube:  youtube,
	}
}

func (h *ToolsHandler) RegisterRoutes(router *gin.RouterGroup) {
	tools := router.Group("/tools")
	{
		tools.POST("/execute-sql", h.ExecuteSQL)
		tools.POST("/save-recipe", h.SaveRecipe)
		tools.POST("/web-search", h.WebSearch)
		tools.POST("/youtube-transcript", h.YouTubeTranscript)
	}
}

func (h *ToolsHandler) ExecuteSQL(c *gin.Context) {
	var req ExecuteSQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.executor.Execute(c.Request.Context(), req.Query, req.RowLimit)
	c.JSON(http.StatusOK, result)
}

func (h *ToolsHandler) SaveRecipe(c *gin.Context) {
	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.saver.SaveRecipe(c.Request.Context(), req.RecipeText, req.ConversationID)
	c.JSON(http.StatusOK, result)
}

func (h *ToolsHandler) WebSearch(c *gin.Context) {
	var req WebSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.search == nil {
		c.JSON(http.StatusOK, WebSearchResponse{Error: "web search is not configured"})
		return
	}

	results, err := h.search.Search(c.Request.Context(), req.Query, req.MaxResults)
	if err != nil {
		c.JSON(http.StatusOK, WebSearchResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, WebSearchResponse{Success: true, Results: results})
}

func (h *ToolsHandler) YouTubeTranscript(c *gin.Context) {
	var req TranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.youtube == nil {
		c.JSON(http.StatusOK, TranscriptResponse{Error: "transcript fetching is not configured"})
		return
	}

	transcript, err := h.youtube.GetTranscript(c.Request.Context(), req.VideoURL)
	if err != nil {
		c.JSON(http.StatusOK, TranscriptResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, TranscriptResponse{Success: true, Transcript: transcript})
}

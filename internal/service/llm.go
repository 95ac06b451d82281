package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DavidPeleg6/recipe-creator/config"
	"github.com/DavidPeleg6/recipe-creator/internal/models"
)

// LLMService structures raw recipe text through a DeepSeek-compatible chat
// completions API
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
	}

	return &LLMService{
		apiKey: cfg.LLMAPIKey,
		apiURL: cfg.LLMAPIURL,
		model:  cfg.LLMModel,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

// Response represents a chat completions response
type Response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const structurePrompt = `You are a recipe structuring assistant. Convert the recipe text into a JSON object with exactly these fields:
{
  "name": string,
  "recipe_type": "cocktail" | "food" | "dessert",
  "ingredients": [{"name": string, "quantity": string, "unit": string (optional), "notes": string (optional)}],
  "instructions": [string, ...],
  "prep_time_minutes": integer (optional),
  "cook_time_minutes": integer (optional),
  "servings": integer (optional),
  "source_references": [string, ...] (optional),
  "notes": string (optional),
  "tags": [string, ...] (flavor profile, base ingredient, difficulty, occasion, dietary flags)
}
Respond with the JSON object only.`

// StructureRecipe maps raw recipe text into a Recipe value object. The
// returned ID is whatever the model produced and must not be trusted.
func (s *LLMService) StructureRecipe(ctx context.Context, rawText string) (*models.Recipe, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: structurePrompt},
			{Role: "user", Content: fmt.Sprintf("Structure this recipe into the required format:\n\n%s", rawText)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no choices in API response")
	}

	content := extractJSON(result.Choices[0].Message.Content)

	var recipe models.Recipe
	if err := json.Unmarshal([]byte(content), &recipe); err != nil {
		return nil, fmt.Errorf("failed to parse structured recipe: %w", err)
	}
	recipe.RecipeType = models.RecipeType(strings.ToLower(string(recipe.RecipeType)))

	return &recipe, nil
}

// extractJSON strips markdown code fences the model sometimes wraps around
// its JSON output
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
	}
	return strings.TrimSpace(content)
}

package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/DavidPeleg6/recipe-creator/config"
	"github.com/DavidPeleg6/recipe-creator/internal/models"
)

// ImageGenerationRequest represents a request to the images API
type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

// ImageGenerationResponse represents the response from the images API
type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL     string `json:"url,omitempty"`
		B64JSON string `json:"b64_json,omitempty"`
	} `json:"data"`
}

// ImageService generates recipe illustrations through the OpenAI images API
type ImageService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewImageService creates a new ImageService instance
func NewImageService(cfg *config.Config) (*ImageService, error) {
	if cfg.ImageAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set")
	}

	return &ImageService{
		apiKey: cfg.ImageAPIKey,
		apiURL: cfg.ImageAPIURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// GenerateRecipeImage generates an image for a recipe and returns the raw
// bytes. Callers own upload and persistence; bytes never travel further up.
func (s *ImageService) GenerateRecipeImage(ctx context.Context, prompt, recipeName string) ([]byte, error) {
	const maxRetries = 3

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		data, err := s.generateImageAttempt(ctx, prompt)
		if err == nil {
			log.Printf("[ImageService] generated image for '%s' on attempt %d", recipeName, attempt)
			return data, nil
		}

		lastErr = err
		log.Printf("[ImageService] attempt %d/%d failed for '%s': %v", attempt, maxRetries, recipeName, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < maxRetries {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}
	return nil, fmt.Errorf("failed to generate image after %d attempts: %w", maxRetries, lastErr)
}

func (s *ImageService) generateImageAttempt(ctx context.Context, prompt string) ([]byte, error) {
	reqBody := ImageGenerationRequest{
		Model:          "dall-e-3",
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		Quality:        "standard", // standard quality to control costs
		ResponseFormat: "b64_json",
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

	var result ImageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Data) == 0 || result.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("no image data in API response")
	}

	data, err := base64.StdEncoding.DecodeString(result.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return data, nil
}

// BuildRecipeImagePrompt creates a food-photography prompt from the recipe's
// name, type and top ingredients
func BuildRecipeImagePrompt(recipe *models.Recipe) string {
	basePrompt := "A professional food photography shot of "

	description := strings.ToLower(recipe.Name)

	var keyIngredients []string
	for i, ing := range recipe.Ingredients {
		if i >= 5 {
			break
		}
		keyIngredients = append(keyIngredients, strings.ToLower(ing.Name))
	}
	if len(keyIngredients) > 0 {
		description += ", featuring " + strings.Join(keyIngredients, ", ")
	}

	typeContext := ""
	switch recipe.RecipeType {
	case models.RecipeTypeCocktail:
		typeContext = ", an elegant cocktail served in appropriate glassware"
	case models.RecipeTypeDessert:
		typeContext = ", a beautifully plated dessert"
	case models.RecipeTypeFood:
		typeContext = ", an elegantly presented dish"
	}

	stylePrompt := ", shot with natural lighting, shallow depth of field, garnished beautifully, restaurant quality presentation, high resolution, appetizing colors"

	fullPrompt := basePrompt + description + typeContext + stylePrompt

	// Keep well under typical prompt limits
	if len(fullPrompt) > 900 {
		fullPrompt = fullPrompt[:900]
	}
	return fullPrompt
}

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
)

// SearchService queries the Tavily search API for recipe material
type SearchService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewSearchService creates a new SearchService instance
func NewSearchService(cfg *config.Config) (*SearchService, error) {
	if cfg.TavilyAPIKey == "" {
		return nil, fmt.Errorf("TAVILY_API_KEY or TAVILY_API_KEY_FILE must be set")
	}

	return &SearchService{
		apiKey: cfg.TavilyAPIKey,
		apiURL: "https://api.tavily.com/search",
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

// Search runs a web search and formats results as titled snippets with
// source URLs
func (s *SearchService) Search(ctx context.Context, query string, maxResults int) (string, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	jsonData, err := json.Marshal(tavilyRequest{
		APIKey:     s.apiKey,
		Query:      query,
		MaxResults: maxResults,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result tavilyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Results) == 0 {
		return "No results found.", nil
	}

	var formatted []string
	for _, item := range result.Results {
		formatted = append(formatted, fmt.Sprintf("**%s**\n%s\nSource: %s\n", item.Title, item.Content, item.URL))
	}
	return strings.Join(formatted, "\n---\n"), nil
}

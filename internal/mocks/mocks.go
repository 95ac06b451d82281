// Package mocks holds hand-written test doubles for the service collaborator
// interfaces.
package mocks

import (
	"context"

	"github.com/DavidPeleg6/recipe-creator/internal/models"
	"github.com/DavidPeleg6/recipe-creator/internal/service"
)

// MockRecipeStructurer returns a canned recipe or error
type MockRecipeStructurer struct {
	Recipe *models.Recipe
	Err    error
	Calls  int
}

func (m *MockRecipeStructurer) StructureRecipe(ctx context.Context, rawText string) (*models.Recipe, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	// Hand back a copy so tests can compare against the original.
	r := *m.Recipe
	return &r, nil
}

// MockImageGenerator returns canned image bytes or an error
type MockImageGenerator struct {
	Data  []byte
	Err   error
	Calls int
}

func (m *MockImageGenerator) GenerateRecipeImage(ctx context.Context, prompt, recipeName string) ([]byte, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}

// MockImageUploader records uploads and returns a canned URL
type MockImageUploader struct {
	URL      string
	Err      error
	Uploaded []string
}

func (m *MockImageUploader) UploadRecipeImage(ctx context.Context, data []byte, recipeID string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Uploaded = append(m.Uploaded, recipeID)
	return m.URL, nil
}

// MockQueryExecutor returns a canned query result
type MockQueryExecutor struct {
	Result     service.QueryResult
	LastQuery  string
	LastLimit  int
	Executions int
}

func (m *MockQueryExecutor) Execute(ctx context.Context, query string, rowLimit int) service.QueryResult {
	m.Executions++
	m.LastQuery = query
	m.LastLimit = rowLimit
	return m.Result
}

// MockRecipeSaver returns a canned save result
type MockRecipeSaver struct {
	Result   service.SaveResult
	LastText string
	Saves    int
}

func (m *MockRecipeSaver) SaveRecipe(ctx context.Context, rawText, conversationID string) service.SaveResult {
	m.Saves++
	m.LastText = rawText
	return m.Result
}

// MockWebSearcher returns canned search output
type MockWebSearcher struct {
	Output string
	Err    error
}

func (m *MockWebSearcher) Search(ctx context.Context, query string, maxResults int) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Output, nil
}

// MockTranscriptFetcher returns a canned transcript
type MockTranscriptFetcher struct {
	Transcript string
	Err        error
}

func (m *MockTranscriptFetcher) GetTranscript(ctx context.Context, videoURLOrID string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Transcript, nil
}

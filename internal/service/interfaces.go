package service

import (
	"context"

	"github.com/DavidPeleg6/recipe-creator/internal/models"
)

// RecipeStructurer maps free-form recipe text to a structured Recipe.
// Implementations are expected to be unreliable about identity: the save
// pipeline always regenerates the ID.
type RecipeStructurer interface {
	StructureRecipe(ctx context.Context, rawText string) (*models.Recipe, error)
}

// ImageGenerator produces raw image bytes for a prompt. Failures are
// expected and must be treated as non-fatal by callers.
type ImageGenerator interface {
	GenerateRecipeImage(ctx context.Context, prompt, recipeName string) ([]byte, error)
}

// ImageUploader persists image bytes and returns a retrievable URL
type ImageUploader interface {
	UploadRecipeImage(ctx context.Context, data []byte, recipeID string) (string, error)
}

// QueryExecutor is the guarded SQL entry point consumed by the agent runtime
type QueryExecutor interface {
	Execute(ctx context.Context, query string, rowLimit int) QueryResult
}

// RecipeSaver is the save-recipe entry point consumed by the agent runtime
type RecipeSaver interface {
	SaveRecipe(ctx context.Context, rawText, conversationID string) SaveResult
}

// WebSearcher searches the web for recipe material
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) (string, error)
}

// TranscriptFetcher retrieves the transcript of a cooking video
type TranscriptFetcher interface {
	GetTranscript(ctx context.Context, videoURLOrID string) (string, error)
}

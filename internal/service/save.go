package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DavidPeleg6/recipe-creator/internal/database"
	"github.com/DavidPeleg6/recipe-creator/internal/models"
)

// SaveStatus discriminates the save-pipeline outcome
type SaveStatus string

const (
	// SaveStatusSaved means the recipe row was committed
	SaveStatusSaved SaveStatus = "saved"
	// SaveStatusRejected means validation failed before any side effect
	SaveStatusRejected SaveStatus = "rejected"
	// SaveStatusError means structuring or the final insert failed
	SaveStatusError SaveStatus = "error"
)

// SaveResult is the outcome of a save-recipe invocation. Image bytes are
// never included, only a storage URL.
type SaveResult struct {
	Status     SaveStatus `json:"status"`
	RecipeID   string     `json:"recipe_id,omitempty"`
	RecipeName string     `json:"recipe_name,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	Message    string     `json:"message"`
	Error      string     `json:"error,omitempty"`
}

// imageTimeout bounds the whole generation+upload side quest
const imageTimeout = 60 * time.Second

// SaveService converts raw recipe text into a persisted, identity-bearing
// record. Image generation is a best-effort enhancement: its failure
// downgrades the result to no-image but never aborts the save. The caller
// (agent runtime) is responsible for the human-approval gate upstream.
type SaveService struct {
	sessions   database.SessionFactory
	structurer RecipeStructurer
	images     ImageGenerator
	uploads    ImageUploader
}

// NewSaveService creates the save pipeline. images and uploads may be nil
// when the corresponding collaborator is not configured; saves then proceed
// without an image.
func NewSaveService(sessions database.SessionFactory, structurer RecipeStructurer, images ImageGenerator, uploads ImageUploader) *SaveService {
	return &SaveService{
		sessions:   sessions,
		structurer: structurer,
		images:     images,
		uploads:    uploads,
	}
}

// SaveRecipe runs the pipeline: ensure schema, structure, validate, assign
// identity, best-effort image, atomic insert.
func (s *SaveService) SaveRecipe(ctx context.Context, rawText, conversationID string) SaveResult {
	session := s.sessions(ctx)

	// Idempotent, safe to call on every save.
	if err := database.InitSchema(session); err != nil {
		log.Printf("[SaveService] schema init failed: %v", err)
		return saveError(err)
	}

	recipe, err := s.structurer.StructureRecipe(ctx, rawText)
	if err != nil {
		log.Printf("[SaveService] recipe structuring failed: %v", err)
		return saveError(err)
	}

	if err := recipe.Validate(); err != nil {
		log.Printf("[SaveService] recipe rejected: %v", err)
		return SaveResult{
			Status:  SaveStatusRejected,
			Error:   err.Error(),
			Message: fmt.Sprintf("Invalid recipe: %s", err.Error()),
		}
	}

	// The structuring model often emits placeholder or all-zero identifiers;
	// identity is always assigned here, never trusted from the collaborator.
	recipe.ID = uuid.New()
	recipe.ConversationID = conversationID

	recipe.ImageURL = s.createImage(ctx, recipe)

	row := recipe.ToSavedRecipe()
	if err := session.Transaction(func(tx *gorm.DB) error {
		return tx.Create(row).Error
	}); err != nil {
		log.Printf("[SaveService] insert failed for '%s': %v", recipe.Name, err)
		return saveError(err)
	}

	message := fmt.Sprintf("Recipe '%s' saved successfully!", recipe.Name)
	if recipe.ImageURL == "" {
		message += " (Image generation unavailable)"
	}

	log.Printf("[SaveService] saved recipe '%s' (%s)", recipe.Name, recipe.ID)
	return SaveResult{
		Status:     SaveStatusSaved,
		RecipeID:   recipe.ID.String(),
		RecipeName: recipe.Name,
		ImageURL:   recipe.ImageURL,
		Message:    message,
	}
}

// createImage generates and uploads an illustrative image. Every failure
// path returns an empty URL; none aborts the save.
func (s *SaveService) createImage(ctx context.Context, recipe *models.Recipe) string {
	if s.images == nil || s.uploads == nil {
		log.Printf("[SaveService] image generation skipped for '%s': not configured", recipe.Name)
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()

	prompt := BuildRecipeImagePrompt(recipe)
	data, err := s.images.GenerateRecipeImage(ctx, prompt, recipe.Name)
	if err != nil {
		log.Printf("[SaveService] image generation failed for '%s': %v", recipe.Name, err)
		return ""
	}
	if len(data) == 0 {
		log.Printf("[SaveService] image generation returned no data for '%s'", recipe.Name)
		return ""
	}

	url, err := s.uploads.UploadRecipeImage(ctx, data, recipe.ID.String())
	if err != nil {
		log.Printf("[SaveService] image upload failed for '%s': %v", recipe.Name, err)
		return ""
	}
	return url
}

func saveError(err error) SaveResult {
	return SaveResult{
		Status:  SaveStatusError,
		Error:   err.Error(),
		Message: fmt.Sprintf("Failed to save recipe: %s", err.Error()),
	}
}

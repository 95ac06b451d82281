package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedRecipe is the persisted row for table saved_recipes. Structured fields
// are stored as JSON text rather than relational decomposition. Rows are
// never hard-deleted; is_deleted is the sole deletion mechanism and the sole
// authority for default query visibility.
type SavedRecipe struct {
	ID               string           `gorm:"type:varchar(36);primary_key" json:"id"`
	Name             string           `gorm:"size:255;not null;index" json:"name"`
	RecipeType       string           `gorm:"size:20;not null;index" json:"recipe_type"`
	Ingredients      JSONBIngredients `gorm:"type:text;not null" json:"ingredients"`
	Instructions     JSONBStringArray `gorm:"type:text;not null" json:"instructions"`
	PrepTimeMinutes  *int             `json:"prep_time_minutes"`
	CookTimeMinutes  *int             `json:"cook_time_minutes"`
	Servings         *int             `json:"servings"`
	SourceReferences JSONBStringArray `gorm:"type:text" json:"source_references"`
	Notes            string           `gorm:"size:2000" json:"notes"`
	UserNotes        string           `gorm:"size:2000" json:"user_notes"`
	Tags             JSONBStringArray `gorm:"type:text" json:"tags"`
	ImageURL         string           `gorm:"size:512" json:"image_url"`
	ConversationID   string           `gorm:"size:100" json:"conversation_id"`
	IsDeleted        bool             `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt        time.Time        `gorm:"not null;index" json:"created_at"`
	LastAccessedAt   time.Time        `json:"last_accessed_at"`
}

// TableName overrides the GORM default pluralization
func (SavedRecipe) TableName() string {
	return "saved_recipes"
}

// ToRecipe converts the persisted row back into the value object
func (s *SavedRecipe) ToRecipe() (*Recipe, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return nil, err
	}
	return &Recipe{
		ID:               id,
		Name:             s.Name,
		RecipeType:       RecipeType(s.RecipeType),
		Ingredients:      []Ingredient(s.Ingredients),
		Instructions:     []string(s.Instructions),
		PrepTimeMinutes:  s.PrepTimeMinutes,
		CookTimeMinutes:  s.CookTimeMinutes,
		Servings:         s.Servings,
		SourceReferences: []string(s.SourceReferences),
		Notes:            s.Notes,
		UserNotes:        s.UserNotes,
		Tags:             []string(s.Tags),
		ImageURL:         s.ImageURL,
		ConversationID:   s.ConversationID,
	}, nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecipeType is the closed set of recipe categories the agent can produce
type RecipeType string

const (
	RecipeTypeCocktail RecipeType = "cocktail"
	RecipeTypeFood     RecipeType = "food"
	RecipeTypeDessert  RecipeType = "dessert"
)

// Valid reports whether t is one of the known recipe types
func (t RecipeType) Valid() bool {
	switch t {
	case RecipeTypeCocktail, RecipeTypeFood, RecipeTypeDessert:
		return true
	}
	return false
}

// Ingredient is a single ingredient with quantity information
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// JSONBStringArray is a custom type for handling string arrays stored as JSON text
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// JSONBIngredients stores the ingredient list as JSON text
type JSONBIngredients []Ingredient

// Value implements the driver.Valuer interface
func (a JSONBIngredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBIngredients) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBIngredients{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is the transient, pre-persistence recipe value object. The
// structuring LLM fills the core fields; identity and timestamps are owned
// by the persistence layer.
type Recipe struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	RecipeType       RecipeType   `json:"recipe_type"`
	Ingredients      []Ingredient `json:"ingredients"`
	Instructions     []string     `json:"instructions"`
	PrepTimeMinutes  *int         `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes  *int         `json:"cook_time_minutes,omitempty"`
	Servings         *int         `json:"servings,omitempty"`
	SourceReferences []string     `json:"source_references,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	UserNotes        string       `json:"user_notes,omitempty"`
	Tags             []string     `json:"tags,omitempty"`
	ImageURL         string       `json:"image_url,omitempty"`
	ConversationID   string       `json:"conversation_id,omitempty"`
}

const maxNameLength = 200

// Validate checks the recipe against the field constraints and returns the
// first violation, qualified with the offending field name.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name: recipe name is required")
	}
	if len(r.Name) > maxNameLength {
		return fmt.Errorf("name: recipe name exceeds %d characters", maxNameLength)
	}
	if !r.RecipeType.Valid() {
		return fmt.Errorf("recipe_type: must be one of cocktail, food, dessert (got %q)", r.RecipeType)
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("ingredients: at least one ingredient is required")
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("ingredients[%d].name: ingredient name is required", i)
		}
		if strings.TrimSpace(ing.Quantity) == "" {
			return fmt.Errorf("ingredients[%d].quantity: ingredient quantity is required", i)
		}
	}
	if len(r.Instructions) == 0 {
		return fmt.Errorf("instructions: at least one instruction step is required")
	}
	for i, step := range r.Instructions {
		if strings.TrimSpace(step) == "" {
			return fmt.Errorf("instructions[%d]: instruction step must not be empty", i)
		}
	}
	if r.PrepTimeMinutes != nil && *r.PrepTimeMinutes < 0 {
		return fmt.Errorf("prep_time_minutes: must not be negative")
	}
	if r.CookTimeMinutes != nil && *r.CookTimeMinutes < 0 {
		return fmt.Errorf("cook_time_minutes: must not be negative")
	}
	if r.Servings != nil && *r.Servings <= 0 {
		return fmt.Errorf("servings: must be positive")
	}
	return nil
}

// ToSavedRecipe flattens the value object into its persisted row form.
// Timestamps are set here; is_deleted always starts false.
func (r *Recipe) ToSavedRecipe() *SavedRecipe {
	now := time.Now().UTC()
	return &SavedRecipe{
		ID:               r.ID.String(),
		Name:             r.Name,
		RecipeType:       string(r.RecipeType),
		Ingredients:      JSONBIngredients(r.Ingredients),
		Instructions:     JSONBStringArray(r.Instructions),
		PrepTimeMinutes:  r.PrepTimeMinutes,
		CookTimeMinutes:  r.CookTimeMinutes,
		Servings:         r.Servings,
		SourceReferences: JSONBStringArray(r.SourceReferences),
		Notes:            r.Notes,
		UserNotes:        r.UserNotes,
		Tags:             JSONBStringArray(r.Tags),
		ImageURL:         r.ImageURL,
		ConversationID:   r.ConversationID,
		IsDeleted:        false,
		CreatedAt:        now,
		LastAccessedAt:   now,
	}
}

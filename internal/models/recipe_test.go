package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func validRecipe() *Recipe {
	return &Recipe{
		ID:         uuid.New(),
		Name:       "Old Fashioned",
		RecipeType: RecipeTypeCocktail,
		Ingredients: []Ingredient{
			{Name: "bourbon", Quantity: "2", Unit: "oz"},
			{Name: "sugar cube", Quantity: "1"},
			{Name: "angostura bitters", Quantity: "2", Unit: "dashes"},
		},
		Instructions: []string{
			"Muddle the sugar cube with the bitters",
			"Add bourbon and ice, stir until chilled",
			"Garnish with an orange peel",
		},
		PrepTimeMinutes: intPtr(5),
		Servings:        intPtr(1),
		Tags:            []string{"classic", "whiskey", "easy"},
	}
}

func TestRecipeValidate(t *testing.T) {
	t.Run("valid recipe passes", func(t *testing.T) {
		assert.NoError(t, validRecipe().Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		r := validRecipe()
		r.Name = "   "
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("name too long", func(t *testing.T) {
		r := validRecipe()
		for len(r.Name) <= maxNameLength {
			r.Name += r.Name
		}
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("unknown recipe type", func(t *testing.T) {
		r := validRecipe()
		r.RecipeType = "smoothie"
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "recipe_type")
	})

	t.Run("empty ingredients", func(t *testing.T) {
		r := validRecipe()
		r.Ingredients = nil
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ingredients")
	})

	t.Run("ingredient missing quantity", func(t *testing.T) {
		r := validRecipe()
		r.Ingredients[1].Quantity = ""
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ingredients[1].quantity")
	})

	t.Run("empty instructions", func(t *testing.T) {
		r := validRecipe()
		r.Instructions = []string{}
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "instructions")
	})

	t.Run("blank instruction step", func(t *testing.T) {
		r := validRecipe()
		r.Instructions[2] = ""
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "instructions[2]")
	})

	t.Run("negative prep time", func(t *testing.T) {
		r := validRecipe()
		r.PrepTimeMinutes = intPtr(-1)
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prep_time_minutes")
	})

	t.Run("zero servings", func(t *testing.T) {
		r := validRecipe()
		r.Servings = intPtr(0)
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "servings")
	})
}

func TestRecipeToSavedRecipe(t *testing.T) {
	r := validRecipe()
	r.ImageURL = "https://bucket.s3.amazonaws.com/recipe-images/x.png"

	row := r.ToSavedRecipe()

	assert.Equal(t, r.ID.String(), row.ID)
	assert.Equal(t, r.Name, row.Name)
	assert.Equal(t, "cocktail", row.RecipeType)
	assert.Len(t, row.Ingredients, 3)
	assert.Len(t, row.Instructions, 3)
	assert.Equal(t, r.ImageURL, row.ImageURL)
	assert.False(t, row.IsDeleted)
	assert.False(t, row.CreatedAt.IsZero())
	assert.False(t, row.LastAccessedAt.IsZero())

	back, err := row.ToRecipe()
	require.NoError(t, err)
	assert.Equal(t, r.ID, back.ID)
	assert.Equal(t, r.Ingredients, back.Ingredients)
	assert.Equal(t, r.Instructions, back.Instructions)
}

func TestJSONBIngredientsValue(t *testing.T) {
	t.Run("empty serializes to empty array", func(t *testing.T) {
		var ings JSONBIngredients
		v, err := ings.Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("round trip through scan", func(t *testing.T) {
		ings := JSONBIngredients{{Name: "gin", Quantity: "2", Unit: "oz"}}
		v, err := ings.Value()
		require.NoError(t, err)

		raw, ok := v.([]byte)
		require.True(t, ok)

		var out JSONBIngredients
		require.NoError(t, out.Scan(raw))
		assert.Equal(t, ings, out)
	})
}

func TestRecipeJSONFieldNames(t *testing.T) {
	// The structuring LLM is prompted with these exact field names.
	data, err := json.Marshal(validRecipe())
	require.NoError(t, err)
	for _, field := range []string{"recipe_type", "ingredients", "instructions", "prep_time_minutes", "servings"} {
		assert.Contains(t, string(data), field)
	}
}

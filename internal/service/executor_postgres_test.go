package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidPeleg6/recipe-creator/internal/database"
	"github.com/DavidPeleg6/recipe-creator/internal/mocks"
	"github.com/DavidPeleg6/recipe-creator/internal/models"
	"github.com/DavidPeleg6/recipe-creator/internal/service"
	"github.com/DavidPeleg6/recipe-creator/internal/testhelpers"
)

// Exercises the whole save-query-soft-delete cycle against a real PostgreSQL
// instance. Skipped when docker is unavailable.
func TestRecipeLifecycleOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)
	ctx := context.Background()
	sessions := database.NewSessionFactory(db)

	saver := service.NewSaveService(sessions, &mocks.MockRecipeStructurer{Recipe: structuredRecipe()}, nil, nil)
	executor := service.NewSQLExecutor(sessions, service.DefaultExecutorOptions())

	saved := saver.SaveRecipe(ctx, "shake vodka with espresso", "conv-pg")
	require.Equal(t, service.SaveStatusSaved, saved.Status)

	t.Run("saved recipe is visible", func(t *testing.T) {
		result := executor.Execute(ctx, "SELECT id, name FROM saved_recipes", 0)
		require.True(t, result.Success, result.Error)
		require.Equal(t, 1, result.RowCount)
		assert.Equal(t, "Espresso Martini", result.Data[0]["name"])
	})

	t.Run("DELETE is denied", func(t *testing.T) {
		result := executor.Execute(ctx, "DELETE FROM saved_recipes", 0)
		assert.False(t, result.Success)
		assert.Equal(t, "DELETE not allowed - use UPDATE SET is_deleted = true", result.Error)
	})

	t.Run("soft delete hides the recipe", func(t *testing.T) {
		update := executor.Execute(ctx, fmt.Sprintf("UPDATE saved_recipes SET is_deleted = true WHERE id = '%s'", saved.RecipeID), 0)
		require.True(t, update.Success, update.Error)
		assert.Equal(t, int64(1), update.AffectedRows)

		result := executor.Execute(ctx, "SELECT id, name FROM saved_recipes", 0)
		require.True(t, result.Success, result.Error)
		assert.Zero(t, result.RowCount)

		// The row itself survives.
		var count int64
		require.NoError(t, db.Model(&models.SavedRecipe{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("explicit is_deleted filter still reaches hidden rows", func(t *testing.T) {
		result := executor.Execute(ctx, "SELECT id, name FROM saved_recipes WHERE is_deleted = true", 0)
		require.True(t, result.Success, result.Error)
		assert.Equal(t, 1, result.RowCount)
	})
}

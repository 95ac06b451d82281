package testhelpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DavidPeleg6/recipe-creator/internal/database"
	"github.com/DavidPeleg6/recipe-creator/internal/models"
)

// SetupSQLiteDB creates an isolated in-memory database with the
// saved_recipes schema applied. Suitable for executor and save-pipeline
// unit tests that need real SQL without a running Postgres.
func SetupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.SavedRecipe{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// CountingSessionFactory wraps a session factory and records how many
// sessions were handed out. Used to assert that policy denials never touch
// the database.
type CountingSessionFactory struct {
	inner database.SessionFactory
	Count int
}

// NewCountingSessionFactory wraps the factory for db
func NewCountingSessionFactory(db *gorm.DB) *CountingSessionFactory {
	return &CountingSessionFactory{inner: database.NewSessionFactory(db)}
}

// Factory returns the counting SessionFactory func
func (c *CountingSessionFactory) Factory() database.SessionFactory {
	return func(ctx context.Context) *gorm.DB {
		c.Count++
		return c.inner(ctx)
	}
}

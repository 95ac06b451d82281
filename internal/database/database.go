package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/DavidPeleg6/recipe-creator/config"
	"github.com/DavidPeleg6/recipe-creator/internal/models"
)

// New creates a new GORM database connection with pooled settings
func New(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	// Log connection target (without password)
	log.Printf("Connecting to database at %s:%s as user %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error accessing underlying connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Printf("Successfully connected to database")
	return db, nil
}

// InitSchema creates the saved_recipes table if it does not exist.
// Safe to call on every startup and on every save.
func InitSchema(db *gorm.DB) error {
	return db.AutoMigrate(&models.SavedRecipe{})
}

// SessionFactory hands out a fresh scoped session per invocation. Executor
// and save-pipeline calls never share a session; each one commits or rolls
// back its own work before returning.
type SessionFactory func(ctx context.Context) *gorm.DB

// NewSessionFactory builds a SessionFactory over a shared connection pool
func NewSessionFactory(db *gorm.DB) SessionFactory {
	return func(ctx context.Context) *gorm.DB {
		return db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
	}
}

package main

import (
	"log"

	"github.com/DavidPeleg6/recipe-creator/config"
	"github.com/DavidPeleg6/recipe-creator/internal/database"
)

// Applies the saved_recipes schema without starting the API. Useful in
// deploy hooks where the database must be ready before traffic arrives.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.InitSchema(db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	log.Println("[Migrate] Schema is up to date")
}

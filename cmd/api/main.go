package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DavidPeleg6/recipe-creator/config"
	"github.com/DavidPeleg6/recipe-creator/internal/database"
	"github.com/DavidPeleg6/recipe-creator/internal/server"
	"github.com/DavidPeleg6/recipe-creator/internal/service"
)

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
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	sessions := database.NewSessionFactory(db)

	// Redis only backs rate limiting; the API works without it.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("[Main] Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	structurer, err := service.NewLLMService(cfg)
	if err != nil {
		log.Fatalf("Failed to create LLM service: %v", err)
	}

	// Imaging is best effort end to end: a missing key or bucket just means
	// recipes are saved without pictures.
	var images service.ImageGenerator
	if imageService, err := service.NewImageService(cfg); err != nil {
		log.Printf("[Main] Image generation disabled: %v", err)
	} else {
		images = imageService
	}

	var uploads service.ImageUploader
	if s3Config, err := config.NewS3Config(context.Background(), cfg.S3BucketName); err != nil {
		log.Printf("[Main] Image storage disabled: %v", err)
	} else {
		uploads = service.NewStorageService(s3Config)
	}

	var search service.WebSearcher
	if searchService, err := service.NewSearchService(cfg); err != nil {
		log.Printf("[Main] Web search disabled: %v", err)
	} else {
		search = searchService
	}

	executor := service.NewSQLExecutor(sessions, service.DefaultExecutorOptions())
	saver := service.NewSaveService(sessions, structurer, images, uploads)
	youtube := service.NewYouTubeService()

	srv := server.New(cfg, executor, saver, search, youtube, redisClient)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("[Main] Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("[Main] Received signal: %v", sig)
	}

	log.Println("[Main] Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("[Main] Server stopped")
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/DavidPeleg6/recipe-creator/config"
)

// StorageService uploads generated recipe images to S3
type StorageService struct {
	s3Config *config.S3Config
}

// NewStorageService creates a new StorageService instance
func NewStorageService(s3Config *config.S3Config) *StorageService {
	return &StorageService{s3Config: s3Config}
}

func (s *StorageService) objectKey(recipeID string) string {
	return fmt.Sprintf("recipe-images/%s.png", recipeID)
}

// UploadRecipeImage uploads image bytes keyed by recipe ID and returns the
// public URL
func (s *StorageService) UploadRecipeImage(ctx context.Context, data []byte, recipeID string) (string, error) {
	key := s.objectKey(recipeID)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[StorageService] uploaded image for recipe %s: %s", recipeID, publicURL)
	return publicURL, nil
}

// DeleteRecipeImage removes the stored image for a recipe. Used when the
// user rejects a saved recipe after seeing its image.
func (s *StorageService) DeleteRecipeImage(ctx context.Context, recipeID string) error {
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(s.objectKey(recipeID)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	log.Printf("[StorageService] deleted image for recipe %s", recipeID)
	return nil
}

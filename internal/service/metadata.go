package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/recipemint/backend/internal/models"
	"github.com/pageza/recipemint/backend/internal/types"
)

// ErrStorageDisabled is returned when no bucket is configured
var ErrStorageDisabled = errors.New("metadata storage is not configured")

// TokenMetadata is the ERC-721 style document a token URI points at
type TokenMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image,omitempty"`
	Attributes  []Attribute `json:"attributes"`
}

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// MetadataService stores token metadata documents in S3
type MetadataService struct {
	store  ObjectPutter
	bucket string
	urlFor func(key string) string
}

// NewMetadataService creates the service. A nil store disables uploads.
func NewMetadataService(store ObjectPutter, bucket string, urlFor func(key string) string) *MetadataService {
	return &MetadataService{
		store:  store,
		bucket: bucket,
		urlFor: urlFor,
	}
}

// BuildMetadata fills defaults from the recipe for fields left empty
func BuildMetadata(recipe *models.Recipe, req *types.MetadataRequest) TokenMetadata {
	name := req.Name
	if name == "" {
		name = recipe.Title
	}
	image := req.Image
	if image == "" {
		image = recipe.ImageURL
	}
	return TokenMetadata{
		Name:        name,
		Description: req.Description,
		Image:       image,
		Attributes: []Attribute{
			{TraitType: "recipe_id", Value: strconv.FormatUint(recipe.ID, 10)},
			{TraitType: "creator", Value: recipe.Creator},
			{TraitType: "ingredients", Value: strconv.Itoa(len(recipe.Ingredients))},
		},
	}
}

// MetadataKey returns the object key for a new document of a recipe
func MetadataKey(recipeID uint64) string {
	return fmt.Sprintf("metadata/%d/%s.json", recipeID, uuid.NewString())
}

// Upload writes the metadata document for recipe and returns its URL
func (s *MetadataService) Upload(ctx context.Context, recipe *models.Recipe, req *types.MetadataRequest) (string, error) {
	if s == nil || s.store == nil {
		return "", ErrStorageDisabled
	}

	body, err := json.Marshal(BuildMetadata(recipe, req))
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	key := MetadataKey(recipe.ID)
	_, err = s.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.urlFor(key)
	log.Printf("[MetadataService] uploaded metadata for recipe %d: %s", recipe.ID, url)
	return url, nil
}

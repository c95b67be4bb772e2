package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipemint/backend/internal/mocks"
	"github.com/pageza/recipemint/backend/internal/models"
	"github.com/pageza/recipemint/backend/internal/service"
	"github.com/pageza/recipemint/backend/internal/testhelpers"
	"github.com/pageza/recipemint/backend/internal/types"
)

func testRecipe() *models.Recipe {
	return &models.Recipe{
		ID:          7,
		Creator:     testhelpers.Alice,
		Title:       "Nasi Goreng",
		Ingredients: models.StringList{"rice", "egg", "kecap manis"},
		ImageURL:    "https://img.example/nasi.png",
	}
}

func TestMetadataUpload(t *testing.T) {
	store := &mocks.MockObjectPutter{}
	store.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "recipes" && *in.ContentType == "application/json"
	})).Return(&s3.PutObjectOutput{}, nil)

	svc := service.NewMetadataService(store, "recipes", func(key string) string {
		return "https://cdn.example/" + key
	})

	url, err := svc.Upload(context.Background(), testRecipe(), &types.MetadataRequest{
		RecipeID:    7,
		Description: "Fried rice",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example/metadata/7/"))
	assert.True(t, strings.HasSuffix(url, ".json"))
	store.AssertExpectations(t)

	require.Len(t, store.Objects, 1)
	for key, body := range store.Objects {
		assert.Equal(t, "https://cdn.example/"+key, url)

		var doc service.TokenMetadata
		require.NoError(t, json.Unmarshal(body, &doc))
		assert.Equal(t, "Nasi Goreng", doc.Name)
		assert.Equal(t, "Fried rice", doc.Description)
		assert.Equal(t, "https://img.example/nasi.png", doc.Image)
		assert.Contains(t, doc.Attributes, service.Attribute{TraitType: "recipe_id", Value: "7"})
		assert.Contains(t, doc.Attributes, service.Attribute{TraitType: "ingredients", Value: "3"})
	}
}

func TestMetadataUploadFailure(t *testing.T) {
	store := &mocks.MockObjectPutter{}
	store.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	svc := service.NewMetadataService(store, "recipes", func(key string) string { return key })
	_, err := svc.Upload(context.Background(), testRecipe(), &types.MetadataRequest{RecipeID: 7})
	assert.ErrorContains(t, err, "access denied")
	assert.Empty(t, store.Objects)
}

func TestMetadataDisabled(t *testing.T) {
	svc := service.NewMetadataService(nil, "", nil)
	_, err := svc.Upload(context.Background(), testRecipe(), &types.MetadataRequest{RecipeID: 7})
	assert.ErrorIs(t, err, service.ErrStorageDisabled)

	var none *service.MetadataService
	_, err = none.Upload(context.Background(), testRecipe(), &types.MetadataRequest{RecipeID: 7})
	assert.ErrorIs(t, err, service.ErrStorageDisabled)
}

func TestBuildMetadataOverrides(t *testing.T) {
	doc := service.BuildMetadata(testRecipe(), &types.MetadataRequest{
		Name:  "Special",
		Image: "ipfs://img",
	})
	assert.Equal(t, "Special", doc.Name)
	assert.Equal(t, "ipfs://img", doc.Image)
}

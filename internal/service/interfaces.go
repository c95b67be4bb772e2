package service

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/recipemint/backend/internal/models"
	"github.com/pageza/recipemint/backend/internal/types"
)

// IAuthService defines the interface for caller identity
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(address string) (string, error)
}

// IMetadataService defines the interface for token metadata storage
type IMetadataService interface {
	Upload(ctx context.Context, recipe *models.Recipe, req *types.MetadataRequest) (string, error)
}

// ObjectPutter is the part of the S3 client the metadata service needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

package mocks

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

// MockObjectPutter is a mock S3 client. Bodies of successful calls are
// kept in Objects by key.
type MockObjectPutter struct {
	mock.Mock
	Objects map[string][]byte
}

func (m *MockObjectPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if m.Objects == nil {
		m.Objects = map[string][]byte{}
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.Objects[*params.Key] = body
	return args.Get(0).(*s3.PutObjectOutput), nil
}

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipemint/backend/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) GenerateToken(address string) (string, error) {
	args := m.Called(address)
	return args.String(0), args.Error(1)
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/recipemint/backend/internal/address"
	"github.com/pageza/recipemint/backend/internal/types"
)

// DefaultTokenTTL is how long generated tokens stay valid
const DefaultTokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// AuthService issues and validates HS256 tokens carrying a wallet address
type AuthService struct {
	jwtSecret string
	ttl       time.Duration
}

func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{
		jwtSecret: jwtSecret,
		ttl:       DefaultTokenTTL,
	}
}

// GenerateToken signs a token for addr
func (s *AuthService) GenerateToken(addr string) (string, error) {
	addr, err := address.Normalize(addr)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   addr,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Address: addr,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks the signature and expiry and returns the claims with
// a normalized address
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	addr, err := address.Normalize(claims.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: bad address claim", ErrInvalidToken)
	}
	claims.Address = addr
	return claims, nil
}

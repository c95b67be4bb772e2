package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token. Address is the wallet
// address of the caller in lower-case form.
type TokenClaims struct {
	jwt.RegisteredClaims
	Address string `json:"address"`
}

package helpers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims are the claims expected from the identity provider's access
// tokens. Only the email is consumed by the booking engine.
type IdentityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewJWKS fetches the identity provider's key set once at startup; the
// returned JWKS refreshes itself in the background.
func NewJWKS(jwksURL string) (*keyfunc.JWKS, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:             ctx,
		RefreshInterval: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %v", err)
	}
	return jwks, nil
}

// ValidateToken verifies a bearer token against the provider's key set and
// returns its claims.
func ValidateToken(jwks *keyfunc.JWKS, tokenStr string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &IdentityClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.Email == "" {
		return nil, errors.New("token carries no email claim")
	}

	return claims, nil
}

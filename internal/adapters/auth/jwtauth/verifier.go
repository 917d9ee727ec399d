package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"pet-shelter-adoption/internal/ports/auth"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("jwt verifier not configured")
)

// Verifier implementa auth.AuthVerifier validando JWTs HMAC emitidos por el
// proveedor de sesión. Claims esperados: sub (user id), email, name, role,
// shelter_id (opcional).
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}
	if !parsed.Valid {
		return auth.Claims{}, errors.New("invalid token")
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, errors.New("invalid token claims")
	}

	c := auth.Claims{
		UserID:    stringClaim(mc, "sub"),
		Email:     stringClaim(mc, "email"),
		Name:      stringClaim(mc, "name"),
		Role:      stringClaim(mc, "role"),
		ShelterID: stringClaim(mc, "shelter_id"),
	}
	if c.UserID == "" {
		return auth.Claims{}, errors.New("token missing sub claim")
	}

	return c, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	v, _ := mc[key].(string)
	return strings.TrimSpace(v)
}

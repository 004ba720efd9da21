package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/extremtechniker/gokey/secret"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of tokens issued without an explicit ttl.
const DefaultTTL = 24 * time.Hour

var ErrInvalid = errors.New("invalid token")

func Issue(key []byte, subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	s, err := t.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return s, nil
}

// Parse verifies an HS256 token signed with key and returns its claims.
// Every failure wraps ErrInvalid.
func Parse(key []byte, tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !t.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// SigningKey derives the HS256 key from the process secret key.
func SigningKey(k secret.Key) []byte {
	return k.Derive("jwt", 32)
}

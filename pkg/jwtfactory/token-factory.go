package jwtfactory

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

const (
	RoleClaimName = "role"
	AdminRole     = "admin"
)

type TokenFactory struct {
	tokenAuth           *jwtauth.JWTAuth
	tokenExpirationTime time.Duration
}

func New(tokenAuth *jwtauth.JWTAuth, tokenExpirationTime time.Duration) *TokenFactory {
	return &TokenFactory{
		tokenAuth:           tokenAuth,
		tokenExpirationTime: tokenExpirationTime,
	}
}

// Generate issues a token for subject carrying the given role.
func (tf *TokenFactory) Generate(subject, role string) (string, error) {
	timeNow := time.Now()
	claims := map[string]any{
		"sub":         subject,
		"jti":         uuid.NewString(),
		RoleClaimName: role,
		"exp":         timeNow.Add(tf.tokenExpirationTime).Unix(),
		"iat":         timeNow.Unix(),
	}
	_, tokenString, err := tf.tokenAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %w", err)
	}
	return tokenString, nil
}

package main

import (
	jwttoken "attestry/internal/jwt_token"
	"attestry/pkg/platform/middleware/auth"
)

// tokenValidator adapts the JWT service to the auth middleware's validator
// interface.
type tokenValidator struct {
	tokens *jwttoken.Service
}

func (v *tokenValidator) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := v.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &auth.Claims{Attester: claims.Subject}, nil
}

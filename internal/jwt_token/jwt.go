// Package jwttoken issues and validates the bearer tokens attesters present
// to the HTTP API. Tokens are HS256-signed and carry the attester address as
// the subject.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "attestry/pkg/domain"
	dErrors "attestry/pkg/domain-errors"
)

// AttesterClaims represents the JWT claims for attester tokens.
type AttesterClaims struct {
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewService(signingKey string, issuer string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// GenerateAttesterToken issues a signed token whose subject is the attester
// address in 0x-hex form.
func (s *Service) GenerateAttesterToken(attester id.Address) (string, error) {
	if attester.IsZero() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "attester address cannot be zero")
	}
	now := time.Now()

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, AttesterClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   attester.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// ValidateToken verifies the signature, algorithm, expiry, and issuer, and
// returns the parsed claims.
func (s *Service) ValidateToken(tokenString string) (*AttesterClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &AttesterClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid token")
	}

	claims, ok := parsed.Claims.(*AttesterClaims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid token claims")
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid token issuer")
	}

	return claims, nil
}

// Package token issues and verifies the signed bearer tokens handed out at
// login. Tokens are stateless: validity is re-derived on every verification
// from the signature and the expiry claim, never from a server-side lookup.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/authkeep/authkeep/internal/common"
)

// Claims is the signed claim set: subject plus issue and expiry instants.
type Claims struct {
	jwt.RegisteredClaims
}

// Service signs and checks tokens with a process-wide HMAC secret (HS256).
// The secret is read-only after construction, so a single Service is safe
// under unbounded parallelism.
type Service struct {
	secret []byte

	// now is a test seam; it defaults to time.Now.
	now func() time.Time
}

func NewService(secret []byte) *Service {
	return &Service{secret: secret, now: time.Now}
}

// Issue returns a signed token for subject that stays valid for ttl.
// A zero or negative ttl is a caller error.
func (s *Service) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", common.ErrInvalidTTL
	}

	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return tok.SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the token's subject.
// Failures map onto common.ErrMalformedToken, common.ErrTamperedToken and
// common.ErrTokenExpired.
//
// Expiry is checked here rather than by the jwt validator: a token remains
// valid through its exact expiry instant and is rejected strictly after it.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", common.ErrMalformedToken
	case err != nil:
		// Signature mismatch, rejected algorithm, or any other parse failure
		// of a structurally valid token.
		return "", common.ErrTamperedToken
	}

	if claims.ExpiresAt == nil {
		return "", common.ErrMalformedToken
	}
	if s.now().After(claims.ExpiresAt.Time) {
		return "", common.ErrTokenExpired
	}

	return claims.Subject, nil
}

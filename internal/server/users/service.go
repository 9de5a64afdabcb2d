// Package users implements the authentication flows: registration, login and
// bearer-token authorization. It owns the boundary error mapping: the store,
// hasher and token service report precise failures, and this layer collapses
// the security-sensitive distinctions before they can reach a caller.
package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/authkeep/authkeep/internal/common"
	"github.com/authkeep/authkeep/internal/server/config"
	"github.com/authkeep/authkeep/internal/server/creds"
	"github.com/authkeep/authkeep/internal/server/passhash"
	"github.com/authkeep/authkeep/internal/server/token"
)

var bearerTokenRE = regexp.MustCompile(`^Bearer (\S+)$`)

type Service struct {
	repo     creds.Repository
	hasher   *passhash.Hasher
	tokens   *token.Service
	tokenTTL time.Duration

	// dummyDigest is verified against on the unknown-username login path so a
	// miss costs the same as a password mismatch.
	dummyDigest string
}

func NewService(repo creds.Repository, hasher *passhash.Hasher, tokens *token.Service, cfg *config.Config) (*Service, error) {
	dummy, err := hasher.Hash(common.RandBytes(32))
	if err != nil {
		return nil, fmt.Errorf("hashing throwaway digest: %w", err)
	}
	return &Service{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		tokenTTL:    cfg.AccessTokenValidityDuration,
		dummyDigest: dummy,
	}, nil
}

// Register creates a new identity. Hashing happens before the store insert,
// outside any lock, so the deliberately slow transform does not serialize
// unrelated requests.
func (s *Service) Register(ctx context.Context, username, password string) (*creds.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	digest, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.repo.Create(ctx, &creds.User{UserName: username, PasswordHash: digest})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Login verifies credentials and returns a fresh token. It never reveals
// whether the username exists: the unknown-user path still runs one
// verification (against the throwaway digest) and both failure modes come
// back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", common.ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify([]byte(password), s.dummyDigest)
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify([]byte(password), user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.UserName, s.tokenTTL)
	if err != nil {
		return "", common.ErrorInternal
	}

	return tok, nil
}

// Authorize resolves the subject behind an Authorization header value.
// A missing or non-Bearer header is ErrUnauthenticated. A present token that
// fails verification for any reason (malformed, tampered, expired) is
// ErrForbidden; the precise cause is deliberately dropped here.
func (s *Service) Authorize(ctx context.Context, authorization string) (string, error) {
	groups := bearerTokenRE.FindStringSubmatch(authorization)
	if groups == nil {
		return "", common.ErrUnauthenticated
	}

	subject, err := s.tokens.Verify(groups[1])
	if err != nil {
		return "", common.ErrForbidden
	}

	return subject, nil
}

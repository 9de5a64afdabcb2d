package users

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkeep/authkeep/internal/common"
	"github.com/authkeep/authkeep/internal/server/config"
	"github.com/authkeep/authkeep/internal/server/creds"
	"github.com/authkeep/authkeep/internal/server/passhash"
	"github.com/authkeep/authkeep/internal/server/token"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) (*Service, *creds.MemoryRepository) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret
	// Cheap hashing keeps the suite fast.
	cfg.HashTimeCost = 1
	cfg.HashMemoryKiB = 64
	cfg.HashParallelism = 1
	cfg.HashKeyLength = 16

	repo := creds.NewMemoryRepository()
	hasher := passhash.New(passhash.Params{
		TimeCost:    cfg.HashTimeCost,
		MemoryKiB:   cfg.HashMemoryKiB,
		Parallelism: cfg.HashParallelism,
		KeyLength:   cfg.HashKeyLength,
	})
	tokens := token.NewService([]byte(cfg.SecretKey))

	svc, err := NewService(repo, hasher, tokens, cfg)
	require.NoError(t, err)
	return svc, repo
}

func TestRegisterLoginAuthorize_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret", user.PasswordHash, "plaintext must not be stored")

	tok, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, err := svc.Authorize(ctx, "Bearer "+tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestRegister_Validation(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "pw")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Register(ctx, "user", "")
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.Equal(t, 0, repo.Len())
}

func TestRegister_Duplicate(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob", "pw2")
	assert.ErrorIs(t, err, common.ErrDuplicateUsername)
	assert.Equal(t, 1, repo.Len())
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol", "right-password")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "carol", "wrong-password")
	_, unknownUser := svc.Login(ctx, "nobody", "whatever")

	// Both paths yield the identical sentinel: no oracle for user existence.
	assert.ErrorIs(t, wrongPassword, common.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestAuthorize_HeaderHandling(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dave", "pw")
	require.NoError(t, err)
	tok, err := svc.Login(ctx, "dave", "pw")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", common.ErrUnauthenticated},
		{"wrong scheme", "Basic " + tok, common.ErrUnauthenticated},
		{"no token after scheme", "Bearer ", common.ErrUnauthenticated},
		{"garbage token", "Bearer not-a-token", common.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authorize(ctx, tt.header)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	subject, err := svc.Authorize(ctx, "Bearer "+tok)
	require.NoError(t, err)
	assert.Equal(t, "dave", subject)
}

func TestAuthorize_TamperedAndExpiredCollapseToForbidden(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Signed with a different secret: tampered from this service's view.
	foreign, err := token.NewService([]byte("other-secret")).Issue("eve", time.Hour)
	require.NoError(t, err)
	_, err = svc.Authorize(ctx, "Bearer "+foreign)
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Correct secret but already past its expiry.
	expired, err := issueExpired(t, "eve")
	require.NoError(t, err)
	_, err = svc.Authorize(ctx, "Bearer "+expired)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

// issueExpired signs a token with the test secret whose expiry is two hours in
// the past relative to the real clock.
func issueExpired(t *testing.T, subject string) (string, error) {
	t.Helper()
	issuedAt := time.Now().Add(-3 * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cleanhub/config"
	"cleanhub/internal/models"
	"cleanhub/internal/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRevokedTokens struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemoryRevokedTokens() *memoryRevokedTokens {
	return &memoryRevokedTokens{revoked: map[string]time.Time{}}
}

func (m *memoryRevokedTokens) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = until
	return nil
}

func (m *memoryRevokedTokens) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func newTestTokenService() *TokenService {
	return NewTokenService(config.Config{
		JWTSecret:           "test-secret",
		JWTExpiresIn:        time.Hour,
		JWTRefreshExpiresIn: 24 * time.Hour,
	}, nil)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	service := newTestTokenService()
	userID := uuid.New()

	pair, err := service.IssuePair(userID, models.RoleCleaner)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Token)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.Token, pair.RefreshToken)

	user, err := service.ValidateAccessToken(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "Cleaner", user.Role)

	refreshUser, err := service.Validate(context.Background(), pair.RefreshToken, types.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshUser.ID)
}

func TestTokenService_RejectsWrongTokenType(t *testing.T) {
	service := newTestTokenService()

	pair, err := service.IssuePair(uuid.New(), models.RoleHomeOwner)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.RefreshToken)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))

	_, err = service.Validate(context.Background(), pair.Token, types.RefreshToken)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	service := newTestTokenService()
	other := NewTokenService(config.Config{
		JWTSecret:           "another-secret",
		JWTExpiresIn:        time.Hour,
		JWTRefreshExpiresIn: time.Hour,
	}, nil)

	pair, err := other.IssuePair(uuid.New(), models.RoleCleaner)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.Token)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	service := newTestTokenService()

	claims := Claims{
		ID:   uuid.New().String(),
		Role: "Cleaner",
		Type: types.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(signed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
	assert.Equal(t, "Token expired.", types.ErrorMessage(err))
}

func TestTokenService_RejectsEmptyToken(t *testing.T) {
	_, err := newTestTokenService().ValidateAccessToken("")

	assert.True(t, errors.Is(err, types.ErrUnauthorized))
}

func TestTokenService_RevokedRefreshTokenIsRejected(t *testing.T) {
	store := newMemoryRevokedTokens()
	service := NewTokenService(config.Config{
		JWTSecret:           "test-secret",
		JWTExpiresIn:        time.Hour,
		JWTRefreshExpiresIn: 24 * time.Hour,
	}, store)
	userID := uuid.New()
	ctx := context.Background()

	pair, err := service.IssuePair(userID, models.RoleHomeOwner)
	require.NoError(t, err)
	other, err := service.IssuePair(userID, models.RoleHomeOwner)
	require.NoError(t, err)

	require.NoError(t, service.RevokeRefreshToken(ctx, pair.RefreshToken, userID))
	require.Len(t, store.revoked, 1)
	for _, until := range store.revoked {
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), until, time.Minute)
	}

	_, err = service.Validate(ctx, pair.RefreshToken, types.RefreshToken)
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	assert.Equal(t, "Token revoked.", types.ErrorMessage(err))

	user, err := service.Validate(ctx, other.RefreshToken, types.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	_, err = service.ValidateAccessToken(pair.Token)
	assert.NoError(t, err)
}

func TestTokenService_RevokeRequiresOwner(t *testing.T) {
	store := newMemoryRevokedTokens()
	service := NewTokenService(config.Config{
		JWTSecret:           "test-secret",
		JWTExpiresIn:        time.Hour,
		JWTRefreshExpiresIn: time.Hour,
	}, store)

	pair, err := service.IssuePair(uuid.New(), models.RoleCleaner)
	require.NoError(t, err)

	err = service.RevokeRefreshToken(context.Background(), pair.RefreshToken, uuid.New())
	assert.ErrorIs(t, err, types.ErrForbidden)

	err = service.RevokeRefreshToken(context.Background(), pair.Token, uuid.New())
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	assert.Empty(t, store.revoked)
}

func TestTokenService_RevocationLookupFailure(t *testing.T) {
	store := newMemoryRevokedTokens()
	store.err = errors.New("valkey unavailable")
	service := NewTokenService(config.Config{
		JWTSecret:           "test-secret",
		JWTExpiresIn:        time.Hour,
		JWTRefreshExpiresIn: time.Hour,
	}, store)

	pair, err := service.IssuePair(uuid.New(), models.RoleCleaner)
	require.NoError(t, err)

	_, err = service.Validate(context.Background(), pair.RefreshToken, types.RefreshToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrUnauthorized)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

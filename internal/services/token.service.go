package services

import (
	"context"
	"errors"
	"time"

	"cleanhub/config"
	"cleanhub/internal/database"
	"cleanhub/internal/models"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Claims struct {
	ID   string          `json:"id"`
	Role string          `json:"role"`
	Type types.TokenType `json:"typ"`
	jwt.RegisteredClaims
}

const REVOKED_REFRESH_PREFIX = "revoked-refresh"

// RevokedTokens remembers refresh token ids that can no longer be exchanged.
type RevokedTokens interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type cacheRevokedTokens struct {
	cache database.CacheClient
}

func NewCacheRevokedTokens(cache database.CacheClient) RevokedTokens {
	return &cacheRevokedTokens{cache: cache}
}

// Revoke keeps the id until the token would have expired anyway.
func (r *cacheRevokedTokens) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	return database.NewCacheBuilder(r.cache, tokenID).
		WithContext(ctx).
		WithHash(REVOKED_REFRESH_PREFIX).
		WithStruct(until).
		WithTTL(ttl).
		Set()
}

func (r *cacheRevokedTokens) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var until time.Time
	return database.NewCacheBuilder(r.cache, tokenID).
		WithContext(ctx).
		WithHash(REVOKED_REFRESH_PREFIX).
		Get(&until)
}

type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	revoked    RevokedTokens
	log        logger.Logger
}

// NewTokenService signs and checks tokens. A nil revoked store disables
// refresh token revocation.
func NewTokenService(config config.Config, revoked RevokedTokens) *TokenService {
	return &TokenService{
		secret:     []byte(config.JWTSecret),
		accessTTL:  config.JWTExpiresIn,
		refreshTTL: config.JWTRefreshExpiresIn,
		revoked:    revoked,
		log:        logger.New("tokenService"),
	}
}

func (s *TokenService) IssuePair(userID uuid.UUID, role models.UserRole) (types.TokenPair, error) {
	log := s.log.Function("IssuePair")

	access, err := s.issue(userID, role, types.AccessToken, s.accessTTL)
	if err != nil {
		return types.TokenPair{}, log.Err("failed to sign access token", err, "userID", userID)
	}

	refresh, err := s.issue(userID, role, types.RefreshToken, s.refreshTTL)
	if err != nil {
		return types.TokenPair{}, log.Err("failed to sign refresh token", err, "userID", userID)
	}

	return types.TokenPair{Token: access, RefreshToken: refresh}, nil
}

func (s *TokenService) issue(
	userID uuid.UUID,
	role models.UserRole,
	tokenType types.TokenType,
	ttl time.Duration,
) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:   userID.String(),
		Role: string(role),
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) parse(tokenString string, expected types.TokenType) (*Claims, error) {
	log := s.log.Function("parse")

	if tokenString == "" {
		return nil, log.ErrorWithType(types.ErrUnauthorized, "Missing token.")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, log.ErrorWithType(types.ErrUnauthorized, "Token expired.")
		}
		return nil, log.ErrorWithType(types.ErrUnauthorized, "Invalid token.")
	}

	if claims.Type != expected {
		return nil, log.ErrorWithType(types.ErrUnauthorized, "Invalid token type.")
	}
	if expected == types.RefreshToken && claims.RegisteredClaims.ID == "" {
		return nil, log.ErrorWithType(types.ErrUnauthorized, "Invalid token.")
	}

	return claims, nil
}

// Validate parses a signed token and checks that it is of the expected kind.
// Refresh tokens are also checked against the revoked store. Every token
// problem is reported as ErrUnauthorized.
func (s *TokenService) Validate(
	ctx context.Context,
	tokenString string,
	expected types.TokenType,
) (types.AuthUser, error) {
	log := s.log.Function("Validate").TraceFromContext(ctx)

	claims, err := s.parse(tokenString, expected)
	if err != nil {
		return types.AuthUser{}, err
	}

	if expected == types.RefreshToken && s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.RegisteredClaims.ID)
		if err != nil {
			return types.AuthUser{}, log.Err("failed to check refresh token revocation", err)
		}
		if revoked {
			return types.AuthUser{}, log.ErrorWithType(types.ErrUnauthorized, "Token revoked.")
		}
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return types.AuthUser{}, log.ErrorWithType(types.ErrUnauthorized, "Invalid token subject.")
	}

	return types.AuthUser{ID: id, Role: claims.Role}, nil
}

// RevokeRefreshToken stops a refresh token owned by userID from being
// exchanged again.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, tokenString string, userID uuid.UUID) error {
	log := s.log.Function("RevokeRefreshToken").TraceFromContext(ctx)

	claims, err := s.parse(tokenString, types.RefreshToken)
	if err != nil {
		return err
	}
	if claims.ID != userID.String() {
		return log.ErrorWithType(types.ErrForbidden, "Refresh token belongs to another user.")
	}
	if s.revoked == nil {
		log.Warn("no revocation store configured, refresh token stays valid", "userID", userID)
		return nil
	}

	if err := s.revoked.Revoke(ctx, claims.RegisteredClaims.ID, claims.ExpiresAt.Time); err != nil {
		return log.Err("failed to revoke refresh token", err, "userID", userID)
	}

	return nil
}

func (s *TokenService) ValidateAccessToken(tokenString string) (types.AuthUser, error) {
	return s.Validate(context.Background(), tokenString, types.AccessToken)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

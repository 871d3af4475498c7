package types

import (
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// AuthUser is the identity decoded from a bearer token.
type AuthUser struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}

type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

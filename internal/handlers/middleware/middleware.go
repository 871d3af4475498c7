package middleware

import (
	"cleanhub/config"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

// TokenValidator decodes an access token into the caller's identity.
type TokenValidator interface {
	ValidateAccessToken(token string) (types.AuthUser, error)
}

type Middleware struct {
	tokens TokenValidator
	Config config.Config
	log    logger.Logger
}

func New(tokens TokenValidator, config config.Config) Middleware {
	return Middleware{
		tokens: tokens,
		Config: config,
		log:    logger.New("middleware"),
	}
}

package sessionController

import (
	"context"
	"strings"

	"cleanhub/internal/database"
	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const alreadyLoggedIn = "User already logged in, on another device"

type SessionController struct {
	sessionRepo repositories.SessionRepository
	notifier    services.Notifier
	db          database.DB
	log         logger.Logger
}

type CreateSessionRequest struct {
	UserID   *uuid.UUID `json:"userId"`
	FCMToken string     `json:"fcmToken"`
	Role     UserRole   `json:"role"`
	Username string     `json:"username"`
}

type LogoutRequest struct {
	UserID *uuid.UUID `json:"userId"`
	Role   UserRole   `json:"role"`
}

type SessionControllerInterface interface {
	Create(ctx context.Context, user types.AuthUser, request *CreateSessionRequest) (*LoggedInUser, error)
	List(ctx context.Context) ([]LoggedInUser, error)
	Logout(ctx context.Context, user types.AuthUser, request *LogoutRequest) error
}

func New(repos repositories.Repository, services services.Service, db database.DB) SessionControllerInterface {
	return &SessionController{
		sessionRepo: repos.Session,
		notifier:    services.Notification,
		db:          db,
		log:         logger.New("sessionController"),
	}
}

// mayActFor allows a user to manage their own sessions, and an admin anyone's.
func mayActFor(user types.AuthUser, userID uuid.UUID) bool {
	return user.ID == userID || UserRole(user.Role) == RoleAdmin
}

func (c *SessionController) Create(
	ctx context.Context,
	user types.AuthUser,
	request *CreateSessionRequest,
) (*LoggedInUser, error) {
	log := c.log.Function("Create").TraceFromContext(ctx)

	switch {
	case request.UserID == nil || *request.UserID == uuid.Nil:
		return nil, log.ErrorWithType(types.ErrValidation, "userId is required")
	case strings.TrimSpace(request.FCMToken) == "":
		return nil, log.ErrorWithType(types.ErrValidation, "fcmToken is required")
	case request.Role == "":
		return nil, log.ErrorWithType(types.ErrValidation, "role is required")
	case !request.Role.IsValid():
		return nil, log.ErrorWithType(types.ErrValidation, "Invalid role.")
	}

	if !mayActFor(user, *request.UserID) {
		return nil, log.ErrorWithType(types.ErrForbidden, "Cannot register a device for another user.")
	}

	db := c.db.SQLWithContext(ctx)
	exists, err := c.sessionRepo.Exists(ctx, db, *request.UserID, request.Role)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, log.ErrorWithType(types.ErrValidation, alreadyLoggedIn)
	}

	session := &LoggedInUser{
		UserID:   *request.UserID,
		Role:     request.Role,
		Username: strings.TrimSpace(request.Username),
		FCMToken: strings.TrimSpace(request.FCMToken),
	}
	if err := c.sessionRepo.Create(ctx, db, session); err != nil {
		if types.IsDuplicate(err) {
			return nil, log.ErrorWithType(types.ErrValidation, alreadyLoggedIn)
		}
		return nil, err
	}

	if session.Role == RoleCleaner {
		c.notifier.SubscribeCleaner(ctx, session.FCMToken)
	}

	log.Info("Session registered", "userID", session.UserID, "role", session.Role)
	return session, nil
}

func (c *SessionController) List(ctx context.Context) ([]LoggedInUser, error) {
	return c.sessionRepo.List(ctx, c.db.SQLWithContext(ctx))
}

func (c *SessionController) Logout(ctx context.Context, user types.AuthUser, request *LogoutRequest) error {
	log := c.log.Function("Logout").TraceFromContext(ctx)

	if request.UserID == nil || *request.UserID == uuid.Nil {
		return log.ErrorWithType(types.ErrValidation, "userId is required")
	}
	if request.Role == "" {
		return log.ErrorWithType(types.ErrValidation, "role is required")
	}
	if !mayActFor(user, *request.UserID) {
		return log.ErrorWithType(types.ErrForbidden, "Cannot log out another user.")
	}

	removed, err := c.sessionRepo.Delete(ctx, c.db.SQLWithContext(ctx), *request.UserID, request.Role)
	if err != nil {
		return err
	}
	if !removed {
		return log.ErrorWithType(types.ErrNotFound, "Session not found.")
	}

	log.Info("Session removed", "userID", *request.UserID, "role", request.Role)
	return nil
}

package authController

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"cleanhub/internal/database"
	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// AuthController handles signup, signin and the caller's own account.
type AuthController struct {
	userRepo     repositories.UserRepository
	addressRepo  repositories.AddressRepository
	propertyRepo repositories.PropertyRepository
	cleanerRepo  repositories.CleanerRepository
	sessionRepo  repositories.SessionRepository
	tokens       *services.TokenService
	transaction  *services.TransactionService
	db           database.DB
	log          logger.Logger
}

type AuthControllerInterface interface {
	Signup(ctx context.Context, request *SignupRequest) (*AuthResponse, error)
	Signin(ctx context.Context, request *SigninRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*types.TokenPair, error)
	Signout(ctx context.Context, user types.AuthUser, refreshToken string) error
	Me(ctx context.Context, user types.AuthUser) (*AuthResponse, error)
	EditUser(ctx context.Context, user types.AuthUser, request *EditUserRequest) (*UserProfile, error)
}

type SignupRequest struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Role      UserRole `json:"role"`
	FCMToken  string   `json:"fcmToken"`

	Address    string `json:"address"`
	Street     string `json:"street"`
	UnitNumber string `json:"unitNumber"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	ZipCode    string `json:"zipCode"`

	PropertyType PropertyType `json:"propertyType"`

	PreferredLocations []string `json:"preferredLocations"`
	Services           []string `json:"services"`
	Availability       []string `json:"availability"`
	AvailabilityTime   []string `json:"availabilityTime"`
	PreferredJobType   JobType  `json:"preferredJobType"`
}

type SigninRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

type EditUserRequest struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	FCMToken   *string `json:"fcmToken,omitempty"`
	Address    *string `json:"address,omitempty"`
	Street     *string `json:"street,omitempty"`
	UnitNumber *string `json:"unitNumber,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	Country    *string `json:"country,omitempty"`
	ZipCode    *string `json:"zipCode,omitempty"`
}

type AuthResponse struct {
	User        UserProfile `json:"user"`
	RoleDetails any         `json:"roleDetails"`
	types.TokenPair
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:     repos.User,
		addressRepo:  repos.Address,
		propertyRepo: repos.Property,
		cleanerRepo:  repos.Cleaner,
		sessionRepo:  repos.Session,
		tokens:       services.Token,
		transaction:  services.Transaction,
		db:           db,
		log:          logger.New("authController"),
	}
}

func requireFields(log logger.Logger, fields [][2]string) error {
	for _, field := range fields {
		if strings.TrimSpace(field[1]) == "" {
			return log.ErrorWithType(types.ErrValidation, fmt.Sprintf("%s is required", field[0]))
		}
	}
	return nil
}

// normalizeEmail gives every spelling of an address one stored form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (c *AuthController) Signup(ctx context.Context, request *SignupRequest) (*AuthResponse, error) {
	log := c.log.Function("Signup").TraceFromContext(ctx)

	request.Email = normalizeEmail(request.Email)

	err := requireFields(log, [][2]string{
		{"firstName", request.FirstName},
		{"lastName", request.LastName},
		{"email", request.Email},
		{"password", request.Password},
		{"role", string(request.Role)},
		{"address", request.Address},
		{"city", request.City},
		{"state", request.State},
		{"country", request.Country},
	})
	if err != nil {
		return nil, err
	}

	if !request.Role.IsValid() || request.Role == RoleAdmin {
		return nil, log.ErrorWithType(types.ErrValidation, "Invalid role.")
	}
	if request.PropertyType != "" && !slices.Contains(PropertyTypes, request.PropertyType) {
		return nil, log.ErrorWithType(types.ErrValidation, "Invalid propertyType.")
	}

	var cleaner *Cleaner
	if request.Role == RoleCleaner {
		cleaner = &Cleaner{
			PreferredLocations: request.PreferredLocations,
			Services:           request.Services,
			Availability:       request.Availability,
			AvailabilityTime:   request.AvailabilityTime,
			PreferredJobType:   request.PreferredJobType,
		}
		if field := cleaner.InvalidPreference(); field != "" {
			return nil, log.ErrorWithType(types.ErrValidation, fmt.Sprintf("Invalid value in %s.", field))
		}
	}

	exists, err := c.userRepo.EmailExists(ctx, c.db.SQLWithContext(ctx), request.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, log.ErrorWithType(types.ErrConflict, "Email already in use.")
	}

	hash, err := services.HashPassword(request.Password)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	user := &User{
		FirstName: strings.TrimSpace(request.FirstName),
		LastName:  strings.TrimSpace(request.LastName),
		Email:     request.Email,
		Password:  hash,
		Role:      request.Role,
		Status:    StatusActive,
	}
	if request.FCMToken != "" {
		user.FCMToken = &request.FCMToken
	}

	var roleDetails any
	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		address := &Address{
			Address:    request.Address,
			Street:     request.Street,
			UnitNumber: request.UnitNumber,
			City:       request.City,
			State:      request.State,
			Country:    request.Country,
			ZipCode:    request.ZipCode,
		}
		if err := c.addressRepo.Create(ctx, tx, address); err != nil {
			return err
		}

		user.AddressID = &address.ID
		if err := c.userRepo.Create(ctx, tx, user); err != nil {
			if types.IsDuplicate(err) {
				return log.ErrorWithType(types.ErrConflict, "Email already in use.")
			}
			return err
		}
		user.Address = address

		switch {
		case user.Role.OwnsProperties():
			property := &Property{
				OwnerID:        user.ID,
				AddressID:      address.ID,
				Type:           request.PropertyType,
				NameOfProperty: fmt.Sprintf("%s Property - %s", user.Role, user.ID),
				NumberOfUnits:  1,
				Status:         StatusActive,
			}
			if err := c.propertyRepo.Create(ctx, tx, property); err != nil {
				return err
			}
			property.Address = address
			roleDetails = []Property{*property}
		case user.Role == RoleCleaner:
			cleaner.UserID = user.ID
			if err := c.cleanerRepo.Create(ctx, tx, cleaner); err != nil {
				return err
			}
			roleDetails = cleaner
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	pair, err := c.tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, log.Err("failed to issue tokens", err, "userID", user.ID)
	}

	log.Info("User signed up", "userID", user.ID, "role", user.Role)

	return &AuthResponse{User: user.ToProfile(), RoleDetails: roleDetails, TokenPair: pair}, nil
}

func (c *AuthController) Signin(ctx context.Context, request *SigninRequest) (*AuthResponse, error) {
	log := c.log.Function("Signin").TraceFromContext(ctx)

	request.Email = normalizeEmail(request.Email)

	err := requireFields(log, [][2]string{
		{"email", request.Email},
		{"password", request.Password},
		{"role", string(request.Role)},
	})
	if err != nil {
		return nil, err
	}

	user, err := c.userRepo.GetByEmail(ctx, c.db.SQLWithContext(ctx), request.Email)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "User not found.")
		}
		return nil, err
	}

	if !services.CheckPassword(user.Password, request.Password) {
		return nil, log.ErrorWithType(types.ErrUnauthorized, "Invalid email or password.")
	}
	if user.Role != request.Role {
		return nil, log.ErrorWithType(types.ErrUnauthorized, fmt.Sprintf("This account is not registered as %s.", request.Role))
	}
	if !user.IsActive() {
		return nil, log.ErrorWithType(types.ErrForbidden, "Account is not active.")
	}

	roleDetails, err := c.roleDetails(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := c.tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, log.Err("failed to issue tokens", err, "userID", user.ID)
	}

	log.Info("User signed in", "userID", user.ID, "role", user.Role)

	return &AuthResponse{User: user.ToProfile(), RoleDetails: roleDetails, TokenPair: pair}, nil
}

func (c *AuthController) roleDetails(ctx context.Context, user *User) (any, error) {
	db := c.db.SQLWithContext(ctx)

	switch {
	case user.Role == RoleCleaner:
		cleaner, err := c.cleanerRepo.GetByUserID(ctx, db, user.ID)
		if err != nil {
			if types.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		cleaner.User = nil
		return cleaner, nil
	case user.Role.OwnsProperties():
		return c.propertyRepo.ListByOwner(ctx, db, user.ID)
	}

	return nil, nil
}

// Refresh exchanges a valid refresh token for a new pair. The user must still
// exist and hold the role in the token.
func (c *AuthController) Refresh(ctx context.Context, refreshToken string) (*types.TokenPair, error) {
	log := c.log.Function("Refresh").TraceFromContext(ctx)

	claims, err := c.tokens.Validate(ctx, refreshToken, types.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := c.userRepo.GetByID(ctx, c.db.SQLWithContext(ctx), claims.ID)
	if err != nil || string(user.Role) != claims.Role || !user.IsActive() {
		return nil, log.ErrorWithType(types.ErrUnauthorized, "Invalid token.")
	}

	pair, err := c.tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, log.Err("failed to issue tokens", err, "userID", user.ID)
	}

	return &pair, nil
}

// Signout removes the caller's push session and, when given, revokes their
// refresh token. A refresh token that is already unusable is ignored.
func (c *AuthController) Signout(ctx context.Context, user types.AuthUser, refreshToken string) error {
	log := c.log.Function("Signout").TraceFromContext(ctx)

	if refreshToken != "" {
		err := c.tokens.RevokeRefreshToken(ctx, refreshToken, user.ID)
		if err != nil && !errors.Is(err, types.ErrUnauthorized) {
			return err
		}
	}

	removed, err := c.sessionRepo.Delete(ctx, c.db.SQLWithContext(ctx), user.ID, UserRole(user.Role))
	if err != nil {
		return err
	}

	log.Info("User signed out", "userID", user.ID, "sessionRemoved", removed)
	return nil
}

func (c *AuthController) Me(ctx context.Context, user types.AuthUser) (*AuthResponse, error) {
	log := c.log.Function("Me").TraceFromContext(ctx)

	account, err := c.userRepo.GetByID(ctx, c.db.SQLWithContext(ctx), user.ID)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "User not found.")
		}
		return nil, err
	}

	roleDetails, err := c.roleDetails(ctx, account)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: account.ToProfile(), RoleDetails: roleDetails}, nil
}

func setIf(updates map[string]any, column string, value *string) {
	if value != nil {
		updates[column] = strings.TrimSpace(*value)
	}
}

func (c *AuthController) EditUser(
	ctx context.Context,
	user types.AuthUser,
	request *EditUserRequest,
) (*UserProfile, error) {
	log := c.log.Function("EditUser").TraceFromContext(ctx)

	userUpdates := map[string]any{}
	setIf(userUpdates, "first_name", request.FirstName)
	setIf(userUpdates, "last_name", request.LastName)
	setIf(userUpdates, "fcm_token", request.FCMToken)

	addressUpdates := map[string]any{}
	setIf(addressUpdates, "address", request.Address)
	setIf(addressUpdates, "street", request.Street)
	setIf(addressUpdates, "unit_number", request.UnitNumber)
	setIf(addressUpdates, "city", request.City)
	setIf(addressUpdates, "state", request.State)
	setIf(addressUpdates, "country", request.Country)
	setIf(addressUpdates, "zip_code", request.ZipCode)

	if len(userUpdates) == 0 && len(addressUpdates) == 0 {
		return nil, log.ErrorWithType(types.ErrValidation, "No fields to update.")
	}

	current, err := c.userRepo.GetByID(ctx, c.db.SQLWithContext(ctx), user.ID)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "User not found.")
		}
		return nil, err
	}

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if len(addressUpdates) > 0 {
			if current.AddressID != nil {
				if err := c.addressRepo.Update(ctx, tx, *current.AddressID, addressUpdates); err != nil {
					return err
				}
			} else {
				address := addressFrom(request)
				if err := c.addressRepo.Create(ctx, tx, address); err != nil {
					return err
				}
				userUpdates["address_id"] = address.ID
			}
		}

		if len(userUpdates) == 0 {
			userUpdates["updated_at"] = gorm.Expr("NOW()")
		}
		return c.userRepo.Update(ctx, tx, user.ID, userUpdates)
	})
	if err != nil {
		return nil, err
	}

	updated, err := c.userRepo.GetByID(ctx, c.db.SQLWithContext(ctx), user.ID)
	if err != nil {
		return nil, err
	}

	log.Info("User updated", "userID", user.ID)

	profile := updated.ToProfile()
	return &profile, nil
}

func addressFrom(request *EditUserRequest) *Address {
	value := func(s *string) string {
		if s == nil {
			return ""
		}
		return strings.TrimSpace(*s)
	}
	return &Address{
		Address:    value(request.Address),
		Street:     value(request.Street),
		UnitNumber: value(request.UnitNumber),
		City:       value(request.City),
		State:      value(request.State),
		Country:    value(request.Country),
		ZipCode:    value(request.ZipCode),
	}
}

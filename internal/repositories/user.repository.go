package repositories

import (
	"context"
	"time"

	"cleanhub/internal/database"
	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY = 24 * time.Hour
	USER_CACHE_PREFIX = "user"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
	ListIDsByRole(ctx context.Context, tx *gorm.DB, role UserRole) ([]uuid.UUID, error)
}

type userRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewUserRepository(cache database.CacheClient) UserRepository {
	return &userRepository{
		cache: cache,
		log:   logger.New("userRepository"),
	}
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("Create")

	if err := gorm.G[User](tx).Create(ctx, user); err != nil {
		return log.Err("failed to create user", err, "email", user.Email)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var cached User
	if r.cache != nil {
		found, err := database.NewCacheBuilder(r.cache, id).
			WithContext(ctx).
			WithHash(USER_CACHE_PREFIX).
			Get(&cached)
		if err != nil {
			log.Warn("failed to get user from cache", "userID", id, "error", err)
		}
		if found {
			return &cached, nil
		}
	}

	user, err := gorm.G[User](tx).Preload("Address", nil).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, log.Err("failed to get user", err, "userID", id)
	}

	if r.cache != nil {
		err = database.NewCacheBuilder(r.cache, id).
			WithContext(ctx).
			WithHash(USER_CACHE_PREFIX).
			WithStruct(user).
			WithTTL(USER_CACHE_EXPIRY).
			Set()
		if err != nil {
			log.Warn("failed to set user in cache", "userID", id, "error", err)
		}
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	user, err := gorm.G[User](tx).
		Preload("Address", nil).
		Where("email = ?", NormalizeEmail(email)).
		First(ctx)
	if err != nil {
		return nil, log.Err("failed to get user by email", err)
	}

	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	log := r.log.Function("EmailExists")

	var count int64
	err := tx.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, log.Err("failed to check email", err)
	}

	return count > 0, nil
}

func (r *userRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	updates map[string]any,
) error {
	log := r.log.Function("Update")

	result := tx.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return log.Err("failed to update user", result.Error, "userID", id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.clearUserCache(ctx, id)
	return nil
}

func (r *userRepository) ListIDsByRole(
	ctx context.Context,
	tx *gorm.DB,
	role UserRole,
) ([]uuid.UUID, error) {
	log := r.log.Function("ListIDsByRole")

	var ids []uuid.UUID
	err := tx.WithContext(ctx).
		Model(&User{}).
		Where("role = ? AND status = ?", role, StatusActive).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, log.Err("failed to list users by role", err, "role", role)
	}

	return ids, nil
}

func (r *userRepository) clearUserCache(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}

	err := database.NewCacheBuilder(r.cache, id).
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		Delete()
	if err != nil {
		r.log.Function("clearUserCache").Warn("failed to clear user cache", "userID", id, "error", err)
	}
}

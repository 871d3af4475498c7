package repositories

import (
	"context"

	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PropertyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, property *Property) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Property, error)
	GetOwned(ctx context.Context, tx *gorm.DB, id, ownerID uuid.UUID) (*Property, error)
	FirstByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (*Property, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]Property, error)
	SetImages(ctx context.Context, tx *gorm.DB, id uuid.UUID, images []string) error
}

type propertyRepository struct {
	log logger.Logger
}

func NewPropertyRepository() PropertyRepository {
	return &propertyRepository{
		log: logger.New("propertyRepository"),
	}
}

func (r *propertyRepository) Create(ctx context.Context, tx *gorm.DB, property *Property) error {
	log := r.log.Function("Create")

	if err := gorm.G[Property](tx).Create(ctx, property); err != nil {
		return log.Err("failed to create property", err, "ownerID", property.OwnerID)
	}

	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Property, error) {
	log := r.log.Function("GetByID")

	property, err := gorm.G[Property](tx).Preload("Address", nil).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, log.Err("failed to get property", err, "propertyID", id)
	}

	return &property, nil
}

func (r *propertyRepository) GetOwned(
	ctx context.Context,
	tx *gorm.DB,
	id, ownerID uuid.UUID,
) (*Property, error) {
	log := r.log.Function("GetOwned")

	property, err := gorm.G[Property](tx).
		Preload("Address", nil).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(ctx)
	if err != nil {
		return nil, log.Err("failed to get owned property", err, "propertyID", id, "ownerID", ownerID)
	}

	return &property, nil
}

func (r *propertyRepository) FirstByOwner(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) (*Property, error) {
	log := r.log.Function("FirstByOwner")

	property, err := gorm.G[Property](tx).
		Preload("Address", nil).
		Where("owner_id = ? AND status = ?", ownerID, StatusActive).
		Order("created_at ASC").
		First(ctx)
	if err != nil {
		return nil, log.Err("failed to get property for owner", err, "ownerID", ownerID)
	}

	return &property, nil
}

func (r *propertyRepository) ListByOwner(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) ([]Property, error) {
	log := r.log.Function("ListByOwner")

	properties, err := gorm.G[Property](tx).
		Preload("Address", nil).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list properties", err, "ownerID", ownerID)
	}

	return properties, nil
}

func (r *propertyRepository) SetImages(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	images []string,
) error {
	log := r.log.Function("SetImages")

	err := tx.WithContext(ctx).
		Model(&Property{}).
		Where("id = ?", id).
		Update("images", datatypes.JSONSlice[string](images)).Error
	if err != nil {
		return log.Err("failed to update property images", err, "propertyID", id)
	}

	return nil
}

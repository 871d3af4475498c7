package repositories

import (
	"context"

	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, address *Address) error
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
}

type addressRepository struct {
	log logger.Logger
}

func NewAddressRepository() AddressRepository {
	return &addressRepository{
		log: logger.New("addressRepository"),
	}
}

func (r *addressRepository) Create(ctx context.Context, tx *gorm.DB, address *Address) error {
	log := r.log.Function("Create")

	if err := gorm.G[Address](tx).Create(ctx, address); err != nil {
		return log.Err("failed to create address", err)
	}

	return nil
}

func (r *addressRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	updates map[string]any,
) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Model(&Address{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return log.Err("failed to update address", err, "addressID", id)
	}

	return nil
}

package repositories

import (
	"context"

	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type CleaningTypeRepository interface {
	List(ctx context.Context, tx *gorm.DB) ([]CleaningType, error)
	Create(ctx context.Context, tx *gorm.DB, cleaningType *CleaningType) error
}

type cleaningTypeRepository struct {
	log logger.Logger
}

func NewCleaningTypeRepository() CleaningTypeRepository {
	return &cleaningTypeRepository{
		log: logger.New("cleaningTypeRepository"),
	}
}

func (r *cleaningTypeRepository) List(ctx context.Context, tx *gorm.DB) ([]CleaningType, error) {
	log := r.log.Function("List")

	cleaningTypes, err := gorm.G[CleaningType](tx).Order("name ASC").Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list cleaning types", err)
	}

	return cleaningTypes, nil
}

func (r *cleaningTypeRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	cleaningType *CleaningType,
) error {
	log := r.log.Function("Create")

	if err := gorm.G[CleaningType](tx).Create(ctx, cleaningType); err != nil {
		return log.Err("failed to create cleaning type", err, "name", cleaningType.Name)
	}

	return nil
}

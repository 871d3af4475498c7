package propertyController

import (
	"context"

	"cleanhub/internal/database"
	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const MAX_IMAGES_PER_UPLOAD = 10

// ImageStore keeps property photos in object storage.
type ImageStore interface {
	UploadPropertyImage(ctx context.Context, propertyID uuid.UUID, data []byte) (string, error)
	RemoveByURL(ctx context.Context, url string)
}

type PropertyController struct {
	propertyRepo repositories.PropertyRepository
	images       ImageStore
	db           database.DB
	log          logger.Logger
}

type PropertyControllerInterface interface {
	List(ctx context.Context, user types.AuthUser) ([]Property, error)
	UploadImages(ctx context.Context, user types.AuthUser, propertyID uuid.UUID, images [][]byte) (*Property, error)
}

func New(repos repositories.Repository, services services.Service, db database.DB) PropertyControllerInterface {
	return &PropertyController{
		propertyRepo: repos.Property,
		images:       services.Storage,
		db:           db,
		log:          logger.New("propertyController"),
	}
}

func (c *PropertyController) List(ctx context.Context, user types.AuthUser) ([]Property, error) {
	return c.propertyRepo.ListByOwner(ctx, c.db.SQLWithContext(ctx), user.ID)
}

// UploadImages stores every image before touching the property, and removes
// what it uploaded if any step fails.
func (c *PropertyController) UploadImages(
	ctx context.Context,
	user types.AuthUser,
	propertyID uuid.UUID,
	images [][]byte,
) (*Property, error) {
	log := c.log.Function("UploadImages").TraceFromContext(ctx)

	if len(images) == 0 {
		return nil, log.ErrorWithType(types.ErrValidation, "At least one image is required.")
	}
	if len(images) > MAX_IMAGES_PER_UPLOAD {
		return nil, log.ErrorWithType(types.ErrValidation, "Too many images in one upload.")
	}

	db := c.db.SQLWithContext(ctx)
	property, err := c.propertyRepo.GetOwned(ctx, db, propertyID, user.ID)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "Property not found.")
		}
		return nil, err
	}

	uploaded := make([]string, 0, len(images))
	rollback := func() {
		for _, url := range uploaded {
			c.images.RemoveByURL(ctx, url)
		}
	}

	for _, data := range images {
		url, err := c.images.UploadPropertyImage(ctx, property.ID, data)
		if err != nil {
			rollback()
			return nil, err
		}
		uploaded = append(uploaded, url)
	}

	all := append(append([]string{}, property.Images...), uploaded...)
	if err := c.propertyRepo.SetImages(ctx, db, property.ID, all); err != nil {
		rollback()
		return nil, err
	}
	property.Images = all

	log.Info("Property images uploaded", "propertyID", property.ID, "count", len(uploaded))
	return property, nil
}

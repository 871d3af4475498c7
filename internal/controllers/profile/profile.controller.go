package profileController

import (
	"context"
	"fmt"

	"cleanhub/internal/database"
	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
)

type ProfileController struct {
	cleanerRepo repositories.CleanerRepository
	db          database.DB
	log         logger.Logger
}

// UpdateCleanerRequest leaves a preference untouched when its field is absent.
type UpdateCleanerRequest struct {
	PreferredLocations *[]string `json:"preferredLocations,omitempty"`
	Services           *[]string `json:"services,omitempty"`
	Availability       *[]string `json:"availability,omitempty"`
	AvailabilityTime   *[]string `json:"availabilityTime,omitempty"`
	PreferredJobType   *JobType  `json:"preferredJobType,omitempty"`
}

type ProfileControllerInterface interface {
	GetCleaner(ctx context.Context, user types.AuthUser) (*Cleaner, error)
	UpdateCleaner(ctx context.Context, user types.AuthUser, request *UpdateCleanerRequest) (*Cleaner, error)
}

func New(repos repositories.Repository, db database.DB) ProfileControllerInterface {
	return &ProfileController{
		cleanerRepo: repos.Cleaner,
		db:          db,
		log:         logger.New("profileController"),
	}
}

func (c *ProfileController) GetCleaner(ctx context.Context, user types.AuthUser) (*Cleaner, error) {
	log := c.log.Function("GetCleaner").TraceFromContext(ctx)

	cleaner, err := c.cleanerRepo.GetByUserID(ctx, c.db.SQLWithContext(ctx), user.ID)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "Cleaner profile not found.")
		}
		return nil, err
	}

	return cleaner, nil
}

func (c *ProfileController) UpdateCleaner(
	ctx context.Context,
	user types.AuthUser,
	request *UpdateCleanerRequest,
) (*Cleaner, error) {
	log := c.log.Function("UpdateCleaner").TraceFromContext(ctx)

	var proposed Cleaner
	updates := map[string]any{}
	setSlice := func(column string, value *[]string, field *datatypes.JSONSlice[string]) {
		if value == nil {
			return
		}
		*field = *value
		updates[column] = datatypes.JSONSlice[string](*value)
	}
	setSlice("preferred_locations", request.PreferredLocations, &proposed.PreferredLocations)
	setSlice("services", request.Services, &proposed.Services)
	setSlice("availability", request.Availability, &proposed.Availability)
	setSlice("availability_time", request.AvailabilityTime, &proposed.AvailabilityTime)
	if request.PreferredJobType != nil {
		proposed.PreferredJobType = *request.PreferredJobType
		updates["preferred_job_type"] = *request.PreferredJobType
	}

	if len(updates) == 0 {
		return nil, log.ErrorWithType(types.ErrValidation, "No fields to update.")
	}
	if field := proposed.InvalidPreference(); field != "" {
		return nil, log.ErrorWithType(types.ErrValidation, fmt.Sprintf("Invalid value in %s.", field))
	}

	cleaner, err := c.GetCleaner(ctx, user)
	if err != nil {
		return nil, err
	}

	db := c.db.SQLWithContext(ctx)
	if err := c.cleanerRepo.Update(ctx, db, cleaner.ID, updates); err != nil {
		return nil, err
	}

	log.Info("Cleaner profile updated", "cleanerID", cleaner.ID, "fields", len(updates))
	return c.cleanerRepo.GetByUserID(ctx, db, user.ID)
}

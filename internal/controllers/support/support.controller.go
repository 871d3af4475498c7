package supportController

import (
	"context"

	"cleanhub/internal/database"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"
	"cleanhub/internal/types"
	"cleanhub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

type SupportMailer interface {
	SendSupportRequest(ctx context.Context, firstName, lastName, replyTo, subject, message string) error
}

type SupportController struct {
	userRepo repositories.UserRepository
	mailer   SupportMailer
	db       database.DB
	log      logger.Logger
}

type SupportRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SupportControllerInterface interface {
	Send(ctx context.Context, user types.AuthUser, request *SupportRequest) error
}

func New(repos repositories.Repository, services services.Service, db database.DB) SupportControllerInterface {
	return &SupportController{
		userRepo: repos.User,
		mailer:   services.Email,
		db:       db,
		log:      logger.New("supportController"),
	}
}

func (c *SupportController) Send(ctx context.Context, user types.AuthUser, request *SupportRequest) error {
	log := c.log.Function("Send").TraceFromContext(ctx)

	message := utils.CleanText(request.Message)
	if message == "" {
		return log.ErrorWithType(types.ErrValidation, "message is required")
	}

	sender, err := c.userRepo.GetByID(ctx, c.db.SQLWithContext(ctx), user.ID)
	if err != nil {
		if types.IsNotFound(err) {
			return log.ErrorWithType(types.ErrNotFound, "User not found.")
		}
		return err
	}

	err = c.mailer.SendSupportRequest(
		ctx,
		sender.FirstName,
		sender.LastName,
		sender.Email,
		utils.CleanText(request.Subject),
		message,
	)
	if err != nil {
		return err
	}

	log.Info("Support request sent", "userID", user.ID)
	return nil
}

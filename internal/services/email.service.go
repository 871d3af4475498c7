package services

import (
	"context"
	"fmt"
	"time"

	"cleanhub/config"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/wneessen/go-mail"
)

const EMAIL_TIMEOUT = 15 * time.Second

type Email struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer sends one plain-text email.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type smtpMailer struct {
	config config.Config
}

func (m *smtpMailer) Send(ctx context.Context, email Email) error {
	message := mail.NewMsg()
	if err := message.From(m.config.SMTPFrom); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := message.To(email.To); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	if email.ReplyTo != "" {
		if err := message.ReplyTo(email.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	message.Subject(email.Subject)
	message.SetBodyString(mail.TypeTextPlain, email.Body)

	options := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(EMAIL_TIMEOUT),
	}
	if m.config.SMTPUsername != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, options...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, message)
}

type EmailService struct {
	mailer       Mailer
	supportEmail string
	log          logger.Logger
}

func NewEmailService(config config.Config) *EmailService {
	log := logger.New("emailService")

	var mailer Mailer
	if config.SMTPHost == "" {
		log.Function("NewEmailService").Warn("SMTP_HOST not set, support email disabled")
	} else {
		mailer = &smtpMailer{config: config}
	}

	return &EmailService{mailer: mailer, supportEmail: config.SupportEmail, log: log}
}

// SendSupportRequest forwards a user's support message to the support inbox.
func (s *EmailService) SendSupportRequest(
	ctx context.Context,
	firstName, lastName, replyTo, subject, message string,
) error {
	log := s.log.Function("SendSupportRequest").TraceFromContext(ctx)

	if s.mailer == nil {
		return log.ErrorWithType(types.ErrUpstream, "Email is not configured.")
	}

	body := message
	if subject != "" {
		body = fmt.Sprintf("Subject: %s\n\n%s", subject, message)
	}
	body = fmt.Sprintf("%s\n\nFrom: %s %s <%s>", body, firstName, lastName, replyTo)

	ctx, cancel := context.WithTimeout(ctx, EMAIL_TIMEOUT)
	defer cancel()

	err := s.mailer.Send(ctx, Email{
		To:      s.supportEmail,
		ReplyTo: replyTo,
		Subject: fmt.Sprintf("Support Request from %s %s", firstName, lastName),
		Body:    body,
	})
	if err != nil {
		log.Er("failed to send support email", err)
		return log.ErrorWithType(types.ErrUpstream, "Failed to send support request.")
	}

	return nil
}

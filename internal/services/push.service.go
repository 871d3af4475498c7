package services

import (
	"context"
	"time"

	"cleanhub/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	logger "github.com/Bparsons0904/goLogger"
	"google.golang.org/api/option"
)

const (
	CLEANERS_TOPIC = "cleaners"
	PUSH_TIMEOUT   = 5 * time.Second
)

type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// Pusher delivers mobile push notifications.
type Pusher interface {
	SendToToken(ctx context.Context, token string, message PushMessage) error
	SendToTopic(ctx context.Context, topic string, message PushMessage) error
	SubscribeToTopic(ctx context.Context, token string, topic string) error
}

type firebasePusher struct {
	client *messaging.Client
	log    logger.Logger
}

// NewPushService returns a Firebase Cloud Messaging pusher, or a pusher that only
// logs when no credentials are configured.
func NewPushService(ctx context.Context, config config.Config) (Pusher, error) {
	log := logger.New("pushService").Function("NewPushService")

	if config.FirebaseCredentialsFile == "" {
		log.Warn("FIREBASE_CREDENTIALS_FILE not set, push notifications disabled")
		return &noopPusher{log: logger.New("noopPusher")}, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.FirebaseCredentialsFile))
	if err != nil {
		return nil, log.Err("failed to initialize firebase app", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, log.Err("failed to create messaging client", err)
	}

	return &firebasePusher{client: client, log: logger.New("firebasePusher")}, nil
}

func toFirebaseMessage(message PushMessage) *messaging.Message {
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: message.Title,
			Body:  message.Body,
		},
		Data: message.Data,
	}
}

func (p *firebasePusher) SendToToken(ctx context.Context, token string, message PushMessage) error {
	log := p.log.Function("SendToToken").TraceFromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, PUSH_TIMEOUT)
	defer cancel()

	msg := toFirebaseMessage(message)
	msg.Token = token

	id, err := p.client.Send(ctx, msg)
	if err != nil {
		return log.Err("failed to send push notification", err)
	}

	log.Debug("Push notification sent", "messageID", id)
	return nil
}

func (p *firebasePusher) SendToTopic(ctx context.Context, topic string, message PushMessage) error {
	log := p.log.Function("SendToTopic").TraceFromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, PUSH_TIMEOUT)
	defer cancel()

	msg := toFirebaseMessage(message)
	msg.Topic = topic

	id, err := p.client.Send(ctx, msg)
	if err != nil {
		return log.Err("failed to send topic notification", err, "topic", topic)
	}

	log.Debug("Topic notification sent", "topic", topic, "messageID", id)
	return nil
}

func (p *firebasePusher) SubscribeToTopic(ctx context.Context, token string, topic string) error {
	log := p.log.Function("SubscribeToTopic").TraceFromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, PUSH_TIMEOUT)
	defer cancel()

	response, err := p.client.SubscribeToTopic(ctx, []string{token}, topic)
	if err != nil {
		return log.Err("failed to subscribe to topic", err, "topic", topic)
	}

	if response.FailureCount > 0 {
		reason := "unknown"
		if len(response.Errors) > 0 {
			reason = response.Errors[0].Reason
		}
		return log.Error("topic subscription rejected", "topic", topic, "reason", reason)
	}

	return nil
}

type noopPusher struct {
	log logger.Logger
}

func (p *noopPusher) SendToToken(ctx context.Context, token string, message PushMessage) error {
	p.log.Function("SendToToken").Debug("push disabled, dropping notification", "title", message.Title)
	return nil
}

func (p *noopPusher) SendToTopic(ctx context.Context, topic string, message PushMessage) error {
	p.log.Function("SendToTopic").Debug("push disabled, dropping notification", "topic", topic)
	return nil
}

func (p *noopPusher) SubscribeToTopic(ctx context.Context, token string, topic string) error {
	return nil
}

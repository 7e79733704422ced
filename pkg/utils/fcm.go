package utils

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// ErrPushDisabled is returned by a pusher that was built without credentials.
var ErrPushDisabled = errors.New("push notifications disabled")

// FCMCredentials points at the service account, never embedded in source.
type FCMCredentials struct {
	File string
	JSON string
}

func (c FCMCredentials) empty() bool {
	return c.File == "" && c.JSON == ""
}

// FCMPusher sends push notifications to a single device token.
type FCMPusher struct {
	client *messaging.Client
	logger zerolog.Logger
}

// NewFCMPusher connects to Firebase. Without credentials it returns a
// disabled pusher so the in-app notification rows are still written.
func NewFCMPusher(ctx context.Context, creds FCMCredentials, logger zerolog.Logger) (*FCMPusher, error) {
	p := &FCMPusher{logger: logger}
	if creds.empty() {
		logger.Warn().Msg("FCM credentials not configured, push delivery disabled")
		return p, nil
	}

	var opt option.ClientOption
	if creds.JSON != "" {
		opt = option.WithCredentialsJSON([]byte(creds.JSON))
	} else {
		opt = option.WithCredentialsFile(creds.File)
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	p.client = client
	logger.Info().Msg("Firebase Cloud Messaging ready")
	return p, nil
}

// Enabled reports whether sends reach Firebase.
func (p *FCMPusher) Enabled() bool {
	return p != nil && p.client != nil
}

// Send pushes one message to one device (FCM token)
func (p *FCMPusher) Send(ctx context.Context, token string, title string, body string, data map[string]string) error {
	if !p.Enabled() {
		return ErrPushDisabled
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := p.client.Send(ctx, message); err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}

	p.logger.Debug().Str("token", token).Msg("push sent")
	return nil
}

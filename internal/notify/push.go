package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/spf13/viper"
	"google.golang.org/api/option"
)

// Pusher delivers notifications to staff and customer devices through
// Firebase Cloud Messaging.
type Pusher struct {
	client *messaging.Client
}

// MustNewPusher creates a new Pusher from the firebase config section.
func MustNewPusher(ctx context.Context) *Pusher {
	var opts []option.ClientOption
	if credentials := viper.GetString("firebase.credentials_file"); credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize firebase app: %v", err))
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		panic(fmt.Sprintf("Failed to create messaging client: %v", err))
	}

	slog.Info("Firebase messaging connected")

	return &Pusher{client: client}
}

// Push sends the same notification to every device token. Tokens that fail
// do not stop delivery to the rest.
func (p *Pusher) Push(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	var errs []error
	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Data:  data,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		}

		if _, err := p.client.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("failed to push to device: %w", err))
		}
	}

	return errors.Join(errs...)
}

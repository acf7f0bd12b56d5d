package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/config"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/notify"
)

// NewNotifier returns a fanout over every enabled channel, or a logging
// no-op notifier when none is enabled.
func NewNotifier(
	ctx context.Context,
	cfg config.NotificationsConfig,
	hc *http.Client,
	log *slog.Logger,
) (notify.Notifier, error) {
	var channels []notify.Channel

	if cfg.Email.Enabled {
		var ses notify.SESAPI
		if !cfg.Email.Mock {
			awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Email.Region))
			if err != nil {
				return nil, fmt.Errorf("loading AWS config for SES: %w", err)
			}
			ses = sesv2.NewFromConfig(awsCfg)
		}
		channels = append(channels, notify.Channel{
			Name: "email",
			Notifier: notify.NewEmailNotifier(ses, cfg.Email.Sender,
				notify.WithRecipient(cfg.Email.Recipient),
				notify.WithMockDelivery(cfg.Email.Mock),
				notify.WithEmailLogger(log),
			),
		})
	}

	if cfg.Discord.Enabled {
		channels = append(channels, notify.Channel{
			Name: "discord",
			Notifier: notify.NewDiscordNotifier(cfg.Discord.WebhookURL,
				notify.WithHTTPClient(hc),
				notify.WithUsername(cfg.Discord.Username),
				notify.WithDiscordLogger(log),
			),
		})
	}

	if len(channels) == 0 {
		log.Warn("no notification channels enabled, alerts will only be logged")
		return notify.NewNoOpNotifier(log), nil
	}
	return notify.NewFanout(log, channels...), nil
}

// httpClient returns an HTTP client whose transport is traced and measured
// through the global OpenTelemetry providers.
func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

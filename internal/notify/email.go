package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/codeGROOVE-dev/retry"
)

const charsetUTF8 = "UTF-8"

// SESAPI is the subset of the SES v2 client used to send alerts.
type SESAPI interface {
	SendEmail(
		ctx context.Context,
		params *sesv2.SendEmailInput,
		optFns ...func(*sesv2.Options),
	) (*sesv2.SendEmailOutput, error)
}

// EmailNotifier implements Notifier by sending a plain-text email through
// Amazon SES. In mock mode the rendered message is logged instead.
type EmailNotifier struct {
	ses        SESAPI
	sender     string
	recipient  string
	mock       bool
	attempts   uint
	retryDelay time.Duration
	log        *slog.Logger
}

// EmailOption configures an EmailNotifier.
type EmailOption func(*EmailNotifier)

// WithRecipient overrides the recipient, which defaults to the sender.
func WithRecipient(addr string) EmailOption {
	return func(e *EmailNotifier) {
		if addr != "" {
			e.recipient = addr
		}
	}
}

// WithMockDelivery logs rendered messages instead of calling SES.
func WithMockDelivery(mock bool) EmailOption {
	return func(e *EmailNotifier) {
		e.mock = mock
	}
}

// WithEmailRetry sets the delivery attempts and initial backoff.
func WithEmailRetry(attempts uint, delay time.Duration) EmailOption {
	return func(e *EmailNotifier) {
		if attempts > 0 {
			e.attempts = attempts
		}
		if delay > 0 {
			e.retryDelay = delay
		}
	}
}

// WithEmailLogger sets the logger.
func WithEmailLogger(l *slog.Logger) EmailOption {
	return func(e *EmailNotifier) {
		e.log = l
	}
}

// NewEmailNotifier creates an EmailNotifier sending from sender. The SES
// client may be nil in mock mode.
func NewEmailNotifier(client SESAPI, sender string, opts ...EmailOption) *EmailNotifier {
	e := &EmailNotifier{
		ses:        client,
		sender:     sender,
		recipient:  sender,
		attempts:   3,
		retryDelay: time.Second,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SendAlert renders the alert and delivers it to the configured recipient.
func (e *EmailNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	subject := Subject(alert)
	body := Body(alert)

	if e.mock || e.ses == nil {
		e.log.Info("email delivery mocked",
			"watch_id", alert.WatchID,
			"to", e.recipient,
			"subject", subject,
			"body", body,
		)
		return nil
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(e.sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{e.recipient},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject), Charset: aws.String(charsetUTF8)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body), Charset: aws.String(charsetUTF8)},
				},
			},
		},
	}

	var messageID string
	err := retry.Do(
		func() error {
			out, err := e.ses.SendEmail(ctx, input)
			if err != nil {
				if isPermanentSESError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			messageID = aws.ToString(out.MessageId)
			return nil
		},
		retry.Attempts(e.attempts),
		retry.Delay(e.retryDelay),
		retry.MaxDelay(10*time.Second),
		retry.MaxJitter(max(e.retryDelay/2, time.Millisecond)),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			e.log.Warn("retrying alert email", "watch_id", alert.WatchID, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("sending alert email: %w", err)
	}

	e.log.Info("alert email sent",
		"watch_id", alert.WatchID,
		"to", e.recipient,
		"message_id", messageID,
	)
	return nil
}

func isPermanentSESError(err error) bool {
	var (
		rejected    *sestypes.MessageRejected
		notVerified *sestypes.MailFromDomainNotVerifiedException
		badRequest  *sestypes.BadRequestException
		paused      *sestypes.SendingPausedException
	)
	return errors.As(err, &rejected) ||
		errors.As(err, &notVerified) ||
		errors.As(err, &badRequest) ||
		errors.As(err, &paused)
}

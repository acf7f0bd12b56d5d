package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venkatadeepikapotu/faredrop-tracker/pkg/logger"
)

type fakeSES struct {
	mu     sync.Mutex
	inputs []*sesv2.SendEmailInput
	errs   []error // returned in order; nil once exhausted
}

func (f *fakeSES) SendEmail(
	_ context.Context,
	in *sesv2.SendEmailInput,
	_ ...func(*sesv2.Options),
) (*sesv2.SendEmailOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inputs = append(f.inputs, in)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func (f *fakeSES) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inputs)
}

func TestEmailNotifier_SendAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		errs      []error
		recipient string
		wantErr   bool
		wantCalls int
		wantTo    string
	}{
		{
			name:      "delivers to sender by default",
			wantCalls: 1,
			wantTo:    "alerts@example.com",
		},
		{
			name:      "delivers to configured recipient",
			recipient: "traveler@example.com",
			wantCalls: 1,
			wantTo:    "traveler@example.com",
		},
		{
			name:      "retries transient failures",
			errs:      []error{errors.New("throttled"), nil},
			wantCalls: 2,
			wantTo:    "alerts@example.com",
		},
		{
			name:      "gives up after attempts",
			errs:      []error{errors.New("a"), errors.New("b"), errors.New("c")},
			wantErr:   true,
			wantCalls: 3,
		},
		{
			name:      "rejected message is not retried",
			errs:      []error{&sestypes.MessageRejected{Message: aws.String("Email address is not verified.")}},
			wantErr:   true,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ses := &fakeSES{errs: tt.errs}
			e := NewEmailNotifier(ses, "alerts@example.com",
				WithRecipient(tt.recipient),
				WithEmailRetry(3, time.Millisecond),
				WithEmailLogger(logger.Discard()),
			)

			err := e.SendAlert(context.Background(), testAlert())
			assert.Equal(t, tt.wantCalls, ses.calls())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "sending alert email")
				return
			}
			require.NoError(t, err)

			in := ses.inputs[len(ses.inputs)-1]
			assert.Equal(t, "alerts@example.com", aws.ToString(in.FromEmailAddress))
			assert.Equal(t, []string{tt.wantTo}, in.Destination.ToAddresses)
			assert.Equal(t, "Price drop: JFK → LAX now USD 450.00", aws.ToString(in.Content.Simple.Subject.Data))
			assert.Contains(t, aws.ToString(in.Content.Simple.Body.Text.Data), "You save:      USD 50.00")
		})
	}
}

func TestEmailNotifier_MockMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	ses := &fakeSES{}
	e := NewEmailNotifier(ses, "alerts@example.com", WithMockDelivery(true), WithEmailLogger(log))

	require.NoError(t, e.SendAlert(context.Background(), testAlert()))
	assert.Equal(t, 0, ses.calls())
	assert.Contains(t, buf.String(), "email delivery mocked")
	assert.Contains(t, buf.String(), "Price drop: JFK → LAX now USD 450.00")
}

func TestEmailNotifier_NilClientLogs(t *testing.T) {
	t.Parallel()

	e := NewEmailNotifier(nil, "alerts@example.com", WithEmailLogger(logger.Discard()))
	require.NoError(t, e.SendAlert(context.Background(), testAlert()))
}

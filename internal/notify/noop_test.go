package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venkatadeepikapotu/faredrop-tracker/pkg/logger"
)

var (
	_ Notifier = (*NoOpNotifier)(nil)
	_ Notifier = (*DiscordNotifier)(nil)
	_ Notifier = (*EmailNotifier)(nil)
	_ Notifier = (*Fanout)(nil)
)

func TestNoOpNotifier_LogsAlert(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	alert := testAlert()

	n := NewNoOpNotifier(logger.NewWithWriter(&buf, "info", "json"))
	require.NoError(t, n.SendAlert(context.Background(), alert))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, alert.WatchID, entry["watch_id"])
	assert.Equal(t, Subject(alert), entry["subject"])
	assert.Equal(t, alert.Savings().StringFixed(2), entry["savings"])
}

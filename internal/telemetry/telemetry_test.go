package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewResource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         Config
		wantName    string
		wantVersion string
	}{
		{
			name:        "defaults",
			wantName:    "faredrop-tracker",
			wantVersion: "dev",
		},
		{
			name:        "explicit",
			cfg:         Config{ServiceName: "faredrop-poller", ServiceVersion: "v1.2.3"},
			wantName:    "faredrop-poller",
			wantVersion: "v1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := newResource(tt.cfg)
			set := res.Set()

			name, ok := set.Value(semconv.ServiceNameKey)
			require.True(t, ok)
			assert.Equal(t, attribute.StringValue(tt.wantName), name)

			version, ok := set.Value(semconv.ServiceVersionKey)
			require.True(t, ok)
			assert.Equal(t, attribute.StringValue(tt.wantVersion), version)
		})
	}
}

func TestExporterOptions(t *testing.T) {
	t.Parallel()

	assert.Len(t, traceOptions(Config{Endpoint: "collector:4317", Insecure: true}), 2)
	assert.Len(t, traceOptions(Config{Endpoint: "collector:4317"}), 2)
	assert.Len(t, metricOptions(Config{Endpoint: "collector:4317", Insecure: true}), 2)
}

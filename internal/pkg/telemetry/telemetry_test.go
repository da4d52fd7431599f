package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(t.Context(), Config{ServiceName: "ecofleet"})

	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
}

func TestSetup_WithEndpoint(t *testing.T) {
	shutdown, err := Setup(t.Context(), Config{
		ServiceName: "ecofleet",
		Endpoint:    "127.0.0.1:4318",
		Insecure:    true,
	})

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	t.Cleanup(func() {
		// No collector listens here; only the flush attempt is bounded.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = shutdown(ctx)
	})

	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())
}

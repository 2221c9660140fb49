package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
)

// useSpanRecorder installs a recording global tracer provider for one test
func useSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	tp, err := NewTracerProvider(ctx, Config{Collector: Collector{ServiceName: "storefront"}}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestSampler(t *testing.T) {
	assert.Contains(t, Sampler(1.0).Description(), "AlwaysOnSampler")
	assert.Equal(t, "AlwaysOffSampler", Sampler(0).Description())
	assert.Contains(t, Sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestStartSpan(t *testing.T) {
	recorder := useSpanRecorder(t)

	_, span := StartSpan(context.Background(), "order.create",
		SpanAttrQuantity, 3,
		SpanAttrTenantID, "store-1",
		42, "skipped",
	)
	SetAttributes(span, SpanAttrStatus, "PENDING", "is_paid", true)
	EndSpan(span, errors.New("insufficient stock"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "order.create", s.Name())
	assert.Equal(t, codes.Error, s.Status().Code)
	assert.Equal(t, "insufficient stock", s.Status().Description)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(3), attrs[SpanAttrQuantity].AsInt64())
	assert.Equal(t, "store-1", attrs[SpanAttrTenantID].AsString())
	assert.Equal(t, "PENDING", attrs[SpanAttrStatus].AsString())
	assert.True(t, attrs["is_paid"].AsBool())
	assert.Len(t, attrs, 4)
}

func TestEndSpan_NoError(t *testing.T) {
	recorder := useSpanRecorder(t)

	_, span := StartSpan(context.Background(), "return.update")
	EndSpan(span, nil)

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
}

package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestTracingProvider_Disabled_ShouldBeNoop(t *testing.T) {
	tp, err := NewTracingProvider(context.Background(), TracingConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	_, span := tp.StartSpan(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestTracingProvider_EnabledWithoutEndpoint_ShouldFail(t *testing.T) {
	_, err := NewTracingProvider(context.Background(), TracingConfig{Enabled: true}, zap.NewNop())
	assert.Error(t, err)
}

func TestTracingProvider_Handler_ShouldNameServerSpanByRoute(t *testing.T) {
	// Arrange
	exporter := tracetest.NewInMemoryExporter()
	tp, err := newTracingProvider(context.Background(), TracingConfig{
		ServiceName:  "ayurplan-test",
		SamplingRate: 1,
	}, sdktrace.WithSyncer(exporter), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var inner trace.SpanContext
	r := chi.NewRouter()
	r.Use(tp.RouteNamer)
	r.Get("/api/v1/diet-charts/{id}", func(w http.ResponseWriter, r *http.Request) {
		inner = trace.SpanContextFromContext(r.Context())
		w.WriteHeader(http.StatusInternalServerError)
	})
	handler := tp.Handler(r)

	// Act
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/diet-charts/c-1", nil))

	// Assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/v1/diet-charts/{id}", spans[0].Name)
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind)
	assert.Equal(t, spans[0].SpanContext.TraceID(), inner.TraceID())
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("http.route", "/api/v1/diet-charts/{id}"))
}

func TestTracingProvider_Handler_ShouldContinueIncomingTrace(t *testing.T) {
	// Arrange
	exporter := tracetest.NewInMemoryExporter()
	tp, err := newTracingProvider(context.Background(), TracingConfig{
		ServiceName:  "ayurplan-test",
		SamplingRate: 1,
	}, sdktrace.WithSyncer(exporter), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	handler := tp.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/meal-suggestions", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	// Act
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// Assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent.SpanID().String())
}

func TestTracingProvider_Disabled_HandlerShouldPassThrough(t *testing.T) {
	tp, err := NewTracingProvider(context.Background(), TracingConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	tp.Handler(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
}

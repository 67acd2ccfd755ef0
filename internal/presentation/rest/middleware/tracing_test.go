package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracingEcho(t *testing.T) (*echo.Echo, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	e := echo.New()
	e.Use(TracingMiddleware())

	e.POST("/api/verify-payment", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"verified": true,
			"message":  "Payment verified successfully",
		})
	})
	e.GET("/api/payments", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_server_error"})
	})
	e.POST("/api/mock-payment", func(c echo.Context) error {
		return assert.AnError
	})
	return e, recorder
}

func spanAttribute(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, attr := range span.Attributes() {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingMiddleware_CreatesServerSpan(t *testing.T) {
	e, recorder := newTracingEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/api/verify-payment", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "POST /api/verify-payment", span.Name())

	method, ok := spanAttribute(span, "http.method")
	require.True(t, ok)
	assert.Equal(t, "POST", method.AsString())

	route, ok := spanAttribute(span, "http.route")
	require.True(t, ok)
	assert.Equal(t, "/api/verify-payment", route.AsString())

	status, ok := spanAttribute(span, "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusOK), status.AsInt64())
}

func TestTracingMiddleware_PropagatesTraceContext(t *testing.T) {
	e, recorder := newTracingEcho(t)

	// W3C traceparent: version-traceid-spanid-flags
	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodPost, "/api/verify-payment", nil)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, traceID, spans[0].SpanContext().TraceID().String())
}

func TestTracingMiddleware_ServerErrorSetsErrorStatus(t *testing.T) {
	e, recorder := newTracingEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, otelcodes.Error, spans[0].Status().Code)
}

func TestTracingMiddleware_HandlerErrorIsRecorded(t *testing.T) {
	e, recorder := newTracingEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/api/mock-payment", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, otelcodes.Error, span.Status().Code)

	require.NotEmpty(t, span.Events())
	assert.Equal(t, "exception", span.Events()[0].Name)
}

func TestTracingMiddleware_UnmatchedRouteUsesRawPath(t *testing.T) {
	e, recorder := newTracingEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/no-such-path", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /no-such-path", spans[0].Name())
}

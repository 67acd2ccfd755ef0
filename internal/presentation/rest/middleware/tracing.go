package middleware

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware OpenTelemetryトレーシングミドルウェア
// W3Cトレースコンテキストを受け入れ、リクエストごとにサーバースパンを開始する
func TracingMiddleware() echo.MiddlewareFunc {
	tracer := otel.Tracer("checkout-server")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			propagator := otel.GetTextMapPropagator()
			ctx = propagator.Extract(ctx, propagation.HeaderCarrier(c.Request().Header))

			// ルート未登録の404などはc.Path()が空になる
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}

			ctx, span := tracer.Start(ctx, c.Request().Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", c.Request().Method),
				attribute.String("http.route", route),
				attribute.String("http.url", c.Request().URL.String()),
				attribute.String("http.user_agent", c.Request().UserAgent()),
			)

			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			statusCode := c.Response().Status
			span.SetAttributes(attribute.Int("http.status_code", statusCode))

			if err != nil {
				span.RecordError(err)
			}
			if err != nil || statusCode >= 500 {
				span.SetStatus(otelcodes.Error, "request failed")
			}

			return err
		}
	}
}

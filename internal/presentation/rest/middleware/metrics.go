package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// MetricsMiddleware リクエスト数・レスポンス時間・エラー数を記録するミドルウェア
func MetricsMiddleware(metrics *otelinfra.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// c.Path()はルートパターン（例: /api/payments）
			// パスパラメータ入りの生のURLではカーディナリティが高くなりすぎる
			route := c.Path()
			metrics.RecordRequest(c.Request().Context(), c.Request().Method, route)

			err := next(c)

			duration := time.Since(start).Seconds()
			metrics.RecordResponseTime(c.Request().Context(), c.Request().Method, route, duration)

			// ドメインエラーはエラーハンドリングミドルウェアがレスポンスに変換するため
			// 返り値のerrではなくステータスコードで判定する
			statusCode := c.Response().Status
			if statusCode >= 500 {
				metrics.RecordError(c.Request().Context(), "server_error")
			} else if statusCode >= 400 {
				metrics.RecordError(c.Request().Context(), "client_error")
			}

			return err
		}
	}
}

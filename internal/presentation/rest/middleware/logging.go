package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// LoggingMiddleware リクエスト完了ログを記録するミドルウェア
// ドキュメント配信のパスはログに記録しない
func LoggingMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipLogging(c.Request().URL.Path) {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			// ドメインエラーはエラーハンドリングミドルウェアで処理済みのため
			// ここではレスポンスのステータスコードで結果を判定する
			fields := map[string]interface{}{
				"method":      c.Request().Method,
				"path":        c.Request().URL.Path,
				"status_code": c.Response().Status,
				"duration_ms": duration.Milliseconds(),
				"remote_ip":   c.RealIP(),
				"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
			}

			switch {
			case err != nil:
				logger.Error(c.Request().Context(), "HTTP request failed", err, fields)
			case c.Response().Status >= 500:
				logger.Error(c.Request().Context(), "HTTP request failed", nil, fields)
			case c.Response().Status >= 400:
				logger.Warn(c.Request().Context(), "HTTP request rejected", fields)
			default:
				logger.Info(c.Request().Context(), "HTTP request completed", fields)
			}

			return err
		}
	}
}

// skipLogging ログ対象外のパスかどうかを判定
func skipLogging(path string) bool {
	return strings.HasPrefix(path, "/swagger") || path == "/redoc" || path == "/openapi.yaml"
}

package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	checkoutapp "checkout-server/internal/application/checkout"
	ledgerapp "checkout-server/internal/application/ledger"
	"checkout-server/internal/domain/gateway"
	"checkout-server/internal/infrastructure/config"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
	"checkout-server/internal/presentation/rest/handler"
	restmiddleware "checkout-server/internal/presentation/rest/middleware"
)

// Router REST APIルーター
type Router struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	ledgerHandler   *handler.LedgerHandler
	healthHandler   *handler.HealthHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	checkoutService *checkoutapp.CheckoutApplicationService,
	ledgerService *ledgerapp.LedgerApplicationService,
	mode gateway.Mode,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, logger, metrics)

	// ハンドラーの作成
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	healthHandler := handler.NewHealthHandler(mode)

	// ルーティングの設定
	setupRoutes(e, cfg, logger, checkoutHandler, ledgerHandler, healthHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:            e,
		checkoutHandler: checkoutHandler,
		ledgerHandler:   ledgerHandler,
		healthHandler:   healthHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// セキュリティヘッダーミドルウェア
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	checkoutHandler *handler.CheckoutHandler,
	ledgerHandler *handler.LedgerHandler,
	healthHandler *handler.HealthHandler,
) {
	api := e.Group("/api")

	// ヘルスチェックエンドポイント
	api.GET("/health", healthHandler.Health)

	// チェックアウトエンドポイント
	api.POST("/create-order", checkoutHandler.CreateOrder)
	api.POST("/verify-payment", checkoutHandler.VerifyPayment)
	api.POST("/mock-payment", checkoutHandler.MockPayment)

	// 台帳エンドポイント
	api.GET("/payments", ledgerHandler.ListPayments)

	// 台帳クリアは管理APIが有効な場合のみAPIキー認証を要求
	if cfg.AdminAPI.Enabled {
		api.DELETE("/payments", ledgerHandler.ClearPayments,
			restmiddleware.APIKeyMiddleware(&cfg.AdminAPI, logger))
	} else {
		api.DELETE("/payments", ledgerHandler.ClearPayments)
	}
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	checkoutapp "checkout-server/internal/application/checkout"
	ledgerapp "checkout-server/internal/application/ledger"
	"checkout-server/internal/domain/gateway"
	"checkout-server/internal/infrastructure/config"
	mockgw "checkout-server/internal/infrastructure/gateway/mock"
	"checkout-server/internal/infrastructure/gateway/razorpay"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
	"checkout-server/internal/infrastructure/persistence/mysql"
	"checkout-server/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("checkout-server")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("checkout-server")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// データベース接続の初期化
	db, err := mysql.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 決済台帳テーブルの作成
	schemaCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureSchema(schemaCtx); err != nil {
		cancel()
		log.Fatalf("Failed to ensure database schema: %v", err)
	}
	cancel()

	// リポジトリの初期化
	paymentRepo := mysql.NewPaymentRepository(db)

	// 決済ゲートウェイの選択
	// 有効なRazorpay認証情報がある場合のみ本番ゲートウェイを使用する
	mockGateway := mockgw.NewGateway(mockgw.DefaultConfig(), logger)

	var gw gateway.Gateway
	if cfg.Razorpay.LiveModeEnabled() {
		gw = razorpay.NewGateway(cfg.Razorpay, logger)
		log.Println("Razorpay integration enabled")
	} else {
		gw = mockGateway
		log.Println("Razorpay credentials not configured, using mock payment gateway")
	}
	mode := gw.Mode()
	log.Printf("Payment gateway mode: %s", mode.String())

	// アプリケーションサービスの初期化
	// モック決済はモードに関係なく常にモックの合成器を使用する
	checkoutAppService := checkoutapp.NewCheckoutApplicationService(
		gw,
		mockGateway,
		paymentRepo,
		logger,
		metrics,
	)

	ledgerAppService := ledgerapp.NewLedgerApplicationService(
		paymentRepo,
		mode,
		logger,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		checkoutAppService,
		ledgerAppService,
		mode,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		log.Printf("REST API server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	// グレースフルシャットダウン
	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}

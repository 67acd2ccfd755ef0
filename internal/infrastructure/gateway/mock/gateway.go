package mock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"checkout-server/internal/domain/gateway"
	"checkout-server/internal/domain/order"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// Config モックゲートウェイの動作設定
type Config struct {
	// VerifyDelay 決済検証にかかる遅延（実際のゲートウェイの応答時間を模倣）
	VerifyDelay time.Duration
	// ProcessDelay モック決済の処理にかかる遅延
	ProcessDelay time.Duration
	// Clock 現在時刻の取得関数
	Clock func() time.Time
	// Suffix ランダムなサフィックスの生成関数
	Suffix func() string
}

// DefaultConfig デフォルトのモックゲートウェイ設定を返す
func DefaultConfig() Config {
	return Config{
		VerifyDelay:  1 * time.Second,
		ProcessDelay: 2 * time.Second,
		Clock:        time.Now,
		Suffix:       randomSuffix,
	}
}

// randomSuffix 9文字の英数字サフィックスを生成
func randomSuffix() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:9]
}

// Gateway モック決済ゲートウェイ
// 外部サービスに接続せず、常に成功する注文と決済検証を提供する
type Gateway struct {
	cfg    Config
	logger *otelinfra.Logger
	tracer trace.Tracer
}

// NewGateway 新しいモックGatewayを作成
func NewGateway(cfg Config, logger *otelinfra.Logger) *Gateway {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Suffix == nil {
		cfg.Suffix = randomSuffix
	}
	return &Gateway{
		cfg:    cfg,
		logger: logger,
		tracer: otel.Tracer("mock-gateway"),
	}
}

// Mode ゲートウェイの動作モードを返す
func (g *Gateway) Mode() gateway.Mode {
	return gateway.ModeMock
}

// CreateOrder モック注文を作成
func (g *Gateway) CreateOrder(ctx context.Context, params gateway.CreateOrderParams) (*order.Order, error) {
	ctx, span := g.tracer.Start(ctx, "MockGateway.CreateOrder")
	defer span.End()

	now := g.cfg.Clock()
	orderID := fmt.Sprintf("mock_order_%d", now.UnixMilli())
	receipt := params.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("mock_receipt_%d", now.UnixMilli())
	}

	span.SetAttributes(
		attribute.String("order_id", orderID),
		attribute.Int64("amount", params.Amount),
		attribute.String("currency", params.Currency.String()),
	)

	ord, err := order.NewOrder(orderID, params.Amount, params.Currency, receipt)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	g.logger.Info(ctx, "Mock order created", map[string]interface{}{
		"order_id": orderID,
		"amount":   params.Amount,
		"currency": params.Currency.String(),
	})

	return ord, nil
}

// VerifyPayment モック決済検証
// 処理遅延を模倣した後、常に検証成功を返す
func (g *Gateway) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	ctx, span := g.tracer.Start(ctx, "MockGateway.VerifyPayment")
	defer span.End()

	span.SetAttributes(
		attribute.String("order_id", orderID),
		attribute.String("payment_id", paymentID),
	)

	if err := sleepContext(ctx, g.cfg.VerifyDelay); err != nil {
		span.RecordError(err)
		return false, err
	}

	g.logger.Info(ctx, "Mock payment verified", map[string]interface{}{
		"order_id":   orderID,
		"payment_id": paymentID,
	})

	return true, nil
}

// SynthesizePayment 指定した注文に対応するモック決済確認を合成
func (g *Gateway) SynthesizePayment(ctx context.Context, orderID string) (gateway.SynthesizedPayment, error) {
	ctx, span := g.tracer.Start(ctx, "MockGateway.SynthesizePayment")
	defer span.End()

	span.SetAttributes(attribute.String("order_id", orderID))

	// 決済処理時間を模倣
	if err := sleepContext(ctx, g.cfg.ProcessDelay); err != nil {
		span.RecordError(err)
		return gateway.SynthesizedPayment{}, err
	}

	payment := gateway.SynthesizedPayment{
		OrderID:   orderID,
		PaymentID: fmt.Sprintf("mock_payment_%d", g.cfg.Clock().UnixMilli()),
		Signature: fmt.Sprintf("mock_signature_%s", g.cfg.Suffix()),
	}

	g.logger.Info(ctx, "Mock payment synthesized", map[string]interface{}{
		"order_id":   payment.OrderID,
		"payment_id": payment.PaymentID,
	})

	return payment, nil
}

// sleepContext コンテキストのキャンセルを尊重して待機
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"checkout-server/internal/domain/gateway"
	"checkout-server/internal/domain/order"
	"checkout-server/internal/domain/payment"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// CheckoutApplicationService チェックアウトアプリケーションサービス
type CheckoutApplicationService struct {
	gw          gateway.Gateway
	synthesizer gateway.Synthesizer
	paymentRepo payment.PaymentRepository
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
}

// NewCheckoutApplicationService 新しいCheckoutApplicationServiceを作成
func NewCheckoutApplicationService(
	gw gateway.Gateway,
	synthesizer gateway.Synthesizer,
	paymentRepo payment.PaymentRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *CheckoutApplicationService {
	return &CheckoutApplicationService{
		gw:          gw,
		synthesizer: synthesizer,
		paymentRepo: paymentRepo,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("checkout-service"),
	}
}

// CreateOrder 決済注文を作成
func (s *CheckoutApplicationService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderDTO, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.CreateOrder")
	defer span.End()

	span.SetAttributes(
		attribute.String("amount", req.Amount.String()),
		attribute.String("currency", req.Currency),
		attribute.String("gateway_mode", s.gw.Mode().String()),
	)

	if !req.Amount.IsPositive() {
		err := order.ErrInvalidAmount
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	currency := order.NormalizeCurrency(req.Currency)
	// ゲートウェイには最小通貨単位で渡す
	minorAmount := req.Amount.Mul(decimal100).Round(0).IntPart()

	ord, err := s.gw.CreateOrder(ctx, gateway.CreateOrderParams{
		Amount:   minorAmount,
		Currency: currency,
		Receipt:  generateReceipt(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to create order", err, map[string]interface{}{
			"amount":   req.Amount.String(),
			"currency": currency.String(),
		})
		s.metrics.RecordError(ctx, "order_creation_failed")
		return nil, err
	}

	s.metrics.RecordOrderCreated(ctx, s.gw.Mode().String())
	s.logger.Info(ctx, "Order created", map[string]interface{}{
		"order_id": ord.ID(),
		"amount":   ord.Amount(),
		"currency": ord.Currency().String(),
		"mode":     s.gw.Mode().String(),
	})

	return orderToDTO(ord), nil
}

// VerifyPayment 決済確認の真正性を検証し、成功時に台帳へ記録する
// 署名不一致は記録せず、検証失敗のレスポンスを返す
func (s *CheckoutApplicationService) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.VerifyPayment")
	defer span.End()

	span.SetAttributes(
		attribute.String("order_id", req.OrderID),
		attribute.String("payment_id", req.PaymentID),
		attribute.String("gateway_mode", s.gw.Mode().String()),
	)

	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" || !req.Amount.IsPositive() {
		err := payment.ErrMissingFields
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	verified, err := s.gw.VerifyPayment(ctx, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}

	if !verified {
		s.logger.Warn(ctx, "Payment verification failed", map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
		})
		s.metrics.RecordPaymentVerified(ctx, payment.PaymentStatusFailed.String())
		return &VerifyPaymentResponse{
			Verified: false,
			Message:  "Invalid signature",
		}, nil
	}

	status := payment.PaymentStatusMockSuccess
	message := "Mock payment verified successfully! (This is a test payment)"
	if s.gw.Mode().IsLive() {
		status = payment.PaymentStatusSuccess
		message = "Payment verified successfully"
	}

	record, err := payment.NewPaymentRecord(
		req.OrderID,
		req.PaymentID,
		req.Signature,
		req.Amount,
		order.NormalizeCurrency(req.Currency),
		status,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to save payment record", err, map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
		})
		s.metrics.RecordError(ctx, "payment_save_failed")
		return nil, fmt.Errorf("failed to save payment record: %w", err)
	}

	s.metrics.RecordPaymentVerified(ctx, status.String())
	s.logger.Info(ctx, "Payment verified and recorded", map[string]interface{}{
		"order_id":   req.OrderID,
		"payment_id": req.PaymentID,
		"status":     status.String(),
	})

	return &VerifyPaymentResponse{
		Verified: true,
		Message:  message,
	}, nil
}

// MockPayment 注文作成から決済記録までを一括で行うモック決済
// 選択中のモードに関係なく、常にモックの注文と決済確認を合成する
func (s *CheckoutApplicationService) MockPayment(ctx context.Context, req *MockPaymentRequest) (*MockPaymentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.MockPayment")
	defer span.End()

	span.SetAttributes(
		attribute.String("amount", req.Amount.String()),
		attribute.String("currency", req.Currency),
	)

	if !req.Amount.IsPositive() {
		err := order.ErrInvalidAmount
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	currency := order.NormalizeCurrency(req.Currency)
	minorAmount := req.Amount.Mul(decimal100).Round(0).IntPart()

	ord, err := s.synthesizer.CreateOrder(ctx, gateway.CreateOrderParams{
		Amount:   minorAmount,
		Currency: currency,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	synthesized, err := s.synthesizer.SynthesizePayment(ctx, ord.ID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	record, err := payment.NewPaymentRecord(
		synthesized.OrderID,
		synthesized.PaymentID,
		synthesized.Signature,
		req.Amount,
		currency,
		payment.PaymentStatusMockSuccess,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to save mock payment record", err, map[string]interface{}{
			"order_id": synthesized.OrderID,
		})
		s.metrics.RecordError(ctx, "payment_save_failed")
		return nil, fmt.Errorf("failed to save payment record: %w", err)
	}

	s.metrics.RecordOrderCreated(ctx, gateway.ModeMock.String())
	s.metrics.RecordPaymentVerified(ctx, payment.PaymentStatusMockSuccess.String())
	s.logger.Info(ctx, "Mock payment processed", map[string]interface{}{
		"order_id":   synthesized.OrderID,
		"payment_id": synthesized.PaymentID,
		"amount":     req.Amount.String(),
	})

	return &MockPaymentResponse{
		Success:      true,
		Message:      "Mock payment successful! (This is a simulated transaction)",
		Order:        orderToDTO(ord),
		Payment:      &PaymentDTO{OrderID: synthesized.OrderID, PaymentID: synthesized.PaymentID, Signature: synthesized.Signature},
		SavedPayment: recordToDTO(record),
	}, nil
}

var decimal100 = decimal.NewFromInt(100)

// orderToDTO OrderエンティティをDTOに変換
func orderToDTO(o *order.Order) *OrderDTO {
	return &OrderDTO{
		ID:       o.ID(),
		Amount:   o.Amount(),
		Currency: o.Currency().String(),
		Receipt:  o.Receipt(),
		Status:   o.Status().String(),
	}
}

// recordToDTO PaymentRecordエンティティをDTOに変換
func recordToDTO(p *payment.PaymentRecord) *PaymentRecordDTO {
	return &PaymentRecordDTO{
		OrderID:   p.OrderID(),
		PaymentID: p.PaymentID(),
		Signature: p.Signature(),
		Amount:    p.Amount(),
		Currency:  p.Currency().String(),
		Status:    p.Status().String(),
		CreatedAt: p.CreatedAt(),
	}
}

// generateReceipt レシートIDを生成
func generateReceipt() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("receipt_%d_%s", time.Now().UnixMilli(), suffix)
}

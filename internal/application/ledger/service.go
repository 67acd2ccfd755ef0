package ledger

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"checkout-server/internal/domain/gateway"
	"checkout-server/internal/domain/payment"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// LedgerApplicationService 決済台帳アプリケーションサービス
type LedgerApplicationService struct {
	paymentRepo payment.PaymentRepository
	mode        gateway.Mode
	logger      *otelinfra.Logger
	tracer      trace.Tracer
}

// NewLedgerApplicationService 新しいLedgerApplicationServiceを作成
func NewLedgerApplicationService(
	paymentRepo payment.PaymentRepository,
	mode gateway.Mode,
	logger *otelinfra.Logger,
) *LedgerApplicationService {
	return &LedgerApplicationService{
		paymentRepo: paymentRepo,
		mode:        mode,
		logger:      logger,
		tracer:      otel.Tracer("ledger-service"),
	}
}

// ListPayments 全決済記録を作成日時の降順で取得
func (s *LedgerApplicationService) ListPayments(ctx context.Context) ([]*PaymentRecordDTO, error) {
	ctx, span := s.tracer.Start(ctx, "LedgerApplicationService.ListPayments")
	defer span.End()

	records, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list payments", err, nil)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	span.SetAttributes(attribute.Int("payment_count", len(records)))

	dtos := make([]*PaymentRecordDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, &PaymentRecordDTO{
			OrderID:   r.OrderID(),
			PaymentID: r.PaymentID(),
			Signature: r.Signature(),
			Amount:    r.Amount(),
			Currency:  r.Currency().String(),
			Status:    r.Status().String(),
			CreatedAt: r.CreatedAt(),
		})
	}

	return dtos, nil
}

// ClearPayments 全決済記録を削除
// 本番ゲートウェイモードでは実データ保護のため拒否する
func (s *LedgerApplicationService) ClearPayments(ctx context.Context) (*ClearPaymentsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "LedgerApplicationService.ClearPayments")
	defer span.End()

	span.SetAttributes(attribute.String("gateway_mode", s.mode.String()))

	if s.mode.IsLive() {
		err := gateway.ErrNotAllowedInLiveMode
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Warn(ctx, "Rejected ledger clear in live mode", nil)
		return nil, err
	}

	if err := s.paymentRepo.DeleteAll(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to clear payments", err, nil)
		return nil, fmt.Errorf("failed to clear payments: %w", err)
	}

	s.logger.Info(ctx, "Payment ledger cleared", nil)

	return &ClearPaymentsResponse{
		Success: true,
		Message: "All payments cleared",
	}, nil
}

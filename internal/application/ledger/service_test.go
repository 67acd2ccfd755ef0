package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"checkout-server/internal/domain/gateway"
	"checkout-server/internal/domain/order"
	"checkout-server/internal/domain/payment"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// MockPaymentRepository モック決済リポジトリ
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *payment.PaymentRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context) ([]*payment.PaymentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestService(repo *MockPaymentRepository, mode gateway.Mode) *LedgerApplicationService {
	logger := otelinfra.NewLogger(otel.Tracer("test"))
	return NewLedgerApplicationService(repo, mode, logger)
}

func TestLedgerApplicationService_ListPayments(t *testing.T) {
	t.Run("正常系: 全記録を取得", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)

		createdAt := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		records := []*payment.PaymentRecord{
			payment.ReconstructPaymentRecord(
				"order_2", "pay_2", "sig_2",
				decimal.NewFromFloat(250.50), order.CurrencyINR,
				payment.PaymentStatusSuccess, createdAt,
			),
			payment.ReconstructPaymentRecord(
				"mock_order_1", "mock_payment_1", "mock_signature_1",
				decimal.NewFromInt(100), order.CurrencyUSD,
				payment.PaymentStatusMockSuccess, createdAt.Add(-24*time.Hour),
			),
		}
		mockRepo.On("FindAll", mock.Anything).Return(records, nil)

		svc := newTestService(mockRepo, gateway.ModeMock)

		got, err := svc.ListPayments(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "order_2", got[0].OrderID)
		assert.Equal(t, "success", got[0].Status)
		assert.Equal(t, createdAt, got[0].CreatedAt)
		assert.Equal(t, "USD", got[1].Currency)
		assert.Equal(t, "success (mock)", got[1].Status)
	})

	t.Run("正常系: 記録がない場合は空スライス", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockRepo.On("FindAll", mock.Anything).Return([]*payment.PaymentRecord{}, nil)

		svc := newTestService(mockRepo, gateway.ModeMock)

		got, err := svc.ListPayments(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("異常系: ストアエラー", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockRepo.On("FindAll", mock.Anything).Return(nil, assert.AnError)

		svc := newTestService(mockRepo, gateway.ModeMock)

		_, err := svc.ListPayments(context.Background())
		assert.Error(t, err)
	})
}

func TestLedgerApplicationService_ClearPayments(t *testing.T) {
	t.Run("正常系: モックモードでは全削除できる", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockRepo.On("DeleteAll", mock.Anything).Return(nil)

		svc := newTestService(mockRepo, gateway.ModeMock)

		got, err := svc.ClearPayments(context.Background())
		require.NoError(t, err)
		assert.True(t, got.Success)
		mockRepo.AssertExpectations(t)
	})

	t.Run("異常系: 本番モードでは拒否される", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)

		svc := newTestService(mockRepo, gateway.ModeLive)

		_, err := svc.ClearPayments(context.Background())
		assert.ErrorIs(t, err, gateway.ErrNotAllowedInLiveMode)
		mockRepo.AssertNotCalled(t, "DeleteAll", mock.Anything)
	})

	t.Run("異常系: ストアエラー", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockRepo.On("DeleteAll", mock.Anything).Return(assert.AnError)

		svc := newTestService(mockRepo, gateway.ModeMock)

		_, err := svc.ClearPayments(context.Background())
		assert.Error(t, err)
	})
}

package checkout

import (
	"context"
	"strings"
	"testing"

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

// MockGateway モック決済ゲートウェイ
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Mode() gateway.Mode {
	args := m.Called()
	return args.Get(0).(gateway.Mode)
}

func (m *MockGateway) CreateOrder(ctx context.Context, params gateway.CreateOrderParams) (*order.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockGateway) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	args := m.Called(ctx, orderID, paymentID, signature)
	return args.Bool(0), args.Error(1)
}

// MockSynthesizer モック決済合成器
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) CreateOrder(ctx context.Context, params gateway.CreateOrderParams) (*order.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockSynthesizer) SynthesizePayment(ctx context.Context, orderID string) (gateway.SynthesizedPayment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(gateway.SynthesizedPayment), args.Error(1)
}

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

func newTestService(gw *MockGateway, synth *MockSynthesizer, repo *MockPaymentRepository) *CheckoutApplicationService {
	logger := otelinfra.NewLogger(otel.Tracer("test"))
	metrics, err := otelinfra.NewMetrics("test")
	if err != nil {
		panic(err)
	}
	return NewCheckoutApplicationService(gw, synth, repo, logger, metrics)
}

func TestCheckoutApplicationService_CreateOrder(t *testing.T) {
	tests := []struct {
		name       string
		req        *CreateOrderRequest
		setupMocks func(*MockGateway)
		wantError  error
		checkFunc  func(*testing.T, *OrderDTO)
	}{
		{
			name: "正常系: 注文を作成（最小通貨単位に変換される）",
			req: &CreateOrderRequest{
				Amount:   decimal.NewFromFloat(500.50),
				Currency: "inr",
			},
			setupMocks: func(gw *MockGateway) {
				gw.On("Mode").Return(gateway.ModeMock)
				gw.On("CreateOrder", mock.Anything, mock.MatchedBy(func(p gateway.CreateOrderParams) bool {
					return p.Amount == 50050 &&
						p.Currency == order.CurrencyINR &&
						strings.HasPrefix(p.Receipt, "receipt_")
				})).Return(order.MustNewOrder("mock_order_1", 50050, order.CurrencyINR, "receipt_1_abc"), nil)
			},
			checkFunc: func(t *testing.T, got *OrderDTO) {
				assert.Equal(t, "mock_order_1", got.ID)
				assert.Equal(t, int64(50050), got.Amount)
				assert.Equal(t, "INR", got.Currency)
				assert.Equal(t, "created", got.Status)
			},
		},
		{
			name: "正常系: 通貨未指定はINRになる",
			req: &CreateOrderRequest{
				Amount: decimal.NewFromInt(100),
			},
			setupMocks: func(gw *MockGateway) {
				gw.On("Mode").Return(gateway.ModeMock)
				gw.On("CreateOrder", mock.Anything, mock.MatchedBy(func(p gateway.CreateOrderParams) bool {
					return p.Currency == order.CurrencyINR
				})).Return(order.MustNewOrder("mock_order_2", 10000, order.CurrencyINR, "r"), nil)
			},
			checkFunc: func(t *testing.T, got *OrderDTO) {
				assert.Equal(t, "INR", got.Currency)
			},
		},
		{
			name: "異常系: 金額が0",
			req: &CreateOrderRequest{
				Amount: decimal.Zero,
			},
			setupMocks: func(gw *MockGateway) {
				gw.On("Mode").Return(gateway.ModeMock)
			},
			wantError: order.ErrInvalidAmount,
		},
		{
			name: "異常系: 金額が負",
			req: &CreateOrderRequest{
				Amount: decimal.NewFromInt(-10),
			},
			setupMocks: func(gw *MockGateway) {
				gw.On("Mode").Return(gateway.ModeMock)
			},
			wantError: order.ErrInvalidAmount,
		},
		{
			name: "異常系: ゲートウェイ認証失敗",
			req: &CreateOrderRequest{
				Amount: decimal.NewFromInt(100),
			},
			setupMocks: func(gw *MockGateway) {
				gw.On("Mode").Return(gateway.ModeLive)
				gw.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, gateway.ErrAuthenticationFailed)
			},
			wantError: gateway.ErrAuthenticationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGw := new(MockGateway)
			mockSynth := new(MockSynthesizer)
			mockRepo := new(MockPaymentRepository)
			tt.setupMocks(mockGw)

			svc := newTestService(mockGw, mockSynth, mockRepo)

			got, err := svc.CreateOrder(context.Background(), tt.req)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			tt.checkFunc(t, got)
			mockGw.AssertExpectations(t)
		})
	}
}

func TestCheckoutApplicationService_VerifyPayment(t *testing.T) {
	validReq := func() *VerifyPaymentRequest {
		return &VerifyPaymentRequest{
			OrderID:   "order_abc",
			PaymentID: "pay_xyz",
			Signature: "sig_123",
			Amount:    decimal.NewFromInt(500),
			Currency:  "INR",
		}
	}

	t.Run("正常系: 本番モードで検証成功し記録される", func(t *testing.T) {
		mockGw := new(MockGateway)
		mockSynth := new(MockSynthesizer)
		mockRepo := new(MockPaymentRepository)

		mockGw.On("Mode").Return(gateway.ModeLive)
		mockGw.On("VerifyPayment", mock.Anything, "order_abc", "pay_xyz", "sig_123").Return(true, nil)
		mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *payment.PaymentRecord) bool {
			return p.OrderID() == "order_abc" &&
				p.Status() == payment.PaymentStatusSuccess &&
				p.Amount().Equal(decimal.NewFromInt(500))
		})).Return(nil)

		svc := newTestService(mockGw, mockSynth, mockRepo)

		got, err := svc.VerifyPayment(context.Background(), validReq())
		require.NoError(t, err)
		assert.True(t, got.Verified)
		assert.Equal(t, "Payment verified successfully", got.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("正常系: モックモードではモックステータスで記録される", func(t *testing.T) {
		mockGw := new(MockGateway)
		mockSynth := new(MockSynthesizer)
		mockRepo := new(MockPaymentRepository)

		mockGw.On("Mode").Return(gateway.ModeMock)
		mockGw.On("VerifyPayment", mock.Anything, "order_abc", "pay_xyz", "sig_123").Return(true, nil)
		mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *payment.PaymentRecord) bool {
			return p.Status() == payment.PaymentStatusMockSuccess
		})).Return(nil)

		svc := newTestService(mockGw, mockSynth, mockRepo)

		got, err := svc.VerifyPayment(context.Background(), validReq())
		require.NoError(t, err)
		assert.True(t, got.Verified)
		assert.Contains(t, got.Message, "Mock payment verified")
	})

	t.Run("正常系: 署名不一致は記録されず検証失敗を返す", func(t *testing.T) {
		mockGw := new(MockGateway)
		mockSynth := new(MockSynthesizer)
		mockRepo := new(MockPaymentRepository)

		mockGw.On("Mode").Return(gateway.ModeLive)
		mockGw.On("VerifyPayment", mock.Anything, "order_abc", "pay_xyz", "sig_123").Return(false, nil)

		svc := newTestService(mockGw, mockSynth, mockRepo)

		got, err := svc.VerifyPayment(context.Background(), validReq())
		require.NoError(t, err)
		assert.False(t, got.Verified)
		assert.Equal(t, "Invalid signature", got.Message)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("異常系: 必須フィールド不足", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*VerifyPaymentRequest)
		}{
			{"orderIdなし", func(r *VerifyPaymentRequest) { r.OrderID = "" }},
			{"paymentIdなし", func(r *VerifyPaymentRequest) { r.PaymentID = "" }},
			{"signatureなし", func(r *VerifyPaymentRequest) { r.Signature = "" }},
			{"amountなし", func(r *VerifyPaymentRequest) { r.Amount = decimal.Zero }},
			{"amountが負", func(r *VerifyPaymentRequest) { r.Amount = decimal.NewFromInt(-100) }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockGw := new(MockGateway)
				mockGw.On("Mode").Return(gateway.ModeLive)
				svc := newTestService(mockGw, new(MockSynthesizer), new(MockPaymentRepository))

				req := validReq()
				tt.mutate(req)

				_, err := svc.VerifyPayment(context.Background(), req)
				assert.ErrorIs(t, err, payment.ErrMissingFields)
			})
		}
	})

	t.Run("異常系: 保存失敗", func(t *testing.T) {
		mockGw := new(MockGateway)
		mockSynth := new(MockSynthesizer)
		mockRepo := new(MockPaymentRepository)

		mockGw.On("Mode").Return(gateway.ModeLive)
		mockGw.On("VerifyPayment", mock.Anything, "order_abc", "pay_xyz", "sig_123").Return(true, nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

		svc := newTestService(mockGw, mockSynth, mockRepo)

		_, err := svc.VerifyPayment(context.Background(), validReq())
		assert.Error(t, err)
	})
}

func TestCheckoutApplicationService_MockPayment(t *testing.T) {
	t.Run("正常系: 注文合成から記録まで一括で行う", func(t *testing.T) {
		mockGw := new(MockGateway)
		mockSynth := new(MockSynthesizer)
		mockRepo := new(MockPaymentRepository)

		ord := order.MustNewOrder("mock_order_1700000000000", 50000, order.CurrencyINR, "mock_receipt_1700000000000")
		mockSynth.On("CreateOrder", mock.Anything, mock.MatchedBy(func(p gateway.CreateOrderParams) bool {
			return p.Amount == 50000 && p.Currency == order.CurrencyINR
		})).Return(ord, nil)
		mockSynth.On("SynthesizePayment", mock.Anything, "mock_order_1700000000000").Return(gateway.SynthesizedPayment{
			OrderID:   "mock_order_1700000000000",
			PaymentID: "mock_payment_1700000000001",
			Signature: "mock_signature_abc123def",
		}, nil)
		mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *payment.PaymentRecord) bool {
			return p.OrderID() == "mock_order_1700000000000" &&
				p.PaymentID() == "mock_payment_1700000000001" &&
				p.Status() == payment.PaymentStatusMockSuccess &&
				p.Amount().Equal(decimal.NewFromInt(500))
		})).Return(nil)

		svc := newTestService(mockGw, mockSynth, mockRepo)

		got, err := svc.MockPayment(context.Background(), &MockPaymentRequest{
			Amount:   decimal.NewFromInt(500),
			Currency: "INR",
		})
		require.NoError(t, err)
		assert.True(t, got.Success)
		assert.Equal(t, "mock_order_1700000000000", got.Order.ID)
		assert.Equal(t, "mock_payment_1700000000001", got.Payment.PaymentID)
		assert.Equal(t, "success (mock)", got.SavedPayment.Status)
		mockSynth.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("異常系: 金額が不正", func(t *testing.T) {
		svc := newTestService(new(MockGateway), new(MockSynthesizer), new(MockPaymentRepository))

		_, err := svc.MockPayment(context.Background(), &MockPaymentRequest{
			Amount: decimal.Zero,
		})
		assert.ErrorIs(t, err, order.ErrInvalidAmount)
	})

	t.Run("異常系: 保存失敗", func(t *testing.T) {
		mockGw := new(MockGateway)
		mockSynth := new(MockSynthesizer)
		mockRepo := new(MockPaymentRepository)

		ord := order.MustNewOrder("mock_order_1", 10000, order.CurrencyINR, "r")
		mockSynth.On("CreateOrder", mock.Anything, mock.Anything).Return(ord, nil)
		mockSynth.On("SynthesizePayment", mock.Anything, "mock_order_1").Return(gateway.SynthesizedPayment{
			OrderID:   "mock_order_1",
			PaymentID: "mock_payment_1",
			Signature: "mock_signature_1",
		}, nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

		svc := newTestService(mockGw, mockSynth, mockRepo)

		_, err := svc.MockPayment(context.Background(), &MockPaymentRequest{
			Amount: decimal.NewFromInt(100),
		})
		assert.Error(t, err)
	})
}

func TestGenerateReceipt(t *testing.T) {
	r1 := generateReceipt()
	r2 := generateReceipt()

	assert.True(t, strings.HasPrefix(r1, "receipt_"))
	assert.NotEqual(t, r1, r2)
}

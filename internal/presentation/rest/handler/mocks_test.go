package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"checkout-server/internal/domain/gateway"
	"checkout-server/internal/domain/order"
	"checkout-server/internal/domain/payment"
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

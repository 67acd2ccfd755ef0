package checkout

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest 注文作成リクエスト
type CreateOrderRequest struct {
	Amount   decimal.Decimal // 主要通貨単位
	Currency string
}

// OrderDTO 注文レスポンス
type OrderDTO struct {
	ID       string
	Amount   int64 // 最小通貨単位
	Currency string
	Receipt  string
	Status   string
}

// VerifyPaymentRequest 決済検証リクエスト
type VerifyPaymentRequest struct {
	OrderID   string
	PaymentID string
	Signature string
	Amount    decimal.Decimal // 主要通貨単位
	Currency  string
}

// VerifyPaymentResponse 決済検証レスポンス
type VerifyPaymentResponse struct {
	Verified bool
	Message  string
}

// MockPaymentRequest モック決済リクエスト
type MockPaymentRequest struct {
	Amount   decimal.Decimal // 主要通貨単位
	Currency string
}

// PaymentDTO 合成された決済確認
type PaymentDTO struct {
	OrderID   string
	PaymentID string
	Signature string
}

// PaymentRecordDTO 保存された決済記録
type PaymentRecordDTO struct {
	OrderID   string
	PaymentID string
	Signature string
	Amount    decimal.Decimal
	Currency  string
	Status    string
	CreatedAt time.Time
}

// MockPaymentResponse モック決済レスポンス
type MockPaymentResponse struct {
	Success      bool
	Message      string
	Order        *OrderDTO
	Payment      *PaymentDTO
	SavedPayment *PaymentRecordDTO
}

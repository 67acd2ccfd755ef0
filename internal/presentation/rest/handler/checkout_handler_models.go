package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest 注文作成リクエスト
// @Description 注文作成リクエスト
type CreateOrderRequest struct {
	Amount   decimal.Decimal `json:"amount" example:"500"`
	Currency string          `json:"currency" example:"INR"`
}

// OrderResponse 注文レスポンス
// @Description 作成された注文
type OrderResponse struct {
	ID       string `json:"id" example:"order_N5X2abcdef"`
	Amount   int64  `json:"amount" example:"50000"`
	Currency string `json:"currency" example:"INR"`
	Receipt  string `json:"receipt" example:"receipt_1700000000000_abc123def"`
	Status   string `json:"status" example:"created"`
}

// VerifyPaymentRequest 決済検証リクエスト
// @Description 決済検証リクエスト
type VerifyPaymentRequest struct {
	OrderID   string          `json:"orderId" example:"order_N5X2abcdef"`
	PaymentID string          `json:"paymentId" example:"pay_N5X2ghijkl"`
	Signature string          `json:"signature" example:"d2f9..."`
	Amount    decimal.Decimal `json:"amount" example:"500"`
	Currency  string          `json:"currency" example:"INR"`
}

// VerifyPaymentResponse 決済検証レスポンス
// @Description 決済検証レスポンス
type VerifyPaymentResponse struct {
	Verified bool   `json:"verified" example:"true"`
	Message  string `json:"message" example:"Payment verified successfully"`
}

// MockPaymentRequest モック決済リクエスト
// @Description モック決済リクエスト
type MockPaymentRequest struct {
	Amount   decimal.Decimal `json:"amount" example:"500"`
	Currency string          `json:"currency" example:"INR"`
}

// PaymentConfirmation 合成された決済確認
// @Description 合成された決済確認
type PaymentConfirmation struct {
	OrderID   string `json:"orderId" example:"mock_order_1700000000000"`
	PaymentID string `json:"paymentId" example:"mock_payment_1700000000000"`
	Signature string `json:"signature" example:"mock_signature_abc123def"`
}

// PaymentRecordResponse 決済記録レスポンス
// @Description 台帳の決済記録
type PaymentRecordResponse struct {
	OrderID   string          `json:"orderId" example:"order_N5X2abcdef"`
	PaymentID string          `json:"paymentId" example:"pay_N5X2ghijkl"`
	Signature string          `json:"signature" example:"d2f9..."`
	Amount    decimal.Decimal `json:"amount" example:"500"`
	Currency  string          `json:"currency" example:"INR"`
	Status    string          `json:"status" example:"success"`
	CreatedAt time.Time       `json:"createdAt" example:"2024-01-02T15:04:05Z"`
}

// MockPaymentResponse モック決済レスポンス
// @Description モック決済レスポンス
type MockPaymentResponse struct {
	Success      bool                  `json:"success" example:"true"`
	Message      string                `json:"message" example:"Mock payment successful! (This is a simulated transaction)"`
	Order        OrderResponse         `json:"order"`
	Payment      PaymentConfirmation   `json:"payment"`
	SavedPayment PaymentRecordResponse `json:"savedPayment"`
}

package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecordDTO 台帳エントリレスポンス
type PaymentRecordDTO struct {
	OrderID   string
	PaymentID string
	Signature string
	Amount    decimal.Decimal
	Currency  string
	Status    string
	CreatedAt time.Time
}

// ClearPaymentsResponse 台帳クリアレスポンス
type ClearPaymentsResponse struct {
	Success bool
	Message string
}

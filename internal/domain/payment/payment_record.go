package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"checkout-server/internal/domain/order"
)

// PaymentRecord 決済台帳エントリエンティティ
// 金額はクライアントが送信した主要通貨単位（ルピー/ドル）のまま保持する。
// 注文側の最小単位金額と混同してはならない。一度書き込まれたら不変
type PaymentRecord struct {
	orderID   string
	paymentID string
	signature string
	amount    decimal.Decimal // 主要通貨単位
	currency  order.Currency
	status    PaymentStatus
	createdAt time.Time
}

// NewPaymentRecord 新しいPaymentRecordエンティティを作成
func NewPaymentRecord(
	orderID string,
	paymentID string,
	signature string,
	amount decimal.Decimal,
	currency order.Currency,
	status PaymentStatus,
) (*PaymentRecord, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, ErrMissingFields
	}
	if !amount.IsPositive() {
		return nil, ErrMissingFields
	}
	if !status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}
	return &PaymentRecord{
		orderID:   orderID,
		paymentID: paymentID,
		signature: signature,
		amount:    amount,
		currency:  currency,
		status:    status,
		createdAt: time.Now(),
	}, nil
}

// ReconstructPaymentRecord 永続化層からPaymentRecordエンティティを復元
// 保存時の作成日時を維持する
func ReconstructPaymentRecord(
	orderID string,
	paymentID string,
	signature string,
	amount decimal.Decimal,
	currency order.Currency,
	status PaymentStatus,
	createdAt time.Time,
) *PaymentRecord {
	return &PaymentRecord{
		orderID:   orderID,
		paymentID: paymentID,
		signature: signature,
		amount:    amount,
		currency:  currency,
		status:    status,
		createdAt: createdAt,
	}
}

// OrderID 注文IDを返す
func (p *PaymentRecord) OrderID() string {
	return p.orderID
}

// PaymentID 決済IDを返す
func (p *PaymentRecord) PaymentID() string {
	return p.paymentID
}

// Signature 署名を返す
func (p *PaymentRecord) Signature() string {
	return p.signature
}

// Amount 主要通貨単位の金額を返す
func (p *PaymentRecord) Amount() decimal.Decimal {
	return p.amount
}

// Currency 通貨コードを返す
func (p *PaymentRecord) Currency() order.Currency {
	return p.currency
}

// Status 決済ステータスを返す
func (p *PaymentRecord) Status() PaymentStatus {
	return p.status
}

// CreatedAt 作成日時を返す
func (p *PaymentRecord) CreatedAt() time.Time {
	return p.createdAt
}

// MustNewPaymentRecord テスト用ヘルパー: NewPaymentRecordを呼び出し、エラーが発生した場合はpanicする
func MustNewPaymentRecord(
	orderID string,
	paymentID string,
	signature string,
	amount decimal.Decimal,
	currency order.Currency,
	status PaymentStatus,
) *PaymentRecord {
	p, err := NewPaymentRecord(orderID, paymentID, signature, amount, currency, status)
	if err != nil {
		panic(err)
	}
	return p
}

package order

import (
	"time"
)

// OrderStatus 注文ステータスを表す値オブジェクト
type OrderStatus string

const (
	// OrderStatusCreated 作成済み（注文はこのステータスでのみ生成される）
	OrderStatusCreated OrderStatus = "created"
)

// String 文字列表現を返す
func (os OrderStatus) String() string {
	return string(os)
}

// Order 決済注文エンティティ
// 金額は最小通貨単位（パイサ/セント）で保持する。注文はクライアントが検証まで
// 保持する一時的なもので、永続化されない
type Order struct {
	id        string
	amount    int64 // 最小通貨単位
	currency  Currency
	receipt   string
	status    OrderStatus
	createdAt time.Time
}

// NewOrder 新しいOrderエンティティを作成
func NewOrder(id string, amount int64, currency Currency, receipt string) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidOrderID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Order{
		id:        id,
		amount:    amount,
		currency:  currency,
		receipt:   receipt,
		status:    OrderStatusCreated,
		createdAt: time.Now(),
	}, nil
}

// ID 注文IDを返す
func (o *Order) ID() string {
	return o.id
}

// Amount 最小通貨単位の金額を返す
func (o *Order) Amount() int64 {
	return o.amount
}

// Currency 通貨コードを返す
func (o *Order) Currency() Currency {
	return o.currency
}

// Receipt レシート識別子を返す
func (o *Order) Receipt() string {
	return o.receipt
}

// Status 注文ステータスを返す
func (o *Order) Status() OrderStatus {
	return o.status
}

// CreatedAt 作成日時を返す
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// MustNewOrder テスト用ヘルパー: NewOrderを呼び出し、エラーが発生した場合はpanicする
func MustNewOrder(id string, amount int64, currency Currency, receipt string) *Order {
	o, err := NewOrder(id, amount, currency, receipt)
	if err != nil {
		panic(err)
	}
	return o
}

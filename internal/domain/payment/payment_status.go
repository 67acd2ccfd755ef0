package payment

import (
	"fmt"
)

// PaymentStatus 決済記録のステータスを表す値オブジェクト
type PaymentStatus string

const (
	PaymentStatusSuccess     PaymentStatus = "success"        // 検証済み（本番ゲートウェイ）
	PaymentStatusMockSuccess PaymentStatus = "success (mock)" // 検証済み（モックゲートウェイ）
	PaymentStatusFailed      PaymentStatus = "failed"         // 失敗
)

// NewPaymentStatus 新しいPaymentStatusを作成
func NewPaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentStatusSuccess, PaymentStatusMockSuccess, PaymentStatusFailed:
		return PaymentStatus(s), nil
	default:
		return "", fmt.Errorf("invalid payment status: %s", s)
	}
}

// String 文字列表現を返す
func (ps PaymentStatus) String() string {
	return string(ps)
}

// Valid 有効な決済ステータスかどうかを返す
func (ps PaymentStatus) Valid() bool {
	switch ps {
	case PaymentStatusSuccess, PaymentStatusMockSuccess, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// IsMock モックゲートウェイによる検証かどうかを返す
func (ps PaymentStatus) IsMock() bool {
	return ps == PaymentStatusMockSuccess
}

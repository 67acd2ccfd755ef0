package payment

import "errors"

var (
	// ErrMissingFields 必須の決済フィールドが不足しているエラー
	ErrMissingFields = errors.New("missing required payment fields")
	// ErrInvalidPaymentStatus 無効な決済ステータスエラー
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

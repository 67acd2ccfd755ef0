package order

import "errors"

var (
	// ErrInvalidOrderID 注文IDが無効
	ErrInvalidOrderID = errors.New("invalid order id")
	// ErrInvalidAmount 金額が無効
	ErrInvalidAmount = errors.New("invalid amount")
)

package gateway

import "errors"

var (
	// ErrAuthenticationFailed ゲートウェイ認証失敗エラー
	ErrAuthenticationFailed = errors.New("gateway authentication failed")
	// ErrOrderCreationFailed 注文作成失敗エラー
	ErrOrderCreationFailed = errors.New("failed to create gateway order")
	// ErrNotAllowedInLiveMode 本番モードでは許可されない操作エラー
	ErrNotAllowedInLiveMode = errors.New("operation not allowed in live mode")
)

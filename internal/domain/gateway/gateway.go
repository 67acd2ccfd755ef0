package gateway

import (
	"context"

	"checkout-server/internal/domain/order"
)

// Mode ゲートウェイの動作モード
// プロセス起動時に一度だけ選択され、以後変更されない
type Mode string

const (
	// ModeLive 本物のRazorpayゲートウェイを使用
	ModeLive Mode = "Razorpay"
	// ModeMock ローカルのモック決済システムを使用
	ModeMock Mode = "Mock Payment System"
)

// String 文字列表現を返す
func (m Mode) String() string {
	return string(m)
}

// IsLive 本番ゲートウェイモードかどうかを返す
func (m Mode) IsLive() bool {
	return m == ModeLive
}

// CreateOrderParams 注文作成パラメータ
type CreateOrderParams struct {
	Amount   int64 // 最小通貨単位
	Currency order.Currency
	Receipt  string
}

// Gateway 決済ゲートウェイインターフェース
// Live（外部Razorpay連携）とMock（ローカル生成）の2つの実装を持つ
type Gateway interface {
	// Mode ゲートウェイの動作モードを返す
	Mode() Mode

	// CreateOrder 決済注文を作成
	CreateOrder(ctx context.Context, params CreateOrderParams) (*order.Order, error)

	// VerifyPayment 決済確認の真正性を検証
	// 署名不一致はエラーではなく false を返す
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (bool, error)
}

// SynthesizedPayment モックゲートウェイが合成した決済確認
type SynthesizedPayment struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Synthesizer チェックアウトUIなしのテスト用に注文と決済確認を合成するポート
// 選択中のモードに関係なく常にモック実装が担う
type Synthesizer interface {
	// CreateOrder モック注文を合成（バリデーション通過後は失敗しない）
	CreateOrder(ctx context.Context, params CreateOrderParams) (*order.Order, error)

	// SynthesizePayment 指定した注文に対応するモック決済確認を合成
	SynthesizePayment(ctx context.Context, orderID string) (SynthesizedPayment, error)
}

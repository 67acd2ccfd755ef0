package payment

import (
	"context"
)

// PaymentRepository 決済台帳リポジトリインターフェース
type PaymentRepository interface {
	// Save 決済記録を追記保存
	Save(ctx context.Context, record *PaymentRecord) error

	// FindAll 全ての決済記録を作成日時の降順で取得
	FindAll(ctx context.Context) ([]*PaymentRecord, error)

	// DeleteAll 全ての決済記録を削除
	DeleteAll(ctx context.Context) error
}

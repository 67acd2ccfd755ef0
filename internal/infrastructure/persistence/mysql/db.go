package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"checkout-server/internal/infrastructure/config"
)

// DB データベース接続を提供
type DB struct {
	*sql.DB
}

// NewDB 新しいデータベース接続を作成し、疎通を確認する
func NewDB(cfg *config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 接続プールの設定
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// 決済台帳テーブル
// 金額は最大通貨単位のDECIMALで保持する
const paymentsSchema = `
CREATE TABLE IF NOT EXISTS payments (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	order_id VARCHAR(64) NOT NULL,
	payment_id VARCHAR(64) NOT NULL,
	signature VARCHAR(128) NOT NULL,
	amount DECIMAL(18, 2) NOT NULL,
	currency VARCHAR(8) NOT NULL,
	status VARCHAR(32) NOT NULL,
	created_at DATETIME(3) NOT NULL,
	INDEX idx_payments_created_at (created_at)
)`

// EnsureSchema 決済台帳テーブルを作成する（存在しない場合のみ）
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, paymentsSchema); err != nil {
		return fmt.Errorf("failed to create payments table: %w", err)
	}
	return nil
}

// Close データベース接続を閉じる
func (db *DB) Close() error {
	return db.DB.Close()
}

// HealthCheck データベースのヘルスチェックを実行
func (db *DB) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"checkout-server/internal/domain/order"
	"checkout-server/internal/domain/payment"
)

// PaymentRepository MySQL実装のPaymentRepository
type PaymentRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewPaymentRepository 新しいPaymentRepositoryを作成
func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{
		db:     db,
		tracer: otel.Tracer("payment-repository"),
	}
}

// Save 決済記録を保存
func (r *PaymentRepository) Save(ctx context.Context, p *payment.PaymentRecord) error {
	ctx, span := r.tracer.Start(ctx, "PaymentRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.order_id", p.OrderID()),
		attribute.String("db.payment_id", p.PaymentID()),
		attribute.String("db.status", p.Status().String()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "payments"),
	)

	query := `
		INSERT INTO payments (
			order_id, payment_id, signature, amount, currency, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.OrderID(),
		p.PaymentID(),
		p.Signature(),
		p.Amount().String(),
		p.Currency().String(),
		p.Status().String(),
		p.CreatedAt(),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save payment: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "payment saved")
	return nil
}

// FindAll 全決済記録を作成日時の降順で取得
func (r *PaymentRepository) FindAll(ctx context.Context) ([]*payment.PaymentRecord, error) {
	ctx, span := r.tracer.Start(ctx, "PaymentRepository.FindAll")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "payments"),
	)

	query := `
		SELECT order_id, payment_id, signature, amount, currency, status, created_at
		FROM payments
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.PaymentRecord
	for rows.Next() {
		var orderID, paymentID, signature, amountStr, currencyStr, statusStr string
		var createdAt time.Time

		if err := rows.Scan(
			&orderID,
			&paymentID,
			&signature,
			&amountStr,
			&currencyStr,
			&statusStr,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid payment amount: %w", err)
		}

		status, err := payment.NewPaymentStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("invalid payment status: %w", err)
		}

		payments = append(payments, payment.ReconstructPaymentRecord(
			orderID,
			paymentID,
			signature,
			amount,
			order.NormalizeCurrency(currencyStr),
			status,
			createdAt,
		))
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	span.SetAttributes(attribute.Int("db.result_count", len(payments)))
	span.SetStatus(otelcodes.Ok, fmt.Sprintf("found %d payments", len(payments)))
	return payments, nil
}

// DeleteAll 全決済記録を削除
func (r *PaymentRepository) DeleteAll(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "PaymentRepository.DeleteAll")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.table", "payments"),
	)

	result, err := r.db.ExecContext(ctx, `DELETE FROM payments`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to delete payments: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil {
		span.SetAttributes(attribute.Int64("db.rows_affected", affected))
	}

	span.SetStatus(otelcodes.Ok, "payments deleted")
	return nil
}

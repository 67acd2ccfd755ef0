package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics チェックアウトサーバーのメトリクス定義
type Metrics struct {
	// 作成された注文数
	OrderCount metric.Int64Counter

	// 検証された決済数（ステータス別）
	PaymentCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー数
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	orderCount, err := meter.Int64Counter(
		"orders_created_total",
		metric.WithDescription("Total number of payment orders created"),
	)
	if err != nil {
		return nil, err
	}

	paymentCount, err := meter.Int64Counter(
		"payments_verified_total",
		metric.WithDescription("Total number of payment verifications"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		OrderCount:   orderCount,
		PaymentCount: paymentCount,
		RequestCount: requestCount,
		ResponseTime: responseTime,
		ErrorCount:   errorCount,
	}, nil
}

// RecordOrderCreated 注文作成を記録
func (m *Metrics) RecordOrderCreated(ctx context.Context, mode string) {
	m.OrderCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("gateway_mode", mode),
		),
	)
}

// RecordPaymentVerified 決済検証の結果を記録
func (m *Metrics) RecordPaymentVerified(ctx context.Context, status string) {
	m.PaymentCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("status", status),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}

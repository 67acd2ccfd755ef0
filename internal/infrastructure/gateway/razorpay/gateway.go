package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"checkout-server/internal/domain/gateway"
	"checkout-server/internal/domain/order"
	"checkout-server/internal/infrastructure/config"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

const defaultBaseURL = "https://api.razorpay.com"

// Gateway Razorpay決済ゲートウェイ
type Gateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
	logger     *otelinfra.Logger
	tracer     trace.Tracer
}

// NewGateway 新しいRazorpay Gatewayを作成
func NewGateway(cfg config.RazorpayConfig, logger *otelinfra.Logger) *Gateway {
	return &Gateway{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		tracer: otel.Tracer("razorpay-gateway"),
	}
}

// Mode ゲートウェイの動作モードを返す
func (g *Gateway) Mode() gateway.Mode {
	return gateway.ModeLive
}

// orderRequest Razorpay注文作成APIのリクエストボディ
type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// orderResponse Razorpay注文作成APIのレスポンスボディ
type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// errorResponse RazorpayAPIのエラーレスポンス
type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder Razorpay上に決済注文を作成
func (g *Gateway) CreateOrder(ctx context.Context, params gateway.CreateOrderParams) (*order.Order, error) {
	ctx, span := g.tracer.Start(ctx, "RazorpayGateway.CreateOrder")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("amount", params.Amount),
		attribute.String("currency", params.Currency.String()),
	)

	body, err := json.Marshal(orderRequest{
		Amount:   params.Amount,
		Currency: params.Currency.String(),
		Receipt:  params.Receipt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", gateway.ErrOrderCreationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)

		g.logger.Error(ctx, "Razorpay order creation failed", nil, map[string]interface{}{
			"status_code": resp.StatusCode,
			"error_code":  errResp.Error.Code,
			"description": errResp.Error.Description,
		})

		// 認証情報が不正な場合はBAD_REQUEST_ERRORコードで401が返る
		// BAD_REQUEST_ERRORは400のバリデーション失敗でも返るため、両方が揃った場合のみ認証失敗とする
		if resp.StatusCode == http.StatusUnauthorized && errResp.Error.Code == "BAD_REQUEST_ERROR" {
			err := fmt.Errorf("%w: %s", gateway.ErrAuthenticationFailed, errResp.Error.Description)
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}

		err := fmt.Errorf("%w: status %d: %s", gateway.ErrOrderCreationFailed, resp.StatusCode, errResp.Error.Description)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var orderResp orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	span.SetAttributes(attribute.String("order_id", orderResp.ID))

	ord, err := order.NewOrder(orderResp.ID, orderResp.Amount, order.NormalizeCurrency(orderResp.Currency), orderResp.Receipt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	g.logger.Info(ctx, "Razorpay order created", map[string]interface{}{
		"order_id": orderResp.ID,
		"amount":   orderResp.Amount,
		"currency": orderResp.Currency,
	})

	return ord, nil
}

// VerifyPayment 決済確認の署名を検証
// Razorpayが返す署名は orderID|paymentID をキーシークレットでHMAC-SHA256署名したもの
func (g *Gateway) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	ctx, span := g.tracer.Start(ctx, "RazorpayGateway.VerifyPayment")
	defer span.End()

	span.SetAttributes(
		attribute.String("order_id", orderID),
		attribute.String("payment_id", paymentID),
	)

	expected := Signature(g.keySecret, orderID, paymentID)
	verified := hmac.Equal([]byte(expected), []byte(signature))

	if !verified {
		g.logger.Warn(ctx, "Payment signature mismatch", map[string]interface{}{
			"order_id":   orderID,
			"payment_id": paymentID,
		})
		return false, nil
	}

	g.logger.Info(ctx, "Payment signature verified", map[string]interface{}{
		"order_id":   orderID,
		"payment_id": paymentID,
	})

	return true, nil
}

// Signature orderID|paymentID に対するHMAC-SHA256署名を16進文字列で返す
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

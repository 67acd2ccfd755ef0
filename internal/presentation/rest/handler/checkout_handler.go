package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	checkoutapp "checkout-server/internal/application/checkout"
	"checkout-server/internal/domain/order"
	"checkout-server/internal/domain/payment"
)

// CheckoutHandler チェックアウト関連ハンドラー
type CheckoutHandler struct {
	checkoutService *checkoutapp.CheckoutApplicationService
}

// NewCheckoutHandler 新しいCheckoutHandlerを作成
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutApplicationService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateOrder 注文作成ハンドラー
// @Summary 決済注文を作成
// @Description 指定金額の決済注文を作成します
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "注文作成リクエスト"
// @Success 200 {object} OrderResponse "作成された注文"
// @Failure 400 {object} middleware.ErrorResponse "金額が不正"
// @Failure 401 {object} middleware.ErrorResponse "ゲートウェイ認証エラー"
// @Failure 500 {object} middleware.ErrorResponse "注文作成失敗"
// @Router /create-order [post]
func (h *CheckoutHandler) CreateOrder(c echo.Context) error {
	var reqBody CreateOrderRequest
	if err := c.Bind(&reqBody); err != nil {
		// 金額が数値として解釈できない場合もここに含まれる
		return order.ErrInvalidAmount
	}

	resp, err := h.checkoutService.CreateOrder(c.Request().Context(), &checkoutapp.CreateOrderRequest{
		Amount:   reqBody.Amount,
		Currency: reqBody.Currency,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orderResponse(resp))
}

// VerifyPayment 決済検証ハンドラー
// @Summary 決済確認を検証
// @Description 決済確認の署名を検証し、成功時に台帳へ記録します
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body VerifyPaymentRequest true "決済検証リクエスト"
// @Success 200 {object} VerifyPaymentResponse "検証成功"
// @Failure 400 {object} VerifyPaymentResponse "署名不一致"
// @Failure 500 {object} middleware.ErrorResponse "記録失敗"
// @Router /verify-payment [post]
func (h *CheckoutHandler) VerifyPayment(c echo.Context) error {
	var reqBody VerifyPaymentRequest
	if err := c.Bind(&reqBody); err != nil {
		return payment.ErrMissingFields
	}

	resp, err := h.checkoutService.VerifyPayment(c.Request().Context(), &checkoutapp.VerifyPaymentRequest{
		OrderID:   reqBody.OrderID,
		PaymentID: reqBody.PaymentID,
		Signature: reqBody.Signature,
		Amount:    reqBody.Amount,
		Currency:  reqBody.Currency,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if !resp.Verified {
		status = http.StatusBadRequest
	}

	return c.JSON(status, VerifyPaymentResponse{
		Verified: resp.Verified,
		Message:  resp.Message,
	})
}

// MockPayment モック決済ハンドラー
// @Summary モック決済を実行
// @Description 注文作成から決済記録までをモックで一括実行します
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body MockPaymentRequest true "モック決済リクエスト"
// @Success 200 {object} MockPaymentResponse "モック決済成功"
// @Failure 400 {object} middleware.ErrorResponse "金額が不正"
// @Failure 500 {object} middleware.ErrorResponse "記録失敗"
// @Router /mock-payment [post]
func (h *CheckoutHandler) MockPayment(c echo.Context) error {
	var reqBody MockPaymentRequest
	if err := c.Bind(&reqBody); err != nil {
		return order.ErrInvalidAmount
	}

	resp, err := h.checkoutService.MockPayment(c.Request().Context(), &checkoutapp.MockPaymentRequest{
		Amount:   reqBody.Amount,
		Currency: reqBody.Currency,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MockPaymentResponse{
		Success: resp.Success,
		Message: resp.Message,
		Order:   orderResponse(resp.Order),
		Payment: PaymentConfirmation{
			OrderID:   resp.Payment.OrderID,
			PaymentID: resp.Payment.PaymentID,
			Signature: resp.Payment.Signature,
		},
		SavedPayment: recordResponse(resp.SavedPayment),
	})
}

// orderResponse 注文DTOをレスポンスモデルに変換
func orderResponse(o *checkoutapp.OrderDTO) OrderResponse {
	return OrderResponse{
		ID:       o.ID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Receipt:  o.Receipt,
		Status:   o.Status,
	}
}

// recordResponse 決済記録DTOをレスポンスモデルに変換
func recordResponse(p *checkoutapp.PaymentRecordDTO) PaymentRecordResponse {
	return PaymentRecordResponse{
		OrderID:   p.OrderID,
		PaymentID: p.PaymentID,
		Signature: p.Signature,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

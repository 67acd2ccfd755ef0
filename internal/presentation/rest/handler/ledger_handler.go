package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	ledgerapp "checkout-server/internal/application/ledger"
)

// LedgerHandler 決済台帳ハンドラー
type LedgerHandler struct {
	ledgerService *ledgerapp.LedgerApplicationService
}

// NewLedgerHandler 新しいLedgerHandlerを作成
func NewLedgerHandler(ledgerService *ledgerapp.LedgerApplicationService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// ListPayments 決済一覧取得ハンドラー
// @Summary 決済記録一覧を取得
// @Description 全決済記録を作成日時の降順で返します
// @Tags ledger
// @Produce json
// @Success 200 {array} PaymentRecordResponse "決済記録一覧"
// @Failure 500 {object} middleware.ErrorResponse "取得失敗"
// @Router /payments [get]
func (h *LedgerHandler) ListPayments(c echo.Context) error {
	records, err := h.ledgerService.ListPayments(c.Request().Context())
	if err != nil {
		return err
	}

	// ブラウザクライアントはトップレベルのJSON配列を期待している
	resp := make([]PaymentRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, PaymentRecordResponse{
			OrderID:   r.OrderID,
			PaymentID: r.PaymentID,
			Signature: r.Signature,
			Amount:    r.Amount,
			Currency:  r.Currency,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// ClearPayments 決済記録クリアハンドラー
// @Summary 決済記録を全削除
// @Description 全決済記録を削除します。本番モードでは拒否されます
// @Tags ledger
// @Produce json
// @Success 200 {object} ClearPaymentsResponse "削除成功"
// @Failure 403 {object} middleware.ErrorResponse "本番モードでは不可"
// @Failure 500 {object} middleware.ErrorResponse "削除失敗"
// @Router /payments [delete]
func (h *LedgerHandler) ClearPayments(c echo.Context) error {
	resp, err := h.ledgerService.ClearPayments(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ClearPaymentsResponse{
		Success: resp.Success,
		Message: resp.Message,
	})
}

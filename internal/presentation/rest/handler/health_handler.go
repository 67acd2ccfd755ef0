package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"checkout-server/internal/domain/gateway"
)

// HealthHandler ヘルスチェックハンドラー
type HealthHandler struct {
	mode gateway.Mode
}

// NewHealthHandler 新しいHealthHandlerを作成
func NewHealthHandler(mode gateway.Mode) *HealthHandler {
	return &HealthHandler{
		mode: mode,
	}
}

// HealthResponse ヘルスチェックレスポンス
// @Description ヘルスチェックレスポンス
type HealthResponse struct {
	Message string `json:"message" example:"Server is running!"`
	Mode    string `json:"mode" example:"Mock Payment System"`
}

// Health ヘルスチェック
// @Summary サーバーの稼働状態を確認
// @Description サーバーの稼働状態と選択中のゲートウェイモードを返します
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "稼働中"
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Message: "Server is running!",
		Mode:    h.mode.String(),
	})
}

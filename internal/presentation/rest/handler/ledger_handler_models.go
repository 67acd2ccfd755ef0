package handler

// ClearPaymentsResponse 台帳クリアレスポンス
// @Description 台帳クリアレスポンス
type ClearPaymentsResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"All payments cleared"`
}

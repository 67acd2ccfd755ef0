package order

import (
	"strings"
)

// Currency 通貨コードを表す値オブジェクト
type Currency string

const (
	CurrencyINR Currency = "INR" // インドルピー
	CurrencyUSD Currency = "USD" // 米ドル
	CurrencyEUR Currency = "EUR" // ユーロ
)

// DefaultCurrency 通貨未指定時のデフォルト通貨
const DefaultCurrency = CurrencyINR

// NormalizeCurrency 通貨コードを正規化する
// 未指定の場合はデフォルト通貨を返す。それ以外は大文字化のみで、未知のコードも拒否しない
func NormalizeCurrency(s string) Currency {
	if s == "" {
		return DefaultCurrency
	}
	return Currency(strings.ToUpper(strings.TrimSpace(s)))
}

// String 文字列表現を返す
func (c Currency) String() string {
	return string(c)
}

// Known サポート対象として知られている通貨かどうかを返す
func (c Currency) Known() bool {
	switch c {
	case CurrencyINR, CurrencyUSD, CurrencyEUR:
		return true
	default:
		return false
	}
}

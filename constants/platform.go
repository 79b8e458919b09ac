package constants

// Platform identifies the wallet vendor a receipt originated from.
type Platform string

// Stable values (store these exact strings in DB).
const (
	PlatformWeChat Platform = "WeChat"
	PlatformAlipay Platform = "Alipay"
)

// DefaultCurrency is the domestic currency assumed when a receipt carries no
// explicit symbol or code.
const DefaultCurrency = "CNY"

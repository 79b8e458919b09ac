package constants

// Template is the detected receipt layout, which selects the label
// vocabulary the extractors use.
type Template string

const (
	TemplateWeChat  Template = "WECHAT"
	TemplateAlipay  Template = "ALIPAY"
	TemplateGeneric Template = "GENERIC"
)

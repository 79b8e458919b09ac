// Package template classifies a receipt's originating layout and owns the
// per-layout label vocabularies the extractors scan for. New vendors are
// added by extending the data tables, not the detection code.
package template

import (
	"strings"

	"github.com/hanwen-zhu/billsnap/constants"
)

// Labels is the ordered label vocabulary for one layout. Earlier labels take
// priority over later ones.
type Labels struct {
	Merchant  []string
	PayMethod []string
	OrderID   []string
	Item      []string
}

// detection markers, first match wins: Alipay before WeChat before generic.
var (
	alipayMarkers = []string{"账单详情", "支付宝", "alipay"}
	wechatMarkers = []string{"收单机构", "商户全称", "微信支付", "wechat pay"}
	wechatLines   = []string{"支付成功", "付款成功"}
)

var vocabularies = map[constants.Template]Labels{
	constants.TemplateWeChat: {
		Merchant:  []string{"商户全称", "商户名称", "收款方", "收款商户", "商户"},
		PayMethod: []string{"支付方式", "付款方式"},
		OrderID:   []string{"商户单号", "交易单号", "转账单号", "订单号"},
		Item:      []string{"商品", "商品说明", "物品"},
	},
	constants.TemplateAlipay: {
		Merchant:  []string{"收款方全称", "收款方", "商家", "付款给", "商户名称"},
		PayMethod: []string{"付款方式", "支付方式", "扣款方式"},
		OrderID:   []string{"商家订单号", "订单号", "交易号", "流水号"},
		Item:      []string{"商品说明", "商品", "账单名称"},
	},
	constants.TemplateGeneric: {
		Merchant:  []string{"商户", "收款方", "商家", "店铺", "merchant", "payee"},
		PayMethod: []string{"支付方式", "付款方式", "payment method"},
		OrderID:   []string{"订单号", "单号", "交易号", "order no", "order number"},
		Item:      []string{"商品", "物品", "item"},
	},
}

// Detect classifies the layout from keyword cues in the normalized text.
func Detect(text string, lines []string) constants.Template {
	lower := strings.ToLower(text)
	for _, m := range alipayMarkers {
		if strings.Contains(lower, m) {
			return constants.TemplateAlipay
		}
	}
	for _, m := range wechatMarkers {
		if strings.Contains(lower, m) {
			return constants.TemplateWeChat
		}
	}
	for _, l := range lines {
		for _, m := range wechatLines {
			if strings.TrimSpace(l) == m {
				return constants.TemplateWeChat
			}
		}
	}
	return constants.TemplateGeneric
}

// LabelsFor returns the vocabulary owned by the given layout.
func LabelsFor(t constants.Template) Labels {
	if v, ok := vocabularies[t]; ok {
		return v
	}
	return vocabularies[constants.TemplateGeneric]
}

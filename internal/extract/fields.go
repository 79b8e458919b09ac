package extract

import (
	"regexp"
	"strings"

	"github.com/hanwen-zhu/billsnap/constants"
)

var (
	wechatNames = []string{"微信支付", "微信", "wechat"}
	alipayNames = []string{"支付宝", "alipay"}

	refundWords  = []string{"退款", "已退款", "refund"}
	successWords = []string{"支付成功", "付款成功", "交易成功", "收款成功", "payment succeeded", "transaction succeeded"}
	failedWords  = []string{"支付失败", "付款失败", "交易失败", "交易关闭", "payment failed", "transaction failed"}
)

var (
	reCardTail   = regexp.MustCompile(`(?:尾号|末四位|tail\s*(?:no\.?|number)?)\D{0,4}(\d{3,4})`)
	reCardParen  = regexp.MustCompile(`[（(](\d{3,4})[)）]`)
	reOrderIDAny = regexp.MustCompile(`(?i)(?:订单号|商户单号|商家订单号|交易单号|交易号|流水号|单号|order\s*(?:no|number|id)\.?)\s*[:：]?\s*([A-Za-z0-9]{8,})`)
)

// Platform reports which wallet vendor's name appears anywhere in the text.
func Platform(text string) (constants.Platform, bool) {
	lower := strings.ToLower(text)
	for _, n := range wechatNames {
		if strings.Contains(lower, n) {
			return constants.PlatformWeChat, true
		}
	}
	for _, n := range alipayNames {
		if strings.Contains(lower, n) {
			return constants.PlatformAlipay, true
		}
	}
	return "", false
}

// Status classifies the transaction status keywords. Refund wins over
// success, since refunded receipts usually still carry the success phrase.
func Status(text string) (constants.Status, bool) {
	lower := strings.ToLower(text)
	for _, w := range refundWords {
		if strings.Contains(lower, w) {
			return constants.StatusRefund, true
		}
	}
	for _, w := range successWords {
		if strings.Contains(lower, w) {
			return constants.StatusSuccess, true
		}
	}
	for _, w := range failedWords {
		if strings.Contains(lower, w) {
			return constants.StatusFailed, true
		}
	}
	return "", false
}

// CardTail finds the trailing 3-4 digits of the paying card: a group after a
// tail-number marker, else a 3-4 digit group in parentheses.
func CardTail(text string) (string, bool) {
	if m := reCardTail.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := reCardParen.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// OrderIDFallback finds an 8+ character alphanumeric token after an
// order/transaction-number label when no label-based hit succeeded.
func OrderIDFallback(text string) (string, bool) {
	if m := reOrderIDAny.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

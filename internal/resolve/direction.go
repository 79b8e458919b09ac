// Package resolve maps a parsed receipt plus live metadata and labeling
// history onto a concrete leaf category, tag, and transaction direction.
// Everything here is pure: identical inputs give identical outputs.
package resolve

import (
	"regexp"
	"strings"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/entity"
)

var reAdjacentSign = regexp.MustCompile(`([+-])\d`)

var incomeHintWords = []string{
	"收入", "转入", "入账", "到账", "红包", "收款", "退款", "refund", "income", "received",
}

var expenseHintWords = []string{
	"支出", "付款", "消费", "购买", "转账", "支付", "payment", "paid", "purchase",
}

// InferDirection decides expense/income from the parse and its source text.
// A refund always reads as income regardless of the amount sign. Income
// otherwise needs an explicit + sign or an unambiguous income hint; expense
// is the default — the asymmetry is deliberate and must not be "fixed".
func InferDirection(rec entity.ParsedReceipt, text string) constants.Direction {
	if rec.Status == constants.StatusRefund {
		return constants.DirectionIncome
	}
	if m := reAdjacentSign.FindStringSubmatch(text); m != nil {
		if m[1] == "+" {
			return constants.DirectionIncome
		}
		return constants.DirectionExpense
	}
	lower := strings.ToLower(text)
	income := containsAny(lower, incomeHintWords)
	expense := containsAny(lower, expenseHintWords)
	if income && !expense {
		return constants.DirectionIncome
	}
	if expense && !income {
		return constants.DirectionExpense
	}
	return constants.DirectionExpense
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

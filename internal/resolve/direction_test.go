package resolve

import (
	"testing"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/entity"
)

func TestInferDirection(t *testing.T) {
	tests := []struct {
		name string
		rec  entity.ParsedReceipt
		text string
		want constants.Direction
	}{
		{
			"refund is income even with minus sign",
			entity.ParsedReceipt{Status: constants.StatusRefund},
			"已退款 -3.00",
			constants.DirectionIncome,
		},
		{
			"plus sign is income",
			entity.ParsedReceipt{},
			"+100.00 到账",
			constants.DirectionIncome,
		},
		{
			"minus sign is expense",
			entity.ParsedReceipt{},
			"-100.00 收入通知",
			constants.DirectionExpense,
		},
		{
			"income hints alone",
			entity.ParsedReceipt{},
			"工资收入到账",
			constants.DirectionIncome,
		},
		{
			"expense hints alone",
			entity.ParsedReceipt{},
			"支付成功",
			constants.DirectionExpense,
		},
		{
			"conflicting hints default to expense",
			entity.ParsedReceipt{},
			"收款转账通知",
			constants.DirectionExpense,
		},
		{
			"no signal defaults to expense",
			entity.ParsedReceipt{},
			"你好",
			constants.DirectionExpense,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferDirection(tt.rec, tt.text); got != tt.want {
				t.Errorf("InferDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

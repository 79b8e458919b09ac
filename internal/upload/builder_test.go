package upload

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/common"
	"github.com/hanwen-zhu/billsnap/internal/entity"
)

func uploadSnapshot() entity.Snapshot {
	return entity.Snapshot{
		Categories: []entity.Category{
			{ID: "exp", Name: "支出", Direction: constants.DirectionExpense},
			{ID: "c-dining", Name: "餐饮", Direction: constants.DirectionExpense, ParentID: "exp"},
			{ID: "c-refund", Name: "退款单", Direction: constants.DirectionIncome, ParentID: "exp"},
			{ID: "c-transfer", Name: "互转", Direction: constants.DirectionTransfer, ParentID: "exp"},
		},
		Accounts: []entity.Account{
			{ID: "a-root", Name: "钱包"},
			{ID: "a-cash", Name: "现金", ParentID: "a-root"},
		},
	}
}

func validRecord() *entity.Record {
	return &entity.Record{
		ID: uuid.New(),
		Receipt: entity.ParsedReceipt{
			Amount:   &entity.Money{Minor: -2550, Currency: "CNY"},
			Merchant: "美团",
			OrderID:  "MT20240312QWE456",
		},
		Resolution: &entity.Resolution{
			CategoryID: "c-dining",
			TagID:      "t-takeout",
			Direction:  constants.DirectionExpense,
		},
		AccountID: "a-cash",
		PayTime:   1710239400,
		RawText:   "美团外卖\n-25.50",
	}
}

func testConfig() common.LedgerConfig {
	return common.LedgerConfig{BaseURL: "https://ledger.example.com", Token: "secret"}
}

func TestBuildValidRecord(t *testing.T) {
	b := NewBuilder(testConfig(), nil)
	payload, err := b.Build(validRecord(), uploadSnapshot())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if payload["amount_minor"] != int64(2550) {
		t.Errorf("amount_minor = %v, want absolute 2550", payload["amount_minor"])
	}
	if payload["direction"] != "EXPENSE" {
		t.Errorf("direction = %v, want EXPENSE", payload["direction"])
	}
	if payload["category_id"] != "c-dining" {
		t.Errorf("category_id = %v, want c-dining", payload["category_id"])
	}
	if payload["tag_id"] != "t-takeout" {
		t.Errorf("tag_id = %v, want t-takeout", payload["tag_id"])
	}
	if payload["currency"] != "CNY" {
		t.Errorf("currency = %v, want CNY", payload["currency"])
	}
}

func TestBuildFailureReasons(t *testing.T) {
	tests := []struct {
		name   string
		cfg    common.LedgerConfig
		mutate func(*entity.Record)
		want   FailureReason
	}{
		{
			"missing config",
			common.LedgerConfig{},
			func(r *entity.Record) {},
			ReasonMissingConfig,
		},
		{
			"account not a leaf",
			testConfig(),
			func(r *entity.Record) { r.AccountID = "a-root" },
			ReasonNoLeafAccount,
		},
		{
			"account missing",
			testConfig(),
			func(r *entity.Record) { r.AccountID = "" },
			ReasonNoLeafAccount,
		},
		{
			"no resolution",
			testConfig(),
			func(r *entity.Record) { r.Resolution = nil },
			ReasonNoLeafCategory,
		},
		{
			"category not a leaf",
			testConfig(),
			func(r *entity.Record) { r.Resolution.CategoryID = "exp" },
			ReasonNoLeafCategory,
		},
		{
			"transfer category",
			testConfig(),
			func(r *entity.Record) { r.Resolution.CategoryID = "c-transfer" },
			ReasonTransferCategory,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(tt.cfg, nil)
			rec := validRecord()
			tt.mutate(rec)
			_, err := b.Build(rec, uploadSnapshot())
			if err == nil {
				t.Fatal("Build succeeded, want a reasoned failure")
			}
			got, ok := ReasonOf(err)
			if !ok || got != tt.want {
				t.Errorf("ReasonOf = (%q, %v), want %q", got, ok, tt.want)
			}
		})
	}
}

func TestBuildDirectionFallback(t *testing.T) {
	// An income receipt resolved to an expense category swaps to an income
	// sibling at upload time.
	b := NewBuilder(testConfig(), nil)
	rec := validRecord()
	rec.Receipt.Status = constants.StatusRefund
	rec.RawText = "已退款 +25.50"
	payload, err := b.Build(rec, uploadSnapshot())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if payload["direction"] != "INCOME" {
		t.Errorf("direction = %v, want INCOME", payload["direction"])
	}
	if payload["category_id"] != "c-refund" {
		t.Errorf("category_id = %v, want the income sibling c-refund", payload["category_id"])
	}
}

func TestBuildDirectionConflictWithoutFallback(t *testing.T) {
	b := NewBuilder(testConfig(), nil)
	rec := validRecord()
	rec.Receipt.Status = constants.StatusRefund
	snap := uploadSnapshot()
	// drop every income leaf so no replacement exists
	snap.Categories = []entity.Category{
		{ID: "exp", Name: "支出", Direction: constants.DirectionExpense},
		{ID: "c-dining", Name: "餐饮", Direction: constants.DirectionExpense, ParentID: "exp"},
	}
	_, err := b.Build(rec, snap)
	got, ok := ReasonOf(err)
	if !ok || got != ReasonDirectionConflict {
		t.Errorf("ReasonOf = (%q, %v), want %q", got, ok, ReasonDirectionConflict)
	}
}

func TestFailureReasonsDistinguishable(t *testing.T) {
	reasons := []FailureReason{
		ReasonMissingConfig, ReasonNoLeafAccount, ReasonNoLeafCategory,
		ReasonTransferCategory, ReasonDirectionConflict,
	}
	seen := make(map[FailureReason]bool, len(reasons))
	for _, r := range reasons {
		if r == "" {
			t.Error("empty failure reason")
		}
		if seen[r] {
			t.Errorf("duplicate failure reason %q", r)
		}
		seen[r] = true
	}
}

func TestValidatePayload(t *testing.T) {
	valid := map[string]any{
		"record_id":    "r1",
		"amount_minor": int64(2550),
		"currency":     "CNY",
		"direction":    "EXPENSE",
		"category_id":  "c-dining",
		"account_id":   "a-cash",
		"pay_time":     int64(1710239400),
	}
	if err := ValidatePayload(valid); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	bad := map[string]any{
		"record_id":    "r1",
		"amount_minor": int64(-1),
		"currency":     "cny",
		"direction":    "SIDEWAYS",
		"category_id":  "",
		"account_id":   "a-cash",
		"pay_time":     int64(0),
	}
	if err := ValidatePayload(bad); err == nil {
		t.Error("invalid payload accepted")
	}

	extra := map[string]any{}
	for k, v := range valid {
		extra[k] = v
	}
	extra["unexpected"] = true
	if err := ValidatePayload(extra); err == nil {
		t.Error("payload with unknown field accepted")
	}
}

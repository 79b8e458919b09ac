package extract

import (
	"strings"
	"testing"
)

func runAmount(t *testing.T, text string) (AmountResult, bool) {
	t.Helper()
	return Amount(text, strings.Split(text, "\n"), "CNY")
}

func TestAmountLabeled(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		minor    int64
		currency string
		explicit bool
	}{
		{"total with thousands and decimal", "合计: 1,234.56", 123456, "CNY", false},
		{"european separators", "实付款 1.234,56", 123456, "CNY", false},
		{"thousands only", "付款金额 3,000", 300000, "CNY", false},
		{"signed after label", "实付金额 -3.00", -300, "CNY", true},
		{"symbol inside window", "应付 ¥38.50", 3850, "CNY", false},
		{"english label", "Total: 12.30", 1230, "CNY", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := runAmount(t, tt.text)
			if !ok {
				t.Fatalf("Amount(%q) found nothing", tt.text)
			}
			if got.Minor != tt.minor || got.Currency != tt.currency || got.SignExplicit != tt.explicit {
				t.Errorf("Amount(%q) = {%d %s explicit=%v}, want {%d %s explicit=%v}",
					tt.text, got.Minor, got.Currency, got.SignExplicit, tt.minor, tt.currency, tt.explicit)
			}
		})
	}
}

func TestAmountCurrencyMarked(t *testing.T) {
	got, ok := runAmount(t, "今日消费 ¥38.50 谢谢惠顾")
	if !ok || got.Minor != 3850 || got.Currency != "CNY" {
		t.Fatalf("symbol amount = %+v ok=%v, want 3850 CNY", got, ok)
	}

	got, ok = runAmount(t, "-¥3.00 已支付")
	if !ok || got.Minor != -300 || !got.SignExplicit {
		t.Fatalf("signed symbol amount = %+v ok=%v, want -300 explicit", got, ok)
	}

	got, ok = runAmount(t, "charged USD 12.30 on card")
	if !ok || got.Minor != 1230 || got.Currency != "USD" {
		t.Fatalf("iso amount = %+v ok=%v, want 1230 USD", got, ok)
	}
}

func TestAmountSoloLine(t *testing.T) {
	text := "微信转账\n-3.00\n支付方式 零钱"
	got, ok := runAmount(t, text)
	if !ok {
		t.Fatal("solo line amount not found")
	}
	if got.Minor != -300 || !got.SignExplicit || got.Line != 1 {
		t.Errorf("solo line amount = %+v, want -300 explicit on line 1", got)
	}
}

func TestAmountFallbackSkipsIDs(t *testing.T) {
	text := "订单号 20240312123456\n随便买了点 45"
	got, ok := runAmount(t, text)
	if !ok {
		t.Fatal("fallback amount not found")
	}
	if got.Minor != 4500 || got.Line != 1 {
		t.Errorf("fallback amount = %+v, want 4500 on line 1", got)
	}
}

func TestAmountAbsent(t *testing.T) {
	for _, text := range []string{"", "没有数字的通知", "订单号 20240312123456"} {
		if got, ok := runAmount(t, text); ok {
			t.Errorf("Amount(%q) = %+v, want no amount", text, got)
		}
	}
}

func TestLooksLikeID(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"20240312123456", true},
		{"1234567", false},
		{"12345678.90", false},
		{"45", false},
	}
	for _, tt := range tests {
		if got := looksLikeID(tt.tok); got != tt.want {
			t.Errorf("looksLikeID(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}

func TestParseDecimalToken(t *testing.T) {
	tests := []struct {
		tok   string
		minor int64
		ok    bool
	}{
		{"3.00", 300, true},
		{"1,234.56", 123456, true},
		{"1.234,56", 123456, true},
		{"3,000", 300000, true},
		{"+25.5", 2550, true},
		{"-0.01", -1, true},
		{"12", 1200, true},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		minor, ok := parseDecimalToken(tt.tok)
		if minor != tt.minor || ok != tt.ok {
			t.Errorf("parseDecimalToken(%q) = (%d, %v), want (%d, %v)", tt.tok, minor, ok, tt.minor, tt.ok)
		}
	}
}

package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountResult is the outcome of amount extraction on one text.
type AmountResult struct {
	Minor        int64  // signed minor currency units
	Currency     string // ISO-like code
	SignExplicit bool   // a +/- sat directly against the digits
	Line         int    // index into the scanned line slice, -1 if unknown
}

// amountLabels are the paid/total/payable synonyms, in priority order.
var amountLabels = []string{
	"实付款", "实付金额", "实付", "付款金额", "支付金额",
	"总价", "合计", "应付", "实收", "金额",
	"total", "amount due", "amount paid", "paid",
}

// labelWindow is how far past a label a numeric token may sit.
const labelWindow = 16

var (
	reNumToken  = regexp.MustCompile(`[+-]?\d(?:[\d,.]*\d)?`)
	reSymAmount = regexp.MustCompile(`([+-])?\s?([¥$])\s?(\d(?:[\d,.]*\d)?)`)
	reISOAmount = regexp.MustCompile(`\b(CNY|USD|EUR|GBP|JPY|HKD)\s?([+-]?\d(?:[\d,.]*\d)?)`)
	reSoloLine  = regexp.MustCompile(`^([+-])?\s?[¥$]?\s?(\d(?:[\d,.]*\d)?)$`)
)

var symbolCurrency = map[string]string{"¥": "CNY", "$": "USD"}

// Amount extracts the transaction amount from normalized text. lines must be
// the newline split of text, so the reported line index matches. Priority:
// labeled amount, currency-marked amount, solo-line amount, then the largest
// non-id-looking numeric token anywhere.
func Amount(text string, lines []string, defaultCurrency string) (AmountResult, bool) {
	if r, ok := labeledAmount(text, defaultCurrency); ok {
		return r, true
	}
	if r, ok := currencyAmount(text); ok {
		return r, true
	}
	if r, ok := soloLineAmount(lines, defaultCurrency); ok {
		return r, true
	}
	return fallbackAmount(text, defaultCurrency)
}

func labeledAmount(text, defaultCurrency string) (AmountResult, bool) {
	for _, label := range amountLabels {
		idx := indexFold(text, label)
		if idx < 0 {
			continue
		}
		tail := text[idx+len(label):]
		window := tail
		if runes := []rune(window); len(runes) > labelWindow {
			window = string(runes[:labelWindow])
		}
		loc := reNumToken.FindStringIndex(window)
		if loc == nil {
			continue
		}
		tok := window[loc[0]:loc[1]]
		minor, ok := parseDecimalToken(tok)
		if !ok {
			continue
		}
		currency := defaultCurrency
		if c := currencyBefore(window[:loc[0]]); c != "" {
			currency = c
		}
		return AmountResult{
			Minor:        minor,
			Currency:     currency,
			SignExplicit: tok[0] == '+' || tok[0] == '-',
			Line:         lineAt(text, idx),
		}, true
	}
	return AmountResult{}, false
}

func currencyAmount(text string) (AmountResult, bool) {
	if m := reSymAmount.FindStringSubmatchIndex(text); m != nil {
		sign := groupAt(text, m, 1)
		sym := groupAt(text, m, 2)
		num := groupAt(text, m, 3)
		minor, ok := parseDecimalToken(sign + num)
		if !ok {
			return AmountResult{}, false
		}
		return AmountResult{
			Minor:        minor,
			Currency:     symbolCurrency[sym],
			SignExplicit: sign != "",
			Line:         lineAt(text, m[0]),
		}, true
	}
	if m := reISOAmount.FindStringSubmatchIndex(text); m != nil {
		code := groupAt(text, m, 1)
		num := groupAt(text, m, 2)
		minor, ok := parseDecimalToken(num)
		if !ok {
			return AmountResult{}, false
		}
		return AmountResult{
			Minor:        minor,
			Currency:     code,
			SignExplicit: num[0] == '+' || num[0] == '-',
			Line:         lineAt(text, m[0]),
		}, true
	}
	return AmountResult{}, false
}

func soloLineAmount(lines []string, defaultCurrency string) (AmountResult, bool) {
	for i, l := range lines {
		m := reSoloLine.FindStringSubmatch(strings.TrimSpace(l))
		if m == nil {
			continue
		}
		tok := m[1] + m[2]
		minor, ok := parseDecimalToken(tok)
		if !ok {
			continue
		}
		return AmountResult{
			Minor:        minor,
			Currency:     defaultCurrency,
			SignExplicit: m[1] != "",
			Line:         i,
		}, true
	}
	return AmountResult{}, false
}

// fallbackAmount scans every numeric token, skips tokens that look like an
// order or transaction id (8+ digits, no decimal point), and keeps the one
// with the largest absolute value.
func fallbackAmount(text, defaultCurrency string) (AmountResult, bool) {
	best := AmountResult{Line: -1}
	bestAbs := int64(-1)
	for _, loc := range reNumToken.FindAllStringIndex(text, -1) {
		tok := text[loc[0]:loc[1]]
		if looksLikeID(tok) {
			continue
		}
		minor, ok := parseDecimalToken(tok)
		if !ok {
			continue
		}
		abs := minor
		if abs < 0 {
			abs = -abs
		}
		if abs > bestAbs {
			bestAbs = abs
			best = AmountResult{
				Minor:        minor,
				Currency:     defaultCurrency,
				SignExplicit: tok[0] == '+' || tok[0] == '-',
				Line:         lineAt(text, loc[0]),
			}
		}
	}
	return best, bestAbs >= 0
}

// looksLikeID reports whether a numeric token is more plausibly an order or
// transaction number than an amount.
func looksLikeID(tok string) bool {
	if strings.ContainsRune(tok, '.') {
		return false
	}
	digits := 0
	for _, r := range tok {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 8
}

// parseDecimalToken converts a signed numeric token into integer minor
// units. Separator rule: the right-most '.' or ',' is the decimal point only
// when at most two digits follow it; otherwise every separator is thousands
// grouping. This can misread amounts like "12,34"; the ambiguity is accepted.
func parseDecimalToken(tok string) (int64, bool) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, false
	}
	neg := false
	switch tok[0] {
	case '-':
		neg = true
		tok = tok[1:]
	case '+':
		tok = tok[1:]
	}
	if tok == "" {
		return 0, false
	}

	last := strings.LastIndexAny(tok, ".,")
	var cleaned strings.Builder
	decimalAt := -1
	if last >= 0 {
		tail := tok[last+1:]
		if n := len(tail); n >= 1 && n <= 2 && digitsOnly(tail) {
			decimalAt = last
		}
	}
	for i, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			cleaned.WriteRune(r)
		case i == decimalAt:
			cleaned.WriteRune('.')
		case r == '.' || r == ',':
			// thousands grouping, drop
		default:
			return 0, false
		}
	}
	d, err := decimal.NewFromString(cleaned.String())
	if err != nil {
		return 0, false
	}
	minor := d.Mul(decimal.NewFromInt(100)).Truncate(0).IntPart()
	if neg {
		minor = -minor
	}
	return minor, true
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func currencyBefore(s string) string {
	for sym, code := range symbolCurrency {
		if strings.Contains(s, sym) {
			return code
		}
	}
	return ""
}

// lineAt converts a byte offset into a line index.
func lineAt(text string, off int) int {
	if off < 0 || off > len(text) {
		return -1
	}
	return strings.Count(text[:off], "\n")
}

func groupAt(s string, m []int, g int) string {
	if m[2*g] < 0 {
		return ""
	}
	return s[m[2*g]:m[2*g+1]]
}

// indexFold is a case-insensitive strings.Index for ASCII labels; CJK labels
// pass through unchanged.
func indexFold(s, sub string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(sub))
}

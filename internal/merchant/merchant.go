// Package merchant turns the raw merchant candidates found in a receipt into
// one canonical, noise-filtered merchant name with a quality score.
package merchant

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hanwen-zhu/billsnap/internal/alias"
)

// Candidate is one scored merchant name source. Base encodes how much the
// source itself is trusted; quality of the name is scored separately.
type Candidate struct {
	Name string
	Base int
}

// Result is the resolver outcome. Quality feeds merchant confidence.
type Result struct {
	Name    string
	Quality int
}

const (
	baseNearAmount = 50 // proximity to the amount is the strongest layout signal
	baseLabelFirst = 40 // first label hit; later hits decay by 5
	basePositional = 20
)

// statusPhrases are UI strings that recognition glues onto merchant names.
var statusPhrases = []string{
	"支付成功", "付款成功", "交易成功", "收款成功", "等待付款", "待支付", "交易关闭",
}

// boilerplatePrefixes are label fragments left on the front of a value.
var boilerplatePrefixes = []string{
	"商户全称", "商户名称", "商户", "商家", "收款方", "付款给", "merchant_", "merchant",
}

var noiseWords = []string{
	"订单", "账单", "详情", "余额", "优惠", "红包", "客服", "时间", "详单",
	"零钱", "记录", "微信", "支付宝", "wechat", "alipay",
	"banner", "bill", "order", "detail", "balance", "coupon",
}

var foodRetailWords = []string{
	"餐", "饮", "咖啡", "奶茶", "超市", "便利", "食", "烤", "火锅", "面",
	"restaurant", "cafe", "coffee", "market", "store",
}

var legalSuffixes = []string{
	"有限公司", "股份有限公司", "有限责任公司", "co., ltd", "co.,ltd", "ltd.", "inc.", "llc",
}

var acquiringWords = []string{"收单机构", "收单服务", "特约商户", "acquiring"}

var reDistrict = regexp.MustCompile(`^\p{Han}{1,7}(省|市|区|县)$`)
var rePureNumeric = regexp.MustCompile(`^[+-]?[¥$]?[\d,.]+$`)

// Resolve combines label-based, near-amount, and positional candidates into
// the best merchant name. amountLine is the line index the amount was found
// on, or -1. Returns false when no candidate survives normalization.
func Resolve(lines []string, labelHits []string, amountLine int) (Result, bool) {
	cands := collect(lines, labelHits, amountLine)

	bestScore := 0
	var best *Result
	var firstClean *Result
	for _, c := range cands {
		name := normalize(c.Name)
		if name == "" || isNoise(name) {
			continue
		}
		q := Quality(name)
		if firstClean == nil {
			firstClean = &Result{Name: name, Quality: q}
		}
		if !usable(name) {
			continue
		}
		if best == nil || c.Base+q > bestScore {
			bestScore = c.Base + q
			best = &Result{Name: name, Quality: q}
		}
	}
	if best != nil {
		return *best, true
	}
	if firstClean != nil {
		return *firstClean, true
	}
	return Result{}, false
}

func collect(lines []string, labelHits []string, amountLine int) []Candidate {
	cands := make([]Candidate, 0, len(labelHits)+2)
	for i, hit := range labelHits {
		base := baseLabelFirst - 5*i
		if base < 10 {
			base = 10
		}
		cands = append(cands, Candidate{Name: hit, Base: base})
	}
	if n, ok := nearAmountCandidate(lines, amountLine); ok {
		cands = append(cands, Candidate{Name: n, Base: baseNearAmount})
	}
	if n, ok := positionalCandidate(lines); ok {
		cands = append(cands, Candidate{Name: n, Base: basePositional})
	}
	return cands
}

// nearAmountCandidate finds the nearest plausible non-numeric line within 3
// lines above the amount.
func nearAmountCandidate(lines []string, amountLine int) (string, bool) {
	if amountLine < 0 || amountLine >= len(lines) {
		return "", false
	}
	for i := amountLine - 1; i >= 0 && i >= amountLine-3; i-- {
		l := strings.TrimSpace(lines[i])
		if l == "" || rePureNumeric.MatchString(l) {
			continue
		}
		if runeLen(l) < 2 || runeLen(l) > 30 || containsAny(l, noiseWords) {
			continue
		}
		return l, true
	}
	return "", false
}

// positionalCandidate is the layout fallback: the first short, digit-free,
// non-noise line in the receipt.
func positionalCandidate(lines []string) (string, bool) {
	for _, l := range lines {
		l = strings.TrimSpace(l)
		n := runeLen(l)
		if n < 2 || n > 24 {
			continue
		}
		if hasDigit(l) && !alias.IsKnownBrand(l) {
			continue
		}
		if containsAny(l, noiseWords) {
			continue
		}
		return l, true
	}
	return "", false
}

// normalize strips recognition noise off a candidate and canonicalizes it
// through the alias dictionary.
func normalize(name string) string {
	name = strings.TrimSpace(name)
	for _, p := range statusPhrases {
		name = strings.ReplaceAll(name, p, "")
	}
	lower := strings.ToLower(name)
	for _, p := range boilerplatePrefixes {
		if strings.HasPrefix(lower, p) {
			name = name[len(p):]
			lower = lower[len(p):]
		}
	}
	name = strings.TrimRight(name, ">›…")
	// Masking stars stay: the usability filter needs to see them.
	name = strings.TrimLeftFunc(name, func(r rune) bool {
		return r != '*' && (unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r))
	})
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return alias.Canonicalize(name)
}

// Quality scores how much a normalized candidate looks like a real merchant
// name. Positive and negative signals accumulate.
func Quality(name string) int {
	score := 0
	n := runeLen(name)
	lower := strings.ToLower(name)

	if n >= 2 && n <= 22 {
		score += 6
	}
	if n > 30 {
		score -= 4
	}
	if hasDigit(name) {
		score -= 4
	}
	if containsAny(lower, foodRetailWords) {
		score += 10
	}
	if alias.IsKnownBrand(name) {
		score += 12
	}
	if containsAny(lower, legalSuffixes) {
		score -= 10
	}
	if reDistrict.MatchString(name) {
		score -= 4
	}
	if containsAny(lower, acquiringWords) {
		score -= 6
	}
	if isNoise(name) {
		score -= 30
	}
	if strings.Count(name, "*") >= 2 {
		score -= 12
	}
	return score
}

// usable rejects strings that are mostly masking stars or mostly
// non-word characters.
func usable(name string) bool {
	total := 0
	stars := 0
	word := 0
	for _, r := range name {
		total++
		switch {
		case r == '*':
			stars++
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word++
		}
	}
	if total == 0 || stars*2 > total {
		return false
	}
	if word < 2 || word*2 < total {
		return false
	}
	return true
}

func isNoise(name string) bool {
	return containsAny(strings.ToLower(name), noiseWords)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return len([]rune(s))
}

// Package alias maps the many recognized spellings of well-known merchants
// to one canonical brand name. All data is static and immutable.
package alias

import (
	"sort"
	"strings"
	"unicode"
)

// Domain is the spending domain a brand hints at, used by category
// resolution for its brand-keyword bonus.
type Domain string

const (
	DomainDining    Domain = "dining"
	DomainCoffee    Domain = "coffee"
	DomainTransport Domain = "transport"
	DomainShopping  Domain = "shopping"
	DomainGrocery   Domain = "grocery"
	DomainEnergy    Domain = "energy"
)

type brand struct {
	Canonical string
	Domain    Domain
	Aliases   []string
}

// brands is the static alias table. Aliases are matched on normalized keys,
// so punctuation, case, and parentheticals do not matter.
var brands = []brand{
	{Canonical: "美团", Domain: DomainDining, Aliases: []string{"美团", "美团外卖", "meituan", "美团平台商户"}},
	{Canonical: "饿了么", Domain: DomainDining, Aliases: []string{"饿了么", "eleme", "ele.me"}},
	{Canonical: "肯德基", Domain: DomainDining, Aliases: []string{"肯德基", "kfc"}},
	{Canonical: "麦当劳", Domain: DomainDining, Aliases: []string{"麦当劳", "mcdonald's", "mcdonalds", "金拱门"}},
	{Canonical: "星巴克", Domain: DomainCoffee, Aliases: []string{"星巴克", "starbucks"}},
	{Canonical: "瑞幸咖啡", Domain: DomainCoffee, Aliases: []string{"瑞幸", "瑞幸咖啡", "luckin", "luckin coffee"}},
	{Canonical: "蜜雪冰城", Domain: DomainDining, Aliases: []string{"蜜雪冰城"}},
	{Canonical: "喜茶", Domain: DomainDining, Aliases: []string{"喜茶", "heytea"}},
	{Canonical: "滴滴出行", Domain: DomainTransport, Aliases: []string{"滴滴", "滴滴出行", "didi"}},
	{Canonical: "高德打车", Domain: DomainTransport, Aliases: []string{"高德打车", "高德地图"}},
	{Canonical: "中国石化", Domain: DomainEnergy, Aliases: []string{"中国石化", "sinopec", "中石化"}},
	{Canonical: "中国石油", Domain: DomainEnergy, Aliases: []string{"中国石油", "中石油", "petrochina"}},
	{Canonical: "京东", Domain: DomainShopping, Aliases: []string{"京东", "jd.com", "京东商城"}},
	{Canonical: "淘宝", Domain: DomainShopping, Aliases: []string{"淘宝", "taobao"}},
	{Canonical: "天猫", Domain: DomainShopping, Aliases: []string{"天猫", "tmall"}},
	{Canonical: "拼多多", Domain: DomainShopping, Aliases: []string{"拼多多", "pinduoduo"}},
	{Canonical: "沃尔玛", Domain: DomainGrocery, Aliases: []string{"沃尔玛", "walmart"}},
	{Canonical: "永辉超市", Domain: DomainGrocery, Aliases: []string{"永辉超市", "永辉"}},
	{Canonical: "盒马", Domain: DomainGrocery, Aliases: []string{"盒马", "盒马鲜生", "freshippo"}},
	{Canonical: "7-Eleven", Domain: DomainGrocery, Aliases: []string{"7-eleven", "seveneleven", "711便利店"}},
	{Canonical: "全家", Domain: DomainGrocery, Aliases: []string{"全家便利店", "familymart"}},
}

type entry struct {
	key       string
	canonical string
	domain    Domain
}

// entries holds (canonical, key) pairs sorted by key length descending, so
// the longest known alias wins on substring-relation lookups.
var entries = func() []entry {
	out := make([]entry, 0, len(brands)*2)
	for _, b := range brands {
		for _, a := range b.Aliases {
			k := Key(a)
			if k == "" {
				continue
			}
			out = append(out, entry{key: k, canonical: b.Canonical, domain: b.Domain})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].key) > len(out[j].key)
	})
	return out
}()

// Key normalizes a merchant name into the form alias lookups operate on:
// lowercase, parentheticals removed, everything but letters, digits, and CJK
// stripped.
func Key(name string) string {
	name = stripParentheticals(name)
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.Is(unicode.Han, r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Canonicalize returns the canonical brand name for a recognized merchant
// string, or the input unchanged when no alias matches. Idempotent.
func Canonicalize(name string) string {
	if e, ok := lookup(name); ok {
		return e.canonical
	}
	return name
}

// IsKnownBrand reports whether the string resolves to a known brand.
func IsKnownBrand(name string) bool {
	_, ok := lookup(name)
	return ok
}

// DomainOf returns the spending domain hinted at by the string's brand,
// if it resolves to one.
func DomainOf(name string) (Domain, bool) {
	e, ok := lookup(name)
	return e.domain, ok
}

// lookup finds the longest alias key that equals, contains, or is contained
// in the input key. Very short keys only match exactly, to keep two-rune
// brand keys from firing inside unrelated text.
func lookup(name string) (entry, bool) {
	k := Key(name)
	if k == "" {
		return entry{}, false
	}
	for _, e := range entries {
		if e.key == k {
			return e, true
		}
		short, long := len(e.key), len(k)
		if short > long {
			short, long = long, short
		}
		if short >= 4 && long >= 6 {
			if strings.Contains(k, e.key) || strings.Contains(e.key, k) {
				return e, true
			}
		}
	}
	return entry{}, false
}

func stripParentheticals(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '（':
			depth++
		case ')', '）':
			if depth > 0 {
				depth--
				continue
			}
		}
		if depth == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

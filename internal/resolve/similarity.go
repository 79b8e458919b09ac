package resolve

import (
	"strings"

	"github.com/hanwen-zhu/billsnap/internal/alias"
)

// MerchantKey reduces a merchant name to the normalized form fuzzy matching
// operates on.
func MerchantKey(s string) string {
	return alias.Key(alias.Canonicalize(s))
}

// Similarity is the character-set Jaccard index of the two merchant keys:
// |intersection| / |union| over distinct runes. 1.0 for identical sets,
// 0.0 when either key is empty.
func Similarity(a, b string) float64 {
	ka, kb := MerchantKey(a), MerchantKey(b)
	if ka == "" || kb == "" {
		return 0
	}
	setA := runeSet(ka)
	setB := runeSet(kb)
	inter := 0
	for r := range setA {
		if setB[r] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Matches reports whether two merchant names refer to the same merchant:
// equal or substring-contained keys, or Jaccard similarity at or above the
// threshold.
func Matches(a, b string, threshold float64) bool {
	ka, kb := MerchantKey(a), MerchantKey(b)
	if ka == "" || kb == "" {
		return false
	}
	if ka == kb || strings.Contains(ka, kb) || strings.Contains(kb, ka) {
		return true
	}
	return Similarity(a, b) >= threshold
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}

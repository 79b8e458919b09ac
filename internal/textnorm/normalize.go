// Package textnorm fixes recognition artifacts in raw receipt text before
// any field extraction runs. All functions are total and deterministic.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
	reSignSpace  = regexp.MustCompile(`([+-])[ ]+(\d)`)
)

// confusables maps letters that recognition commonly produces in place of
// digits. The conservative pass only applies them next to a real digit;
// Preprocess applies them (plus a wider set) anywhere in a digit-bearing token.
var confusables = map[rune]rune{
	'O': '0', 'o': '0',
	'I': '1', 'l': '1',
}

var wideConfusables = map[rune]rune{
	'O': '0', 'o': '0',
	'I': '1', 'l': '1',
	'B': '8',
	'S': '5',
	'Z': '2',
}

// Normalize collapses noisy whitespace, folds full-width punctuation to
// ASCII, reattaches a sign separated from its digits, and fixes letter/digit
// confusions adjacent to digits. Conservative: keeps line breaks.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = width.Narrow.String(s)
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	s = reSignSpace.ReplaceAllString(s, "$1$2")
	s = fixAdjacentConfusables(s)

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Preprocess is the aggressive variant used for the second parse pass:
// inside any token that carries at least one digit, every confusable letter
// (including the wider B/S/Z set) becomes its digit. Returns the rewritten
// text and whether anything changed relative to Normalize's own fixes.
func Preprocess(s string) (string, bool) {
	base := Normalize(s)
	out := mapTokens(base, func(tok []rune) {
		if !hasDigit(tok) {
			return
		}
		for i, r := range tok {
			if d, ok := wideConfusables[r]; ok {
				tok[i] = d
			}
		}
	})
	out = reSignSpace.ReplaceAllString(out, "$1$2")
	return out, out != base
}

// HasResidualConfusables reports whether, after normalization, any token
// still mixes digits with confusable letters. Used as a confidence penalty.
func HasResidualConfusables(s string) bool {
	found := false
	mapTokens(s, func(tok []rune) {
		if !hasDigit(tok) {
			return
		}
		for _, r := range tok {
			if _, ok := wideConfusables[r]; ok {
				found = true
			}
		}
	})
	return found
}

// Lines splits normalized text into its non-empty trimmed lines.
func Lines(s string) []string {
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// fixAdjacentConfusables replaces a confusable letter when either neighbor is
// a digit. Runs to a fixed point so chains like "3OO0" resolve fully.
func fixAdjacentConfusables(s string) string {
	rs := []rune(s)
	for pass := 0; pass < 3; pass++ {
		changed := false
		for i, r := range rs {
			d, ok := confusables[r]
			if !ok {
				continue
			}
			prevDigit := i > 0 && unicode.IsDigit(rs[i-1])
			nextDigit := i+1 < len(rs) && unicode.IsDigit(rs[i+1])
			if prevDigit || nextDigit {
				rs[i] = d
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return string(rs)
}

// mapTokens applies fn to each maximal alphanumeric run in s.
func mapTokens(s string, fn func(tok []rune)) string {
	rs := []rune(s)
	start := -1
	for i := 0; i <= len(rs); i++ {
		inTok := i < len(rs) && (unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i])) && rs[i] < 0x2E80
		if inTok && start < 0 {
			start = i
		}
		if !inTok && start >= 0 {
			fn(rs[start:i])
			start = -1
		}
	}
	return string(rs)
}

func hasDigit(tok []rune) bool {
	for _, r := range tok {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

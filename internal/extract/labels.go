package extract

import (
	"strings"
	"unicode"
)

// LabelValue scans lines for the first label in priority order that occurs
// as a whole token and returns the text after it on the same line, or the
// next non-empty line when the remainder is blank.
func LabelValue(lines []string, labels []string) (string, bool) {
	for _, label := range labels {
		if v, ok := labelHit(lines, label); ok {
			return v, true
		}
	}
	return "", false
}

// LabelValues returns one value per matched label, preserving label priority
// order. Used by merchant resolution, which scores every hit.
func LabelValues(lines []string, labels []string) []string {
	var out []string
	for _, label := range labels {
		if v, ok := labelHit(lines, label); ok {
			out = append(out, v)
		}
	}
	return out
}

func labelHit(lines []string, label string) (string, bool) {
	for i, line := range lines {
		idx := labelIndex(line, label)
		if idx < 0 {
			continue
		}
		rest := strings.TrimLeft(line[idx+len(label):], ":：>- \t")
		rest = strings.TrimSpace(rest)
		if rest != "" {
			return rest, true
		}
		for j := i + 1; j < len(lines); j++ {
			if next := strings.TrimSpace(lines[j]); next != "" {
				return next, true
			}
		}
		return "", false
	}
	return "", false
}

// labelIndex finds label in line as a whole token: the rune before must not
// be a word rune, and the rune after must be a separator, bracket, or end of
// line. Substring hits inside unrelated words do not count.
func labelIndex(line, label string) int {
	lower := strings.ToLower(line)
	needle := strings.ToLower(label)
	from := 0
	for {
		rel := strings.Index(lower[from:], needle)
		if rel < 0 {
			return -1
		}
		idx := from + rel
		if boundaryBefore(line, idx) && boundaryAfter(line, idx+len(label)) {
			return idx
		}
		from = idx + len(needle)
	}
}

func boundaryBefore(line string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := decodeLastRune(line[:idx])
	return !isWordRune(r)
}

func boundaryAfter(line string, end int) bool {
	if end >= len(line) {
		return true
	}
	r := firstRune(line[end:])
	switch r {
	case ':', '：', '(', '（', '[', '【', '>', ' ', '\t', '-':
		return true
	}
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Han, r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func decodeLastRune(s string) (rune, int) {
	var last rune
	var size int
	for i, r := range s {
		last = r
		size = len(s) - i
	}
	return last, size
}

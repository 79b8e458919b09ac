package extract

import (
	"regexp"
	"strconv"
	"time"
)

// Date-time patterns in descending priority. The domestic long form first,
// then separator variants, then year-less month-day forms.
var (
	reTimeCN   = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日\s*(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	reTimeDash = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})[ T]+(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	reTimeSlsh = regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})[ T]+(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	reTimeDot  = regexp.MustCompile(`(\d{4})\.(\d{1,2})\.(\d{1,2})[ T]+(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	reTimeMDCN = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日\s*(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	reTimeMD   = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?`)
)

var datedPatterns = []*regexp.Regexp{reTimeCN, reTimeDash, reTimeSlsh, reTimeDot}
var yearlessPatterns = []*regexp.Regexp{reTimeMDCN, reTimeMD}

// PayTime extracts the payment timestamp from normalized text. First
// matching pattern wins; an invalid match falls through to the next pattern.
// Year-less matches assume the current year.
func PayTime(text string, now time.Time) (int64, bool) {
	for _, re := range datedPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if ts, ok := buildTime(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]), atoi(m[6])); ok {
			return ts, true
		}
	}
	for _, re := range yearlessPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if ts, ok := buildTime(now.Year(), atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5])); ok {
			return ts, true
		}
	}
	return 0, false
}

func buildTime(y, mo, d, h, mi, s int) (int64, bool) {
	if y < 1970 || y > 2200 || mo < 1 || mo > 12 || d < 1 || d > 31 {
		return 0, false
	}
	if h > 23 || mi > 59 || s > 59 {
		return 0, false
	}
	t := time.Date(y, time.Month(mo), d, h, mi, s, 0, time.Local)
	// reject normalized overflow like Feb 30
	if t.Day() != d || int(t.Month()) != mo {
		return 0, false
	}
	return t.Unix(), true
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

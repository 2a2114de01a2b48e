package facts

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthRe = `(?:January|February|March|April|May|June|July|August|` +
	`September|October|November|December|` +
	`Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept|Sep|Oct|Nov|Dec)\.?`

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		regexp.MustCompile(`\b` + monthRe + `\s+\d{1,2},?\s+\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}\s+` + monthRe + `,?\s+\d{4}\b`),
		regexp.MustCompile(`\b` + monthRe + `,?\s+\d{4}\b`),
		regexp.MustCompile(`\b(?:1[89]|20)\d{2}\b`),
	}

	dateLayouts = []string{
		"2006-01-02",
		"January 2 2006", "Jan 2 2006",
		"2 January 2006", "2 Jan 2006",
		"January 2006", "Jan 2006",
		"2006",
	}

	footnoteRe = regexp.MustCompile(`\[[^\]]*\]`)
	parensRe   = regexp.MustCompile(`\([^)]*\)`)
	numberRe   = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	scoreRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*(100|10)\b`)
	percentRe  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*%?$`)
)

// ParseDate parses text that is a date and nothing else, such as
// "March 1, 2015", "1 March 2015", "2015-03-01", "March 2015" or "2015".
// Footnote marks and parenthesized remarks are ignored. A date without a
// day is the first day of the month, a bare year is January 1.
func ParseDate(s string) (time.Time, bool) {
	s = Clean(s)
	if i := strings.IndexAny(s, ";"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	m, ok := firstDate(s)
	if !ok || strings.TrimSpace(m) != s {
		return time.Time{}, false
	}
	return parseMatch(m)
}

// ParseFirstDate finds the first date in free text such as
// "April 1, 1983; 42 years ago in Kyoto".
func ParseFirstDate(s string) (time.Time, bool) {
	m, ok := firstDate(Clean(s))
	if !ok {
		return time.Time{}, false
	}
	return parseMatch(m)
}

func firstDate(s string) (string, bool) {
	start, end := -1, -1
	for _, re := range datePatterns {
		loc := re.FindStringIndex(s)
		if loc == nil {
			continue
		}
		if start < 0 || loc[0] < start ||
			(loc[0] == start && loc[1] > end) {
			start, end = loc[0], loc[1]
		}
	}
	if start < 0 {
		return "", false
	}
	return s[start:end], true
}

func parseMatch(m string) (time.Time, bool) {
	words := strings.Fields(strings.NewReplacer(",", " ", ".", " ").Replace(m))
	for i := range words {
		if words[i] == "Sept" {
			words[i] = "Sep"
		}
	}
	m = strings.Join(words, " ")
	for _, l := range dateLayouts {
		if d, err := time.Parse(l, m); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Clean removes footnote marks and parenthesized remarks and collapses
// whitespace.
func Clean(s string) string {
	s = footnoteRe.ReplaceAllString(s, " ")
	s = parensRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ParseScore returns the first score of text such as "92/100",
// "PS2: 90/100" or "8.5/10" on a 0 to 100 scale. Text without a "/100" or
// "/10" fraction is accepted only when it is a bare number like "92" or
// "92%".
func ParseScore(s string) (float64, bool) {
	s = Clean(s)
	scale := 1.0
	var num string
	if m := scoreRe.FindStringSubmatch(s); m != nil {
		num = m[1]
		if m[2] == "10" {
			scale = 10
		}
	} else if m := percentRe.FindStringSubmatch(s); m != nil {
		num = m[1]
	} else {
		return 0, false
	}

	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	f = math.Round(f*scale*10) / 10
	if f < 0 || f > 100 {
		return 0, false
	}
	return f, true
}

// ParsePrice returns the first amount in text such as "US$199.99".
func ParsePrice(s string) (float64, bool) {
	m := numberRe.FindString(Clean(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SplitRegionDate parses a release entry like "NA: March 1, 2015".
// An entry without a region label has an empty Region. It returns false
// when the entry has no parsable date.
func SplitRegionDate(s string) (RegionDate, bool) {
	s = Clean(s)
	var res RegionDate
	if region, date, ok := strings.Cut(s, ":"); ok && len(region) <= 25 {
		res.Region = strings.TrimSpace(region)
		res.Date = strings.TrimSpace(date)
	} else {
		res.Date = s
	}
	if _, ok := ParseDate(res.Date); !ok {
		return RegionDate{}, false
	}
	return res, true
}

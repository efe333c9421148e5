// Package salary extracts a numeric range from free-text salary strings
// such as "₹50k - ₹80k".
package salary

import (
	"regexp"
	"strconv"
	"strings"
)

// rangePattern captures the first two integers of an "A - B" range. Values are
// kept in the unit written by the poster; "k" is not expanded.
var rangePattern = regexp.MustCompile(`₹?(\d+)k?\s*-\s*₹?(\d+)k?`)

type currencyMark struct {
	symbol string
	code   string
}

var currencyMarks = []currencyMark{
	{"₹", "INR"},
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
}

type Range struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency,omitempty"`
}

// Contains reports whether value lies in [Min, Max].
func (r Range) Contains(value int) bool {
	return value >= r.Min && value <= r.Max
}

// Parse returns the range found in text. ok is false when text does not
// contain an "A - B" numeric range.
func Parse(text string) (r Range, ok bool) {
	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return Range{}, false
	}
	lo, err := strconv.Atoi(m[1])
	if err != nil {
		return Range{}, false
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return Range{}, false
	}
	return Range{Min: lo, Max: hi, Currency: currency(text)}, true
}

// currency returns the code of the symbol appearing first in text, falling
// back to the first ISO code found. Empty when neither is present.
func currency(text string) string {
	if code := firstMark(text, func(m currencyMark) string { return m.symbol }); code != "" {
		return code
	}
	return firstMark(strings.ToUpper(text), func(m currencyMark) string { return m.code })
}

func firstMark(text string, token func(currencyMark) string) string {
	best, code := -1, ""
	for _, m := range currencyMarks {
		i := strings.Index(text, token(m))
		if i >= 0 && (best < 0 || i < best) {
			best, code = i, m.code
		}
	}
	return code
}

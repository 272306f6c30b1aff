package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	priceJunk     = regexp.MustCompile(`[^0-9.,]`)
)

// CollapseWhitespace reduces every whitespace run to a single space and
// trims the ends. Applied to every text field before it is returned.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// NormalizePrice converts heterogeneous price text into a canonical value:
// strip everything but digits and separators, decide whether the comma is a
// decimal separator (comma present, dot absent) or a thousands separator,
// parse, reject non-finite or non-positive results, and round to exactly two
// decimal places. A rejected candidate is a miss, never an error.
func NormalizePrice(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	negative := strings.HasPrefix(trimmed, "-")

	cleaned := priceJunk.ReplaceAllString(trimmed, "")
	if cleaned == "" {
		return 0, false
	}

	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		// "29,99" and "1299,99" both mean a decimal comma. Only the last
		// comma can be the decimal separator; any earlier ones are noise.
		idx := strings.LastIndex(cleaned, ",")
		cleaned = strings.ReplaceAll(cleaned[:idx], ",", "") + "." + cleaned[idx+1:]
	} else {
		// "1,299.99" style: commas are thousands separators.
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	if negative {
		value = -value
	}
	if value <= 0 {
		return 0, false
	}
	return math.Round(value*100) / 100, true
}

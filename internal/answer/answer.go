package answer

import (
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/chartiz/internal/question"
)

// IsCorrect compares the learner's input against the expected answer.
//
// Normalization rules, applied to both sides:
//   - Whitespace is trimmed and comparison is case-insensitive
//   - Thousands separators are ignored ("1,000" matches "1000")
//   - Numbers compare by absolute value ("-200" matches "200")
//   - A percent sign is kept if the input carries one or the expected
//     answer is a percentage ("30" matches "30%", "30%" does not match 30)
//   - Anything that is not a number compares as text ("c" matches "C")
//
// An unsupported expected answer never matches.
func IsCorrect(input string, expected question.Answer) bool {
	if !expected.Valid() {
		return false
	}
	percent := expected.IsPercent()
	return Normalize(input, percent) == Normalize(expected.String(), percent)
}

// Normalize returns the comparable form of an answer string. If percent is
// true, numeric values always carry a trailing "%".
func Normalize(raw string, percent bool) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ",", "")

	numeric, hasPercent := strings.CutSuffix(s, "%")
	f, ok := parseNumber(numeric)
	if !ok {
		return s
	}

	n := strconv.FormatFloat(math.Abs(f), 'f', -1, 64)
	if hasPercent || percent {
		return n + "%"
	}
	return n
}

// parseNumber parses a finite decimal float. Hex floats, "nan" and "inf"
// are treated as text.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "0123456789.eE+-") != "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Package scoring holds the pure scoring rules for every assessment kind.
// Every function is total: missing or malformed answers count as incorrect
// and never produce an error.
package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Tally counts correct answers against the number possible.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percent returns round(100 * correct / total), or 0 when nothing was possible.
func (t Tally) Percent() float64 {
	return Percent(t.Correct, t.Total)
}

// Percent rounds half away from zero, matching Math.round for non-negative values.
func Percent(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(100 * float64(correct) / float64(total))
}

var leadingFloat = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseFloat reads the longest numeric prefix of s the way a browser's
// parseFloat does: leading whitespace is skipped, trailing junk is ignored
// ("12.5kg" is 12.5) and anything without a numeric prefix is NaN.
func ParseFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	for _, inf := range []string{"Infinity", "+Infinity"} {
		if strings.HasPrefix(s, inf) {
			return math.Inf(1)
		}
	}
	if strings.HasPrefix(s, "-Infinity") {
		return math.Inf(-1)
	}
	m := leadingFloat.FindString(s)
	if m == "" {
		return math.NaN()
	}
	// out-of-range exponents still yield ±Inf or 0 alongside the error
	v, _ := strconv.ParseFloat(m, 64)
	return v
}

// LetterGrade maps a 0-100 value onto the A-F bands.
func LetterGrade(value float64) string {
	switch {
	case value >= 90:
		return "A"
	case value >= 80:
		return "B"
	case value >= 70:
		return "C"
	case value >= 60:
		return "D"
	default:
		return "F"
	}
}

// WordCount counts whitespace-separated non-empty tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

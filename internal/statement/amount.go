package statement

import (
	"regexp"
	"strconv"
	"strings"
)

// Numeric token grammars. Statement amounts use comma thousands separators;
// the decimal form carries exactly two fraction digits.
var (
	decimalAmountRe = regexp.MustCompile(`-?[\d,]+\.\d{2}`)
	integerAmountRe = regexp.MustCompile(`[\d,]+`)
	integerLineRe   = regexp.MustCompile(`^[\d,\s]+$`)
)

// ParseAmount converts a statement amount token to a float, keeping sign.
// Unparseable input yields zero; statements routinely contain empty amount
// cells and that is not an error.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	negative := strings.HasPrefix(s, "-")
	cleaned := strings.NewReplacer(",", "", "+", "", "-", "", " ", "").Replace(s)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if negative {
		return -v
	}
	return v
}

// Magnitude converts an amount token to its absolute value.
func Magnitude(s string) float64 {
	v := ParseAmount(s)
	if v < 0 {
		return -v
	}
	return v
}

// decimalAmounts returns all signed decimal amount tokens in the line,
// in order.
func decimalAmounts(line string) []string {
	return decimalAmountRe.FindAllString(line, -1)
}

// stripDecimalAmounts removes decimal amount tokens from the line, leaving
// the textual residue.
func stripDecimalAmounts(line string) string {
	return strings.TrimSpace(decimalAmountRe.ReplaceAllString(line, ""))
}

// integerAmountLine reports whether the line consists solely of comma
// grouped integers, and returns the tokens if so.
func integerAmountLine(line string) ([]string, bool) {
	if !integerLineRe.MatchString(line) {
		return nil, false
	}
	tokens := integerAmountRe.FindAllString(line, -1)
	if len(tokens) == 0 {
		return nil, false
	}
	return tokens, true
}

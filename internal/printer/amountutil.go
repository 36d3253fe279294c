package printer

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount returns a compact human-readable amount.
// Examples: "0", "950", "1.5K", "185.0M", "1.2B".
func FormatAmount(v float64) string {
	if v < 0 {
		return "-" + FormatAmount(-v)
	}

	const (
		k = 1000
		m = 1000 * k
		b = 1000 * m
	)

	switch {
	case v >= b:
		return fmt.Sprintf("%.1fB", v/b)
	case v >= m:
		return fmt.Sprintf("%.1fM", v/m)
	case v >= k:
		return fmt.Sprintf("%.1fK", v/k)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// FormatCurrency returns the full amount in NOK with thousand separators, rounded to units.
// Example: "185,000,000 NOK".
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	digits := strconv.FormatFloat(v, 'f', 0, 64)
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	sb.WriteString(" NOK")

	return sb.String()
}

// FormatQuantity returns the quantity followed by its unit, if any.
func FormatQuantity(q float64, unit string) string {
	s := strconv.FormatFloat(q, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

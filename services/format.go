package services

import (
	"fmt"
	"strings"
)

// FormatEUR formats an amount in European notation: thousands separated by
// dots, a decimal comma and exactly two decimals (e.g. €1.234.567,89).
// Formatting is presentation only; it never feeds back into calculations.
func FormatEUR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "€" + groupThousands(intPart) + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a dot every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "." + result
}

// FormatPercent renders a rate for display: whole numbers without decimals,
// others with two.
func FormatPercent(rate float64) string {
	if rate == float64(int64(rate)) {
		return fmt.Sprintf("%.0f%%", rate)
	}
	return fmt.Sprintf("%.2f%%", rate)
}

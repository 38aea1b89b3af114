package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatQuoteNumber constructs the quote number string from components.
func formatQuoteNumber(year int, sequence int) string {
	return fmt.Sprintf("Q-%d-%04d", year, sequence)
}

// GenerateQuoteNumber creates the next quote number for the calendar year.
// Format: Q-{year}-{sequence}, sequence 4-digit zero-padded and derived from
// the count of quotes already numbered in that year.
func GenerateQuoteNumber(app *pocketbase.PocketBase, now time.Time) (string, error) {
	year := now.Year()
	prefix := fmt.Sprintf("Q-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"quotes",
		"number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// Collection may not exist yet or hold no records; start at 1.
		existing = nil
	}

	return formatQuoteNumber(year, len(existing)+1), nil
}

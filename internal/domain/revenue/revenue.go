// Package revenue resolves a client's revenue for a target fiscal year.
package revenue

import (
	"strconv"
	"strings"

	"github.com/okian/baton/internal/domain/model"
)

// DefaultTargetYear is the reporting year used when no year is configured.
const DefaultTargetYear = 2025

// Resolve returns the client's revenue amount for the given year.
//
// Year matching is a string comparison after coercing both sides, so
// "2025" and 2025 match. When several history entries carry the same
// year the first one in list order wins; later duplicates are ignored.
// Empty history, no matching year, or an unparseable amount all resolve
// to 0.
func Resolve(c model.Client, year int) float64 {
	target := strconv.Itoa(year)
	for _, rec := range c.Revenue {
		if strings.TrimSpace(rec.Year.String()) != target {
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(rec.Amount.String()), 64)
		if err != nil {
			return 0
		}
		return amount
	}
	return 0
}

// Total sums resolved revenue for a set of clients.
func Total(clients []model.Client, year int) float64 {
	var total float64
	for _, c := range clients {
		total += Resolve(c, year)
	}
	return total
}

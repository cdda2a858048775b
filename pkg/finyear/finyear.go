// Package finyear provides helpers for Australian financial-year keys of the
// form "2025-26" (the year spanning 1 July 2025 to 30 June 2026).
package finyear

import (
	"fmt"
	"strconv"
	"strings"
)

// StartYear returns the starting calendar year of a financial-year key,
// e.g. "2025-26" -> 2025.
func StartYear(key string) (int, error) {
	parts := strings.SplitN(key, "-", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid financial year %q: %w", key, err)
	}
	return year, nil
}

// Key builds a financial-year key from a starting calendar year,
// e.g. 2025 -> "2025-26".
func Key(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// Next returns the financial-year key following the given one. Malformed keys
// are returned unchanged.
func Next(key string) string {
	year, err := StartYear(key)
	if err != nil {
		return key
	}
	return Key(year + 1)
}

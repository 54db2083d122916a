package validate

import (
	"strconv"
	"strings"
)

// Name validates a product name: trimmed, non-empty, bounded length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 255 {
		return "", false
	}
	return s, true
}

// Customer validates a customer name for billing.
func Customer(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Price parses a non-negative unit price.
func Price(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Stock parses a non-negative stock count.
func Stock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Qty parses a sale quantity, defaulting to 1 for absent or bad input.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 1000 {
		return 1000
	} // clamp to avoid abuse
	return n
}

// ID parses a product id from a path or form value.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Keyword normalizes a search keyword. Empty is allowed and means "all".
// The cap cuts on a rune boundary so the LIKE pattern stays valid UTF-8.
func Keyword(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > 50 {
		s = string(r[:50])
	}
	return s
}

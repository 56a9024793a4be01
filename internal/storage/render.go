package storage

import (
	"strconv"
	"strings"
)

// EmptyPlaceholder is rendered when no container is allocated
const EmptyPlaceholder = "storage is empty"

// String lists allocated containers as "COMMODITY: quantity units", joined by ", "
func (s *Storage) String() string {
	entries := s.Contents()
	if len(entries) == 0 {
		return EmptyPlaceholder
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Commodity.String()+": "+FormatQuantity(e.Amount)+" units")
	}
	return strings.Join(parts, ", ")
}

// FormatQuantity prints the shortest representation of q with at least one
// fractional digit, e.g. 7 -> "7.0", 9.9 -> "9.9".
func FormatQuantity(q float64) string {
	s := strconv.FormatFloat(q, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

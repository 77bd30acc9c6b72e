// Package filter implements the case-insensitive substring filter shared by
// every list view.
package filter

import "strings"

// Match reports whether term occurs in any of fields, ignoring case.
// An empty term matches everything.
func Match(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Apply returns the rows whose fields match term, preserving order. The
// result never aliases rows.
func Apply[T any](rows []T, term string, fields func(T) []string) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if Match(term, fields(row)...) {
			out = append(out, row)
		}
	}
	return out
}

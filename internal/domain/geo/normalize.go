package geo

import "strings"

// normalizeQuery lower-cases and collapses whitespace so "  New  York" and
// "new york" share one cache entry.
func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

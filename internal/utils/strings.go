package utils

import "strings"

// CleanSpace trims surrounding whitespace.
func CleanSpace(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSeat upper-cases and trims a seat label ("a15" -> "A15").
func NormalizeSeat(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSeats cleans a seat list, dropping empty entries.
func NormalizeSeats(arr []string) []string {
	out := make([]string, 0, len(arr))
	for _, s := range arr {
		x := NormalizeSeat(s)
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}

// HasDuplicates reports case-insensitive duplicates in a seat list.
func HasDuplicates(arr []string) bool {
	seen := map[string]bool{}
	for _, v := range arr {
		k := NormalizeSeat(v)
		if k == "" {
			continue
		}
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}

package retrieval

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Query tokens are alphanumeric runs, Hangul runs and date-like
// patterns. Date patterns come first so "2024-01-15" survives as one
// token instead of three number runs.
var tokenRe = regexp.MustCompile(`[0-9]{4}[-./][0-9]{1,2}[-./][0-9]{1,2}|[0-9]{1,2}[-./][0-9]{1,2}|[a-zA-Z0-9]+|\p{Hangul}+`)

// Tokenize splits a query into lowercased tokens of at least two
// characters, deduplicated in first-seen order.
func Tokenize(query string) []string {
	matches := tokenRe.FindAllString(strings.ToLower(query), -1)

	seen := map[string]bool{}
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if utf8.RuneCountInString(m) < 2 {
			continue
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		tokens = append(tokens, m)
	}
	return tokens
}

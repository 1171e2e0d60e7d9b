package form

import (
	"strings"
	"unicode/utf8"
)

// DefaultSuggestLimit caps the number of suggestions returned by Suggest.
const DefaultSuggestLimit = 10

// Suggest returns candidates containing input, case-insensitively, in
// candidate order. Inputs shorter than two characters yield nothing.
func Suggest(candidates []string, input string, limit int) []string {
	input = strings.TrimSpace(input)
	if utf8.RuneCountInString(input) < 2 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	needle := strings.ToLower(input)
	var out []string
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

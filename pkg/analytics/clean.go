package analytics

import "strings"

// MaxTitleLength caps a cleaned title, counted in characters.
const MaxTitleLength = 50

// CleanTitle collapses whitespace runs into a single space, trims the
// result and keeps at most MaxTitleLength characters.
func CleanTitle(title string) string {
	cleaned := strings.Join(strings.Fields(title), " ")

	n := 0
	for i := range cleaned {
		if n == MaxTitleLength {
			// the cut may leave a trailing space behind
			return strings.TrimRight(cleaned[:i], " ")
		}
		n++
	}
	return cleaned
}

package tabs

import (
	"regexp"
	"strings"
)

var (
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	slugRepeat     = regexp.MustCompile(`-{2,}`)
)

// Slug normalizes s into a URL-safe file name fragment: lowercase,
// whitespace runs collapsed to a single hyphen, anything outside [a-z0-9-]
// replaced by a hyphen, repeated hyphens collapsed, and leading/trailing
// hyphens trimmed. Slug is idempotent.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugRepeat.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

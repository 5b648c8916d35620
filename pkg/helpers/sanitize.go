package helpers

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// maxUnescapePasses bounds entity decoding for deeply nested input.
const maxUnescapePasses = 32

// StripMarkup removes every HTML tag from s and returns plain text.
// Entities are decoded and the result re-sanitized until it is stable, so
// escaped markup such as "&lt;script&gt;" cannot survive as real tags.
// Input that is still changing after maxUnescapePasses is returned
// sanitized but not decoded, which never contains a tag.
func StripMarkup(s string) string {
	out := strings.TrimSpace(s)
	for i := 0; i < maxUnescapePasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(out)))
		if next == out {
			return out
		}
		out = next
	}
	return strings.TrimSpace(strictPolicy.Sanitize(out))
}

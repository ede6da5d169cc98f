package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripper = bluemonday.StrictPolicy()

// StripTags removes all markup and returns plain text. Entities the policy escapes are decoded
// again so "R&D" stays "R&D".
func StripTags(input string) string {
	return html.UnescapeString(stripper.Sanitize(input))
}

// FormText trims a form value and strips markup, falling back to def when nothing is left.
func FormText(value, def string) string {
	if v := strings.TrimSpace(StripTags(strings.TrimSpace(value))); v != "" {
		return v
	}
	return def
}

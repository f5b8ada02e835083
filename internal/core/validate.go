package core

import (
	"regexp"
	"strings"
)

// urlPattern is a sanity check, not a URL grammar: optional http(s) scheme,
// dotted hostname with a 2+ letter TLD or an IPv4 literal, then optional
// port, path, query and fragment.
var urlPattern = regexp.MustCompile(`(?i)^(https?://)?` +
	`((([a-z\d]([a-z\d-]*[a-z\d])*)\.)+[a-z]{2,}|` +
	`((\d{1,3}\.){3}\d{1,3}))` +
	`(:\d+)?(/[-a-z\d%_.~+]*)*` +
	`(\?[;&a-z\d%_.~+=-]*)?` +
	`(#[-a-z\d_]*)?$`)

// ValidateFormat reports whether text looks like a URL.
func ValidateFormat(text string) bool {
	return urlPattern.MatchString(text)
}

// Normalize trims surrounding whitespace from raw input.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// Find returns the record whose URL equals url exactly.
func Find(records []Record, url string) (Record, bool) {
	for _, r := range records {
		if r.URL == url {
			return r, true
		}
	}
	return Record{}, false
}

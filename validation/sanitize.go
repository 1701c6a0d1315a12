package validation

import (
	"regexp"
	"strings"
)

var (
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	jsProtocolPattern   = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
	dataURIPattern      = regexp.MustCompile(`(?i)data:\s*[^;]*;`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// SanitizeString strips markup and script-triggering substrings from user
// input: HTML tags, javascript: protocols, inline event-handler attributes and
// data: URIs. Whitespace runs collapse to a single space and the result is
// trimmed. Re-applying to already-sanitized output is a no-op.
func SanitizeString(input string) string {
	out := htmlTagPattern.ReplaceAllString(input, "")
	out = jsProtocolPattern.ReplaceAllString(out, "")
	out = eventHandlerPattern.ReplaceAllString(out, "")
	out = dataURIPattern.ReplaceAllString(out, "")
	out = whitespacePattern.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

package validation

import "regexp"

// suspiciousPatterns is a heuristic screen for injection attempts. It is
// defense in depth only; queries are parameterized server-side regardless.
var suspiciousPatterns = []*regexp.Regexp{
	// SQL keywords
	regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|UNION)\b`),
	// inline script blocks
	regexp.MustCompile(`(?is)<script\b.*?</script>`),
	// path traversal
	regexp.MustCompile(`\.\./`),
	// shell metacharacters
	regexp.MustCompile("[;&|`$]"),
	// LDAP specials
	regexp.MustCompile(`[()=*]`),
}

// DetectSuspiciousActivity reports whether the input matches any known attack
// pattern. Callers surface a generic message and never reveal which heuristic
// fired.
func DetectSuspiciousActivity(input string) bool {
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}

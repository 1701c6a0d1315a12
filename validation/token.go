package validation

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecureToken returns a URL-safe random token of at least n bytes of
// entropy, suitable for verification links and one-shot secrets.
func GenerateSecureToken(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("validation: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package account

import (
	"context"
	"log"
)

// LogMailer writes account emails to the process log instead of sending them.
// It is the default in development and tests.
type LogMailer struct{}

// SendVerification logs the verification link token.
func (LogMailer) SendVerification(ctx context.Context, email, token string) error {
	log.Printf("account: verification email for %s (token %s...)", email, truncate(token))
	return nil
}

// SendPasswordReset logs the recovery link token.
func (LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	log.Printf("account: recovery email for %s (token %s...)", email, truncate(token))
	return nil
}

func truncate(token string) string {
	if len(token) > 12 {
		return token[:12]
	}
	return token
}

// Package validation provides deterministic, side-effect-free validation and
// sanitization for user-supplied account data. It never touches the network or
// storage; callers compose it with the authentication flows.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// User types accepted at registration.
const (
	UserTypeParticular = "particular"
	UserTypeAgente     = "agente"
)

// Fixed Portuguese copy shown next to failing fields.
const (
	MsgPasswordRequired = "Palavra-passe é obrigatória"
	MsgPasswordTooShort = "Palavra-passe deve ter pelo menos 8 caracteres"
	MsgPasswordTooLong  = "Palavra-passe demasiado longa"
	MsgPasswordNoLetter = "Palavra-passe deve conter pelo menos uma letra"
	MsgPasswordCommon   = "Palavra-passe demasiado comum"
	MsgPasswordValid    = "Palavra-passe válida"

	MsgInvalidName      = "Nome inválido"
	MsgInvalidEmail     = "Email inválido"
	MsgInvalidPhone     = "Número de telefone inválido"
	MsgPasswordMismatch = "Palavras-passe não coincidem"
	MsgInvalidUserType  = "Tipo de utilizador inválido"
	MsgTermsRequired    = "Deve aceitar os termos e condições"
	MsgInvalidPassword  = "Palavra-passe inválida"
)

const maxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// ValidateEmail reports whether the string is a syntactically plausible email
// address of at most 254 characters.
func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailPattern.MatchString(email) && len(email) <= maxEmailLength
}

// commonPasswords are rejected as substrings, case-insensitively.
var commonPasswords = []string{
	"password", "123456", "qwerty", "abc123", "password123",
	"admin", "letmein", "welcome", "monkey", "dragon",
}

var (
	hasLetterPattern = regexp.MustCompile(`[a-zA-Z]`)
	hasDigitPattern  = regexp.MustCompile(`\d`)
)

// PasswordCheck is the outcome of a password-strength check.
type PasswordCheck struct {
	Valid   bool
	Message string
}

// ValidatePassword applies the registration password policy: 8 to 128
// characters, at least one letter, and no well-known weak password as a
// substring. Digit presence is checked but intentionally not required.
func ValidatePassword(password string) PasswordCheck {
	if password == "" {
		return PasswordCheck{Valid: false, Message: MsgPasswordRequired}
	}
	if len(password) < 8 {
		return PasswordCheck{Valid: false, Message: MsgPasswordTooShort}
	}
	if len(password) > 128 {
		return PasswordCheck{Valid: false, Message: MsgPasswordTooLong}
	}

	if !hasLetterPattern.MatchString(password) {
		return PasswordCheck{Valid: false, Message: MsgPasswordNoLetter}
	}

	// Digits are encouraged but not enforced. Kept as an explicit check so
	// the policy can start requiring them without reshaping the result.
	_ = hasDigitPattern.MatchString(password)

	lowered := strings.ToLower(password)
	for _, common := range commonPasswords {
		if strings.Contains(lowered, common) {
			return PasswordCheck{Valid: false, Message: MsgPasswordCommon}
		}
	}

	return PasswordCheck{Valid: true, Message: MsgPasswordValid}
}

var (
	nonDigitPattern      = regexp.MustCompile(`\D`)
	nationalPhonePattern = regexp.MustCompile(`^[1-9]\d{8}$`)
	intlPhonePattern     = regexp.MustCompile(`^351[1-9]\d{8}$`)
)

// ValidatePhone accepts Portuguese phone numbers: nine digits not starting
// with zero, optionally prefixed with the 351 country code. Formatting
// characters are ignored.
func ValidatePhone(phone string) bool {
	if phone == "" {
		return false
	}
	digits := nonDigitPattern.ReplaceAllString(phone, "")

	switch len(digits) {
	case 9:
		return nationalPhonePattern.MatchString(digits)
	case 12:
		return intlPhonePattern.MatchString(digits)
	default:
		return false
	}
}

// namePattern allows Latin letters including the accented range used by
// Portuguese names, plus spaces, apostrophes and hyphens.
var namePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s'-]+$`)

// ValidateName sanitizes the input and accepts names of 2 to 100 characters.
func ValidateName(name string) bool {
	if name == "" {
		return false
	}
	sanitized := SanitizeString(name)

	if n := utf8.RuneCountInString(sanitized); n < 2 || n > 100 {
		return false
	}
	return namePattern.MatchString(sanitized)
}

// ValidateUserType accepts exactly the two supported account types.
func ValidateUserType(userType string) bool {
	return userType == UserTypeParticular || userType == UserTypeAgente
}

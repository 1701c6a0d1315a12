package authflow

import (
	"errors"
	"strings"
)

// ErrProfileNotFound distinguishes a missing dashboard profile from other
// provider failures so callers can create one on the spot.
var ErrProfileNotFound = errors.New("authflow: profile not found")

// FailureKind is the closed set of provider failure categories. Free-text
// backend errors are classified into a kind exactly once, at the provider
// adapter boundary.
type FailureKind int

const (
	KindUnknown FailureKind = iota
	KindDuplicateEmail
	KindInvalidCredentials
	KindRateLimited
	KindUnconfirmedEmail
	KindMisconfigured
	KindPasswordPolicy
	KindInvalidEmail
)

// Error is a classified provider failure. Raw carries the backend's original
// message for logs; it is never shown to the user.
type Error struct {
	Kind FailureKind
	Raw  string
}

func (e *Error) Error() string {
	if e.Raw != "" {
		return "authflow: " + e.Raw
	}
	return "authflow: provider failure"
}

// NewError builds a classified provider error.
func NewError(kind FailureKind, raw string) *Error {
	return &Error{Kind: kind, Raw: raw}
}

// KindOf extracts the failure kind from any error returned by a Provider.
// Unclassified errors (network faults, panics converted to errors) collapse
// to KindUnknown.
func KindOf(err error) FailureKind {
	var flowErr *Error
	if errors.As(err, &flowErr) {
		return flowErr.Kind
	}
	return KindUnknown
}

// ClassifyMessage maps a backend error message and optional error code to a
// FailureKind. Matching is ordered: duplicate email, rate limit, password
// policy, invalid email, misconfiguration, bad credentials, unconfirmed
// email, then unknown.
func ClassifyMessage(message, code string) FailureKind {
	msg := strings.ToLower(message)

	switch code {
	case "user_already_exists", "email_address_not_available", "signup_disabled", "email_already_exists":
		return KindDuplicateEmail
	case "over_email_send_rate_limit":
		return KindRateLimited
	}

	duplicateMarkers := []string{
		"already registered",
		"already been registered",
		"já está registado",
		"duplicate",
		"email address not available",
		"signup is disabled",
		"already exists",
	}
	for _, marker := range duplicateMarkers {
		if strings.Contains(msg, marker) {
			return KindDuplicateEmail
		}
	}

	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "only request this after") {
		return KindRateLimited
	}
	if strings.Contains(msg, "password should be") || strings.Contains(msg, "weak password") {
		return KindPasswordPolicy
	}
	if strings.Contains(msg, "invalid email") || strings.Contains(msg, "unable to validate email") {
		return KindInvalidEmail
	}
	if strings.Contains(msg, "invalid api key") || strings.Contains(msg, "database error") || strings.Contains(msg, "not configured") {
		return KindMisconfigured
	}
	if strings.Contains(msg, "invalid login credentials") {
		return KindInvalidCredentials
	}
	if strings.Contains(msg, "email not confirmed") {
		return KindUnconfirmedEmail
	}

	return KindUnknown
}

// Fixed Portuguese copy for each failure kind. The mapping is total: every
// provider error reaches some user-facing string, and misconfiguration never
// leaks backend detail.
const (
	msgDuplicateEmail     = "Este email já está registado. Tente fazer login ou recuperar a password."
	msgInvalidCredentials = "Email ou password incorretos. Verifique os seus dados."
	msgRateLimited        = "Muitas tentativas. Este email pode já estar registado. Tente fazer login ou aguarde 30 segundos."
	msgUnconfirmedEmail   = "Email não confirmado. Verifique a sua caixa de entrada ou reenvie o email de verificação."
	msgMisconfigured      = "Configuração do sistema inválida. Contacte o administrador."
	msgPasswordPolicy     = "Palavra-passe demasiado fraca. Escolha uma palavra-passe mais segura."
	msgInvalidEmailKind   = "Email inválido."
	msgUnexpected         = "Erro inesperado. Tente novamente."

	msgSuspiciousInput  = "Dados inválidos detetados."
	msgClientThrottled  = "Muitas tentativas. Tente novamente mais tarde."
	msgEmailRequired    = "Email é obrigatório."
	msgNewPassRequired  = "Nova palavra-passe é obrigatória."
	msgPasswordsDiffer  = "As palavras-passe não coincidem."
	msgInvalidSession   = "Sessão inválida. Solicite um novo link de recuperação."
	msgResetSendFailed  = "Erro ao enviar email de recuperação. Verifique o email inserido."
	msgResetSent        = "Email de recuperação enviado! Verifique a sua caixa de entrada."
	msgPasswordUpdated  = "Palavra-passe redefinida com sucesso! Redirecionando..."
	msgUpdateFailed     = "Erro ao redefinir palavra-passe. Tente novamente."
	msgLoginSuccess     = "Login efetuado com sucesso! Redirecionando..."
	msgVerificationSent = "Email de verificação reenviado! Verifique a sua caixa de entrada."
)

// UserMessage translates a failure kind into its localized copy.
func UserMessage(kind FailureKind) string {
	switch kind {
	case KindDuplicateEmail:
		return msgDuplicateEmail
	case KindInvalidCredentials:
		return msgInvalidCredentials
	case KindRateLimited:
		return msgRateLimited
	case KindUnconfirmedEmail:
		return msgUnconfirmedEmail
	case KindMisconfigured:
		return msgMisconfigured
	case KindPasswordPolicy:
		return msgPasswordPolicy
	case KindInvalidEmail:
		return msgInvalidEmailKind
	default:
		return msgUnexpected
	}
}

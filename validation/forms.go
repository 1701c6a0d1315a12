package validation

// Field names used as keys in validation results.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldUserType        = "userType"
	FieldAcceptTerms     = "acceptTerms"
)

// registrationFieldOrder fixes the order in which aggregated errors are
// surfaced to the user.
var registrationFieldOrder = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldPassword,
	FieldConfirmPassword,
	FieldUserType,
	FieldAcceptTerms,
}

// RegistrationForm carries the raw registration fields as submitted.
type RegistrationForm struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	UserType        string
	AcceptTerms     bool
}

// LoginForm carries raw login credentials.
type LoginForm struct {
	Email    string
	Password string
}

// Result aggregates per-field validation errors for one form submission.
// A fresh value is produced per call and never mutated afterwards.
type Result struct {
	IsValid bool
	Errors  map[string]string
}

// First returns the message of the first failing field in the stable display
// order, or empty strings when the result is valid.
func (r Result) First() (field, message string) {
	for _, f := range registrationFieldOrder {
		if msg, ok := r.Errors[f]; ok {
			return f, msg
		}
	}
	return "", ""
}

// ValidateRegistrationForm runs every field validator without short-circuiting
// and collects one message per failing field.
func ValidateRegistrationForm(form RegistrationForm) Result {
	errs := make(map[string]string)

	if !ValidateName(form.Name) {
		errs[FieldName] = MsgInvalidName
	}
	if !ValidateEmail(form.Email) {
		errs[FieldEmail] = MsgInvalidEmail
	}
	if !ValidatePhone(form.Phone) {
		errs[FieldPhone] = MsgInvalidPhone
	}
	if check := ValidatePassword(form.Password); !check.Valid {
		errs[FieldPassword] = check.Message
	}
	if form.Password != form.ConfirmPassword {
		errs[FieldConfirmPassword] = MsgPasswordMismatch
	}
	if !ValidateUserType(form.UserType) {
		errs[FieldUserType] = MsgInvalidUserType
	}
	if !form.AcceptTerms {
		errs[FieldAcceptTerms] = MsgTermsRequired
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// loginMinPasswordLength is deliberately weaker than the registration policy:
// login must keep accepting passwords created under earlier, looser rules.
const loginMinPasswordLength = 6

// ValidateLoginForm checks email syntax and a minimum password length only.
func ValidateLoginForm(form LoginForm) Result {
	errs := make(map[string]string)

	if !ValidateEmail(form.Email) {
		errs[FieldEmail] = MsgInvalidEmail
	}
	if len(form.Password) < loginMinPasswordLength {
		errs[FieldPassword] = MsgInvalidPassword
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

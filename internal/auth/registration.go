package auth

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Password rule from the signup form: at least 8 characters with one
// lowercase, one uppercase, and a digit or symbol.
var (
	lowerRe      = regexp.MustCompile(`[a-z]`)
	upperRe      = regexp.MustCompile(`[A-Z]`)
	digitOrSymRe = regexp.MustCompile(`[\d\W_]`)
)

type registrationForm struct {
	Username string
	Password string
}

// validateRegistration checks the signup inputs locally so obviously bad
// requests never reach the network. Failures are validation.Errors keyed by
// field name, matching how server-side field errors surface.
func validateRegistration(username, password string) error {
	f := registrationForm{Username: username, Password: password}
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required),
		validation.Field(&f.Password,
			validation.Required,
			validation.Length(8, 0),
			validation.Match(lowerRe).Error("must contain a lowercase letter"),
			validation.Match(upperRe).Error("must contain an uppercase letter"),
			validation.Match(digitOrSymRe).Error("must contain a digit or symbol"),
		),
	)
}

// Package clients implements the clients page: list, create with local
// validation, optimistic field updates and confirmed deletes.
package clients

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Client mirrors a client record as the server returns it.
type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

// RecordID returns the server-assigned identifier.
func (c Client) RecordID() int64 { return c.ID }

// Form holds the pending create-form values.
type Form struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// DefaultForm returns the blank form state.
func DefaultForm() Form { return Form{} }

// phoneRe accepts international numbers with optional +, spaces and dashes.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 -]{6,18}$`)

// Validate checks the form locally before any request is made. A failing
// form never reaches the network.
func (f Form) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Phone, validation.Required, validation.Match(phoneRe).Error("must be a valid phone number")),
		validation.Field(&f.Email, is.Email),
	)
}

// payload builds the create request body.
func (f Form) payload() map[string]any {
	return map[string]any{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"company": f.Company,
	}
}

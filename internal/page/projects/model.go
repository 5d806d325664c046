// Package projects implements the projects page: a parallel load of
// projects plus the client directory, create with local validation,
// optimistic status and payment updates with rollback, confirmed deletes,
// and the derived tab/search/sort views.
package projects

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Status is the project workflow state.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on-hold"
)

// PaymentStatus tracks how much of the project has been paid.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
)

// Currencies offered by the payment editor.
var Currencies = []string{"USD", "KES", "EUR", "GBP"}

// Project mirrors a project record as the server returns it. Dates are
// ISO "2006-01-02" strings; empty means not set.
type Project struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Status          Status          `json:"status"`
	StartDate       string          `json:"start_date,omitempty"`
	DueDate         string          `json:"due_date,omitempty"`
	Client          int64           `json:"client"`
	ClientName      string          `json:"client_name,omitempty"`
	PaymentStatus   PaymentStatus   `json:"payment_status,omitempty"`
	PaymentAmount   decimal.Decimal `json:"payment_amount"`
	PaymentCurrency string          `json:"payment_currency,omitempty"`
}

// RecordID returns the server-assigned identifier.
func (p Project) RecordID() int64 { return p.ID }

// ClientRef is the slice of the client directory this page needs to resolve
// foreign-key display names.
type ClientRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Form holds the pending create-form values.
type Form struct {
	Title           string
	Client          int64
	StartDate       string
	DueDate         string
	PaymentStatus   PaymentStatus
	PaymentAmount   decimal.Decimal
	PaymentCurrency string
}

// DefaultForm returns the blank form state.
func DefaultForm() Form {
	return Form{
		PaymentStatus:   PaymentUnpaid,
		PaymentCurrency: "USD",
	}
}

// Validate checks the form locally before any request is made.
func (f Form) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Client, validation.Required.Error("a client must be selected")),
		validation.Field(&f.PaymentStatus, validation.In(PaymentPaid, PaymentUnpaid, PaymentPartial)),
		validation.Field(&f.PaymentCurrency, validation.In(currencyValues()...)),
	)
}

func currencyValues() []any {
	out := make([]any, len(Currencies))
	for i, c := range Currencies {
		out[i] = c
	}
	return out
}

// payload builds the create request body. New projects start active; a
// blank start date defaults to today and a blank due date is sent as null.
func (f Form) payload(today string) map[string]any {
	start := f.StartDate
	if start == "" {
		start = today
	}
	var due any
	if f.DueDate != "" {
		due = f.DueDate
	}
	return map[string]any{
		"title":            f.Title,
		"client":           f.Client,
		"status":           string(StatusActive),
		"start_date":       start,
		"due_date":         due,
		"payment_status":   string(f.PaymentStatus),
		"payment_amount":   f.PaymentAmount,
		"payment_currency": f.PaymentCurrency,
	}
}

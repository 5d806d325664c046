// Package invoices implements the invoices page: a parallel load of
// invoices plus the client directory, create with local validation,
// optimistic status updates and confirmed deletes, and derived
// tab/search/sort views.
package invoices

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Invoice mirrors an invoice record as the server returns it. Total is a
// decimal carried as text on the wire.
type Invoice struct {
	ID         int64           `json:"id"`
	Number     string          `json:"number"`
	Client     int64           `json:"client"`
	ClientName string          `json:"client_name,omitempty"`
	IssueDate  string          `json:"issue_date,omitempty"`
	DueDate    string          `json:"due_date,omitempty"`
	Status     Status          `json:"status"`
	Total      decimal.Decimal `json:"total"`
}

// RecordID returns the server-assigned identifier.
func (i Invoice) RecordID() int64 { return i.ID }

// ClientRef is the slice of the client directory this page needs to resolve
// foreign-key display names.
type ClientRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Form holds the pending create-form values.
type Form struct {
	Number  string
	Client  int64
	Total   decimal.Decimal
	Status  Status
	DueDate string
}

// DefaultForm returns the blank form state: a zero total and draft status.
func DefaultForm() Form {
	return Form{
		Total:  decimal.Zero,
		Status: StatusDraft,
	}
}

// Validate checks the form locally before any request is made.
func (f Form) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Number, validation.Required),
		validation.Field(&f.Client, validation.Required.Error("a client must be selected")),
		validation.Field(&f.Status, validation.In(StatusDraft, StatusSent, StatusPaid, StatusOverdue)),
		validation.Field(&f.Total, validation.By(nonNegative)),
	)
}

func nonNegative(value any) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.IsNegative() {
		return validation.NewError("validation_total", "must not be negative")
	}
	return nil
}

// payload builds the create request body; a blank due date is sent as null.
func (f Form) payload() map[string]any {
	var due any
	if f.DueDate != "" {
		due = f.DueDate
	}
	return map[string]any{
		"number":   f.Number,
		"client":   f.Client,
		"total":    f.Total,
		"status":   string(f.Status),
		"due_date": due,
	}
}

package clients

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mkaranja/freelancecrm/internal/page"
)

// Page-scoped error messages shown when an operation fails.
const (
	msgLoadFailed   = "Failed to load clients."
	msgCreateFailed = "Could not create client."
	msgUpdateFailed = "Failed to update client."
	msgDeleteFailed = "Failed to delete client."
)

// Controller owns the clients collection for one mounted page view.
type Controller struct {
	*page.State[Client]
	api API

	formMu sync.Mutex
	form   Form
	adding bool
}

// NewController creates a clients page controller.
func NewController(api API, logger *slog.Logger) *Controller {
	return &Controller{
		State: page.NewState[Client](logger),
		api:   api,
		form:  DefaultForm(),
	}
}

// Load fetches the collection. Runs once on mount and again to leave
// LoadFailed.
func (c *Controller) Load(ctx context.Context) error {
	return c.State.Load(ctx, msgLoadFailed, c.api.List)
}

// BeginAdd opens the add form.
func (c *Controller) BeginAdd() {
	c.formMu.Lock()
	defer c.formMu.Unlock()
	c.adding = true
}

// CancelAdd closes the add form without resetting its values.
func (c *Controller) CancelAdd() {
	c.formMu.Lock()
	defer c.formMu.Unlock()
	c.adding = false
}

// Adding reports whether the add form is open.
func (c *Controller) Adding() bool {
	c.formMu.Lock()
	defer c.formMu.Unlock()
	return c.adding
}

// Form returns the pending form values.
func (c *Controller) Form() Form {
	c.formMu.Lock()
	defer c.formMu.Unlock()
	return c.form
}

// SetForm replaces the pending form values.
func (c *Controller) SetForm(f Form) {
	c.formMu.Lock()
	defer c.formMu.Unlock()
	c.form = f
}

// Create submits the form. Invalid forms fail fast without a request. On
// success the server record is prepended and the form resets to blank; on
// failure the form is preserved and the page error is set.
func (c *Controller) Create(ctx context.Context) (Client, error) {
	c.ClearError()

	form := c.Form()
	if err := form.Validate(); err != nil {
		c.SetError(err.Error())
		return Client{}, fmt.Errorf("validating client form: %w", err)
	}

	created, err := c.api.Create(ctx, form.payload())
	if err != nil {
		c.SetError(msgCreateFailed)
		return Client{}, fmt.Errorf("creating client: %w", err)
	}

	c.Insert(created)
	c.formMu.Lock()
	c.form = DefaultForm()
	c.adding = false
	c.formMu.Unlock()
	return created, nil
}

// Changes is a partial update to one client; nil fields are untouched.
type Changes struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
}

func (ch Changes) fields() map[string]any {
	fields := make(map[string]any)
	if ch.Name != nil {
		fields["name"] = *ch.Name
	}
	if ch.Email != nil {
		fields["email"] = *ch.Email
	}
	if ch.Phone != nil {
		fields["phone"] = *ch.Phone
	}
	if ch.Company != nil {
		fields["company"] = *ch.Company
	}
	return fields
}

func (ch Changes) apply(cl Client) Client {
	if ch.Name != nil {
		cl.Name = *ch.Name
	}
	if ch.Email != nil {
		cl.Email = *ch.Email
	}
	if ch.Phone != nil {
		cl.Phone = *ch.Phone
	}
	if ch.Company != nil {
		cl.Company = *ch.Company
	}
	return cl
}

// Update patches the changed fields optimistically, rolling the record back
// on failure. An empty change set is a no-op.
func (c *Controller) Update(ctx context.Context, id int64, changes Changes) error {
	fields := changes.fields()
	if len(fields) == 0 {
		return nil
	}
	return c.Patch(ctx, id, msgUpdateFailed, changes.apply, func(ctx context.Context) error {
		return c.api.Patch(ctx, id, fields)
	})
}

// ConfirmDelete removes a previously requested record, restoring the whole
// collection if the server rejects the delete.
func (c *Controller) ConfirmDelete(ctx context.Context, id int64) error {
	return c.State.ConfirmDelete(ctx, id, msgDeleteFailed, func(ctx context.Context) error {
		return c.api.Delete(ctx, id)
	})
}

// Search returns the clients whose name, company or email contains the
// query, case-insensitively. The collection itself is never touched.
func (c *Controller) Search(query string) []Client {
	items := c.Items()
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]Client, 0, len(items))
	for _, cl := range items {
		if strings.Contains(strings.ToLower(cl.Name), q) ||
			strings.Contains(strings.ToLower(cl.Company), q) ||
			strings.Contains(strings.ToLower(cl.Email), q) {
			out = append(out, cl)
		}
	}
	return out
}

package invoices

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mkaranja/freelancecrm/internal/page"
	"golang.org/x/sync/errgroup"
)

const (
	msgLoadFailed   = "Failed to load invoices or clients."
	msgCreateFailed = "Could not create invoice. Check your inputs."
	msgUpdateFailed = "Failed to update invoice."
	msgDeleteFailed = "Failed to delete invoice."
)

// Controller owns the invoices collection and the client directory for one
// mounted page view.
type Controller struct {
	*page.State[Invoice]
	api API

	formMu  sync.Mutex
	form    Form
	adding  bool
	clients map[int64]string
}

// NewController creates an invoices page controller.
func NewController(api API, logger *slog.Logger) *Controller {
	return &Controller{
		State:   page.NewState[Invoice](logger),
		api:     api,
		form:    DefaultForm(),
		clients: make(map[int64]string),
	}
}

// Load fetches invoices and clients concurrently, all-or-fail.
func (c *Controller) Load(ctx context.Context) error {
	return c.State.Load(ctx, msgLoadFailed, func(ctx context.Context) ([]Invoice, error) {
		var (
			items []Invoice
			refs  []ClientRef
		)
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			items, err = c.api.List(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			refs, err = c.api.ListClients(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		names := make(map[int64]string, len(refs))
		for _, ref := range refs {
			names[ref.ID] = ref.Name
		}
		c.formMu.Lock()
		c.clients = names
		c.formMu.Unlock()
		return items, nil
	})
}

// ClientName resolves a foreign-key display name, empty when unknown.
func (c *Controller) ClientName(id int64) string {
	c.formMu.Lock()
	defer c.formMu.Unlock()
	return c.clients[id]
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
// success the server record is prepended and the form resets; on failure
// the form is preserved and the page error is set.
func (c *Controller) Create(ctx context.Context) (Invoice, error) {
	c.ClearError()

	form := c.Form()
	if err := form.Validate(); err != nil {
		c.SetError(err.Error())
		return Invoice{}, fmt.Errorf("validating invoice form: %w", err)
	}

	created, err := c.api.Create(ctx, form.payload())
	if err != nil {
		c.SetError(msgCreateFailed)
		return Invoice{}, fmt.Errorf("creating invoice: %w", err)
	}

	c.Insert(created)
	c.formMu.Lock()
	c.form = DefaultForm()
	c.adding = false
	c.formMu.Unlock()
	return created, nil
}

// SetStatus patches the lifecycle status optimistically.
func (c *Controller) SetStatus(ctx context.Context, id int64, status Status) error {
	return c.Patch(ctx, id, msgUpdateFailed,
		func(inv Invoice) Invoice {
			inv.Status = status
			return inv
		},
		func(ctx context.Context) error {
			return c.api.Patch(ctx, id, map[string]any{"status": string(status)})
		})
}

// ConfirmDelete removes a previously requested record, restoring the whole
// collection if the server rejects the delete.
func (c *Controller) ConfirmDelete(ctx context.Context, id int64) error {
	return c.State.ConfirmDelete(ctx, id, msgDeleteFailed, func(ctx context.Context) error {
		return c.api.Delete(ctx, id)
	})
}

// Visible computes the derived view for the current tab and search query.
func (c *Controller) Visible(tab Tab, search string) []Invoice {
	return Filter(c.Items(), c.ClientName, tab, search)
}

package projects

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mkaranja/freelancecrm/internal/page"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	msgLoadFailed          = "Failed to load projects or clients."
	msgCreateFailed        = "Could not create project."
	msgUpdateFailed        = "Failed to update project."
	msgPaymentFailed       = "Failed to update payment."
	msgPaymentStatusFailed = "Failed to update payment status."
	msgDeleteFailed        = "Failed to delete project."
)

// Controller owns the projects collection and the client directory for one
// mounted page view.
type Controller struct {
	*page.State[Project]
	api API
	now func() time.Time

	formMu  sync.Mutex
	form    Form
	adding  bool
	clients map[int64]string
}

// NewController creates a projects page controller.
func NewController(api API, logger *slog.Logger) *Controller {
	return &Controller{
		State:   page.NewState[Project](logger),
		api:     api,
		now:     time.Now,
		form:    DefaultForm(),
		clients: make(map[int64]string),
	}
}

// Load fetches projects and clients concurrently and joins them
// all-or-fail: if either read fails the page ends in LoadFailed and no
// partial collection is shown.
func (c *Controller) Load(ctx context.Context) error {
	return c.State.Load(ctx, msgLoadFailed, func(ctx context.Context) ([]Project, error) {
		var (
			items []Project
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

// Clients returns the loaded client directory as id/name pairs.
func (c *Controller) Clients() map[int64]string {
	c.formMu.Lock()
	defer c.formMu.Unlock()
	out := make(map[int64]string, len(c.clients))
	for id, name := range c.clients {
		out[id] = name
	}
	return out
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
func (c *Controller) Create(ctx context.Context) (Project, error) {
	c.ClearError()

	form := c.Form()
	if err := form.Validate(); err != nil {
		c.SetError(err.Error())
		return Project{}, fmt.Errorf("validating project form: %w", err)
	}

	created, err := c.api.Create(ctx, form.payload(c.today()))
	if err != nil {
		c.SetError(msgCreateFailed)
		return Project{}, fmt.Errorf("creating project: %w", err)
	}

	c.Insert(created)
	c.formMu.Lock()
	c.form = DefaultForm()
	c.adding = false
	c.formMu.Unlock()
	return created, nil
}

// SetStatus patches the workflow status optimistically.
func (c *Controller) SetStatus(ctx context.Context, id int64, status Status) error {
	return c.Patch(ctx, id, msgUpdateFailed,
		func(p Project) Project {
			p.Status = status
			return p
		},
		func(ctx context.Context) error {
			return c.api.Patch(ctx, id, map[string]any{"status": string(status)})
		})
}

// ConfirmStatusToggle flips a project between completed and active after the
// inline confirmation opened by RequestStatusChange. Any non-completed
// project, on hold included, completes. Confirming without an open
// confirmation is a no-op.
func (c *Controller) ConfirmStatusToggle(ctx context.Context, id int64) error {
	if c.Interaction(id) != page.InteractionConfirmingStatus {
		return nil
	}
	current, ok := c.Find(id)
	c.Cancel(id)
	if !ok {
		return nil
	}
	next := StatusCompleted
	if current.Status == StatusCompleted {
		next = StatusActive
	}
	return c.SetStatus(ctx, id, next)
}

// SavePayment patches the amount and currency as one field group. A nil
// amount clears it on the server. The open payment editor closes before the
// request is issued, not after it settles.
func (c *Controller) SavePayment(ctx context.Context, id int64, amount *decimal.Decimal, currency string) error {
	if currency == "" {
		currency = "USD"
	}
	c.Cancel(id)

	var wireAmount any
	if amount != nil {
		wireAmount = *amount
	}
	return c.Patch(ctx, id, msgPaymentFailed,
		func(p Project) Project {
			if amount != nil {
				p.PaymentAmount = *amount
			} else {
				p.PaymentAmount = decimal.Zero
			}
			p.PaymentCurrency = currency
			return p
		},
		func(ctx context.Context) error {
			return c.api.Patch(ctx, id, map[string]any{
				"payment_amount":   wireAmount,
				"payment_currency": currency,
			})
		})
}

// SavePaymentStatus patches the payment status optimistically.
func (c *Controller) SavePaymentStatus(ctx context.Context, id int64, status PaymentStatus) error {
	c.Cancel(id)
	return c.Patch(ctx, id, msgPaymentStatusFailed,
		func(p Project) Project {
			p.PaymentStatus = status
			return p
		},
		func(ctx context.Context) error {
			return c.api.Patch(ctx, id, map[string]any{"payment_status": string(status)})
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
func (c *Controller) Visible(tab Tab, search string) []Project {
	return Filter(c.Items(), c.ClientName, tab, search)
}

// Overdue reports whether a project is past its due date and not completed.
func (c *Controller) Overdue(p Project) bool {
	return IsOverdue(p, c.today())
}

func (c *Controller) today() string {
	return c.now().Format("2006-01-02")
}

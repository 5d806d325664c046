package api

import (
	"context"
	"fmt"

	"github.com/mkaranja/freelancecrm/internal/page/clients"
	"github.com/mkaranja/freelancecrm/internal/page/invoices"
	"github.com/mkaranja/freelancecrm/internal/page/projects"
)

// ClientsClient is the typed collaborator for the clients entity.
type ClientsClient struct {
	t *Transport
}

// NewClientsClient wraps the transport for /clients/.
func NewClientsClient(t *Transport) *ClientsClient {
	return &ClientsClient{t: t}
}

// List returns the server's ordered client collection.
func (c *ClientsClient) List(ctx context.Context) ([]clients.Client, error) {
	var out []clients.Client
	if err := c.t.Get(ctx, "/clients/", &out); err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return out, nil
}

// Create posts a full-field body and returns the created record with its
// server-assigned id.
func (c *ClientsClient) Create(ctx context.Context, payload map[string]any) (clients.Client, error) {
	var out clients.Client
	if err := c.t.Post(ctx, "/clients/", payload, &out); err != nil {
		return clients.Client{}, fmt.Errorf("creating client: %w", err)
	}
	return out, nil
}

// Patch sends a partial update for one client.
func (c *ClientsClient) Patch(ctx context.Context, id int64, fields map[string]any) error {
	return c.t.Patch(ctx, fmt.Sprintf("/clients/%d/", id), fields)
}

// Delete removes one client.
func (c *ClientsClient) Delete(ctx context.Context, id int64) error {
	return c.t.Delete(ctx, fmt.Sprintf("/clients/%d/", id))
}

// ProjectsClient is the typed collaborator for the projects entity. It also
// reads the client listing the page joins for display names.
type ProjectsClient struct {
	t *Transport
}

// NewProjectsClient wraps the transport for /projects/.
func NewProjectsClient(t *Transport) *ProjectsClient {
	return &ProjectsClient{t: t}
}

// List returns the server's ordered project collection.
func (c *ProjectsClient) List(ctx context.Context) ([]projects.Project, error) {
	var out []projects.Project
	if err := c.t.Get(ctx, "/projects/", &out); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return out, nil
}

// ListClients returns the client directory for foreign-key display names.
func (c *ProjectsClient) ListClients(ctx context.Context) ([]projects.ClientRef, error) {
	var out []projects.ClientRef
	if err := c.t.Get(ctx, "/clients/", &out); err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return out, nil
}

// Create posts a full-field body and returns the created record.
func (c *ProjectsClient) Create(ctx context.Context, payload map[string]any) (projects.Project, error) {
	var out projects.Project
	if err := c.t.Post(ctx, "/projects/", payload, &out); err != nil {
		return projects.Project{}, fmt.Errorf("creating project: %w", err)
	}
	return out, nil
}

// Patch sends a partial update for one project.
func (c *ProjectsClient) Patch(ctx context.Context, id int64, fields map[string]any) error {
	return c.t.Patch(ctx, fmt.Sprintf("/projects/%d/", id), fields)
}

// Delete removes one project.
func (c *ProjectsClient) Delete(ctx context.Context, id int64) error {
	return c.t.Delete(ctx, fmt.Sprintf("/projects/%d/", id))
}

// InvoicesClient is the typed collaborator for the invoices entity.
type InvoicesClient struct {
	t *Transport
}

// NewInvoicesClient wraps the transport for /invoices/.
func NewInvoicesClient(t *Transport) *InvoicesClient {
	return &InvoicesClient{t: t}
}

// List returns the server's ordered invoice collection.
func (c *InvoicesClient) List(ctx context.Context) ([]invoices.Invoice, error) {
	var out []invoices.Invoice
	if err := c.t.Get(ctx, "/invoices/", &out); err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return out, nil
}

// ListClients returns the client directory for foreign-key display names.
func (c *InvoicesClient) ListClients(ctx context.Context) ([]invoices.ClientRef, error) {
	var out []invoices.ClientRef
	if err := c.t.Get(ctx, "/clients/", &out); err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return out, nil
}

// Create posts a full-field body and returns the created record.
func (c *InvoicesClient) Create(ctx context.Context, payload map[string]any) (invoices.Invoice, error) {
	var out invoices.Invoice
	if err := c.t.Post(ctx, "/invoices/", payload, &out); err != nil {
		return invoices.Invoice{}, fmt.Errorf("creating invoice: %w", err)
	}
	return out, nil
}

// Patch sends a partial update for one invoice.
func (c *InvoicesClient) Patch(ctx context.Context, id int64, fields map[string]any) error {
	return c.t.Patch(ctx, fmt.Sprintf("/invoices/%d/", id), fields)
}

// Delete removes one invoice.
func (c *InvoicesClient) Delete(ctx context.Context, id int64) error {
	return c.t.Delete(ctx, fmt.Sprintf("/invoices/%d/", id))
}

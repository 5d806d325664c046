package invoices

import "context"

// API is the remote collaborator for the invoices page.
type API interface {
	List(ctx context.Context) ([]Invoice, error)
	ListClients(ctx context.Context) ([]ClientRef, error)
	Create(ctx context.Context, payload map[string]any) (Invoice, error)
	Patch(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

package clients

import "context"

// API is the remote collaborator for the clients page.
type API interface {
	List(ctx context.Context) ([]Client, error)
	Create(ctx context.Context, payload map[string]any) (Client, error)
	Patch(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

package projects

import "context"

// API is the remote collaborator for the projects page. The client listing
// is read alongside the projects purely to resolve display names.
type API interface {
	List(ctx context.Context) ([]Project, error)
	ListClients(ctx context.Context) ([]ClientRef, error)
	Create(ctx context.Context, payload map[string]any) (Project, error)
	Patch(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

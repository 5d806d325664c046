// Package mcp exposes the CRM pages as MCP tools over stdio so that
// assistants can browse and mutate clients, projects, and invoices
// through the same controllers the CLI uses.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mkaranja/freelancecrm/internal/page"
	"github.com/mkaranja/freelancecrm/internal/page/clients"
	"github.com/mkaranja/freelancecrm/internal/page/invoices"
	"github.com/mkaranja/freelancecrm/internal/page/projects"
)

const serverInstructions = `FreelanceCRM gives you access to a freelancer's
clients, projects, and invoices. List tools load data on demand; mutation
tools apply the change and report the updated record. Deletes and status
toggles are applied immediately, without a separate confirmation step.`

// Pages bundles the page controllers the tools operate on.
type Pages struct {
	Clients  *clients.Controller
	Projects *projects.Controller
	Invoices *invoices.Controller
}

// Config contains server configuration.
type Config struct {
	Pages   Pages
	Version string
	Logger  *slog.Logger
}

// NewServer creates an MCP server with all CRM tools registered.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "freelancecrm",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})
	registerTools(server, cfg.Pages)
	return server
}

// Serve runs the server over stdio until the context is cancelled.
func Serve(ctx context.Context, server *sdkmcp.Server) error {
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

type loader interface {
	Status() page.Status
}

// ensureLoaded lazily loads a page the first time a tool touches it.
func ensureLoaded(ctx context.Context, ctrl loader, load func(context.Context) error) error {
	if ctrl.Status() == page.StatusLoaded {
		return nil
	}
	return load(ctx)
}

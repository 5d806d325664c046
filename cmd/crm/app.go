package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mkaranja/freelancecrm/internal/api"
	"github.com/mkaranja/freelancecrm/internal/auth"
	"github.com/mkaranja/freelancecrm/internal/config"
	"github.com/mkaranja/freelancecrm/internal/localstore"
	"github.com/mkaranja/freelancecrm/internal/mcp"
	"github.com/mkaranja/freelancecrm/internal/page/clients"
	"github.com/mkaranja/freelancecrm/internal/page/invoices"
	"github.com/mkaranja/freelancecrm/internal/page/projects"
)

// app wires configuration, the local store, the session manager, and the
// page controllers together for one command invocation.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *localstore.Store
	sessions *auth.Manager

	clients  *clients.Controller
	projects *projects.Controller
	invoices *invoices.Controller
}

// newApp assembles the application. Logs go to stderr so stdout stays
// clean for command output, and for JSON-RPC in MCP mode.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return nil, fmt.Errorf("preparing store directory: %w", err)
	}
	store, err := localstore.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	transport := api.NewTransport(cfg.API.BaseURL,
		api.WithLogger(logger),
		api.WithHTTPClient(httpClient(cfg)),
	)
	sessions := auth.NewManager(api.NewAuthClient(transport), store, logger)
	if err := sessions.Init(); err != nil {
		store.Close()
		return nil, err
	}

	// Entity requests carry the session token; auth requests never do.
	authed := api.NewTransport(cfg.API.BaseURL,
		api.WithLogger(logger),
		api.WithHTTPClient(httpClient(cfg)),
		api.WithTokenFunc(sessions.AccessToken),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		sessions: sessions,
		clients:  clients.NewController(api.NewClientsClient(authed), logger),
		projects: projects.NewController(api.NewProjectsClient(authed), logger),
		invoices: invoices.NewController(api.NewInvoicesClient(authed), logger),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing store", "error", err)
	}
}

func (a *app) pages() mcp.Pages {
	return mcp.Pages{
		Clients:  a.clients,
		Projects: a.projects,
		Invoices: a.invoices,
	}
}

func httpClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

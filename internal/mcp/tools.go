package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"github.com/mkaranja/freelancecrm/internal/page/clients"
	"github.com/mkaranja/freelancecrm/internal/page/invoices"
	"github.com/mkaranja/freelancecrm/internal/page/projects"
)

type listClientsInput struct {
	Search string `json:"search,omitempty" jsonschema:"filter by name, company or email"`
}

type listClientsOutput struct {
	Clients []clients.Client `json:"clients"`
}

type addClientInput struct {
	Name    string `json:"name" jsonschema:"client name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone" jsonschema:"phone number, digits with optional leading +"`
	Company string `json:"company,omitempty"`
}

type listProjectsInput struct {
	Tab    string `json:"tab,omitempty" jsonschema:"one of all, active, completed, outstanding"`
	Search string `json:"search,omitempty" jsonschema:"filter by title or client name"`
}

// projectView is the flat wire form of a project; money travels as text.
type projectView struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Status          string `json:"status"`
	StartDate       string `json:"start_date,omitempty"`
	DueDate         string `json:"due_date,omitempty"`
	ClientID        int64  `json:"client_id"`
	ClientName      string `json:"client_name,omitempty"`
	PaymentStatus   string `json:"payment_status,omitempty"`
	PaymentAmount   string `json:"payment_amount"`
	PaymentCurrency string `json:"payment_currency,omitempty"`
	Overdue         bool   `json:"overdue"`
}

type listProjectsOutput struct {
	Projects []projectView `json:"projects"`
}

type projectOutput struct {
	Project projectView `json:"project"`
}

type addProjectInput struct {
	Title           string `json:"title"`
	ClientID        int64  `json:"client_id"`
	StartDate       string `json:"start_date,omitempty" jsonschema:"ISO date, defaults to today"`
	DueDate         string `json:"due_date,omitempty" jsonschema:"ISO date"`
	PaymentStatus   string `json:"payment_status,omitempty" jsonschema:"one of paid, unpaid, partial"`
	PaymentAmount   string `json:"payment_amount,omitempty" jsonschema:"decimal amount"`
	PaymentCurrency string `json:"payment_currency,omitempty" jsonschema:"one of USD, KES, EUR, GBP"`
}

type setProjectStatusInput struct {
	ProjectID int64  `json:"project_id"`
	Status    string `json:"status" jsonschema:"one of active, completed, on-hold"`
}

type updatePaymentInput struct {
	ProjectID int64  `json:"project_id"`
	Amount    string `json:"amount,omitempty" jsonschema:"decimal amount, empty clears it"`
	Currency  string `json:"currency,omitempty" jsonschema:"one of USD, KES, EUR, GBP"`
	Status    string `json:"status,omitempty" jsonschema:"one of paid, unpaid, partial"`
}

type deleteInput struct {
	ID int64 `json:"id"`
}

type deleteOutput struct {
	Deleted bool `json:"deleted"`
}

type listInvoicesInput struct {
	Tab    string `json:"tab,omitempty" jsonschema:"one of all, draft, sent, paid, overdue"`
	Search string `json:"search,omitempty" jsonschema:"filter by number or client name"`
}

// invoiceView is the flat wire form of an invoice; money travels as text.
type invoiceView struct {
	ID         int64  `json:"id"`
	Number     string `json:"number"`
	ClientID   int64  `json:"client_id"`
	ClientName string `json:"client_name,omitempty"`
	IssueDate  string `json:"issue_date,omitempty"`
	DueDate    string `json:"due_date,omitempty"`
	Status     string `json:"status"`
	Total      string `json:"total"`
}

type listInvoicesOutput struct {
	Invoices []invoiceView `json:"invoices"`
}

type invoiceOutput struct {
	Invoice invoiceView `json:"invoice"`
}

type clientOutput struct {
	Client clients.Client `json:"client"`
}

type addInvoiceInput struct {
	Number   string `json:"number"`
	ClientID int64  `json:"client_id"`
	Total    string `json:"total,omitempty" jsonschema:"decimal amount"`
	Status   string `json:"status,omitempty" jsonschema:"one of draft, sent, paid, overdue"`
	DueDate  string `json:"due_date,omitempty" jsonschema:"ISO date"`
}

type setInvoiceStatusInput struct {
	InvoiceID int64  `json:"invoice_id"`
	Status    string `json:"status" jsonschema:"one of draft, sent, paid, overdue"`
}

func projectViewOf(ctrl *projects.Controller, p projects.Project) projectView {
	name := p.ClientName
	if name == "" {
		name = ctrl.ClientName(p.Client)
	}
	return projectView{
		ID:              p.ID,
		Title:           p.Title,
		Status:          string(p.Status),
		StartDate:       p.StartDate,
		DueDate:         p.DueDate,
		ClientID:        p.Client,
		ClientName:      name,
		PaymentStatus:   string(p.PaymentStatus),
		PaymentAmount:   p.PaymentAmount.StringFixed(2),
		PaymentCurrency: p.PaymentCurrency,
		Overdue:         ctrl.Overdue(p),
	}
}

func invoiceViewOf(ctrl *invoices.Controller, inv invoices.Invoice) invoiceView {
	name := inv.ClientName
	if name == "" {
		name = ctrl.ClientName(inv.Client)
	}
	return invoiceView{
		ID:         inv.ID,
		Number:     inv.Number,
		ClientID:   inv.Client,
		ClientName: name,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		Status:     string(inv.Status),
		Total:      inv.Total.StringFixed(2),
	}
}

func registerTools(server *sdkmcp.Server, pages Pages) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_clients",
		Description: "List clients, optionally filtered by a search query",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in listClientsInput) (*sdkmcp.CallToolResult, listClientsOutput, error) {
		if err := ensureLoaded(ctx, pages.Clients, pages.Clients.Load); err != nil {
			return nil, listClientsOutput{}, err
		}
		return nil, listClientsOutput{Clients: pages.Clients.Search(in.Search)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_client",
		Description: "Create a new client",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in addClientInput) (*sdkmcp.CallToolResult, clientOutput, error) {
		if err := ensureLoaded(ctx, pages.Clients, pages.Clients.Load); err != nil {
			return nil, clientOutput{}, err
		}
		pages.Clients.SetForm(clients.Form{
			Name:    in.Name,
			Email:   in.Email,
			Phone:   in.Phone,
			Company: in.Company,
		})
		created, err := pages.Clients.Create(ctx)
		if err != nil {
			return nil, clientOutput{}, err
		}
		return nil, clientOutput{Client: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List projects with tab filtering, search, and overdue flags",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in listProjectsInput) (*sdkmcp.CallToolResult, listProjectsOutput, error) {
		if err := ensureLoaded(ctx, pages.Projects, pages.Projects.Load); err != nil {
			return nil, listProjectsOutput{}, err
		}
		tab, err := projects.ParseTab(in.Tab)
		if err != nil {
			return nil, listProjectsOutput{}, err
		}
		visible := pages.Projects.Visible(tab, in.Search)
		out := make([]projectView, 0, len(visible))
		for _, p := range visible {
			out = append(out, projectViewOf(pages.Projects, p))
		}
		return nil, listProjectsOutput{Projects: out}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_project",
		Description: "Create a new project for a client",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in addProjectInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := ensureLoaded(ctx, pages.Projects, pages.Projects.Load); err != nil {
			return nil, projectOutput{}, err
		}
		form := projects.DefaultForm()
		form.Title = in.Title
		form.Client = in.ClientID
		form.StartDate = in.StartDate
		form.DueDate = in.DueDate
		if in.PaymentStatus != "" {
			form.PaymentStatus = projects.PaymentStatus(in.PaymentStatus)
		}
		if in.PaymentCurrency != "" {
			form.PaymentCurrency = in.PaymentCurrency
		}
		if in.PaymentAmount != "" {
			amount, err := decimal.NewFromString(in.PaymentAmount)
			if err != nil {
				return nil, projectOutput{}, fmt.Errorf("parsing payment amount: %w", err)
			}
			form.PaymentAmount = amount
		}
		pages.Projects.SetForm(form)
		created, err := pages.Projects.Create(ctx)
		if err != nil {
			return nil, projectOutput{}, err
		}
		return nil, projectOutput{Project: projectViewOf(pages.Projects, created)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_project_status",
		Description: "Set a project's workflow status (active, completed, on-hold)",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in setProjectStatusInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := ensureLoaded(ctx, pages.Projects, pages.Projects.Load); err != nil {
			return nil, projectOutput{}, err
		}
		status, err := parseProjectStatus(in.Status)
		if err != nil {
			return nil, projectOutput{}, err
		}
		if err := pages.Projects.SetStatus(ctx, in.ProjectID, status); err != nil {
			return nil, projectOutput{}, err
		}
		updated, _ := pages.Projects.Find(in.ProjectID)
		return nil, projectOutput{Project: projectViewOf(pages.Projects, updated)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project_payment",
		Description: "Update a project's payment amount, currency, or payment status",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in updatePaymentInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := ensureLoaded(ctx, pages.Projects, pages.Projects.Load); err != nil {
			return nil, projectOutput{}, err
		}
		if in.Status != "" {
			status, err := parsePaymentStatus(in.Status)
			if err != nil {
				return nil, projectOutput{}, err
			}
			if err := pages.Projects.SavePaymentStatus(ctx, in.ProjectID, status); err != nil {
				return nil, projectOutput{}, err
			}
		}
		if in.Amount != "" || in.Currency != "" {
			var amount *decimal.Decimal
			if in.Amount != "" {
				d, err := decimal.NewFromString(in.Amount)
				if err != nil {
					return nil, projectOutput{}, fmt.Errorf("parsing amount: %w", err)
				}
				amount = &d
			}
			if err := pages.Projects.SavePayment(ctx, in.ProjectID, amount, in.Currency); err != nil {
				return nil, projectOutput{}, err
			}
		}
		updated, _ := pages.Projects.Find(in.ProjectID)
		return nil, projectOutput{Project: projectViewOf(pages.Projects, updated)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in deleteInput) (*sdkmcp.CallToolResult, deleteOutput, error) {
		if err := ensureLoaded(ctx, pages.Projects, pages.Projects.Load); err != nil {
			return nil, deleteOutput{}, err
		}
		if !pages.Projects.RequestDelete(in.ID) {
			return nil, deleteOutput{}, fmt.Errorf("project %d not found", in.ID)
		}
		if err := pages.Projects.ConfirmDelete(ctx, in.ID); err != nil {
			return nil, deleteOutput{}, err
		}
		return nil, deleteOutput{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_invoices",
		Description: "List invoices with tab filtering and search",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in listInvoicesInput) (*sdkmcp.CallToolResult, listInvoicesOutput, error) {
		if err := ensureLoaded(ctx, pages.Invoices, pages.Invoices.Load); err != nil {
			return nil, listInvoicesOutput{}, err
		}
		tab, err := invoices.ParseTab(in.Tab)
		if err != nil {
			return nil, listInvoicesOutput{}, err
		}
		visible := pages.Invoices.Visible(tab, in.Search)
		out := make([]invoiceView, 0, len(visible))
		for _, inv := range visible {
			out = append(out, invoiceViewOf(pages.Invoices, inv))
		}
		return nil, listInvoicesOutput{Invoices: out}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_invoice",
		Description: "Create a new invoice for a client",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in addInvoiceInput) (*sdkmcp.CallToolResult, invoiceOutput, error) {
		if err := ensureLoaded(ctx, pages.Invoices, pages.Invoices.Load); err != nil {
			return nil, invoiceOutput{}, err
		}
		form := invoices.DefaultForm()
		form.Number = in.Number
		form.Client = in.ClientID
		form.DueDate = in.DueDate
		if in.Status != "" {
			form.Status = invoices.Status(in.Status)
		}
		if in.Total != "" {
			total, err := decimal.NewFromString(in.Total)
			if err != nil {
				return nil, invoiceOutput{}, fmt.Errorf("parsing total: %w", err)
			}
			form.Total = total
		}
		pages.Invoices.SetForm(form)
		created, err := pages.Invoices.Create(ctx)
		if err != nil {
			return nil, invoiceOutput{}, err
		}
		return nil, invoiceOutput{Invoice: invoiceViewOf(pages.Invoices, created)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_invoice_status",
		Description: "Set an invoice's lifecycle status (draft, sent, paid, overdue)",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in setInvoiceStatusInput) (*sdkmcp.CallToolResult, invoiceOutput, error) {
		if err := ensureLoaded(ctx, pages.Invoices, pages.Invoices.Load); err != nil {
			return nil, invoiceOutput{}, err
		}
		status, err := parseInvoiceStatus(in.Status)
		if err != nil {
			return nil, invoiceOutput{}, err
		}
		if err := pages.Invoices.SetStatus(ctx, in.InvoiceID, status); err != nil {
			return nil, invoiceOutput{}, err
		}
		updated, _ := pages.Invoices.Find(in.InvoiceID)
		return nil, invoiceOutput{Invoice: invoiceViewOf(pages.Invoices, updated)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_invoice",
		Description: "Delete an invoice",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in deleteInput) (*sdkmcp.CallToolResult, deleteOutput, error) {
		if err := ensureLoaded(ctx, pages.Invoices, pages.Invoices.Load); err != nil {
			return nil, deleteOutput{}, err
		}
		if !pages.Invoices.RequestDelete(in.ID) {
			return nil, deleteOutput{}, fmt.Errorf("invoice %d not found", in.ID)
		}
		if err := pages.Invoices.ConfirmDelete(ctx, in.ID); err != nil {
			return nil, deleteOutput{}, err
		}
		return nil, deleteOutput{Deleted: true}, nil
	})
}

func parseProjectStatus(s string) (projects.Status, error) {
	switch status := projects.Status(s); status {
	case projects.StatusActive, projects.StatusCompleted, projects.StatusOnHold:
		return status, nil
	default:
		return "", fmt.Errorf("unknown project status %q", s)
	}
}

func parsePaymentStatus(s string) (projects.PaymentStatus, error) {
	switch status := projects.PaymentStatus(s); status {
	case projects.PaymentPaid, projects.PaymentUnpaid, projects.PaymentPartial:
		return status, nil
	default:
		return "", fmt.Errorf("unknown payment status %q", s)
	}
}

func parseInvoiceStatus(s string) (invoices.Status, error) {
	switch status := invoices.Status(s); status {
	case invoices.StatusDraft, invoices.StatusSent, invoices.StatusPaid, invoices.StatusOverdue:
		return status, nil
	default:
		return "", fmt.Errorf("unknown invoice status %q", s)
	}
}

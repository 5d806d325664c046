// Command crm is the terminal front-end for the freelancer CRM: login and
// signup, and the clients, projects, and invoices pages with optimistic
// updates rolled back when the server rejects a change. The mcp subcommand
// serves the same pages as MCP tools over stdio.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/mkaranja/freelancecrm/internal/api"
	"github.com/mkaranja/freelancecrm/internal/mcp"
	"github.com/mkaranja/freelancecrm/internal/page/clients"
	"github.com/mkaranja/freelancecrm/internal/page/invoices"
	"github.com/mkaranja/freelancecrm/internal/page/projects"
)

const version = "0.1.0"

func main() {
	cmd := &cli.Command{
		Name:    "crm",
		Usage:   "Freelancer CRM client: clients, projects, and invoices from the terminal",
		Version: version,
		Commands: []*cli.Command{
			loginCommand(),
			signupCommand(),
			logoutCommand(),
			whoamiCommand(),
			clientsCommand(),
			projectsCommand(),
			invoicesCommand(),
			mcpCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in and persist the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			username, password, err := credentials(cmd)
			if err != nil {
				return err
			}
			if err := a.sessions.Login(ctx, username, password); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s.\n", username)
			return nil
		},
	}
}

func signupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			username, password, err := credentials(cmd)
			if err != nil {
				return err
			}
			if err := a.sessions.Register(ctx, username, password); err != nil {
				var apiErr *api.Error
				if errors.As(err, &apiErr) && apiErr.Kind == api.KindField {
					return fmt.Errorf("%s: %s", apiErr.Field, apiErr.Message)
				}
				return err
			}
			fmt.Printf("Welcome, %s. You are signed in.\n", username)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the persisted session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.sessions.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the active session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if sess, ok := a.sessions.Current(); ok {
				fmt.Println(sess.Username)
				return nil
			}
			if user, ok := a.sessions.RememberedUser(); ok {
				fmt.Printf("Not logged in (last user: %s).\n", user.Username)
				return nil
			}
			fmt.Println("Not logged in.")
			return nil
		},
	}
}

func clientsCommand() *cli.Command {
	return &cli.Command{
		Name:  "clients",
		Usage: "Browse and manage clients",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List clients",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Filter by name, company or email"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					if err := a.clients.Load(ctx); err != nil {
						return pageError(a.clients.Err(), err)
					}
					printClients(a.clients.Search(cmd.String("search")))
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Create a client",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Client name", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "Phone number", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Email address"},
					&cli.StringFlag{Name: "company", Usage: "Company name"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					a.clients.SetForm(clients.Form{
						Name:    cmd.String("name"),
						Email:   cmd.String("email"),
						Phone:   cmd.String("phone"),
						Company: cmd.String("company"),
					})
					created, err := a.clients.Create(ctx)
					if err != nil {
						return pageError(a.clients.Err(), err)
					}
					fmt.Printf("Created client %d (%s).\n", created.ID, created.Name)
					return nil
				},
			},
			{
				Name:  "set",
				Usage: "Update client fields",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Client id", Required: true},
					&cli.StringFlag{Name: "name", Usage: "New name"},
					&cli.StringFlag{Name: "email", Usage: "New email"},
					&cli.StringFlag{Name: "phone", Usage: "New phone"},
					&cli.StringFlag{Name: "company", Usage: "New company"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					id, err := parseID(cmd.String("id"))
					if err != nil {
						return err
					}
					if err := a.clients.Load(ctx); err != nil {
						return pageError(a.clients.Err(), err)
					}

					var changes clients.Changes
					if cmd.IsSet("name") {
						changes.Name = stringPtr(cmd.String("name"))
					}
					if cmd.IsSet("email") {
						changes.Email = stringPtr(cmd.String("email"))
					}
					if cmd.IsSet("phone") {
						changes.Phone = stringPtr(cmd.String("phone"))
					}
					if cmd.IsSet("company") {
						changes.Company = stringPtr(cmd.String("company"))
					}
					if err := a.clients.Update(ctx, id, changes); err != nil {
						return pageError(a.clients.Err(), err)
					}
					fmt.Printf("Updated client %d.\n", id)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a client (asks for confirmation)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Client id", Required: true},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					id, err := parseID(cmd.String("id"))
					if err != nil {
						return err
					}
					if err := a.clients.Load(ctx); err != nil {
						return pageError(a.clients.Err(), err)
					}
					if !a.clients.RequestDelete(id) {
						return fmt.Errorf("client %d not found", id)
					}
					if !cmd.Bool("yes") && !confirm(fmt.Sprintf("Delete client %d?", id)) {
						a.clients.Cancel(id)
						fmt.Println("Cancelled.")
						return nil
					}
					if err := a.clients.ConfirmDelete(ctx, id); err != nil {
						return pageError(a.clients.Err(), err)
					}
					fmt.Printf("Deleted client %d.\n", id)
					return nil
				},
			},
		},
	}
}

func projectsCommand() *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "Browse and manage projects",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List projects",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tab", Usage: "all, active, completed, or outstanding", Value: "all"},
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Filter by title or client name"},
					&cli.StringFlag{Name: "sort-by", Usage: "Order by start_date or due_date"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					tab, err := projects.ParseTab(cmd.String("tab"))
					if err != nil {
						return err
					}
					if err := a.projects.Load(ctx); err != nil {
						return pageError(a.projects.Err(), err)
					}

					visible := a.projects.Visible(tab, cmd.String("search"))
					switch field := cmd.String("sort-by"); field {
					case "":
					case string(projects.SortByStartDate), string(projects.SortByDueDate):
						visible = projects.SortByDate(visible, projects.SortField(field))
					default:
						return fmt.Errorf("unknown sort field %q", field)
					}
					printProjects(a, visible)
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Create a project",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Project title", Required: true},
					&cli.StringFlag{Name: "client", Usage: "Client id", Required: true},
					&cli.StringFlag{Name: "start", Usage: "Start date (2006-01-02), defaults to today"},
					&cli.StringFlag{Name: "due", Usage: "Due date (2006-01-02)"},
					&cli.StringFlag{Name: "amount", Usage: "Payment amount"},
					&cli.StringFlag{Name: "currency", Usage: "USD, KES, EUR, or GBP", Value: "USD"},
					&cli.StringFlag{Name: "pay-status", Usage: "paid, unpaid, or partial", Value: "unpaid"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					clientID, err := parseID(cmd.String("client"))
					if err != nil {
						return err
					}
					form := projects.DefaultForm()
					form.Title = cmd.String("title")
					form.Client = clientID
					form.StartDate = cmd.String("start")
					form.DueDate = cmd.String("due")
					form.PaymentCurrency = cmd.String("currency")
					form.PaymentStatus = projects.PaymentStatus(cmd.String("pay-status"))
					if raw := cmd.String("amount"); raw != "" {
						amount, err := decimal.NewFromString(raw)
						if err != nil {
							return fmt.Errorf("invalid amount %q: %w", raw, err)
						}
						form.PaymentAmount = amount
					}
					a.projects.SetForm(form)

					created, err := a.projects.Create(ctx)
					if err != nil {
						return pageError(a.projects.Err(), err)
					}
					fmt.Printf("Created project %d (%s).\n", created.ID, created.Title)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "Set a project's workflow status",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Project id", Required: true},
					&cli.StringFlag{Name: "status", Usage: "active, completed, or on-hold", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					id, err := parseID(cmd.String("id"))
					if err != nil {
						return err
					}
					status := projects.Status(cmd.String("status"))
					switch status {
					case projects.StatusActive, projects.StatusCompleted, projects.StatusOnHold:
					default:
						return fmt.Errorf("unknown status %q", cmd.String("status"))
					}
					if err := a.projects.Load(ctx); err != nil {
						return pageError(a.projects.Err(), err)
					}
					if err := a.projects.SetStatus(ctx, id, status); err != nil {
						return pageError(a.projects.Err(), err)
					}
					fmt.Printf("Project %d is now %s.\n", id, status)
					return nil
				},
			},
			{
				Name:  "toggle",
				Usage: "Toggle a project between completed and active (asks for confirmation)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Project id", Required: true},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					id, err := parseID(cmd.String("id"))
					if err != nil {
						return err
					}
					if err := a.projects.Load(ctx); err != nil {
						return pageError(a.projects.Err(), err)
					}
					if !a.projects.RequestStatusChange(id) {
						return fmt.Errorf("project %d not found", id)
					}
					if !cmd.Bool("yes") && !confirm(fmt.Sprintf("Toggle completion of project %d?", id)) {
						a.projects.Cancel(id)
						fmt.Println("Cancelled.")
						return nil
					}
					if err := a.projects.ConfirmStatusToggle(ctx, id); err != nil {
						return pageError(a.projects.Err(), err)
					}
					updated, _ := a.projects.Find(id)
					fmt.Printf("Project %d is now %s.\n", id, updated.Status)
					return nil
				},
			},
			{
				Name:  "payment",
				Usage: "Update a project's payment amount and currency",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Project id", Required: true},
					&cli.StringFlag{Name: "amount", Usage: "Payment amount, empty clears it"},
					&cli.StringFlag{Name: "currency", Usage: "USD, KES, EUR, or GBP"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					id, err := parseID(cmd.String("id"))
					if err != nil {
						return err
					}
					if err := a.projects.Load(ctx); err != nil {
						return pageError(a.projects.Err(), err)
					}

					var amount *decimal.Decimal
					if raw := cmd.String("amount"); raw != "" {
						d, err := decimal.NewFromString(raw)
						if err != nil {
							return fmt.Errorf("invalid amount %q: %w", raw, err)
						}
						amount = &d
					}
					if err := a.projects.SavePayment(ctx, id, amount, cmd.String("currency")); err != nil {
						return pageError(a.projects.Err(), err)
					}
					fmt.Printf("Updated payment for project %d.\n", id)
					return nil
				},
			},
			{
				Name:  "pay-status",
				Usage: "Update a project's payment status",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Project id", Required: true},
					&cli.StringFlag{Name: "status", Usage: "paid, unpaid, or partial", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					id, err := parseID(cmd.String("id"))
					if err != nil {
						return err
					}
					status := projects.PaymentStatus(cmd.String("status"))
					switch status {
					case projects.PaymentPaid, projects.PaymentUnpaid, projects.PaymentPartial:
					default:
						return fmt.Errorf("unknown payment status %q", cmd.String("status"))
					}
					if err := a.projects.Load(ctx); err != nil {
						return pageError(a.projects.Err(), err)
					}
					if err := a.projects.SavePaymentStatus(ctx, id, status); err != nil {
						return pageError(a.projects.Err(), err)
					}
					fmt.Printf("Project %d payment is now %s.\n", id, status)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a project (asks for confirmation)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Project id", Required: true},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					id, err := parseID(cmd.String("id"))
					if err != nil {
						return err
					}
					if err := a.projects.Load(ctx); err != nil {
						return pageError(a.projects.Err(), err)
					}
					if !a.projects.RequestDelete(id) {
						return fmt.Errorf("project %d not found", id)
					}
					if !cmd.Bool("yes") && !confirm(fmt.Sprintf("Delete project %d?", id)) {
						a.projects.Cancel(id)
						fmt.Println("Cancelled.")
						return nil
					}
					if err := a.projects.ConfirmDelete(ctx, id); err != nil {
						return pageError(a.projects.Err(), err)
					}
					fmt.Printf("Deleted project %d.\n", id)
					return nil
				},
			},
		},
	}
}

func invoicesCommand() *cli.Command {
	return &cli.Command{
		Name:  "invoices",
		Usage: "Browse and manage invoices",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List invoices",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tab", Usage: "all, draft, sent, paid, or overdue", Value: "all"},
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Filter by number or client name"},
					&cli.BoolFlag{Name: "by-due", Usage: "Order by due date"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					tab, err := invoices.ParseTab(cmd.String("tab"))
					if err != nil {
						return err
					}
					if err := a.invoices.Load(ctx); err != nil {
						return pageError(a.invoices.Err(), err)
					}
					visible := a.invoices.Visible(tab, cmd.String("search"))
					if cmd.Bool("by-due") {
						visible = invoices.SortByDueDate(visible)
					}
					printInvoices(a, visible)
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Create an invoice",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "number", Usage: "Invoice number", Required: true},
					&cli.StringFlag{Name: "client", Usage: "Client id", Required: true},
					&cli.StringFlag{Name: "total", Usage: "Invoice total", Value: "0.00"},
					&cli.StringFlag{Name: "status", Usage: "draft, sent, paid, or overdue", Value: "draft"},
					&cli.StringFlag{Name: "due", Usage: "Due date (2006-01-02)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					clientID, err := parseID(cmd.String("client"))
					if err != nil {
						return err
					}
					total, err := decimal.NewFromString(cmd.String("total"))
					if err != nil {
						return fmt.Errorf("invalid total %q: %w", cmd.String("total"), err)
					}

					form := invoices.DefaultForm()
					form.Number = cmd.String("number")
					form.Client = clientID
					form.Total = total
					form.Status = invoices.Status(cmd.String("status"))
					form.DueDate = cmd.String("due")
					a.invoices.SetForm(form)

					created, err := a.invoices.Create(ctx)
					if err != nil {
						return pageError(a.invoices.Err(), err)
					}
					fmt.Printf("Created invoice %d (%s).\n", created.ID, created.Number)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "Set an invoice's status",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Invoice id", Required: true},
					&cli.StringFlag{Name: "status", Usage: "draft, sent, paid, or overdue", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					id, err := parseID(cmd.String("id"))
					if err != nil {
						return err
					}
					status := invoices.Status(cmd.String("status"))
					switch status {
					case invoices.StatusDraft, invoices.StatusSent, invoices.StatusPaid, invoices.StatusOverdue:
					default:
						return fmt.Errorf("unknown status %q", cmd.String("status"))
					}
					if err := a.invoices.Load(ctx); err != nil {
						return pageError(a.invoices.Err(), err)
					}
					if err := a.invoices.SetStatus(ctx, id, status); err != nil {
						return pageError(a.invoices.Err(), err)
					}
					fmt.Printf("Invoice %d is now %s.\n", id, status)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete an invoice (asks for confirmation)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Invoice id", Required: true},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					defer a.close()

					id, err := parseID(cmd.String("id"))
					if err != nil {
						return err
					}
					if err := a.invoices.Load(ctx); err != nil {
						return pageError(a.invoices.Err(), err)
					}
					if !a.invoices.RequestDelete(id) {
						return fmt.Errorf("invoice %d not found", id)
					}
					if !cmd.Bool("yes") && !confirm(fmt.Sprintf("Delete invoice %d?", id)) {
						a.invoices.Cancel(id)
						fmt.Println("Cancelled.")
						return nil
					}
					if err := a.invoices.ConfirmDelete(ctx, id); err != nil {
						return pageError(a.invoices.Err(), err)
					}
					fmt.Printf("Deleted invoice %d.\n", id)
					return nil
				},
			},
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the CRM pages as MCP tools over stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			server := mcp.NewServer(mcp.Config{
				Pages:   a.pages(),
				Version: version,
				Logger:  a.logger,
			})
			return mcp.Serve(ctx, server)
		},
	}
}

// credentials reads username and password from flags, prompting for
// whichever is missing.
func credentials(cmd *cli.Command) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	username := cmd.String("username")
	if username == "" {
		fmt.Print("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	password := cmd.String("password")
	if password == "" {
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimSpace(line)
	}
	return username, password, nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// pageError prefers the page-scoped message over the wrapped transport
// error.
func pageError(pageMsg string, err error) error {
	if pageMsg != "" {
		return errors.New(pageMsg)
	}
	return err
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func stringPtr(s string) *string { return &s }

func printClients(items []clients.Client) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tEMAIL\tPHONE")
	for _, c := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Company, c.Email, c.Phone)
	}
	w.Flush()
}

func printProjects(a *app, items []projects.Project) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCLIENT\tSTATUS\tSTART\tDUE\tPAYMENT")
	for _, p := range items {
		name := p.ClientName
		if name == "" {
			name = a.projects.ClientName(p.Client)
		}
		due := p.DueDate
		if a.projects.Overdue(p) {
			due += " (overdue)"
		}
		payment := fmt.Sprintf("%s %s (%s)", p.PaymentAmount.StringFixed(2), p.PaymentCurrency, p.PaymentStatus)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, name, p.Status, p.StartDate, due, payment)
	}
	w.Flush()
}

func printInvoices(a *app, items []invoices.Invoice) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tCLIENT\tSTATUS\tDUE\tTOTAL")
	for _, inv := range items {
		name := inv.ClientName
		if name == "" {
			name = a.invoices.ClientName(inv.Client)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", inv.ID, inv.Number, name, inv.Status, inv.DueDate, inv.Total.StringFixed(2))
	}
	w.Flush()
}

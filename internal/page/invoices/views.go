package invoices

import (
	"fmt"
	"sort"
	"strings"
)

// Tab selects the status filter of the derived list view.
type Tab string

const (
	TabAll     Tab = "all"
	TabDraft   Tab = "draft"
	TabSent    Tab = "sent"
	TabPaid    Tab = "paid"
	TabOverdue Tab = "overdue"
)

// ParseTab validates a tab name from a surface.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "", TabAll:
		return TabAll, nil
	case TabDraft, TabSent, TabPaid, TabOverdue:
		return Tab(s), nil
	default:
		return "", fmt.Errorf("unknown tab %q", s)
	}
}

// Filter returns the invoices matching the tab and the case-insensitive
// search over number and client display name. Pure projection; the input is
// never mutated.
func Filter(items []Invoice, clientName func(int64) string, tab Tab, search string) []Invoice {
	q := strings.ToLower(search)
	out := make([]Invoice, 0, len(items))
	for _, inv := range items {
		if tab != TabAll && tab != "" && inv.Status != Status(tab) {
			continue
		}
		if q != "" {
			name := ""
			if clientName != nil {
				name = clientName(inv.Client)
			}
			if !strings.Contains(strings.ToLower(inv.Number), q) &&
				!strings.Contains(strings.ToLower(name), q) {
				continue
			}
		}
		out = append(out, inv)
	}
	return out
}

// SortByDueDate returns a copy ordered by due date ascending. Invoices
// without one sort last; equal and missing dates keep their order.
func SortByDueDate(items []Invoice) []Invoice {
	out := make([]Invoice, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
	return out
}

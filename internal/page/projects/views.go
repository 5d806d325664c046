package projects

import (
	"fmt"
	"sort"
	"strings"
)

// Tab selects the status filter of the derived list view.
type Tab string

const (
	TabAll         Tab = "all"
	TabActive      Tab = "active"
	TabCompleted   Tab = "completed"
	TabOutstanding Tab = "outstanding"
)

// ParseTab validates a tab name from a surface.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "", TabAll:
		return TabAll, nil
	case TabActive, TabCompleted, TabOutstanding:
		return Tab(s), nil
	default:
		return "", fmt.Errorf("unknown tab %q", s)
	}
}

// Filter returns the projects matching the tab and the case-insensitive
// search over title and client display name. It is a pure projection; the
// input is never mutated. The outstanding tab keeps any project still owing
// payment.
func Filter(items []Project, clientName func(int64) string, tab Tab, search string) []Project {
	q := strings.ToLower(search)
	out := make([]Project, 0, len(items))
	for _, p := range items {
		if !matchesTab(p, tab) {
			continue
		}
		if q != "" {
			name := ""
			if clientName != nil {
				name = clientName(p.Client)
			}
			if !strings.Contains(strings.ToLower(p.Title), q) &&
				!strings.Contains(strings.ToLower(name), q) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func matchesTab(p Project, tab Tab) bool {
	switch tab {
	case TabActive:
		return p.Status == StatusActive
	case TabCompleted:
		return p.Status == StatusCompleted
	case TabOutstanding:
		return p.PaymentStatus == PaymentUnpaid || p.PaymentStatus == PaymentPartial
	default:
		return true
	}
}

// IsOverdue reports whether a project's due date has passed and the project
// is not completed. Dates compare lexicographically in ISO form.
func IsOverdue(p Project, today string) bool {
	if p.DueDate == "" {
		return false
	}
	return p.Status != StatusCompleted && p.DueDate < today
}

// SortField names a date field projects can be ordered by.
type SortField string

const (
	SortByStartDate SortField = "start_date"
	SortByDueDate   SortField = "due_date"
)

// SortByDate returns a copy ordered by the chosen date ascending. Projects
// without the date sort last; the order of equal and missing dates is
// stable.
func SortByDate(items []Project, field SortField) []Project {
	out := make([]Project, len(items))
	copy(out, items)
	date := func(p Project) string {
		if field == SortByStartDate {
			return p.StartDate
		}
		return p.DueDate
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := date(out[i]), date(out[j])
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

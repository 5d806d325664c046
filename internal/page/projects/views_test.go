package projects_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkaranja/freelancecrm/internal/page/projects"
)

func projectIDs(items []projects.Project) []int64 {
	out := make([]int64, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func sampleProjects() []projects.Project {
	return []projects.Project{
		{ID: 1, Title: "Website redesign", Client: 7, Status: projects.StatusActive, PaymentStatus: projects.PaymentUnpaid},
		{ID: 2, Title: "Mobile app", Client: 8, Status: projects.StatusCompleted, PaymentStatus: projects.PaymentPaid},
		{ID: 3, Title: "Brand refresh", Client: 7, Status: projects.StatusOnHold, PaymentStatus: projects.PaymentPartial},
	}
}

func sampleClientName(id int64) string {
	switch id {
	case 7:
		return "Acme Inc."
	case 8:
		return "Globex"
	default:
		return ""
	}
}

func TestParseTab(t *testing.T) {
	tab, err := projects.ParseTab("")
	require.NoError(t, err)
	require.Equal(t, projects.TabAll, tab)

	tab, err = projects.ParseTab("outstanding")
	require.NoError(t, err)
	require.Equal(t, projects.TabOutstanding, tab)

	_, err = projects.ParseTab("archived")
	require.Error(t, err)
}

func TestFilter_Tabs(t *testing.T) {
	items := sampleProjects()

	require.Equal(t, []int64{1, 2, 3}, projectIDs(projects.Filter(items, sampleClientName, projects.TabAll, "")))
	require.Equal(t, []int64{1}, projectIDs(projects.Filter(items, sampleClientName, projects.TabActive, "")))
	require.Equal(t, []int64{2}, projectIDs(projects.Filter(items, sampleClientName, projects.TabCompleted, "")))
	// Outstanding keeps anything still owing payment, regardless of status.
	require.Equal(t, []int64{1, 3}, projectIDs(projects.Filter(items, sampleClientName, projects.TabOutstanding, "")))
}

func TestFilter_SearchTitleAndClientName(t *testing.T) {
	items := sampleProjects()

	require.Equal(t, []int64{1}, projectIDs(projects.Filter(items, sampleClientName, projects.TabAll, "WEBSITE")))
	require.Equal(t, []int64{1, 3}, projectIDs(projects.Filter(items, sampleClientName, projects.TabAll, "acme")))
	require.Empty(t, projects.Filter(items, sampleClientName, projects.TabAll, "nomatch"))

	// A nil resolver only disables the client-name side of the match.
	require.Equal(t, []int64{1}, projectIDs(projects.Filter(items, nil, projects.TabAll, "website")))
	require.Empty(t, projects.Filter(items, nil, projects.TabAll, "acme"))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := sampleProjects()
	_ = projects.Filter(items, sampleClientName, projects.TabActive, "website")
	require.Equal(t, []int64{1, 2, 3}, projectIDs(items))
}

func TestIsOverdue(t *testing.T) {
	today := "2026-08-29"

	require.True(t, projects.IsOverdue(projects.Project{DueDate: "2026-08-28", Status: projects.StatusActive}, today))
	require.False(t, projects.IsOverdue(projects.Project{DueDate: "2026-08-29", Status: projects.StatusActive}, today))
	require.False(t, projects.IsOverdue(projects.Project{DueDate: "2026-08-28", Status: projects.StatusCompleted}, today))
	require.False(t, projects.IsOverdue(projects.Project{Status: projects.StatusActive}, today))
	// On hold still counts as overdue when past due.
	require.True(t, projects.IsOverdue(projects.Project{DueDate: "2026-01-01", Status: projects.StatusOnHold}, today))
}

func TestSortByDate_EmptyLastAndStable(t *testing.T) {
	items := []projects.Project{
		{ID: 1, DueDate: ""},
		{ID: 2, DueDate: "2026-03-01"},
		{ID: 3, DueDate: "2026-01-15"},
		{ID: 4, DueDate: ""},
		{ID: 5, DueDate: "2026-03-01"},
	}

	sorted := projects.SortByDate(items, projects.SortByDueDate)
	require.Equal(t, []int64{3, 2, 5, 1, 4}, projectIDs(sorted))
	// The input keeps its order; sorting returns a copy.
	require.Equal(t, []int64{1, 2, 3, 4, 5}, projectIDs(items))
}

func TestSortByDate_StartDateField(t *testing.T) {
	items := []projects.Project{
		{ID: 1, StartDate: "2026-06-01"},
		{ID: 2, StartDate: "2026-05-01"},
	}
	sorted := projects.SortByDate(items, projects.SortByStartDate)
	require.Equal(t, []int64{2, 1}, projectIDs(sorted))
}

package invoices_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkaranja/freelancecrm/internal/page/invoices"
)

func invoiceIDs(items []invoices.Invoice) []int64 {
	out := make([]int64, 0, len(items))
	for _, inv := range items {
		out = append(out, inv.ID)
	}
	return out
}

func TestParseTab(t *testing.T) {
	tab, err := invoices.ParseTab("")
	require.NoError(t, err)
	require.Equal(t, invoices.TabAll, tab)

	tab, err = invoices.ParseTab("overdue")
	require.NoError(t, err)
	require.Equal(t, invoices.TabOverdue, tab)

	_, err = invoices.ParseTab("archived")
	require.Error(t, err)
}

func TestSortByDueDate_EmptyLastAndStable(t *testing.T) {
	items := []invoices.Invoice{
		{ID: 1},
		{ID: 2, DueDate: "2026-02-01"},
		{ID: 3, DueDate: "2026-01-01"},
		{ID: 4, DueDate: "2026-02-01"},
	}

	sorted := invoices.SortByDueDate(items)
	require.Equal(t, []int64{3, 2, 4, 1}, invoiceIDs(sorted))
	require.Equal(t, []int64{1, 2, 3, 4}, invoiceIDs(items))
}

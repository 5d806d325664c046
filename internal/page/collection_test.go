package page_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkaranja/freelancecrm/internal/page"
)

type item struct {
	ID   int64
	Name string
}

func (i item) RecordID() int64 { return i.ID }

func ids(items []item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestCollection_ReplaceAll_DropsDuplicateIDs(t *testing.T) {
	var c page.Collection[item]
	c.ReplaceAll([]item{
		{ID: 1, Name: "first"},
		{ID: 2, Name: "second"},
		{ID: 1, Name: "shadowed"},
	})

	require.Equal(t, 2, c.Len())
	first, ok := c.Find(1)
	require.True(t, ok)
	require.Equal(t, "first", first.Name)
}

func TestCollection_Prepend_MovesExistingIDToFront(t *testing.T) {
	var c page.Collection[item]
	c.ReplaceAll([]item{{ID: 1}, {ID: 2}, {ID: 3}})

	c.Prepend(item{ID: 3, Name: "bumped"})

	require.Equal(t, []int64{3, 1, 2}, ids(c.Items()))
	require.Equal(t, 3, c.Len())
}

func TestCollection_Set_ReplacesInPlace(t *testing.T) {
	var c page.Collection[item]
	c.ReplaceAll([]item{{ID: 1}, {ID: 2}, {ID: 3}})

	c.Set(2, item{ID: 2, Name: "renamed"})

	require.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
	got, ok := c.Find(2)
	require.True(t, ok)
	require.Equal(t, "renamed", got.Name)
}

func TestCollection_Remove_KeepsOrder(t *testing.T) {
	var c page.Collection[item]
	c.ReplaceAll([]item{{ID: 1}, {ID: 2}, {ID: 3}})

	c.Remove(2)

	require.Equal(t, []int64{1, 3}, ids(c.Items()))
	c.Remove(99)
	require.Equal(t, []int64{1, 3}, ids(c.Items()))
}

func TestCollection_SnapshotRestore_RoundTrips(t *testing.T) {
	var c page.Collection[item]
	c.ReplaceAll([]item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})

	snapshot := c.Snapshot()
	c.Remove(1)
	c.Set(2, item{ID: 2, Name: "mutated"})

	c.Restore(snapshot)
	require.Equal(t, []int64{1, 2}, ids(c.Items()))
	b, _ := c.Find(2)
	require.Equal(t, "b", b.Name)
}

func TestCollection_Items_ReturnsCopy(t *testing.T) {
	var c page.Collection[item]
	c.ReplaceAll([]item{{ID: 1, Name: "a"}})

	items := c.Items()
	items[0].Name = "mutated"

	got, _ := c.Find(1)
	require.Equal(t, "a", got.Name)
}

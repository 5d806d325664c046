package page

// Collection is an ordered, id-unique sequence of records mirroring the
// server's collection for one page. Newest-created records sit at the front.
// It is owned by exactly one page state and is never shared.
type Collection[T Record] struct {
	items []T
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the records in collection order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the record with the given id.
func (c *Collection[T]) Find(id int64) (T, bool) {
	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// ReplaceAll replaces the whole collection with the server's ordered
// sequence. Duplicate ids keep their first occurrence.
func (c *Collection[T]) ReplaceAll(items []T) {
	seen := make(map[int64]bool, len(items))
	next := make([]T, 0, len(items))
	for _, item := range items {
		if seen[item.RecordID()] {
			continue
		}
		seen[item.RecordID()] = true
		next = append(next, item)
	}
	c.items = next
}

// Prepend inserts a record at position 0. Any existing record with the same
// id is dropped first so the id-uniqueness invariant holds.
func (c *Collection[T]) Prepend(item T) {
	c.Remove(item.RecordID())
	c.items = append([]T{item}, c.items...)
}

// Set replaces the record with the given id in place, preserving order.
// It reports whether the id was present.
func (c *Collection[T]) Set(id int64, item T) bool {
	for i := range c.items {
		if c.items[i].RecordID() == id {
			c.items[i] = item
			return true
		}
	}
	return false
}

// Remove deletes the record with the given id, preserving the relative
// order of the rest. It reports whether the id was present.
func (c *Collection[T]) Remove(id int64) bool {
	for i := range c.items {
		if c.items[i].RecordID() == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current sequence for later Restore.
func (c *Collection[T]) Snapshot() []T {
	return c.Items()
}

// Restore replaces the collection with a previously taken snapshot.
func (c *Collection[T]) Restore(snapshot []T) {
	c.items = make([]T, len(snapshot))
	copy(c.items, snapshot)
}

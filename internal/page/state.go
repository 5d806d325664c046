package page

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// State carries everything a page owns for one mounted view: the collection,
// the load status, the page-scoped error message and the per-record
// interaction machine. Mutations follow the optimistic protocol: apply
// locally first, send the request, keep the result on success and restore
// the captured snapshot on failure.
//
// The lock is held only for the synchronous read-modify-write around a
// request, never across the request itself, so records stay interactive
// while another record's save is in flight. Nothing guards against an
// earlier response settling after a later optimistic state for the same
// record; that race is accepted.
type State[T Record] struct {
	mu           sync.Mutex
	status       Status
	errMsg       string
	collection   Collection[T]
	interactions map[int64]Interaction
	logger       *slog.Logger
}

// NewState creates page state in the Loading status.
func NewState[T Record](logger *slog.Logger) *State[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &State[T]{
		status:       StatusLoading,
		interactions: make(map[int64]Interaction),
		logger:       logger,
	}
}

// Status returns the load status.
func (s *State[T]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the page-scoped error message, empty when the last operation
// succeeded.
func (s *State[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Items returns a copy of the collection in order.
func (s *State[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Items()
}

// Len returns the collection size.
func (s *State[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Len()
}

// Find returns the record with the given id.
func (s *State[T]) Find(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Find(id)
}

// Interaction returns the transient state for a record id.
func (s *State[T]) Interaction(id int64) Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interactions[id]
}

func (s *State[T]) setInteraction(id int64, it Interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it == InteractionIdle {
		delete(s.interactions, id)
		return
	}
	s.interactions[id] = it
}

// Load runs the fetch and replaces the collection wholesale with its result.
// On failure the collection stays empty, the status becomes LoadFailed and
// errMsg is shown; there is no automatic retry. Load is also the remount
// path out of LoadFailed.
func (s *State[T]) Load(ctx context.Context, errMsg string, fetch func(context.Context) ([]T, error)) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.errMsg = ""
	s.collection.ReplaceAll(nil)
	s.mu.Unlock()

	items, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusLoadFailed
		s.errMsg = errMsg
		s.logger.Error("page load failed", "error", err)
		return fmt.Errorf("loading page: %w", err)
	}
	s.collection.ReplaceAll(items)
	s.status = StatusLoaded
	return nil
}

// Insert prepends a server-confirmed record. Creation is not optimistic:
// the server assigns the id, so this runs only after the create request
// succeeded.
func (s *State[T]) Insert(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection.Prepend(item)
}

// Patch applies a field-level optimistic update to one record. The current
// record is captured as the rollback snapshot, apply produces the optimistic
// replacement visible immediately, then send issues the partial update. On
// failure the snapshot is restored in full and errMsg becomes the page
// error. A missing id is a no-op and nothing is sent.
func (s *State[T]) Patch(ctx context.Context, id int64, errMsg string, apply func(T) T, send func(context.Context) error) error {
	s.mu.Lock()
	snapshot, ok := s.collection.Find(id)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	s.errMsg = ""
	s.collection.Set(id, apply(snapshot))
	s.interactions[id] = InteractionSaving
	s.mu.Unlock()

	err := send(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.interactions, id)
	if err != nil {
		s.collection.Set(id, snapshot)
		s.errMsg = errMsg
		s.logger.Warn("patch rolled back", "id", id, "error", err)
		return fmt.Errorf("patching record %d: %w", id, err)
	}
	return nil
}

// RequestDelete opens the inline delete confirmation for a record. It
// reports whether the record exists. Confirmations are independent per id;
// opening one does not affect others.
func (s *State[T]) RequestDelete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collection.Find(id); !ok {
		return false
	}
	s.interactions[id] = InteractionConfirmingDelete
	return true
}

// ConfirmDelete removes the record optimistically and issues the delete
// request. The whole collection is captured so a failure restores order and
// membership exactly. Confirming an id that was never requested is a no-op.
func (s *State[T]) ConfirmDelete(ctx context.Context, id int64, errMsg string, send func(context.Context) error) error {
	s.mu.Lock()
	if s.interactions[id] != InteractionConfirmingDelete {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.collection.Snapshot()
	s.errMsg = ""
	s.collection.Remove(id)
	s.interactions[id] = InteractionSaving
	s.mu.Unlock()

	err := send(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.interactions, id)
	if err != nil {
		s.collection.Restore(snapshot)
		s.errMsg = errMsg
		s.logger.Warn("delete rolled back", "id", id, "error", err)
		return fmt.Errorf("deleting record %d: %w", id, err)
	}
	return nil
}

// StartEditing moves a record into the Editing interaction.
func (s *State[T]) StartEditing(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collection.Find(id); !ok {
		return false
	}
	s.interactions[id] = InteractionEditing
	return true
}

// RequestStatusChange opens the inline confirmation for a status toggle.
func (s *State[T]) RequestStatusChange(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collection.Find(id); !ok {
		return false
	}
	s.interactions[id] = InteractionConfirmingStatus
	return true
}

// Cancel returns a record to Idle, dismissing any open editor or
// confirmation.
func (s *State[T]) Cancel(id int64) {
	s.setInteraction(id, InteractionIdle)
}

// SetError sets the page-scoped error message. Controllers use it for
// failures that never reach the collection, such as create validation.
func (s *State[T]) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// ClearError clears the page-scoped error message.
func (s *State[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Package page implements the shared list-and-mutate state used by the
// clients, projects and invoices pages: an ordered id-unique collection
// mirroring the server, an optimistic patch/rollback engine, and the
// per-record interaction state machine behind inline edits and confirmed
// deletes.
package page

// Record is an entity held in a page collection. Identifiers are assigned
// by the server.
type Record interface {
	RecordID() int64
}

// Status is the load lifecycle of a page. A page starts Loading; it ends in
// Loaded (possibly with an empty collection) or LoadFailed. There is no way
// out of LoadFailed except running the loader again.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusLoadFailed
)

// String returns the status display name.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusLoadFailed:
		return "load-failed"
	default:
		return "unknown"
	}
}

// Interaction is the transient per-record state behind inline controls,
// one machine per record instead of parallel "which id is editing / which
// id is confirming" flag maps:
//
//	Idle -> Editing -> Saving -> Idle
//	Idle -> ConfirmingDelete -> Saving -> Idle
//	Idle -> ConfirmingStatus -> Saving -> Idle
//
// A failed save also lands on Idle; the rollback happens in the collection,
// not here.
type Interaction int

const (
	InteractionIdle Interaction = iota
	InteractionEditing
	InteractionConfirmingDelete
	InteractionConfirmingStatus
	InteractionSaving
)

// String returns the interaction display name.
func (i Interaction) String() string {
	switch i {
	case InteractionIdle:
		return "idle"
	case InteractionEditing:
		return "editing"
	case InteractionConfirmingDelete:
		return "confirming-delete"
	case InteractionConfirmingStatus:
		return "confirming-status"
	case InteractionSaving:
		return "saving"
	default:
		return "unknown"
	}
}

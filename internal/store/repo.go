package store

import (
	"context"
	"time"

	"github.com/abhisek/transform90/internal/progress"
)

// KVRepo is the key/value collaborator the tracker persists through.
type KVRepo interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// SnapshotData captures the full progress state at a point in time.
type SnapshotData struct {
	Version int            `json:"version"`
	State   progress.State `json:"state"`
}

// SnapshotVersion is the current SnapshotData layout.
const SnapshotVersion = 1

// Snapshot is a checkpoint of the progress state, taken after a day is
// recorded. Sequence is the recorded day index.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages progress checkpoints.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Get returns the newest snapshot with the given sequence, or nil.
	Get(ctx context.Context, sequence int64) (*Snapshot, error)

	// List returns snapshots newest first, without their data.
	List(ctx context.Context, limit int) ([]Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// EventKind names a progression event.
type EventKind string

const (
	EventDayCompleted  EventKind = "day-completed"
	EventDayMissed     EventKind = "day-missed"
	EventLevelUp       EventKind = "level-up"
	EventBookComplete  EventKind = "book-complete"
	EventBookSwitched  EventKind = "book-switched"
	EventWeeklyReview  EventKind = "weekly-review"
	EventRestored      EventKind = "restored"
	EventSyncPushed    EventKind = "sync-pushed"
	EventSyncFailed    EventKind = "sync-failed"
	EventPersistFailed EventKind = "persist-failed"
)

// Event is one entry of the append-only progression log.
type Event struct {
	Sequence  int64     `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	Kind      EventKind `json:"kind"`
	Day       int       `json:"day"`
	Detail    string    `json:"detail,omitempty"`
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int         // max results (0 = unlimited)
	After int64       // sequence > After
	Kinds []EventKind // empty = all kinds
}

// EventRepo provides append and query access to progression events.
type EventRepo interface {
	// Append records an event. Sequence and a zero Timestamp are filled in.
	Append(ctx context.Context, ev Event) error

	// Query returns matching events in sequence order.
	Query(ctx context.Context, opts QueryOpts) ([]Event, error)
}

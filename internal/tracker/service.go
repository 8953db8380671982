// Package tracker owns the live progress state of one user and applies
// every user action to it.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/transform90/internal/backup"
	"github.com/abhisek/transform90/internal/cloud"
	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/store"
)

// KV keys of the persisted state and of today's unfinished inputs.
const (
	KeyState        = "tracker-data"
	KeyDraft        = "tracker-draft"
	keyCorruptState = "tracker-data.corrupt"
)

// ErrCheckpointNotFound is returned when restoring an unknown checkpoint.
var ErrCheckpointNotFound = errors.New("checkpoint not found")

// ErrSyncDisabled is returned by sync operations when no syncer is wired.
var ErrSyncDisabled = errors.New("sync is not available")

// Clearer erases all persisted data.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Options wires a Service to its collaborators. Only KV is required.
type Options struct {
	KV          store.KVRepo
	Snapshots   store.SnapshotRepo
	Events      store.EventRepo
	Clearer     Clearer
	Syncer      *cloud.AutoSyncer
	Logger      *zap.Logger
	Checkpoints int

	AllowIncomplete bool
	SyncInterval    time.Duration

	// Now replaces time.Now.
	Now func() time.Time
	// NewID replaces the record ID generator.
	NewID func() string
}

// Service serializes all reads and writes of the progress state.
type Service struct {
	mu    sync.Mutex
	opts  Options
	log   *zap.Logger
	state progress.State
	draft Draft
}

// Open loads the persisted state (or starts a fresh program) and today's
// draft.
func Open(ctx context.Context, opts Options) (*Service, error) {
	if opts.KV == nil {
		return nil, errors.New("tracker: KV repo is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Checkpoints <= 0 {
		opts.Checkpoints = 30
	}
	if opts.SyncInterval <= 0 {
		opts.SyncInterval = 5 * time.Minute
	}

	s := &Service{opts: opts, log: opts.Logger.Named("tracker")}
	if err := s.loadState(ctx); err != nil {
		return nil, err
	}
	if err := s.loadDraft(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) loadState(ctx context.Context) error {
	raw, ok, err := s.opts.KV.Get(ctx, KeyState)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if !ok {
		s.log.Info("starting a new program")
		s.state = progress.Default()
		return nil
	}
	st, err := backup.Unmarshal([]byte(raw))
	if err != nil {
		// Keep the unreadable copy so it can be recovered by hand.
		s.log.Warn("stored state is unreadable; starting fresh", zap.Error(err))
		if err := s.opts.KV.Set(ctx, keyCorruptState, raw); err != nil {
			s.log.Warn("preserve unreadable state", zap.Error(err))
		}
		s.state = progress.Default()
		return nil
	}
	s.state = st
	return nil
}

// State returns a copy of the current state.
func (s *Service) State() progress.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Service) now() time.Time { return s.opts.Now() }

// persist writes the state under KeyState. Failures are logged and
// recorded; the in-memory state stays authoritative.
func (s *Service) persist(ctx context.Context) {
	data, err := backup.Marshal(s.state)
	if err == nil {
		err = s.opts.KV.Set(ctx, KeyState, string(data))
	}
	if err != nil {
		s.log.Warn("persist state failed", zap.Int("day", s.state.CurrentDay), zap.Error(err))
		s.event(ctx, store.EventPersistFailed, s.state.CurrentDay, err.Error())
	}
}

// event appends to the event log when one is wired.
func (s *Service) event(ctx context.Context, kind store.EventKind, day int, detail string) {
	if s.opts.Events == nil {
		return
	}
	err := s.opts.Events.Append(ctx, store.Event{Kind: kind, Day: day, Detail: detail, Timestamp: s.now()})
	if err != nil {
		s.log.Warn("append event failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

// checkpoint saves a snapshot for the day just recorded and prunes old ones.
func (s *Service) checkpoint(ctx context.Context, day int) {
	if s.opts.Snapshots == nil {
		return
	}
	err := s.opts.Snapshots.Save(ctx, &store.Snapshot{
		Sequence:  int64(day),
		Timestamp: s.now(),
		Data:      store.SnapshotData{Version: store.SnapshotVersion, State: s.state.Clone()},
	})
	if err == nil {
		err = s.opts.Snapshots.Prune(ctx, s.opts.Checkpoints)
	}
	if err != nil {
		s.log.Warn("checkpoint failed", zap.Int("day", day), zap.Error(err))
	}
}

// autoSync pushes st through the syncer, if any. It must be called without
// holding s.mu.
func (s *Service) autoSync(ctx context.Context, st progress.State) {
	if s.opts.Syncer == nil {
		return
	}
	pushed, err := s.opts.Syncer.Sync(ctx, st)
	switch {
	case err != nil:
		s.event(ctx, store.EventSyncFailed, st.CurrentDay, err.Error())
	case pushed:
		s.event(ctx, store.EventSyncPushed, st.CurrentDay, "")
	}
}

// RunAutoSync pushes the state every sync interval until ctx is done.
func (s *Service) RunAutoSync(ctx context.Context) {
	if s.opts.Syncer == nil {
		return
	}
	s.opts.Syncer.Run(ctx, s.opts.SyncInterval, s.State)
}

// Events returns the progression log.
func (s *Service) Events(ctx context.Context, opts store.QueryOpts) ([]store.Event, error) {
	if s.opts.Events == nil {
		return nil, nil
	}
	return s.opts.Events.Query(ctx, opts)
}

package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/transform90/internal/analytics"
	"github.com/abhisek/transform90/internal/backup"
	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/store"
)

// SwitchBook makes title the current book.
func (s *Service) SwitchBook(ctx context.Context, title string) error {
	s.mu.Lock()
	next, err := progress.SwitchBook(s.state, title)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	s.event(ctx, store.EventBookSwitched, s.state.CurrentDay, title)
	s.persist(ctx)
	st := s.state.Clone()
	s.mu.Unlock()

	s.autoSync(ctx, st)
	return nil
}

// NextBook switches to the book after the current one and returns it.
func (s *Service) NextBook(ctx context.Context) (string, error) {
	s.mu.Lock()
	title := program.NextBook(s.state.CurrentBook)
	s.mu.Unlock()
	return title, s.SwitchBook(ctx, title)
}

// BackupCode returns the backup code of the current state.
func (s *Service) BackupCode() (string, error) {
	return backup.Encode(s.State())
}

// apply replaces the state with a restored one and persists it.
func (s *Service) apply(ctx context.Context, st progress.State, source string) {
	s.mu.Lock()
	s.state = st
	s.event(ctx, store.EventRestored, st.CurrentDay, source)
	s.persist(ctx)
	snap := s.state.Clone()
	s.mu.Unlock()

	s.autoSync(ctx, snap)
}

// RestoreFromCode replaces the state with the one in code. Nothing changes
// when the code is invalid.
func (s *Service) RestoreFromCode(ctx context.Context, code string) error {
	st, err := backup.Decode(code)
	if err != nil {
		return err
	}
	s.apply(ctx, st, "code")
	return nil
}

// RestoreCheckpoint replaces the state with the checkpoint taken after day.
func (s *Service) RestoreCheckpoint(ctx context.Context, day int) error {
	if s.opts.Snapshots == nil {
		return ErrCheckpointNotFound
	}
	snap, err := s.opts.Snapshots.Get(ctx, int64(day))
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("%w: day %d", ErrCheckpointNotFound, day)
	}
	st := progress.Normalize(snap.Data.State)
	if err := progress.CheckInvariants(st); err != nil {
		return fmt.Errorf("checkpoint for day %d is invalid: %w", day, err)
	}
	s.apply(ctx, st, fmt.Sprintf("checkpoint %d", day))
	return nil
}

// Checkpoints lists the stored checkpoints, newest first.
func (s *Service) Checkpoints(ctx context.Context, limit int) ([]store.Snapshot, error) {
	if s.opts.Snapshots == nil {
		return nil, nil
	}
	return s.opts.Snapshots.List(ctx, limit)
}

// Reset erases all data and starts a fresh program.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.Clearer != nil {
		if err := s.opts.Clearer.Clear(ctx); err != nil {
			return fmt.Errorf("erase data: %w", err)
		}
	} else {
		for _, k := range []string{KeyState, KeyDraft} {
			if err := s.opts.KV.Delete(ctx, k); err != nil {
				return fmt.Errorf("erase data: %w", err)
			}
		}
	}
	s.state = progress.Default()
	s.clearDraft(ctx)
	s.log.Info("all data erased")
	return nil
}

// Report computes the analytics report as of now.
func (s *Service) Report() analytics.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analytics.BuildReport(s.state, s.now())
}

// SyncStatus describes the sync setup.
type SyncStatus struct {
	Enabled  bool      `json:"enabled"`
	Identity string    `json:"identity,omitempty"`
	LastSync time.Time `json:"lastSync,omitzero"`
}

// SyncStatus returns the current sync setup.
func (s *Service) SyncStatus(ctx context.Context) (SyncStatus, error) {
	if s.opts.Syncer == nil {
		return SyncStatus{}, nil
	}
	id, ok, err := s.opts.Syncer.Identity(ctx)
	if err != nil {
		return SyncStatus{}, err
	}
	st := SyncStatus{Enabled: ok, Identity: id}
	if last, ok, err := s.opts.Syncer.LastSync(ctx); err == nil && ok {
		st.LastSync = last
	}
	return st, nil
}

// EnableSync stores identity and pushes the current state right away. The
// identity is kept even when that first push fails.
func (s *Service) EnableSync(ctx context.Context, identity string) error {
	if s.opts.Syncer == nil {
		return ErrSyncDisabled
	}
	if err := s.opts.Syncer.SetIdentity(ctx, identity); err != nil {
		return err
	}
	return s.PushNow(ctx)
}

// PushNow backs the state up immediately, ignoring the throttle.
func (s *Service) PushNow(ctx context.Context) error {
	if s.opts.Syncer == nil {
		return ErrSyncDisabled
	}
	st := s.State()
	if err := s.opts.Syncer.PushNow(ctx, st); err != nil {
		s.event(ctx, store.EventSyncFailed, st.CurrentDay, err.Error())
		return err
	}
	s.event(ctx, store.EventSyncPushed, st.CurrentDay, "")
	return nil
}

// RestoreFromCloud replaces the state with the remote backup.
func (s *Service) RestoreFromCloud(ctx context.Context) error {
	if s.opts.Syncer == nil {
		return ErrSyncDisabled
	}
	st, err := s.opts.Syncer.Pull(ctx)
	if err != nil {
		return err
	}
	s.apply(ctx, st, "cloud")
	return nil
}

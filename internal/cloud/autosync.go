package cloud

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/store"
)

// AutoSyncer pushes the state to a Remote at most once per throttle window.
type AutoSyncer struct {
	remote   Remote
	kv       store.KVRepo
	logger   *zap.Logger
	throttle time.Duration
	identity string // config override; empty means use the stored identity
	now      func() time.Time
}

// SyncerOption configures an AutoSyncer.
type SyncerOption func(*AutoSyncer)

// WithIdentity pins the identity instead of reading it from the store.
func WithIdentity(id string) SyncerOption {
	return func(s *AutoSyncer) { s.identity = id }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SyncerOption {
	return func(s *AutoSyncer) { s.now = now }
}

// NewAutoSyncer returns a syncer pushing to remote and keeping its
// bookkeeping in kv.
func NewAutoSyncer(remote Remote, kv store.KVRepo, logger *zap.Logger, throttle time.Duration, opts ...SyncerOption) *AutoSyncer {
	s := &AutoSyncer{
		remote:   remote,
		kv:       kv,
		logger:   logger,
		throttle: throttle,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Remote returns the remote the syncer pushes to.
func (s *AutoSyncer) Remote() Remote { return s.remote }

// Identity returns the sync identity, if one is set.
func (s *AutoSyncer) Identity(ctx context.Context) (string, bool, error) {
	if s.identity != "" {
		return s.identity, true, nil
	}
	id, ok, err := s.kv.Get(ctx, KeySyncIdentity)
	if err != nil {
		return "", false, fmt.Errorf("load sync identity: %w", err)
	}
	return id, ok && id != "", nil
}

// SetIdentity stores id as the sync identity.
func (s *AutoSyncer) SetIdentity(ctx context.Context, id string) error {
	if err := ValidateIdentity(id); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeySyncIdentity, id); err != nil {
		return fmt.Errorf("store sync identity: %w", err)
	}
	if s.identity != "" && s.identity != id {
		s.logger.Warn("sync identity is pinned by configuration; stored identity is ignored",
			zap.String("configured", s.identity), zap.String("stored", id))
	}
	return nil
}

// LastSync returns the time of the last successful push.
func (s *AutoSyncer) LastSync(ctx context.Context) (time.Time, bool, error) {
	v, ok, err := s.kv.Get(ctx, KeyLastSync)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// An unreadable mark must not block syncing forever.
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

// Sync pushes s unless sync is not set up or the last push is younger than
// the throttle window. It reports whether a push happened. Failures are
// logged and returned; they are never retried here.
func (s *AutoSyncer) Sync(ctx context.Context, st progress.State) (bool, error) {
	id, ok, err := s.Identity(ctx)
	if err != nil || !ok {
		return false, err
	}
	last, ok, err := s.LastSync(ctx)
	if err != nil {
		return false, err
	}
	if ok && s.now().Sub(last) <= s.throttle {
		s.logger.Debug("sync throttled", zap.Time("last_sync", last))
		return false, nil
	}
	if err := s.push(ctx, id, st); err != nil {
		return false, err
	}
	return true, nil
}

// PushNow pushes s regardless of the throttle window.
func (s *AutoSyncer) PushNow(ctx context.Context, st progress.State) error {
	id, ok, err := s.Identity(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoIdentity
	}
	return s.push(ctx, id, st)
}

// Pull fetches the backup of the configured identity.
func (s *AutoSyncer) Pull(ctx context.Context) (progress.State, error) {
	id, ok, err := s.Identity(ctx)
	if err != nil {
		return progress.State{}, err
	}
	if !ok {
		return progress.State{}, ErrNoIdentity
	}
	return s.remote.Pull(ctx, id)
}

func (s *AutoSyncer) push(ctx context.Context, id string, st progress.State) error {
	if err := s.remote.Push(ctx, id, st); err != nil {
		s.logger.Warn("sync push failed", zap.String("identity", id), zap.Error(err))
		return err
	}
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.kv.Set(ctx, KeyLastSync, stamp); err != nil {
		s.logger.Warn("record last sync", zap.Error(err))
	}
	s.logger.Info("state synced", zap.String("identity", id), zap.Int("day", st.CurrentDay))
	return nil
}

// Run calls Sync with a fresh snapshot every interval until ctx is done.
func (s *AutoSyncer) Run(ctx context.Context, interval time.Duration, snapshot func() progress.State) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sync(ctx, snapshot()); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Debug("periodic sync skipped", zap.Error(err))
			}
		}
	}
}

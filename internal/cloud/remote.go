// Package cloud backs the progress state up to a remote keyed by the
// user's sync identity (an email address).
package cloud

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/transform90/internal/backup"
	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/store"
)

// KV keys shared with earlier versions of the tracker.
const (
	KeySyncIdentity = "transform90_sync_email"
	KeyLastSync     = "transform90_last_sync"
	backupKeyPrefix = "transform90_backup_"
)

var (
	// ErrNoBackup is returned by Pull when the identity has no backup.
	ErrNoBackup = errors.New("no backup found")

	// ErrInvalidIdentity is returned for identities that are not emails.
	ErrInvalidIdentity = errors.New("invalid sync identity")

	// ErrNoIdentity is returned when sync has not been set up.
	ErrNoIdentity = errors.New("sync is not set up")
)

// ValidateIdentity checks that id looks like an email address.
func ValidateIdentity(id string) error {
	if strings.TrimSpace(id) == "" || !strings.Contains(id, "@") {
		return fmt.Errorf("%w: %q", ErrInvalidIdentity, id)
	}
	return nil
}

// Remote stores one backup per identity.
type Remote interface {
	Push(ctx context.Context, identity string, s progress.State) error
	Pull(ctx context.Context, identity string) (progress.State, error)
}

// LocalRemote keeps backups in the local key/value store, one key per
// identity. It is also what the HTTP API serves backups from.
type LocalRemote struct {
	kv store.KVRepo
}

// NewLocalRemote returns a LocalRemote on kv.
func NewLocalRemote(kv store.KVRepo) *LocalRemote {
	return &LocalRemote{kv: kv}
}

// BackupKey returns the key a backup for identity is stored under.
func BackupKey(identity string) string {
	return backupKeyPrefix + base64.StdEncoding.EncodeToString([]byte(identity))
}

func (r *LocalRemote) Push(ctx context.Context, identity string, s progress.State) error {
	if err := ValidateIdentity(identity); err != nil {
		return err
	}
	data, err := backup.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, BackupKey(identity), string(data)); err != nil {
		return fmt.Errorf("store backup: %w", err)
	}
	return nil
}

func (r *LocalRemote) Pull(ctx context.Context, identity string) (progress.State, error) {
	if err := ValidateIdentity(identity); err != nil {
		return progress.State{}, err
	}
	data, ok, err := r.kv.Get(ctx, BackupKey(identity))
	if err != nil {
		return progress.State{}, fmt.Errorf("load backup: %w", err)
	}
	if !ok {
		return progress.State{}, ErrNoBackup
	}
	return backup.Unmarshal([]byte(data))
}

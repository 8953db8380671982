package cloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/abhisek/transform90/internal/backup"
	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/store"
)

func openKV(t *testing.T) store.KVRepo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.KVRepo()
}

// fakeRemote records pushes and can be told to fail.
type fakeRemote struct {
	mu     sync.Mutex
	pushes int
	fail   error
	last   progress.State
}

func (f *fakeRemote) Push(_ context.Context, _ string, s progress.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.pushes++
	f.last = s
	return nil
}

func (f *fakeRemote) Pull(context.Context, string) (progress.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushes == 0 {
		return progress.State{}, ErrNoBackup
	}
	return f.last, nil
}

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes
}

// mapKV is an in-process KVRepo; it starts no goroutines.
type mapKV struct {
	mu sync.Mutex
	m  map[string]string
}

func newMapKV() *mapKV { return &mapKV{m: map[string]string{}} }

func (k *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *mapKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}

func (k *mapKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.m, key)
	return nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestValidateIdentity(t *testing.T) {
	assert.NoError(t, ValidateIdentity("me@example.com"))
	assert.ErrorIs(t, ValidateIdentity(""), ErrInvalidIdentity)
	assert.ErrorIs(t, ValidateIdentity("not-an-email"), ErrInvalidIdentity)
}

func TestLocalRemote_RoundTrip(t *testing.T) {
	kv := openKV(t)
	r := NewLocalRemote(kv)
	ctx := context.Background()

	_, err := r.Pull(ctx, "me@example.com")
	require.ErrorIs(t, err, ErrNoBackup)

	s := progress.Default()
	s.BookProgress["Ikigai"] = 12
	require.NoError(t, r.Push(ctx, "me@example.com", s))

	raw, ok, err := kv.Get(ctx, "transform90_backup_bWVAZXhhbXBsZS5jb20=")
	require.NoError(t, err)
	require.True(t, ok, "backup stored under base64 identity key")
	assert.Contains(t, raw, `"currentDay":1`)

	got, err := r.Pull(ctx, "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, 12, got.BookProgress["Ikigai"])

	assert.ErrorIs(t, r.Push(ctx, "nobody", s), ErrInvalidIdentity)
}

func TestLocalRemote_CorruptBackupIsRejected(t *testing.T) {
	kv := openKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, BackupKey("me@example.com"), `{"weeklyData":"oops"}`))

	_, err := NewLocalRemote(kv).Pull(ctx, "me@example.com")
	assert.ErrorIs(t, err, backup.ErrInvalidCode)
}

func TestAutoSyncer_ThrottlesWithinWindow(t *testing.T) {
	kv := openKV(t)
	remote := &fakeRemote{}
	clk := &clock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	s := NewAutoSyncer(remote, kv, zap.NewNop(), 5*time.Minute, WithClock(clk.now))
	ctx := context.Background()

	// No identity: nothing happens.
	pushed, err := s.Sync(ctx, progress.Default())
	require.NoError(t, err)
	assert.False(t, pushed)

	require.NoError(t, s.SetIdentity(ctx, "me@example.com"))

	pushed, err = s.Sync(ctx, progress.Default())
	require.NoError(t, err)
	assert.True(t, pushed)

	clk.t = clk.t.Add(4 * time.Minute)
	pushed, _ = s.Sync(ctx, progress.Default())
	assert.False(t, pushed, "inside the window")

	clk.t = clk.t.Add(time.Minute)
	pushed, _ = s.Sync(ctx, progress.Default())
	assert.False(t, pushed, "exactly five minutes is still inside the window")

	clk.t = clk.t.Add(time.Second)
	pushed, _ = s.Sync(ctx, progress.Default())
	assert.True(t, pushed)
	assert.Equal(t, 2, remote.count())

	last, ok, err := s.LastSync(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, clk.t.UnixMilli(), last.UnixMilli())
}

func TestAutoSyncer_FailureDoesNotMarkSynced(t *testing.T) {
	kv := openKV(t)
	remote := &fakeRemote{fail: errors.New("offline")}
	s := NewAutoSyncer(remote, kv, zap.NewNop(), 5*time.Minute, WithIdentity("me@example.com"))
	ctx := context.Background()

	_, err := s.Sync(ctx, progress.Default())
	require.Error(t, err)

	_, ok, err := s.LastSync(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAutoSyncer_PushNowIgnoresThrottle(t *testing.T) {
	kv := openKV(t)
	remote := &fakeRemote{}
	s := NewAutoSyncer(remote, kv, zap.NewNop(), time.Hour)
	ctx := context.Background()

	assert.ErrorIs(t, s.PushNow(ctx, progress.Default()), ErrNoIdentity)
	_, err := s.Pull(ctx)
	assert.ErrorIs(t, err, ErrNoIdentity)

	require.NoError(t, s.SetIdentity(ctx, "me@example.com"))
	require.NoError(t, s.PushNow(ctx, progress.Default()))
	require.NoError(t, s.PushNow(ctx, progress.Default()))
	assert.Equal(t, 2, remote.count())

	got, err := s.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentDay)
}

func TestAutoSyncer_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	remote := &fakeRemote{}
	s := NewAutoSyncer(remote, newMapKV(), zap.NewNop(), time.Nanosecond, WithIdentity("me@example.com"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond, progress.Default)
		close(done)
	}()

	require.Eventually(t, func() bool { return remote.count() > 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestHTTPRemote(t *testing.T) {
	var (
		mu     sync.Mutex
		stored []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/backups/me@example.com" {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			stored, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			if stored == nil {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(stored)
		}
	}))
	defer srv.Close()

	r := NewHTTPRemote(srv.URL+"/", 2*time.Second)
	ctx := context.Background()

	_, err := r.Pull(ctx, "me@example.com")
	require.ErrorIs(t, err, ErrNoBackup)

	s := progress.Default()
	s.CurrentBook = "Zero to One"
	require.NoError(t, r.Push(ctx, "me@example.com", s))

	got, err := r.Pull(ctx, "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Zero to One", got.CurrentBook)

	_, err = r.Pull(ctx, "other@example.com")
	assert.ErrorIs(t, err, ErrNoBackup)
}

func TestHTTPRemote_Unreachable(t *testing.T) {
	r := NewHTTPRemote("http://127.0.0.1:1", 200*time.Millisecond)
	err := r.Push(context.Background(), "me@example.com", progress.Default())
	assert.Error(t, err)
}

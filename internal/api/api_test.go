package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/transform90/internal/backup"
	"github.com/abhisek/transform90/internal/cloud"
	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/store"
	"github.com/abhisek/transform90/internal/tracker"
)

// monday is a weekday at level 1: workout, vanTime, gameDev and sleep.
var monday = time.Date(2026, 10, 12, 20, 0, 0, 0, time.Local)

func setupApp(t *testing.T) (*fiber.App, *tracker.Service) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc, err := tracker.Open(context.Background(), tracker.Options{
		KV:        st.KVRepo(),
		Snapshots: st.SnapshotRepo(),
		Events:    st.EventRepo(),
		Now:       func() time.Time { return monday },
	})
	require.NoError(t, err)
	return New(svc, cloud.NewLocalRemote(st.KVRepo()), zap.NewNop()), svc
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var env struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &env), string(data))
	require.True(t, env.Success, string(data))
	return env.Data
}

func TestGetToday(t *testing.T) {
	app, _ := setupApp(t)
	code, body := do(t, app, http.MethodGet, "/api/today", "")
	require.Equal(t, fiber.StatusOK, code)

	v := decode[tracker.TodayView](t, body)
	assert.Equal(t, 1, v.Day)
	assert.Len(t, v.Tasks, 4)
	assert.False(t, v.Ready)
}

func TestToggleTask(t *testing.T) {
	app, svc := setupApp(t)

	code, body := do(t, app, http.MethodPost, "/api/tasks/workout/toggle", "")
	require.Equal(t, fiber.StatusOK, code, string(body))
	got := decode[map[string]any](t, body)
	assert.Equal(t, true, got["done"])

	code, _ = do(t, app, http.MethodPost, "/api/tasks/meditation/toggle", "")
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = do(t, app, http.MethodPost, "/api/tasks/juggling/toggle", "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	v, err := svc.Today()
	require.NoError(t, err)
	assert.True(t, v.Tasks[0].Done)
}

func TestCompleteDay_GateRejects(t *testing.T) {
	app, svc := setupApp(t)
	code, body := do(t, app, http.MethodPost, "/api/complete", "")
	require.Equal(t, fiber.StatusUnprocessableEntity, code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.False(t, resp.Success)
	details, ok := resp.Details.(map[string]any)
	require.True(t, ok)
	assert.Len(t, details["missingTasks"], 4)
	assert.Len(t, details["missingFields"], 2)
	assert.Equal(t, 1, svc.State().CurrentDay)
}

func TestCompleteDay_Success(t *testing.T) {
	app, svc := setupApp(t)
	for _, k := range []string{"workout", "vanTime", "gameDev", "sleep"} {
		code, _ := do(t, app, http.MethodPost, "/api/tasks/"+k+"/toggle", "")
		require.Equal(t, fiber.StatusOK, code)
	}
	code, body := do(t, app, http.MethodPut, "/api/notes", `{"gameDevTask":"input system","win":"finished early"}`)
	require.Equal(t, fiber.StatusOK, code, string(body))
	assert.True(t, decode[tracker.TodayView](t, body).Ready)

	code, body = do(t, app, http.MethodPost, "/api/complete", "")
	require.Equal(t, fiber.StatusOK, code, string(body))
	res := decode[tracker.CompleteResult](t, body)
	assert.True(t, res.Record.Completed)
	assert.Equal(t, 1, res.Record.Day)
	assert.Equal(t, 2, svc.State().CurrentDay)

	code, body = do(t, app, http.MethodGet, "/api/events", "")
	require.Equal(t, fiber.StatusOK, code)
	events := decode[[]store.Event](t, body)
	require.NotEmpty(t, events)
	assert.Equal(t, store.EventDayCompleted, events[0].Kind)
}

func TestSwitchBook(t *testing.T) {
	app, svc := setupApp(t)
	code, _ := do(t, app, http.MethodPut, "/api/book", `{"next":true}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Ikigai", svc.State().CurrentBook)

	code, _ = do(t, app, http.MethodPut, "/api/book", `{"title":"Dune"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestBackupCodeAndRestore(t *testing.T) {
	app, svc := setupApp(t)
	s := progress.Default()
	s.Streak = 3
	code, err := backup.Encode(s)
	require.NoError(t, err)

	status, body := do(t, app, http.MethodPost, "/api/restore", `{"code":"`+code+`"}`)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, 3, svc.State().Streak)

	status, _ = do(t, app, http.MethodPost, "/api/restore", `{"code":"%%%"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, 3, svc.State().Streak)

	status, body = do(t, app, http.MethodGet, "/api/backup", "")
	require.Equal(t, fiber.StatusOK, status)
	got := decode[map[string]string](t, body)
	assert.Equal(t, code, got["code"])
}

func TestBackupEndpoints(t *testing.T) {
	app, _ := setupApp(t)
	path := "/api/backups/me%40example.com"

	status, _ := do(t, app, http.MethodGet, path, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	s := progress.Default()
	s.CurrentBook = "Zero to One"
	data, err := backup.Marshal(s)
	require.NoError(t, err)

	status, body := do(t, app, http.MethodPut, path, string(data))
	require.Equal(t, fiber.StatusNoContent, status, string(body))

	status, body = do(t, app, http.MethodGet, path, "")
	require.Equal(t, fiber.StatusOK, status)
	got, err := backup.Unmarshal(body)
	require.NoError(t, err)
	assert.Equal(t, "Zero to One", got.CurrentBook)

	status, _ = do(t, app, http.MethodPut, path, `{"currentDay":"soon"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/api/backups/nobody", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := setupApp(t)
	status, body := do(t, app, http.MethodGet, "/api/nope", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Not Found", resp.Error)
}

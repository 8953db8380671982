package cloud

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/transform90/internal/backup"
	"github.com/abhisek/transform90/internal/progress"
)

// HTTPRemote talks to the backup endpoints of a `transform90 serve`
// instance.
type HTTPRemote struct {
	baseURL string
	timeout time.Duration
}

// NewHTTPRemote returns a remote for the server at baseURL.
func NewHTTPRemote(baseURL string, timeout time.Duration) *HTTPRemote {
	return &HTTPRemote{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (r *HTTPRemote) endpoint(identity string) string {
	return r.baseURL + "/api/backups/" + url.PathEscape(identity)
}

// deadline shortens the configured timeout to the context deadline.
func (r *HTTPRemote) deadline(ctx context.Context) time.Duration {
	t := r.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < t || t <= 0 {
			t = left
		}
	}
	return t
}

func (r *HTTPRemote) Push(ctx context.Context, identity string, s progress.State) error {
	if err := ValidateIdentity(identity); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := backup.Marshal(s)
	if err != nil {
		return err
	}

	a := fiber.Put(r.endpoint(identity)).
		Timeout(r.deadline(ctx)).
		ContentType(fiber.MIMEApplicationJSON).
		Body(data)
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("push backup: %w", errs[0])
	}
	if code != fiber.StatusOK && code != fiber.StatusNoContent {
		return fmt.Errorf("push backup: server returned %d: %s", code, strings.TrimSpace(string(body)))
	}
	return nil
}

func (r *HTTPRemote) Pull(ctx context.Context, identity string) (progress.State, error) {
	if err := ValidateIdentity(identity); err != nil {
		return progress.State{}, err
	}
	if err := ctx.Err(); err != nil {
		return progress.State{}, err
	}

	a := fiber.Get(r.endpoint(identity)).Timeout(r.deadline(ctx))
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return progress.State{}, fmt.Errorf("pull backup: %w", errs[0])
	}
	switch code {
	case fiber.StatusOK:
	case fiber.StatusNotFound:
		return progress.State{}, ErrNoBackup
	default:
		return progress.State{}, fmt.Errorf("pull backup: server returned %d: %s", code, strings.TrimSpace(string(body)))
	}
	return backup.Unmarshal(body)
}

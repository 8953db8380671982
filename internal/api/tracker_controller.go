package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/transform90/internal/backup"
	"github.com/abhisek/transform90/internal/cloud"
	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/store"
	"github.com/abhisek/transform90/internal/tracker"
)

// TrackerController exposes the tracker service.
type TrackerController struct {
	svc *tracker.Service
}

func NewTrackerController(svc *tracker.Service) *TrackerController {
	return &TrackerController{svc: svc}
}

func (tc *TrackerController) GetToday(c *fiber.Ctx) error {
	v, err := tc.svc.Today()
	if err != nil {
		return failure(c, fiber.StatusInternalServerError, err)
	}
	return success(c, v)
}

func (tc *TrackerController) GetState(c *fiber.Ctx) error {
	return success(c, tc.svc.State())
}

func (tc *TrackerController) GetReport(c *fiber.Ctx) error {
	return success(c, tc.svc.Report())
}

func (tc *TrackerController) ToggleTask(c *fiber.Ctx) error {
	key, err := program.ParseTaskKey(c.Params("key"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, err)
	}
	done, err := tc.svc.ToggleTask(c.UserContext(), key)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.Map{"key": key, "done": done})
}

func (tc *TrackerController) UpdateNotes(c *fiber.Ctx) error {
	var u tracker.NotesUpdate
	if err := c.BodyParser(&u); err != nil {
		return failure(c, fiber.StatusBadRequest, err)
	}
	tc.svc.SetNotes(c.UserContext(), u)
	return tc.GetToday(c)
}

func (tc *TrackerController) CompleteDay(c *fiber.Ctx) error {
	res, err := tc.svc.CompleteDay(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return success(c, res)
}

type bookRequest struct {
	Title string `json:"title"`
	Next  bool   `json:"next"`
}

func (tc *TrackerController) SwitchBook(c *fiber.Ctx) error {
	var req bookRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, err)
	}
	title := req.Title
	var err error
	if req.Next {
		title, err = tc.svc.NextBook(c.UserContext())
	} else {
		err = tc.svc.SwitchBook(c.UserContext(), title)
	}
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.Map{"currentBook": title})
}

func (tc *TrackerController) GetBackupCode(c *fiber.Ctx) error {
	code, err := tc.svc.BackupCode()
	if err != nil {
		return failure(c, fiber.StatusInternalServerError, err)
	}
	return success(c, fiber.Map{"code": code})
}

type restoreRequest struct {
	Code string `json:"code"`
}

func (tc *TrackerController) Restore(c *fiber.Ctx) error {
	var req restoreRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, err)
	}
	if err := tc.svc.RestoreFromCode(c.UserContext(), req.Code); err != nil {
		return respondError(c, err)
	}
	return success(c, tc.svc.State())
}

func (tc *TrackerController) GetEvents(c *fiber.Ctx) error {
	after, err := strconv.ParseInt(c.Query("after", "0"), 10, 64)
	if err != nil {
		return failure(c, fiber.StatusBadRequest, errors.New("after must be a sequence number"))
	}
	events, err := tc.svc.Events(c.UserContext(), store.QueryOpts{
		Limit: c.QueryInt("limit", 50),
		After: after,
	})
	if err != nil {
		return failure(c, fiber.StatusInternalServerError, err)
	}
	if events == nil {
		events = []store.Event{}
	}
	return success(c, events)
}

// respondError maps domain errors onto status codes.
func respondError(c *fiber.Ctx, err error) error {
	var incomplete *progress.IncompleteDayError
	switch {
	case errors.As(err, &incomplete):
		return failure(c, fiber.StatusUnprocessableEntity, err, fiber.Map{
			"missingTasks":  incomplete.MissingTasks,
			"missingFields": incomplete.MissingFields,
		})
	case errors.Is(err, tracker.ErrTaskNotActive):
		return failure(c, fiber.StatusConflict, err)
	case errors.Is(err, progress.ErrUnknownBook),
		errors.Is(err, backup.ErrInvalidCode),
		errors.Is(err, cloud.ErrInvalidIdentity):
		return failure(c, fiber.StatusBadRequest, err)
	case errors.Is(err, cloud.ErrNoBackup):
		return failure(c, fiber.StatusNotFound, err)
	default:
		return failure(c, fiber.StatusInternalServerError, err)
	}
}

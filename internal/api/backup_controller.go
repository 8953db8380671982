package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/transform90/internal/backup"
	"github.com/abhisek/transform90/internal/cloud"
)

// BackupController stores remote backups for other instances. It is the
// server side of cloud.HTTPRemote.
type BackupController struct {
	remote cloud.Remote
}

func NewBackupController(remote cloud.Remote) *BackupController {
	return &BackupController{remote: remote}
}

// PutBackup stores the state in the request body. Bodies that fail
// validation are rejected and nothing is stored.
func (bc *BackupController) PutBackup(c *fiber.Ctx) error {
	st, err := backup.Unmarshal(c.Body())
	if err != nil {
		return failure(c, fiber.StatusBadRequest, err)
	}
	if err := bc.remote.Push(c.UserContext(), c.Params("identity"), st); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBackup returns the bare state JSON, not wrapped in a SuccessResponse,
// so the body can be fed straight to backup.Unmarshal.
func (bc *BackupController) GetBackup(c *fiber.Ctx) error {
	st, err := bc.remote.Pull(c.UserContext(), c.Params("identity"))
	if err != nil {
		return respondError(c, err)
	}
	data, err := backup.Marshal(st)
	if err != nil {
		return failure(c, fiber.StatusInternalServerError, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(data)
}

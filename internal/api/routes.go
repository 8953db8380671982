// Package api serves the tracker and the backup store over HTTP.
package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/abhisek/transform90/internal/cloud"
	"github.com/abhisek/transform90/internal/tracker"
)

// New returns the fiber app. backups stores the backups pushed by other
// instances; it may be nil to disable the backup endpoints.
func New(svc *tracker.Service, backups cloud.Remote, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "transform90",
		DisableStartupMessage: true,
		UnescapePath:          true,
		ErrorHandler:          errorHandler,
	})
	app.Use(RequestLogger(logger.Named("api")))
	SetupRoutes(app, svc, backups)
	return app
}

func SetupRoutes(app *fiber.App, svc *tracker.Service, backups cloud.Remote) {
	trackerController := NewTrackerController(svc)
	api := app.Group("/api")
	api.Get("/today", trackerController.GetToday)
	api.Get("/state", trackerController.GetState)
	api.Get("/report", trackerController.GetReport)
	api.Get("/events", trackerController.GetEvents)
	api.Post("/tasks/:key/toggle", trackerController.ToggleTask)
	api.Put("/notes", trackerController.UpdateNotes)
	api.Post("/complete", trackerController.CompleteDay)
	api.Put("/book", trackerController.SwitchBook)
	api.Get("/backup", trackerController.GetBackupCode)
	api.Post("/restore", trackerController.Restore)

	if backups != nil {
		backupController := NewBackupController(backups)
		api.Put("/backups/:identity", backupController.PutBackup)
		api.Get("/backups/:identity", backupController.GetBackup)
	}
}

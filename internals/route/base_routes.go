package routes

import (
	"time"

	"hrms_backend/internals/configs"
	"hrms_backend/internals/features/hrms/store"

	"github.com/gofiber/fiber/v2"
)

func BaseRoutes(app *fiber.App, st store.Store) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("HRMS Lite API is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := st.Ping(c.UserContext()); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"storage":        configs.StorageDriver,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})
}

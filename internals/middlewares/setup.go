package middlewares

import (
	"time"

	"hrms_backend/internals/configs"
	"hrms_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func SetupMiddlewares(app *fiber.App) {
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(RequestID(5 * time.Second))
	app.Use(logger.LoggerMiddleware(configs.AppTimezone))
	app.Use(CorsMiddleware(configs.CorsOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter())
	app.Use(WriteRateLimiter())
}

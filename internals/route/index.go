// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"hrms_backend/internals/features/hrms/store"
	routeDetails "hrms_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
)

var startTime = time.Now()

// SetupRoutes mounts health and the /api surface. loc is the calendar
// used for "today" when validating attendance dates.
func SetupRoutes(app *fiber.App, st store.Store, loc *time.Location) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, st)

	log.Println("[INFO] Mounting HRMS routes...")
	api := app.Group("/api")
	routeDetails.HrmsRoutes(api, st, loc)
}

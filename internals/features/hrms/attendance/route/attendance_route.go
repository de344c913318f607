package route

import (
	"time"

	"hrms_backend/internals/features/hrms/attendance/controller"
	"hrms_backend/internals/features/hrms/store"

	"github.com/gofiber/fiber/v2"
)

func AttendanceRoutes(api fiber.Router, st store.Store, loc *time.Location) {
	attendanceCtrl := controller.NewAttendanceController(st, loc)

	api.Get("/employees/:id/attendance", attendanceCtrl.ListEmployeeAttendance) // 📄 per employee
	api.Post("/attendance", attendanceCtrl.MarkAttendance)                      // ➕ mark
}

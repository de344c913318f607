package details

import (
	"time"

	attendanceRoutes "hrms_backend/internals/features/hrms/attendance/route"
	employeeRoutes "hrms_backend/internals/features/hrms/employees/route"
	"hrms_backend/internals/features/hrms/store"

	"github.com/gofiber/fiber/v2"
)

// HrmsRoutes mounts the roster and attendance endpoints under api.
func HrmsRoutes(api fiber.Router, st store.Store, loc *time.Location) {
	employeeRoutes.EmployeeRoutes(api, st)
	attendanceRoutes.AttendanceRoutes(api, st, loc)
}

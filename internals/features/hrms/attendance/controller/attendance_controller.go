package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"hrms_backend/internals/features/hrms/attendance/dto"
	employeeDTO "hrms_backend/internals/features/hrms/employees/dto"
	"hrms_backend/internals/features/hrms/store"
	helper "hrms_backend/internals/helpers"
	"hrms_backend/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
)

const (
	MsgDuplicateDate = "Attendance for this date is already marked. You cannot mark it again."
	MsgFutureDate    = "Future dates are not allowed for attendance marking."
)

type AttendanceController struct {
	Store store.Store
	Loc   *time.Location
	Now   func() time.Time
}

// NewAttendanceController evaluates "today" in loc (nil means UTC).
func NewAttendanceController(st store.Store, loc *time.Location) *AttendanceController {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceController{Store: st, Loc: loc, Now: time.Now}
}

/* ===================== LIST ===================== */
// GET /employees/:id/attendance
func (ctrl *AttendanceController) ListEmployeeAttendance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid employee id")
	}
	ctx := c.UserContext()

	emp, err := ctrl.Store.GetEmployee(ctx, uint(id))
	if errors.Is(err, store.ErrEmployeeNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Employee not found.")
	}
	if err != nil {
		log.Printf("[ATTENDANCE] load employee id=%d failed: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attendance records")
	}

	rows, err := ctrl.Store.ListAttendance(ctx, emp.ID)
	if err != nil {
		log.Printf("[ATTENDANCE] list id=%d failed: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attendance records")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":            true,
		"employee":           employeeDTO.ToEmployeeDTO(*emp),
		"attendance_records": dto.ToAttendanceDTOs(rows),
		"total_records":      len(rows),
	})
}

/* ===================== CREATE ===================== */
// POST /attendance
func (ctrl *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	var req dto.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	fieldErrs := map[string][]string{}
	if err := helper.Validate.Struct(req); err != nil {
		fieldErrs = helper.FieldErrors(err)
	}

	ctx := c.UserContext()
	code := helper.CodeValidation

	// semantic checks only on fields that passed shape validation
	var date time.Time
	if _, bad := fieldErrs["date"]; !bad {
		date, _ = dbtime.ParseDate(req.Date)
		if dbtime.IsFuture(date, ctrl.Now(), ctrl.Loc) {
			fieldErrs["date"] = []string{MsgFutureDate}
			code = helper.CodeFutureDate
		}
	}
	var empName string
	if _, bad := fieldErrs["employee"]; !bad {
		emp, err := ctrl.Store.GetEmployee(ctx, req.Employee)
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			return helper.JsonValidationError(c, helper.CodeValidation, map[string][]string{
				"status": {fmt.Sprintf("%q is not a valid choice.", req.Status)},
			})
		case errors.Is(err, store.ErrEmployeeNotFound):
			fieldErrs["employee"] = []string{invalidEmployeeMsg(req.Employee)}
		case err != nil:
			log.Printf("[ATTENDANCE] load employee id=%d failed: %v", req.Employee, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark attendance")
		default:
			empName = emp.FullName
		}
	}
	if len(fieldErrs) > 0 {
		if len(fieldErrs) > 1 {
			code = helper.CodeValidation
		}
		return helper.JsonValidationError(c, code, fieldErrs)
	}

	m := req.ToModel(date)
	if err := ctrl.Store.CreateAttendance(ctx, &m); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateDate):
			return helper.JsonValidationError(c, helper.CodeDuplicateDate, map[string][]string{
				"date": {MsgDuplicateDate},
			})
		case errors.Is(err, store.ErrEmployeeNotFound):
			// deleted between the existence check and the insert
			return helper.JsonValidationError(c, helper.CodeValidation, map[string][]string{
				"employee": {invalidEmployeeMsg(req.Employee)},
			})
		}
		log.Printf("[ATTENDANCE] create failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark attendance")
	}

	out := dto.ToAttendanceDTO(m)
	return helper.JsonCreated(c, fmt.Sprintf("Attendance marked for %s on %s", empName, out.Date), out)
}

func invalidEmployeeMsg(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

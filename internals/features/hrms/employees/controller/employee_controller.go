package controller

import (
	"errors"
	"fmt"
	"log"

	"hrms_backend/internals/features/hrms/employees/dto"
	"hrms_backend/internals/features/hrms/store"
	helper "hrms_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

const (
	msgEmployeeIDTaken = "Employee ID already exists."
	msgEmailTaken      = "Email already in use."
)

type EmployeeController struct {
	Store store.Store
}

func NewEmployeeController(st store.Store) *EmployeeController {
	return &EmployeeController{Store: st}
}

// ======================
// GET /employees
// ======================
func (ctrl *EmployeeController) ListEmployees(c *fiber.Ctx) error {
	rows, err := ctrl.Store.ListEmployees(c.UserContext())
	if err != nil {
		log.Printf("[EMPLOYEES] list failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load employees")
	}
	return helper.JsonList(c, "ok", dto.ToEmployeeDTOs(rows))
}

// ======================
// POST /employees
// ======================
func (ctrl *EmployeeController) CreateEmployee(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.CodeValidation, helper.FieldErrors(err))
	}

	ctx := c.UserContext()
	idTaken, emailTaken, err := ctrl.Store.EmployeeConflicts(ctx, req.EmployeeID, req.Email)
	if err != nil {
		log.Printf("[EMPLOYEES] conflict check failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create employee")
	}
	if idTaken || emailTaken {
		return helper.JsonValidationError(c, helper.CodeConflict, conflictErrors(idTaken, emailTaken))
	}

	m := req.ToModel()
	if err := ctrl.Store.CreateEmployee(ctx, &m); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmployeeID):
			return helper.JsonValidationError(c, helper.CodeConflict, conflictErrors(true, false))
		case errors.Is(err, store.ErrDuplicateEmail):
			return helper.JsonValidationError(c, helper.CodeConflict, conflictErrors(false, true))
		}
		log.Printf("[EMPLOYEES] create failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create employee")
	}

	log.Printf("[EMPLOYEES] created id=%d employee_id=%s", m.ID, m.EmployeeID)
	return helper.JsonCreated(c, "Employee created successfully", dto.ToEmployeeDTO(m))
}

// ======================
// DELETE /employees/:id
// ======================
func (ctrl *EmployeeController) DeleteEmployee(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid employee id")
	}

	deleted, err := ctrl.Store.DeleteEmployee(c.UserContext(), uint(id))
	if errors.Is(err, store.ErrEmployeeNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Employee not found.")
	}
	if err != nil {
		log.Printf("[EMPLOYEES] delete id=%d failed: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete employee.")
	}

	log.Printf("[EMPLOYEES] deleted id=%d employee_id=%s (attendance cascaded)", deleted.ID, deleted.EmployeeID)
	return helper.JsonDeleted(c, fmt.Sprintf("Employee %s (%s) deleted successfully", deleted.FullName, deleted.EmployeeID))
}

func conflictErrors(idTaken, emailTaken bool) map[string][]string {
	out := map[string][]string{}
	if idTaken {
		out["employee_id"] = []string{msgEmployeeIDTaken}
	}
	if emailTaken {
		out["email"] = []string{msgEmailTaken}
	}
	return out
}

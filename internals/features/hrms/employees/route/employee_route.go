package route

import (
	"hrms_backend/internals/features/hrms/employees/controller"
	"hrms_backend/internals/features/hrms/store"

	"github.com/gofiber/fiber/v2"
)

func EmployeeRoutes(api fiber.Router, st store.Store) {
	employeeCtrl := controller.NewEmployeeController(st)

	// Group: /employees
	employees := api.Group("/employees")
	employees.Get("/", employeeCtrl.ListEmployees)         // 📄 list
	employees.Post("/", employeeCtrl.CreateEmployee)       // ➕ create
	employees.Delete("/:id", employeeCtrl.DeleteEmployee) // ❌ delete (cascade attendance)
}

package employees

import (
	"context"
	"fmt"
	"log"
	"os"

	"hrms_backend/internals/features/hrms/employees/dto"
	"hrms_backend/internals/features/hrms/store"
	helper "hrms_backend/internals/helpers"

	"github.com/bytedance/sonic"
)

// Struktur sesuai dengan dto.CreateEmployeeRequest
type EmployeeSeed = dto.CreateEmployeeRequest

// SeedEmployeesFromJSON inserts every employee in filePath whose
// employee_id and email are both unused. Invalid rows are logged and
// skipped.
func SeedEmployeesFromJSON(ctx context.Context, st store.Store, filePath string) (int, error) {
	log.Println("[SEED] reading", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}

	var rows []EmployeeSeed
	if err := sonic.Unmarshal(file, &rows); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	inserted := 0
	for _, r := range rows {
		r.Normalize()
		if err := helper.Validate.Struct(r); err != nil {
			log.Printf("[SEED] skip %q: %v", r.EmployeeID, helper.FieldErrors(err))
			continue
		}

		idTaken, emailTaken, err := st.EmployeeConflicts(ctx, r.EmployeeID, r.Email)
		if err != nil {
			return inserted, err
		}
		if idTaken || emailTaken {
			log.Printf("[SEED] employee %s already exists, skipping", r.EmployeeID)
			continue
		}

		m := r.ToModel()
		if err := st.CreateEmployee(ctx, &m); err != nil {
			log.Printf("[SEED] insert %s failed: %v", r.EmployeeID, err)
			continue
		}
		inserted++
	}
	return inserted, nil
}

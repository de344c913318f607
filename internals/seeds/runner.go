package seeds

import (
	"context"
	"log"

	"hrms_backend/internals/features/hrms/store"
	employees "hrms_backend/internals/seeds/employees"
)

// RunAllSeeds loads demo data into st. Rows that already exist are
// skipped, so it is safe to run on every start.
func RunAllSeeds(ctx context.Context, st store.Store, employeesFile string) {
	if employeesFile == "" {
		return
	}
	n, err := employees.SeedEmployeesFromJSON(ctx, st, employeesFile)
	if err != nil {
		log.Printf("[SEED] employees: %v", err)
		return
	}
	log.Printf("[SEED] employees: %d inserted", n)
}

package employees

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hrms_backend/internals/features/hrms/store"
)

func TestSeedEmployeesFromJSONIsIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	n, err := SeedEmployeesFromJSON(ctx, st, "data_employees.json")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 inserted, got %d", n)
	}

	n, err = SeedEmployeesFromJSON(ctx, st, "data_employees.json")
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected nothing inserted on rerun, got %d", n)
	}

	list, err := st.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(list))
	}
}

func TestSeedEmployeesSkipsInvalidRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	data := `[{"employee_id":"E9","full_name":"Ok","email":"ok@co.com","department":"Ops"},
	          {"employee_id":"","full_name":"No Id","email":"noid@co.com","department":"Ops"},
	          {"employee_id":"E10","full_name":"Bad","email":"nope","department":"Ops"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	n, err := SeedEmployeesFromJSON(context.Background(), store.NewMemoryStore(), path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 inserted, got %d", n)
	}
}

func TestSeedEmployeesMissingFile(t *testing.T) {
	if _, err := SeedEmployeesFromJSON(context.Background(), store.NewMemoryStore(), "does-not-exist.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

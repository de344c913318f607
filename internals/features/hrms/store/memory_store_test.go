package store

import (
	"context"
	"errors"
	"testing"
	"time"

	attendanceModel "hrms_backend/internals/features/hrms/attendance/model"
	employeeModel "hrms_backend/internals/features/hrms/employees/model"

	"gorm.io/datatypes"
)

func day(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return datatypes.Date(d)
}

func mustCreateEmployee(t *testing.T, st Store, code, name, email string) employeeModel.EmployeeModel {
	t.Helper()
	e := employeeModel.EmployeeModel{EmployeeID: code, FullName: name, Email: email, Department: "Engineering"}
	if err := st.CreateEmployee(context.Background(), &e); err != nil {
		t.Fatalf("create employee %s: %v", code, err)
	}
	return e
}

func TestMemoryStoreEmployeeUniqueness(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	jane := mustCreateEmployee(t, st, "E001", "Jane Doe", "jane@co.com")
	if jane.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	dupID := employeeModel.EmployeeModel{EmployeeID: "E001", FullName: "Other", Email: "other@co.com", Department: "Ops"}
	if err := st.CreateEmployee(ctx, &dupID); !errors.Is(err, ErrDuplicateEmployeeID) {
		t.Fatalf("expected ErrDuplicateEmployeeID, got %v", err)
	}

	dupEmail := employeeModel.EmployeeModel{EmployeeID: "E002", FullName: "Other", Email: "jane@co.com", Department: "Ops"}
	if err := st.CreateEmployee(ctx, &dupEmail); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// codes are opaque: case differs, so no conflict
	lower := mustCreateEmployee(t, st, "e001", "Lower Case", "lower@co.com")
	if lower.ID == jane.ID {
		t.Fatalf("expected distinct ids")
	}

	idTaken, emailTaken, err := st.EmployeeConflicts(ctx, "E001", "nobody@co.com")
	if err != nil {
		t.Fatalf("conflicts: %v", err)
	}
	if !idTaken || emailTaken {
		t.Fatalf("unexpected conflicts id=%v email=%v", idTaken, emailTaken)
	}
}

func TestMemoryStoreListsEmployeesByName(t *testing.T) {
	st := NewMemoryStore()
	mustCreateEmployee(t, st, "E002", "Zed", "zed@co.com")
	mustCreateEmployee(t, st, "E001", "Amy", "amy@co.com")

	list, err := st.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].FullName != "Amy" || list[1].FullName != "Zed" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestMemoryStoreAttendanceOnePerDay(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	jane := mustCreateEmployee(t, st, "E001", "Jane Doe", "jane@co.com")

	first := attendanceModel.AttendanceModel{EmployeeID: jane.ID, Date: day(t, "2024-01-10"), Status: attendanceModel.StatusPresent}
	if err := st.CreateAttendance(ctx, &first); err != nil {
		t.Fatalf("create attendance: %v", err)
	}

	second := attendanceModel.AttendanceModel{EmployeeID: jane.ID, Date: day(t, "2024-01-10"), Status: attendanceModel.StatusAbsent}
	if err := st.CreateAttendance(ctx, &second); !errors.Is(err, ErrDuplicateDate) {
		t.Fatalf("expected ErrDuplicateDate, got %v", err)
	}

	records, err := st.ListAttendance(ctx, jane.ID)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(records) != 1 || records[0].Status != attendanceModel.StatusPresent {
		t.Fatalf("existing record must stay unchanged: %+v", records)
	}

	missing := attendanceModel.AttendanceModel{EmployeeID: 999, Date: day(t, "2024-01-10"), Status: attendanceModel.StatusPresent}
	if err := st.CreateAttendance(ctx, &missing); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestMemoryStoreListsAttendanceNewestFirst(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	jane := mustCreateEmployee(t, st, "E001", "Jane Doe", "jane@co.com")

	for _, d := range []string{"2024-01-09", "2024-01-11", "2024-01-10"} {
		a := attendanceModel.AttendanceModel{EmployeeID: jane.ID, Date: day(t, d), Status: attendanceModel.StatusPresent}
		if err := st.CreateAttendance(ctx, &a); err != nil {
			t.Fatalf("create %s: %v", d, err)
		}
	}

	records, err := st.ListAttendance(ctx, jane.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2024-01-11", "2024-01-10", "2024-01-09"}
	for i, r := range records {
		if got := r.Day().Format("2006-01-02"); got != want[i] {
			t.Fatalf("record %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestMemoryStoreDeleteCascades(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	jane := mustCreateEmployee(t, st, "E001", "Jane Doe", "jane@co.com")
	bob := mustCreateEmployee(t, st, "E002", "Bob", "bob@co.com")

	for _, id := range []uint{jane.ID, bob.ID} {
		a := attendanceModel.AttendanceModel{EmployeeID: id, Date: day(t, "2024-01-10"), Status: attendanceModel.StatusPresent}
		if err := st.CreateAttendance(ctx, &a); err != nil {
			t.Fatalf("create attendance: %v", err)
		}
	}

	deleted, err := st.DeleteEmployee(ctx, jane.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.EmployeeID != "E001" {
		t.Fatalf("unexpected deleted row: %+v", deleted)
	}

	if _, err := st.GetEmployee(ctx, jane.ID); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected employee gone, got %v", err)
	}
	records, _ := st.ListAttendance(ctx, jane.ID)
	if len(records) != 0 {
		t.Fatalf("expected cascaded attendance removal, got %d records", len(records))
	}
	records, _ = st.ListAttendance(ctx, bob.ID)
	if len(records) != 1 {
		t.Fatalf("other employees' attendance must survive, got %d", len(records))
	}

	// the freed (employee, date) slot does not leak into a recreated employee
	again := mustCreateEmployee(t, st, "E001", "Jane Doe", "jane@co.com")
	a := attendanceModel.AttendanceModel{EmployeeID: again.ID, Date: day(t, "2024-01-10"), Status: attendanceModel.StatusAbsent}
	if err := st.CreateAttendance(ctx, &a); err != nil {
		t.Fatalf("recreated employee should mark freely: %v", err)
	}

	if _, err := st.DeleteEmployee(ctx, jane.ID); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound on second delete, got %v", err)
	}
}

func TestMemoryStoreSummarizeDay(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	jane := mustCreateEmployee(t, st, "E001", "Jane Doe", "jane@co.com")
	bob := mustCreateEmployee(t, st, "E002", "Bob", "bob@co.com")
	mustCreateEmployee(t, st, "E003", "Cy", "cy@co.com")

	marks := []attendanceModel.AttendanceModel{
		{EmployeeID: jane.ID, Date: day(t, "2024-01-10"), Status: attendanceModel.StatusPresent},
		{EmployeeID: bob.ID, Date: day(t, "2024-01-10"), Status: attendanceModel.StatusAbsent},
		{EmployeeID: bob.ID, Date: day(t, "2024-01-09"), Status: attendanceModel.StatusPresent},
	}
	for i := range marks {
		if err := st.CreateAttendance(ctx, &marks[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	sum, err := st.SummarizeDay(ctx, time.Time(day(t, "2024-01-10")))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.Employees != 3 || sum.Present != 1 || sum.Absent != 1 || sum.Unmarked() != 1 {
		t.Fatalf("unexpected summary: %+v unmarked=%d", sum, sum.Unmarked())
	}
}

func TestMemoryStoreRejectsUnknownStatus(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	jane := mustCreateEmployee(t, st, "E001", "Jane Doe", "jane@co.com")

	for _, status := range []string{"present", "Late", ""} {
		a := attendanceModel.AttendanceModel{EmployeeID: jane.ID, Date: day(t, "2024-01-10"), Status: status}
		if err := st.CreateAttendance(ctx, &a); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("status %q: expected ErrInvalidStatus, got %v", status, err)
		}
	}

	rows, err := st.ListAttendance(ctx, jane.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected nothing stored, got %d rows", len(rows))
	}

	ok := attendanceModel.AttendanceModel{EmployeeID: jane.ID, Date: day(t, "2024-01-10"), Status: attendanceModel.StatusAbsent}
	if err := st.CreateAttendance(ctx, &ok); err != nil {
		t.Fatalf("valid status rejected: %v", err)
	}
}

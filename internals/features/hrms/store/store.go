// Package store persists employees and their attendance and enforces the
// roster invariants: unique employee codes and emails, one attendance
// entry per employee and day, and cascading removal of attendance when
// an employee is deleted.
package store

import (
	"context"
	"errors"
	"time"

	attendanceModel "hrms_backend/internals/features/hrms/attendance/model"
	employeeModel "hrms_backend/internals/features/hrms/employees/model"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrDuplicateEmployeeID = errors.New("employee id already exists")
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrDuplicateDate       = errors.New("attendance already marked for this date")
	ErrInvalidStatus       = errors.New("status must be Present or Absent")
)

// DaySummary counts how the roster was marked on one calendar day.
type DaySummary struct {
	Date      time.Time
	Employees int64
	Present   int64
	Absent    int64
}

func (s DaySummary) Unmarked() int64 {
	n := s.Employees - s.Present - s.Absent
	if n < 0 {
		return 0
	}
	return n
}

type Store interface {
	// ListEmployees returns employees ordered by full name, then id.
	ListEmployees(ctx context.Context) ([]employeeModel.EmployeeModel, error)
	GetEmployee(ctx context.Context, id uint) (*employeeModel.EmployeeModel, error)
	// EmployeeConflicts reports which unique fields are already taken.
	EmployeeConflicts(ctx context.Context, employeeID, email string) (idTaken, emailTaken bool, err error)
	CreateEmployee(ctx context.Context, e *employeeModel.EmployeeModel) error
	// DeleteEmployee removes the employee and every attendance entry
	// referencing it, returning the deleted row.
	DeleteEmployee(ctx context.Context, id uint) (*employeeModel.EmployeeModel, error)

	// ListAttendance returns the employee's entries, newest date first.
	ListAttendance(ctx context.Context, employeeID uint) ([]attendanceModel.AttendanceModel, error)
	CreateAttendance(ctx context.Context, a *attendanceModel.AttendanceModel) error
	SummarizeDay(ctx context.Context, date time.Time) (DaySummary, error)

	Ping(ctx context.Context) error
}

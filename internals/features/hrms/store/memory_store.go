package store

import (
	"context"
	"sort"
	"sync"
	"time"

	attendanceModel "hrms_backend/internals/features/hrms/attendance/model"
	employeeModel "hrms_backend/internals/features/hrms/employees/model"
	"hrms_backend/internals/helpers/dbtime"

	"gorm.io/datatypes"
)

type attendanceKey struct {
	employeeID uint
	date       string
}

// memoryStore keeps everything in process. Used with STORAGE_DRIVER=memory
// and in tests; it enforces the same invariants as the Postgres schema.
type memoryStore struct {
	mu         sync.RWMutex
	nextEmpID  uint
	nextAttID  uint
	now        func() time.Time
	employees  map[uint]employeeModel.EmployeeModel
	attendance map[uint]attendanceModel.AttendanceModel
	byDay      map[attendanceKey]uint
}

func NewMemoryStore() Store {
	return &memoryStore{
		now:        time.Now,
		employees:  map[uint]employeeModel.EmployeeModel{},
		attendance: map[uint]attendanceModel.AttendanceModel{},
		byDay:      map[attendanceKey]uint{},
	}
}

func (s *memoryStore) ListEmployees(ctx context.Context) ([]employeeModel.EmployeeModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]employeeModel.EmployeeModel, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memoryStore) GetEmployee(ctx context.Context, id uint) (*employeeModel.EmployeeModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return &e, nil
}

func (s *memoryStore) EmployeeConflicts(ctx context.Context, employeeID, email string) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idTaken, emailTaken := s.conflictsLocked(employeeID, email)
	return idTaken, emailTaken, nil
}

func (s *memoryStore) conflictsLocked(employeeID, email string) (idTaken, emailTaken bool) {
	for _, e := range s.employees {
		if e.EmployeeID == employeeID {
			idTaken = true
		}
		if e.Email == email {
			emailTaken = true
		}
	}
	return idTaken, emailTaken
}

func (s *memoryStore) CreateEmployee(ctx context.Context, e *employeeModel.EmployeeModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idTaken, emailTaken := s.conflictsLocked(e.EmployeeID, e.Email)
	switch {
	case idTaken:
		return ErrDuplicateEmployeeID
	case emailTaken:
		return ErrDuplicateEmail
	}

	s.nextEmpID++
	e.ID = s.nextEmpID
	e.CreatedAt = s.now()
	s.employees[e.ID] = *e
	return nil
}

func (s *memoryStore) DeleteEmployee(ctx context.Context, id uint) (*employeeModel.EmployeeModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	for attID, a := range s.attendance {
		if a.EmployeeID == id {
			delete(s.attendance, attID)
			delete(s.byDay, keyOf(a))
		}
	}
	delete(s.employees, id)
	return &e, nil
}

func (s *memoryStore) ListAttendance(ctx context.Context, employeeID uint) ([]attendanceModel.AttendanceModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []attendanceModel.AttendanceModel
	for _, a := range s.attendance {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Day(), out[j].Day()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *memoryStore) CreateAttendance(ctx context.Context, a *attendanceModel.AttendanceModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// mirrors chk_attendance_status
	if !attendanceModel.ValidStatus(a.Status) {
		return ErrInvalidStatus
	}
	if _, ok := s.employees[a.EmployeeID]; !ok {
		return ErrEmployeeNotFound
	}
	a.Date = datatypes.Date(dbtime.DateOf(a.Day(), nil))
	k := keyOf(*a)
	if _, dup := s.byDay[k]; dup {
		return ErrDuplicateDate
	}

	s.nextAttID++
	a.ID = s.nextAttID
	a.CreatedAt = s.now()
	a.Employee = nil
	s.attendance[a.ID] = *a
	s.byDay[k] = a.ID
	return nil
}

func (s *memoryStore) SummarizeDay(ctx context.Context, date time.Time) (DaySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := DaySummary{Date: date, Employees: int64(len(s.employees))}
	day := dbtime.FormatDate(date)
	for _, a := range s.attendance {
		if dbtime.FormatDate(a.Day()) != day {
			continue
		}
		switch a.Status {
		case attendanceModel.StatusPresent:
			sum.Present++
		case attendanceModel.StatusAbsent:
			sum.Absent++
		}
	}
	return sum, nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func keyOf(a attendanceModel.AttendanceModel) attendanceKey {
	return attendanceKey{employeeID: a.EmployeeID, date: dbtime.FormatDate(a.Day())}
}

package client

import (
	"context"
	"strings"
	"sync"

	helper "hrms_backend/internals/helpers"
)

// Directory owns the employee roster as last seen from the backend.
type Directory struct {
	api *API

	mu        sync.RWMutex
	employees []Employee
	loaded    bool
	onDelete  []func(id int64)

	createForm formGuard
	deleteForm formGuard
}

func NewDirectory(api *API) *Directory {
	return &Directory{api: api}
}

// ListEmployees fetches the roster in backend order and caches it.
func (d *Directory) ListEmployees(ctx context.Context) ([]Employee, error) {
	list, err := d.api.ListEmployees(ctx)
	if err != nil {
		return nil, fetchFailure(err, msgLoadEmployees)
	}

	d.mu.Lock()
	d.employees = list
	d.loaded = true
	d.mu.Unlock()
	return cloneEmployees(list), nil
}

// Employees returns the cached listing without a request.
func (d *Directory) Employees() []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneEmployees(d.employees)
}

// Loaded reports whether a listing has been fetched at least once.
func (d *Directory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

func (d *Directory) Lookup(id int64) (Employee, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// OnDelete registers fn to run after an employee is deleted. The ledger
// uses it to drop cached attendance.
func (d *Directory) OnDelete(fn func(id int64)) {
	d.mu.Lock()
	d.onDelete = append(d.onDelete, fn)
	d.mu.Unlock()
}

func (d *Directory) CreateState() SubmissionState { return d.createForm.state() }
func (d *Directory) DeleteState() SubmissionState { return d.deleteForm.state() }

// CreateEmployee validates locally, then creates. The new employee is
// prepended to the cached listing; that order is presentation only.
func (d *Directory) CreateEmployee(ctx context.Context, in EmployeeInput) (Employee, error) {
	in = EmployeeInput{
		EmployeeID: strings.TrimSpace(in.EmployeeID),
		FullName:   strings.TrimSpace(in.FullName),
		Email:      strings.TrimSpace(in.Email),
		Department: strings.TrimSpace(in.Department),
	}
	if err := helper.Validate.Struct(in); err != nil {
		fields := helper.FieldErrors(err)
		_, msg, _ := firstFieldError(fields, employeeFieldOrder)
		return Employee{}, localFailure(ValidationFailure, err, msg, fields)
	}

	if !d.createForm.enter() {
		return Employee{}, busyFailure()
	}
	defer d.createForm.leave()

	created, err := d.api.CreateEmployee(ctx, in)
	if err != nil {
		return Employee{}, createEmployeeFailure(err)
	}

	d.mu.Lock()
	next := make([]Employee, 0, len(d.employees)+1)
	next = append(next, created)
	for _, e := range d.employees {
		if e.ID != created.ID {
			next = append(next, e)
		}
	}
	d.employees = next
	d.mu.Unlock()
	return created, nil
}

// DeleteEmployee requires confirmed=true; without it nothing is sent.
// The backend removes the employee's attendance along with it.
func (d *Directory) DeleteEmployee(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return localFailure(DeleteFailure, ErrConfirmationRequired, msgConfirmDelete, nil)
	}
	if !d.deleteForm.enter() {
		return busyFailure()
	}
	defer d.deleteForm.leave()

	if err := d.api.DeleteEmployee(ctx, id); err != nil {
		return deleteFailure(err)
	}

	d.mu.Lock()
	next := d.employees[:0:0]
	for _, e := range d.employees {
		if e.ID != id {
			next = append(next, e)
		}
	}
	d.employees = next
	hooks := append([]func(int64){}, d.onDelete...)
	d.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}
	return nil
}

func cloneEmployees(in []Employee) []Employee {
	out := make([]Employee, len(in))
	copy(out, in)
	return out
}

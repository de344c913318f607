package client

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// MarkResult is a successful mark together with the refreshed history.
type MarkResult struct {
	Record  AttendanceRecord
	Records []AttendanceRecord
}

// Ledger keeps per-employee attendance history and the mark form.
type Ledger struct {
	api *API
	dir *Directory
	now func() time.Time
	loc *time.Location

	mu      sync.RWMutex
	records map[int64][]AttendanceRecord
	form    MarkInput

	markForm formGuard
}

type LedgerOption func(*Ledger)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the calendar "today" is evaluated in. Default is
// time.Local.
func WithLocation(loc *time.Location) LedgerOption {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// NewLedger wires the ledger to dir so that deleting an employee drops
// its cached history. dir may be nil.
func NewLedger(api *API, dir *Directory, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		api:     api,
		dir:     dir,
		now:     time.Now,
		loc:     time.Local,
		records: map[int64][]AttendanceRecord{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.form = l.defaultForm()
	if dir != nil {
		dir.OnDelete(l.Invalidate)
	}
	return l
}

// Today is the current calendar date in the ledger's location.
func (l *Ledger) Today() string {
	return l.now().In(l.loc).Format(dateLayout)
}

// ListAttendance fetches history for the selected employee, newest
// first. An empty selection returns an empty list without a request.
func (l *Ledger) ListAttendance(ctx context.Context, employeeID string) ([]AttendanceRecord, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return []AttendanceRecord{}, nil
	}
	id, err := parseEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	return l.fetch(ctx, id)
}

// Records returns cached history without a request.
func (l *Ledger) Records(employeeID int64) []AttendanceRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneRecords(l.records[employeeID])
}

// Invalidate forgets cached history for an employee.
func (l *Ledger) Invalidate(employeeID int64) {
	l.mu.Lock()
	delete(l.records, employeeID)
	l.mu.Unlock()
}

func (l *Ledger) Form() MarkInput {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.form
}

func (l *Ledger) SetForm(in MarkInput) {
	l.mu.Lock()
	l.form = in
	l.mu.Unlock()
}

// ResetForm restores today and Present.
func (l *Ledger) ResetForm() {
	l.SetForm(l.defaultForm())
}

func (l *Ledger) MarkState() SubmissionState { return l.markForm.state() }

// MarkAttendance checks the submission locally, sends it, then reloads
// the employee's history. Local rejections never reach the network.
//
// When the write succeeds but the reload fails, the result is returned
// together with a FetchFailure: the record exists, only the view is stale.
// The form is reset only after a successful reload.
func (l *Ledger) MarkAttendance(ctx context.Context, employeeID string, in MarkInput) (*MarkResult, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, localFailure(ValidationFailure, ErrNoEmployeeSelected, msgSelectEmployee, nil)
	}
	id, err := parseEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	if l.dir != nil && l.dir.Loaded() {
		if _, ok := l.dir.Lookup(id); !ok {
			return nil, localFailure(InvalidEmployeeFailure, ErrUnknownEmployee, msgInvalidEmployee, nil)
		}
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = l.Today()
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, localFailure(ValidationFailure, ErrInvalidDate, msgInvalidDate,
			map[string][]string{"date": {msgInvalidDate}})
	}
	// compare calendar dates; both sides are plain YYYY-MM-DD
	if day.Format(dateLayout) > l.Today() {
		return nil, localFailure(ValidationFailure, ErrFutureDate, msgFutureDate,
			map[string][]string{"date": {msgFutureDate}})
	}

	status := in.Status
	if status == "" {
		status = StatusPresent
	}
	if !status.Valid() {
		return nil, localFailure(InvalidStatusFailure, ErrInvalidStatus, msgInvalidStatus,
			map[string][]string{"status": {msgInvalidStatus}})
	}

	if !l.markForm.enter() {
		return nil, busyFailure()
	}
	defer l.markForm.leave()

	rec, err := l.api.MarkAttendance(ctx, markRequest{Employee: id, Date: day.Format(dateLayout), Status: status})
	if err != nil {
		return nil, markAttendanceFailure(err)
	}

	res := &MarkResult{Record: rec}
	records, err := l.fetch(ctx, id)
	if err != nil {
		// form keeps its values until the history is known to be current
		return res, err
	}
	res.Records = records
	l.ResetForm()
	return res, nil
}

func (l *Ledger) fetch(ctx context.Context, id int64) ([]AttendanceRecord, error) {
	list, err := l.api.ListAttendance(ctx, id)
	if err != nil {
		return nil, fetchFailure(err, msgLoadAttendance)
	}
	l.mu.Lock()
	l.records[id] = list
	l.mu.Unlock()
	return cloneRecords(list), nil
}

func (l *Ledger) defaultForm() MarkInput {
	return MarkInput{Date: l.Today(), Status: StatusPresent}
}

func parseEmployeeID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, localFailure(InvalidEmployeeFailure, ErrUnknownEmployee, msgInvalidEmployee, nil)
	}
	return id, nil
}

func cloneRecords(in []AttendanceRecord) []AttendanceRecord {
	out := make([]AttendanceRecord, len(in))
	copy(out, in)
	return out
}

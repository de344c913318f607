package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// blockingServer holds every write until release is called. Reads are
// answered immediately.
type blockingServer struct {
	writes  atomic.Int32
	entered chan struct{}
	release func()
}

func newBlockingServer(t *testing.T, writeStatus int, writeBody, readBody string) (*API, *blockingServer) {
	t.Helper()
	gate := make(chan struct{})
	var once sync.Once
	b := &blockingServer{
		entered: make(chan struct{}, 8),
		release: func() { once.Do(func() { close(gate) }) },
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, readBody)
			return
		}
		b.writes.Add(1)
		b.entered <- struct{}{}
		<-gate
		w.WriteHeader(writeStatus)
		_, _ = io.WriteString(w, writeBody)
	}))
	t.Cleanup(srv.Close)
	// runs before srv.Close so a failed test never leaves a handler blocked
	t.Cleanup(b.release)
	return newTestAPI(t, srv.URL+"/api/"), b
}

func (b *blockingServer) waitForWrite(t *testing.T) {
	t.Helper()
	select {
	case <-b.entered:
	case <-time.After(5 * time.Second):
		t.Fatalf("write never reached the server")
	}
}

func TestLedgerMarkAttendanceIsNotReentrant(t *testing.T) {
	api, srv := newBlockingServer(t, http.StatusCreated, `{"success":true}`, `{"success":true,"attendance_records":[]}`)
	ledger := NewLedger(api, nil, WithClock(fixedClock("2024-01-12T09:00:00Z")), WithLocation(time.UTC))
	ctx := context.Background()

	if ledger.MarkState() != Idle {
		t.Fatalf("expected Idle before submitting, got %v", ledger.MarkState())
	}

	done := make(chan error, 1)
	go func() {
		_, err := ledger.MarkAttendance(ctx, "1", MarkInput{Date: "2024-01-10", Status: StatusPresent})
		done <- err
	}()
	srv.waitForWrite(t)

	if ledger.MarkState() != Submitting {
		t.Fatalf("expected Submitting while the write is in flight, got %v", ledger.MarkState())
	}
	_, err := ledger.MarkAttendance(ctx, "1", MarkInput{Date: "2024-01-11", Status: StatusAbsent})
	if !errors.Is(err, ErrSubmissionInProgress) {
		t.Fatalf("expected ErrSubmissionInProgress, got %v", err)
	}
	if KindOf(err) != SubmissionFailure {
		t.Fatalf("expected SubmissionFailure, got %v", KindOf(err))
	}
	if n := srv.writes.Load(); n != 1 {
		t.Fatalf("expected exactly one write, got %d", n)
	}

	srv.release()
	if err := <-done; err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if ledger.MarkState() != Idle {
		t.Fatalf("expected Idle after completion, got %v", ledger.MarkState())
	}
	if n := srv.writes.Load(); n != 1 {
		t.Fatalf("expected exactly one write, got %d", n)
	}
}

func TestDirectoryCreateEmployeeIsNotReentrant(t *testing.T) {
	api, srv := newBlockingServer(t, http.StatusCreated,
		`{"success":true,"data":{"id":1,"employee_id":"E001","full_name":"Jane Doe","email":"jane@co.com","department":"Engineering"}}`,
		`{"success":true,"data":[]}`)
	dir := NewDirectory(api)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := dir.CreateEmployee(ctx, jane)
		done <- err
	}()
	srv.waitForWrite(t)

	if dir.CreateState() != Submitting {
		t.Fatalf("expected Submitting while the write is in flight, got %v", dir.CreateState())
	}
	other := EmployeeInput{EmployeeID: "E002", FullName: "Bob", Email: "bob@co.com", Department: "Ops"}
	if _, err := dir.CreateEmployee(ctx, other); !errors.Is(err, ErrSubmissionInProgress) {
		t.Fatalf("expected ErrSubmissionInProgress, got %v", err)
	}
	if n := srv.writes.Load(); n != 1 {
		t.Fatalf("expected exactly one write, got %d", n)
	}

	srv.release()
	if err := <-done; err != nil {
		t.Fatalf("first create: %v", err)
	}
	if dir.CreateState() != Idle {
		t.Fatalf("expected Idle after completion, got %v", dir.CreateState())
	}
	if got := dir.Employees(); len(got) != 1 || got[0].EmployeeID != "E001" {
		t.Fatalf("expected only the first employee cached, got %+v", got)
	}
}

func TestDirectoryDeleteEmployeeIsNotReentrant(t *testing.T) {
	api, srv := newBlockingServer(t, http.StatusOK, `{"success":true}`, `{"success":true,"data":[]}`)
	dir := NewDirectory(api)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- dir.DeleteEmployee(ctx, 1, true) }()
	srv.waitForWrite(t)

	if dir.DeleteState() != Submitting {
		t.Fatalf("expected Submitting while the delete is in flight, got %v", dir.DeleteState())
	}
	if err := dir.DeleteEmployee(ctx, 2, true); !errors.Is(err, ErrSubmissionInProgress) {
		t.Fatalf("expected ErrSubmissionInProgress, got %v", err)
	}

	srv.release()
	if err := <-done; err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if dir.DeleteState() != Idle {
		t.Fatalf("expected Idle after completion, got %v", dir.DeleteState())
	}
	if n := srv.writes.Load(); n != 1 {
		t.Fatalf("expected exactly one write, got %d", n)
	}
}

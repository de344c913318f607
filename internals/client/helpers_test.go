package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hrms_backend/internals/features/hrms/store"
	helper "hrms_backend/internals/helpers"
	routes "hrms_backend/internals/route"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// newBackend serves the real HRMS routes over an in-memory store.
func newBackend(t *testing.T) (*API, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FromFiberError,
	})
	routes.SetupRoutes(app, st, time.UTC)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return newTestAPI(t, srv.URL+"/api/"), st
}

type scripted struct {
	calls  atomic.Int32
	status int
	body   string
}

// newScripted answers every request with the same status and body and
// counts how many requests arrived.
func newScripted(t *testing.T, status int, body string) (*API, *scripted) {
	t.Helper()
	s := &scripted{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		_, _ = io.WriteString(w, s.body)
	}))
	t.Cleanup(srv.Close)
	return newTestAPI(t, srv.URL+"/api"), s
}

func newTestAPI(t *testing.T, base string) *API {
	t.Helper()
	api, err := NewAPI(base, &http.Client{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new api: %v", err)
	}
	return api
}

func expectKind(t *testing.T, err error, want Kind) *Failure {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil error", want)
	}
	f, ok := err.(*Failure)
	if !ok {
		t.Fatalf("expected *Failure, got %T: %v", err, err)
	}
	if f.Kind != want {
		t.Fatalf("expected kind %v, got %v (%q)", want, f.Kind, f.Message)
	}
	return f
}

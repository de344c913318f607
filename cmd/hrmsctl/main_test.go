package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrms_backend/internals/features/hrms/store"
	helper "hrms_backend/internals/helpers"
	routes "hrms_backend/internals/route"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func newServer(t *testing.T) string {
	t.Helper()
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FromFiberError,
	})
	routes.SetupRoutes(app, store.NewMemoryStore(), time.UTC)
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv.URL + "/api/"
}

func runCLI(t *testing.T, api string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"-api", api}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunEmployeeAndAttendanceFlow(t *testing.T) {
	api := newServer(t)

	code, out, errOut := runCLI(t, api, "employees", "add", "-id", "E001", "-name", "Jane Doe", "-email", "jane@co.com", "-dept", "Engineering")
	if code != 0 {
		t.Fatalf("add: exit %d stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "with pk 1") {
		t.Fatalf("unexpected add output %q", out)
	}

	code, out, errOut = runCLI(t, api, "attendance", "mark", "-employee", "1", "-date", "2024-01-10")
	if code != 0 {
		t.Fatalf("mark: exit %d stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "marked 2024-01-10 as Present") || !strings.Contains(out, "present days: 1 of 1") {
		t.Fatalf("unexpected mark output %q", out)
	}

	code, _, errOut = runCLI(t, api, "attendance", "mark", "-employee", "1", "-date", "2024-01-10")
	if code != 1 || !strings.Contains(errOut, "already marked") {
		t.Fatalf("expected duplicate failure, got %d %q", code, errOut)
	}

	code, out, _ = runCLI(t, api, "employees", "list")
	if code != 0 || !strings.Contains(out, "Jane Doe") {
		t.Fatalf("unexpected list output %d %q", code, out)
	}
}

func TestRunDeleteNeedsConfirmation(t *testing.T) {
	api := newServer(t)
	if code, _, errOut := runCLI(t, api, "employees", "add", "-id", "E001", "-name", "Jane Doe", "-email", "jane@co.com", "-dept", "Engineering"); code != 0 {
		t.Fatalf("add: %s", errOut)
	}

	code, _, errOut := runCLI(t, api, "employees", "delete", "-id", "1")
	if code != 1 || !strings.Contains(errOut, "pass -yes") {
		t.Fatalf("expected confirmation error, got %d %q", code, errOut)
	}

	code, out, errOut := runCLI(t, api, "employees", "delete", "-id", "1", "-yes")
	if code != 0 || !strings.Contains(out, "deleted employee 1") {
		t.Fatalf("expected delete, got %d %q %q", code, out, errOut)
	}
}

func TestRunUsage(t *testing.T) {
	code, _, errOut := runCLI(t, "http://127.0.0.1:1/api/", "employees")
	if code != 2 || !strings.Contains(errOut, "usage: hrmsctl") {
		t.Fatalf("expected usage, got %d %q", code, errOut)
	}
}

func TestRunPrintsFieldErrors(t *testing.T) {
	api := newServer(t)
	code, _, errOut := runCLI(t, api, "employees", "add", "-id", "E001", "-name", "Jane", "-email", "bad", "-dept", "Ops")
	if code != 1 || !strings.Contains(errOut, "email: Enter a valid email address.") {
		t.Fatalf("expected field errors, got %d %q", code, errOut)
	}
}

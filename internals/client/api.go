// Package client is the roster and attendance core used by front ends.
// It talks to the HRMS backend over its JSON API and turns every backend
// outcome into either data or a single user-facing *Failure.
//
// A failed employee create is a ConflictFailure when the backend sends
// error_code CONFLICT, answers 409, or reports an employee_id/email
// message such as "already exists"; other field errors are validation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// APIError is a non-2xx response (or a 2xx carrying success=false).
type APIError struct {
	Status    int
	Message   string
	ErrorCode string
	Errors    map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// FieldError returns the first message recorded for field.
func (e *APIError) FieldError(field string) (string, bool) {
	msgs, ok := e.Errors[field]
	if !ok {
		return "", false
	}
	for _, m := range msgs {
		if strings.TrimSpace(m) != "" {
			return m, true
		}
	}
	return "", true
}

// API is a thin typed wrapper over the backend endpoints.
type API struct {
	base *url.URL
	http *http.Client
}

// NewAPI expects the API root, e.g. "http://localhost:3000/api/".
func NewAPI(baseURL string, httpClient *http.Client) (*API, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &API{base: u, http: httpClient}, nil
}

func (a *API) ListEmployees(ctx context.Context) ([]Employee, error) {
	body, err := a.do(ctx, http.MethodGet, "employees/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Employee](body, "data")
}

func (a *API) CreateEmployee(ctx context.Context, in EmployeeInput) (Employee, error) {
	body, err := a.do(ctx, http.MethodPost, "employees/", in)
	if err != nil {
		return Employee{}, err
	}
	var resp struct {
		Data Employee `json:"data"`
	}
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return Employee{}, fmt.Errorf("decode created employee: %w", err)
	}
	return resp.Data, nil
}

func (a *API) DeleteEmployee(ctx context.Context, id int64) error {
	_, err := a.do(ctx, http.MethodDelete, "employees/"+strconv.FormatInt(id, 10)+"/", nil)
	return err
}

func (a *API) ListAttendance(ctx context.Context, employeeID int64) ([]AttendanceRecord, error) {
	body, err := a.do(ctx, http.MethodGet, "employees/"+strconv.FormatInt(employeeID, 10)+"/attendance/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[AttendanceRecord](body, "attendance_records")
}

func (a *API) MarkAttendance(ctx context.Context, req markRequest) (AttendanceRecord, error) {
	body, err := a.do(ctx, http.MethodPost, "attendance/", req)
	if err != nil {
		return AttendanceRecord{}, err
	}
	var resp struct {
		Data *AttendanceRecord `json:"data"`
	}
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return AttendanceRecord{}, fmt.Errorf("decode attendance: %w", err)
	}
	if resp.Data == nil {
		return AttendanceRecord{Employee: req.Employee, Date: req.Date, Status: req.Status}, nil
	}
	return *resp.Data, nil
}

func (a *API) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	target := a.base.ResolveReference(ref)

	var reqBody io.Reader
	if payload != nil {
		b, err := sonic.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := a.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, decodeAPIError(res.StatusCode, body)
	}
	if apiErr := unsuccessful(res.StatusCode, body); apiErr != nil {
		return nil, apiErr
	}
	return body, nil
}

type errorBody struct {
	Success   *bool          `json:"success"`
	Message   string         `json:"message"`
	Detail    string         `json:"detail"`
	ErrorCode string         `json:"error_code"`
	Errors    map[string]any `json:"errors"`
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var eb errorBody
	if err := sonic.Unmarshal(body, &eb); err != nil {
		return apiErr
	}
	apiErr.Message = eb.Message
	if apiErr.Message == "" {
		apiErr.Message = eb.Detail
	}
	apiErr.ErrorCode = eb.ErrorCode
	apiErr.Errors = normalizeFieldErrors(eb.Errors)
	return apiErr
}

// unsuccessful catches 2xx bodies that still say success=false.
func unsuccessful(status int, body []byte) *APIError {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var eb errorBody
	if err := sonic.Unmarshal(trimmed, &eb); err != nil || eb.Success == nil || *eb.Success {
		return nil
	}
	return decodeAPIError(status, trimmed)
}

// normalizeFieldErrors accepts {field: "msg"} and {field: ["msg", ...]}.
func normalizeFieldErrors(raw map[string]any) map[string][]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string][]string, len(raw))
	for field, v := range raw {
		switch t := v.(type) {
		case string:
			out[field] = []string{t}
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					out[field] = append(out[field], s)
				}
			}
			if _, ok := out[field]; !ok {
				out[field] = []string{}
			}
		default:
			out[field] = []string{}
		}
	}
	return out
}

// decodeList reads the canonical {key: [...]} envelope and also accepts
// a bare JSON array.
func decodeList[T any](body []byte, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := sonic.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return nonNil(items), nil
	}

	var env map[string]json.RawMessage
	if err := sonic.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	raw, ok := env[key]
	if !ok || string(raw) == "null" {
		return []T{}, nil
	}
	var items []T
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return nonNil(items), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// sortedKeys is used wherever map order would leak into user messages.
func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

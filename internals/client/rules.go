package client

import (
	"errors"
	"strings"
)

// Backend error codes the rules below understand.
const (
	codeConflict      = "CONFLICT"
	codeDuplicateDate = "DUPLICATE_DATE"
	codeFutureDate    = "FUTURE_DATE"
	codeValidation    = "VALIDATION_ERROR"

	genericValidationMessage = "Validation failed"
)

const (
	msgLoadEmployees     = "Failed to load employees"
	msgLoadAttendance    = "Failed to load attendance records"
	msgCreateEmployee    = "Failed to add employee. Please check the details."
	msgDeleteEmployee    = "Failed to delete employee."
	msgMarkAttendance    = "Failed to mark attendance. Please try again."
	msgDuplicateDate     = "Attendance for this date is already marked."
	msgInvalidEmployee   = "Invalid employee selection."
	msgInvalidStatus     = "Invalid status value."
	msgSelectEmployee    = "Please select an employee first"
	msgFutureDate        = "Future dates are not allowed for attendance marking."
	msgInvalidDate       = "Enter a valid date (YYYY-MM-DD)."
	msgConfirmDelete     = "Deletion must be confirmed."
	msgSubmissionPending = "Please wait for the current submission to finish."
)

// rule inspects a failed call and, when it applies, yields the kind and
// the single message to surface. Rules are evaluated top to bottom and
// the first match wins.
type rule struct {
	name  string
	match func(apiErr *APIError, err error) (Kind, string, bool)
}

// extract runs rules against err. apiErr is nil for transport failures.
func extract(rules []rule, err error, fallbackKind Kind, fallbackMsg string) *Failure {
	var apiErr *APIError
	errors.As(err, &apiErr)

	f := &Failure{Kind: fallbackKind, Message: fallbackMsg, Err: err}
	if apiErr != nil {
		f.Status = apiErr.Status
		f.Fields = apiErr.Errors
	}
	for _, r := range rules {
		if kind, msg, ok := r.match(apiErr, err); ok {
			f.Kind = kind
			f.Message = msg
			return f
		}
	}
	return f
}

func fieldRule(field string, kindOf func(*APIError) Kind, fallback string) rule {
	return rule{
		name: field,
		match: func(apiErr *APIError, _ error) (Kind, string, bool) {
			if apiErr == nil {
				return 0, "", false
			}
			msg, ok := apiErr.FieldError(field)
			if !ok {
				return 0, "", false
			}
			if msg == "" {
				msg = fallback
			}
			return kindOf(apiErr), msg, true
		},
	}
}

func fixedKind(k Kind) func(*APIError) Kind {
	return func(*APIError) Kind { return k }
}

// topLevelRule surfaces the response's own message unless it is the
// generic "Validation failed" placeholder.
func topLevelRule(kindOf func(*APIError) Kind) rule {
	return rule{
		name: "message",
		match: func(apiErr *APIError, _ error) (Kind, string, bool) {
			if apiErr == nil {
				return 0, "", false
			}
			msg := strings.TrimSpace(apiErr.Message)
			if msg == "" || msg == genericValidationMessage {
				return 0, "", false
			}
			return kindOf(apiErr), msg, true
		},
	}
}

// transportRule falls back to the error text itself: the network error
// when no response arrived, or "request failed with status code N".
func transportRule(kind Kind) rule {
	return rule{
		name: "transport",
		match: func(apiErr *APIError, err error) (Kind, string, bool) {
			if err == nil {
				return 0, "", false
			}
			msg := strings.TrimSpace(err.Error())
			if msg == "" || msg == genericValidationMessage {
				return 0, "", false
			}
			return kind, msg, true
		},
	}
}

/* ===================== mark attendance ===================== */

func dateKind(apiErr *APIError) Kind {
	switch apiErr.ErrorCode {
	case codeFutureDate, codeValidation:
		return ValidationFailure
	default:
		// DUPLICATE_DATE, or a backend that sends no code: a date-keyed
		// error on an otherwise valid submission is the duplicate case
		return DuplicateDateFailure
	}
}

func submissionKind(apiErr *APIError) Kind {
	if apiErr.ErrorCode == codeDuplicateDate {
		return DuplicateDateFailure
	}
	return SubmissionFailure
}

// markAttendanceRules: date > employee > status > non_field_errors >
// top-level message > transport message.
var markAttendanceRules = []rule{
	fieldRule("date", dateKind, msgDuplicateDate),
	fieldRule("employee", fixedKind(InvalidEmployeeFailure), msgInvalidEmployee),
	fieldRule("status", fixedKind(InvalidStatusFailure), msgInvalidStatus),
	fieldRule("non_field_errors", fixedKind(SubmissionFailure), msgMarkAttendance),
	{
		// a duplicate signalled by code alone still outranks the message
		name: "duplicate_code",
		match: func(apiErr *APIError, _ error) (Kind, string, bool) {
			if apiErr == nil || apiErr.ErrorCode != codeDuplicateDate {
				return 0, "", false
			}
			msg := strings.TrimSpace(apiErr.Message)
			if msg == "" || msg == genericValidationMessage {
				msg = msgDuplicateDate
			}
			return DuplicateDateFailure, msg, true
		},
	},
	topLevelRule(submissionKind),
	transportRule(SubmissionFailure),
}

func markAttendanceFailure(err error) *Failure {
	return extract(markAttendanceRules, err, SubmissionFailure, msgMarkAttendance)
}

/* ===================== create employee ===================== */

// employeeFieldOrder fixes which field error is "first" when several
// come back; unknown fields follow alphabetically, non_field_errors last.
var employeeFieldOrder = []string{"employee_id", "full_name", "email", "department"}

func firstFieldError(fields map[string][]string, order []string) (string, string, bool) {
	seen := map[string]bool{}
	try := func(field string) (string, bool) {
		seen[field] = true
		for _, m := range fields[field] {
			if strings.TrimSpace(m) != "" {
				return m, true
			}
		}
		return "", false
	}
	for _, f := range order {
		if msg, ok := try(f); ok {
			return f, msg, true
		}
	}
	for _, f := range sortedKeys(fields) {
		if seen[f] || f == "non_field_errors" {
			continue
		}
		if msg, ok := try(f); ok {
			return f, msg, true
		}
	}
	if msg, ok := try("non_field_errors"); ok {
		return "non_field_errors", msg, true
	}
	return "", "", false
}

// uniqueFields are the employee fields the backend keeps unique.
var uniqueFields = []string{"employee_id", "email"}

// conflictHints match uniqueness messages from backends that send no
// error_code, e.g. "Employee ID already exists.".
var conflictHints = []string{"already exists", "already in use", "already taken", "must be unique"}

func uniquenessMessage(apiErr *APIError) bool {
	for _, field := range uniqueFields {
		for _, m := range apiErr.Errors[field] {
			lower := strings.ToLower(m)
			for _, hint := range conflictHints {
				if strings.Contains(lower, hint) {
					return true
				}
			}
		}
	}
	return false
}

func employeeKind(apiErr *APIError) Kind {
	switch {
	case apiErr.ErrorCode == codeConflict || apiErr.Status == 409 || uniquenessMessage(apiErr):
		return ConflictFailure
	case apiErr.Status == 400 || len(apiErr.Errors) > 0:
		return ValidationFailure
	default:
		return SubmissionFailure
	}
}

var createEmployeeRules = []rule{
	topLevelRule(employeeKind),
	{
		name: "first_field",
		match: func(apiErr *APIError, _ error) (Kind, string, bool) {
			if apiErr == nil {
				return 0, "", false
			}
			if _, msg, ok := firstFieldError(apiErr.Errors, employeeFieldOrder); ok {
				return employeeKind(apiErr), msg, true
			}
			return 0, "", false
		},
	},
	transportRule(SubmissionFailure),
}

func createEmployeeFailure(err error) *Failure {
	f := extract(createEmployeeRules, err, SubmissionFailure, msgCreateEmployee)
	var apiErr *APIError
	if f.Kind == SubmissionFailure && errors.As(err, &apiErr) && apiErr.Status == 400 {
		f.Kind = employeeKind(apiErr)
	}
	return f
}

/* ===================== reads & delete ===================== */

var fetchRules = []rule{
	topLevelRule(fixedKind(FetchFailure)),
	transportRule(FetchFailure),
}

func fetchFailure(err error, fallback string) *Failure {
	return extract(fetchRules, err, FetchFailure, fallback)
}

var deleteRules = []rule{
	topLevelRule(fixedKind(DeleteFailure)),
	transportRule(DeleteFailure),
}

func deleteFailure(err error) *Failure {
	return extract(deleteRules, err, DeleteFailure, msgDeleteEmployee)
}

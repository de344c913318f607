package client

import (
	"errors"
	"fmt"
)

type Kind int

const (
	FetchFailure Kind = iota + 1
	ValidationFailure
	ConflictFailure
	DuplicateDateFailure
	InvalidEmployeeFailure
	InvalidStatusFailure
	SubmissionFailure
	DeleteFailure
)

func (k Kind) String() string {
	switch k {
	case FetchFailure:
		return "FetchFailure"
	case ValidationFailure:
		return "ValidationFailure"
	case ConflictFailure:
		return "ConflictFailure"
	case DuplicateDateFailure:
		return "DuplicateDateFailure"
	case InvalidEmployeeFailure:
		return "InvalidEmployeeFailure"
	case InvalidStatusFailure:
		return "InvalidStatusFailure"
	case SubmissionFailure:
		return "SubmissionFailure"
	case DeleteFailure:
		return "DeleteFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Conditions detected before any request is sent. A Failure wraps one of
// these in Err so callers can match with errors.Is.
var (
	ErrNoEmployeeSelected   = errors.New("please select an employee first")
	ErrUnknownEmployee      = errors.New("employee is not in the directory")
	ErrFutureDate           = errors.New("future dates are not allowed")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrConfirmationRequired = errors.New("deletion requires confirmation")
	ErrSubmissionInProgress = errors.New("a submission from this form is already in progress")
)

// Failure is the single error type returned by Directory and Ledger
// operations. Message is the one line meant for the user.
type Failure struct {
	Kind    Kind
	Message string
	// Fields holds field-keyed messages when the failure came from
	// validation (local or backend).
	Fields map[string][]string
	// Status is the HTTP status, 0 when no response was received.
	Status int
	Err    error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf returns the Kind of err, or 0 when err is not a *Failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

func localFailure(kind Kind, cause error, msg string, fields map[string][]string) *Failure {
	return &Failure{Kind: kind, Message: msg, Fields: fields, Err: cause}
}

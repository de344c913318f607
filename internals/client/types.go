package client

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

type Employee struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type AttendanceRecord struct {
	ID       int64  `json:"id"`
	Employee int64  `json:"employee,omitempty"`
	Date     string `json:"date"`
	Status   Status `json:"status"`
}

// EmployeeInput is the create-employee form.
type EmployeeInput struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required"`
}

// MarkInput is the mark-attendance form. Empty fields fall back to the
// form defaults: today and Present.
type MarkInput struct {
	Date   string
	Status Status
}

type markRequest struct {
	Employee int64  `json:"employee"`
	Date     string `json:"date"`
	Status   Status `json:"status"`
}

// CountPresentDays counts entries marked Present. Order does not matter.
func CountPresentDays(records []AttendanceRecord) int {
	n := 0
	for _, r := range records {
		if r.Status == StatusPresent {
			n++
		}
	}
	return n
}

package dto

import (
	"strings"
	"time"

	"hrms_backend/internals/features/hrms/attendance/model"
	"hrms_backend/internals/helpers/dbtime"

	"gorm.io/datatypes"
)

type AttendanceDTO struct {
	ID       uint   `json:"id"`
	Employee uint   `json:"employee"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}

type CreateAttendanceRequest struct {
	Employee uint   `json:"employee" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Status   string `json:"status" validate:"required,oneof=Present Absent"`
}

func (r *CreateAttendanceRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.Status = strings.TrimSpace(r.Status)
}

func ToAttendanceDTO(m model.AttendanceModel) AttendanceDTO {
	return AttendanceDTO{
		ID:       m.ID,
		Employee: m.EmployeeID,
		Date:     dbtime.FormatDate(m.Day()),
		Status:   m.Status,
	}
}

func ToAttendanceDTOs(rows []model.AttendanceModel) []AttendanceDTO {
	out := make([]AttendanceDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToAttendanceDTO(r))
	}
	return out
}

// ToModel expects date to be already parsed from r.Date.
func (r CreateAttendanceRequest) ToModel(date time.Time) model.AttendanceModel {
	return model.AttendanceModel{
		EmployeeID: r.Employee,
		Date:       datatypes.Date(date),
		Status:     r.Status,
	}
}

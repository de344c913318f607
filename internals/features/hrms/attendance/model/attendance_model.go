package model

import (
	"time"

	EmployeeModel "hrms_backend/internals/features/hrms/employees/model"

	"gorm.io/datatypes"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// ValidStatus reports whether s is one of the two accepted statuses.
// Matching is exact; "present" is rejected.
func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent
}

type AttendanceModel struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID uint           `gorm:"column:employee_id;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date       datatypes.Date `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index:idx_attendance_date"`
	Status     string         `gorm:"column:status;type:varchar(10);not null;check:chk_attendance_status,status IN ('Present','Absent')"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`

	// Relations
	Employee *EmployeeModel.EmployeeModel `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}

func (m AttendanceModel) Day() time.Time {
	return time.Time(m.Date)
}

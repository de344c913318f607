package model

import "time"

type EmployeeModel struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_employees_employee_id"`
	FullName   string    `gorm:"column:full_name;type:varchar(100);not null"`
	Email      string    `gorm:"column:email;type:varchar(254);not null;uniqueIndex:uq_employees_email"`
	Department string    `gorm:"column:department;type:varchar(100);not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EmployeeModel) TableName() string {
	return "employees"
}

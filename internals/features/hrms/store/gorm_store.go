package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	attendanceModel "hrms_backend/internals/features/hrms/attendance/model"
	employeeModel "hrms_backend/internals/features/hrms/employees/model"
	helper "hrms_backend/internals/helpers"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	DB *gorm.DB
}

// NewGormStore migrates the schema and returns a Postgres-backed Store.
func NewGormStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&employeeModel.EmployeeModel{}, &attendanceModel.AttendanceModel{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &gormStore{DB: db}, nil
}

func (s *gormStore) ListEmployees(ctx context.Context) ([]employeeModel.EmployeeModel, error) {
	var rows []employeeModel.EmployeeModel
	err := s.DB.WithContext(ctx).
		Order("full_name ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *gormStore) GetEmployee(ctx context.Context, id uint) (*employeeModel.EmployeeModel, error) {
	var row employeeModel.EmployeeModel
	err := s.DB.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormStore) EmployeeConflicts(ctx context.Context, employeeID, email string) (bool, bool, error) {
	type row struct {
		EmployeeID string `gorm:"column:employee_id"`
		Email      string `gorm:"column:email"`
	}
	var rows []row
	if err := s.DB.WithContext(ctx).
		Model(&employeeModel.EmployeeModel{}).
		Select("employee_id, email").
		Where("employee_id = ? OR email = ?", employeeID, email).
		Find(&rows).Error; err != nil {
		return false, false, err
	}
	var idTaken, emailTaken bool
	for _, r := range rows {
		if r.EmployeeID == employeeID {
			idTaken = true
		}
		if r.Email == email {
			emailTaken = true
		}
	}
	return idTaken, emailTaken, nil
}

func (s *gormStore) CreateEmployee(ctx context.Context, e *employeeModel.EmployeeModel) error {
	err := s.DB.WithContext(ctx).Create(e).Error
	if constraint, ok := helper.IsUniqueViolation(err); ok {
		if strings.Contains(constraint, "email") {
			return ErrDuplicateEmail
		}
		return ErrDuplicateEmployeeID
	}
	return err
}

func (s *gormStore) DeleteEmployee(ctx context.Context, id uint) (*employeeModel.EmployeeModel, error) {
	var deleted employeeModel.EmployeeModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&deleted, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}
		// the FK cascades too; deleting explicitly keeps the contract
		// independent of how the schema was created
		if err := tx.Where("employee_id = ?", id).Delete(&attendanceModel.AttendanceModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&employeeModel.EmployeeModel{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (s *gormStore) ListAttendance(ctx context.Context, employeeID uint) ([]attendanceModel.AttendanceModel, error) {
	var rows []attendanceModel.AttendanceModel
	err := s.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (s *gormStore) CreateAttendance(ctx context.Context, a *attendanceModel.AttendanceModel) error {
	if !attendanceModel.ValidStatus(a.Status) {
		return ErrInvalidStatus
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&employeeModel.EmployeeModel{}).Where("id = ?", a.EmployeeID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrEmployeeNotFound
		}
		err := tx.Omit(clause.Associations).Create(a).Error
		if _, ok := helper.IsUniqueViolation(err); ok {
			return ErrDuplicateDate
		}
		if helper.IsForeignKeyViolation(err) {
			return ErrEmployeeNotFound
		}
		if helper.IsCheckViolation(err) {
			return ErrInvalidStatus
		}
		return err
	})
}

func (s *gormStore) SummarizeDay(ctx context.Context, date time.Time) (DaySummary, error) {
	sum := DaySummary{Date: date}
	db := s.DB.WithContext(ctx)

	if err := db.Model(&employeeModel.EmployeeModel{}).Count(&sum.Employees).Error; err != nil {
		return sum, err
	}

	type row struct {
		Status string `gorm:"column:status"`
		N      int64  `gorm:"column:n"`
	}
	var rows []row
	if err := db.Model(&attendanceModel.AttendanceModel{}).
		Select("status, COUNT(*) AS n").
		Where("date = ?", datatypes.Date(date)).
		Group("status").
		Scan(&rows).Error; err != nil {
		return sum, err
	}
	for _, r := range rows {
		switch r.Status {
		case attendanceModel.StatusPresent:
			sum.Present = r.N
		case attendanceModel.StatusAbsent:
			sum.Absent = r.N
		}
	}
	return sum, nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

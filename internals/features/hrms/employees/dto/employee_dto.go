package dto

import (
	"hrms_backend/internals/features/hrms/employees/model"
	helper "hrms_backend/internals/helpers"
)

// ====================
// Response DTO
// ====================

type EmployeeDTO struct {
	ID         uint   `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// ====================
// Request DTO
// ====================

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,max=50"`
	FullName   string `json:"full_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Department string `json:"department" validate:"required,max=100"`
}

func (r *CreateEmployeeRequest) Normalize() {
	r.EmployeeID = helper.CleanCode(r.EmployeeID)
	r.FullName = helper.CleanText(r.FullName)
	r.Email = helper.CleanCode(r.Email)
	r.Department = helper.CleanText(r.Department)
}

// ====================
// Converter
// ====================

func ToEmployeeDTO(m model.EmployeeModel) EmployeeDTO {
	return EmployeeDTO{
		ID:         m.ID,
		EmployeeID: m.EmployeeID,
		FullName:   m.FullName,
		Email:      m.Email,
		Department: m.Department,
	}
}

func ToEmployeeDTOs(rows []model.EmployeeModel) []EmployeeDTO {
	out := make([]EmployeeDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToEmployeeDTO(r))
	}
	return out
}

func (r CreateEmployeeRequest) ToModel() model.EmployeeModel {
	return model.EmployeeModel{
		EmployeeID: r.EmployeeID,
		FullName:   r.FullName,
		Email:      r.Email,
		Department: r.Department,
	}
}

package dto

import "github.com/campusdesk/academics/internal/app/models"

// CreateSemesterRequest is the body of POST /academic-semesters/create-academic-semester.
type CreateSemesterRequest struct {
	Name       models.SemesterName `json:"name" binding:"required,oneof=Autumn Summer Fall" example:"Autumn"`
	Code       string              `json:"code" binding:"required,oneof=01 02 03" example:"01"`
	Year       string              `json:"year" binding:"required,len=4,numeric" example:"2030"`
	StartMonth string              `json:"startMonth" binding:"required,month" example:"January"`
	EndMonth   string              `json:"endMonth" binding:"required,month" example:"April"`
}

// ToModel converts the request into a semester
func (r CreateSemesterRequest) ToModel() *models.AcademicSemester {
	return &models.AcademicSemester{
		Name:       r.Name,
		Code:       r.Code,
		Year:       r.Year,
		StartMonth: r.StartMonth,
		EndMonth:   r.EndMonth,
	}
}

// UpdateSemesterRequest is the body of PATCH /academic-semesters/{semesterId}.
type UpdateSemesterRequest struct {
	Name       *models.SemesterName `json:"name,omitempty" binding:"omitempty,oneof=Autumn Summer Fall"`
	Code       *string              `json:"code,omitempty" binding:"omitempty,oneof=01 02 03"`
	Year       *string              `json:"year,omitempty" binding:"omitempty,len=4,numeric"`
	StartMonth *string              `json:"startMonth,omitempty" binding:"omitempty,month"`
	EndMonth   *string              `json:"endMonth,omitempty" binding:"omitempty,month"`
}

// Apply copies the set fields onto semester.
func (r UpdateSemesterRequest) Apply(semester *models.AcademicSemester) {
	if r.Name != nil {
		semester.Name = *r.Name
	}
	if r.Code != nil {
		semester.Code = *r.Code
	}
	if r.Year != nil {
		semester.Year = *r.Year
	}
	if r.StartMonth != nil {
		semester.StartMonth = *r.StartMonth
	}
	if r.EndMonth != nil {
		semester.EndMonth = *r.EndMonth
	}
}

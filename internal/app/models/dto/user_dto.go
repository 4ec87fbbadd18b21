package dto

import (
	"time"

	"github.com/campusdesk/academics/internal/app/models"
)

// UserName is the structured name shared by students and faculty members.
type UserName struct {
	FirstName  string `json:"firstName" binding:"required,max=20" example:"Ada"`
	MiddleName string `json:"middleName" binding:"max=20"`
	LastName   string `json:"lastName" binding:"required,max=20" example:"Lovelace"`
}

// StudentInput is the profile part of a create-student request.
type StudentInput struct {
	Name              UserName      `json:"name" binding:"required"`
	Gender            models.Gender `json:"gender" binding:"required,oneof=male female other" example:"female"`
	DateOfBirth       *time.Time    `json:"dateOfBirth,omitempty"`
	Email             string        `json:"email" binding:"required,email" example:"ada@campus.edu"`
	ContactNo         string        `json:"contactNo" binding:"required" example:"+1-555-0100"`
	AdmissionSemester int64         `json:"admissionSemester" binding:"required,gt=0" example:"1"`
}

// CreateStudentRequest is the body of POST /users/create-student. An empty password
// falls back to the configured default.
type CreateStudentRequest struct {
	Password string       `json:"password" binding:"omitempty,min=6,max=20"`
	Student  StudentInput `json:"student" binding:"required"`
}

// ToModel converts the profile part into a student row.
func (r CreateStudentRequest) ToModel() *models.Student {
	return &models.Student{
		FirstName:           r.Student.Name.FirstName,
		MiddleName:          r.Student.Name.MiddleName,
		LastName:            r.Student.Name.LastName,
		Email:               r.Student.Email,
		Gender:              r.Student.Gender,
		DateOfBirth:         r.Student.DateOfBirth,
		ContactNo:           r.Student.ContactNo,
		AdmissionSemesterID: r.Student.AdmissionSemester,
	}
}

// FacultyInput is the profile part of a create-faculty request.
type FacultyInput struct {
	Designation string        `json:"designation" binding:"required" example:"Lecturer"`
	Name        UserName      `json:"name" binding:"required"`
	Gender      models.Gender `json:"gender" binding:"required,oneof=male female other" example:"male"`
	Email       string        `json:"email" binding:"required,email" example:"faculty@campus.edu"`
	ContactNo   string        `json:"contactNo" binding:"required"`
}

// CreateFacultyRequest is the body of POST /users/create-faculty.
type CreateFacultyRequest struct {
	Password string       `json:"password" binding:"omitempty,min=6,max=20"`
	Faculty  FacultyInput `json:"faculty" binding:"required"`
}

// ToModel converts the profile part into a faculty row.
func (r CreateFacultyRequest) ToModel() *models.Faculty {
	return &models.Faculty{
		Designation: r.Faculty.Designation,
		FirstName:   r.Faculty.Name.FirstName,
		MiddleName:  r.Faculty.Name.MiddleName,
		LastName:    r.Faculty.Name.LastName,
		Email:       r.Faculty.Email,
		Gender:      r.Faculty.Gender,
		ContactNo:   r.Faculty.ContactNo,
	}
}

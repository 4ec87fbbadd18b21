package models

import "time"

// Student is the profile row of a student account.
type Student struct {
	ID                  int64      `json:"id" db:"id"`
	UserID              int64      `json:"userId" db:"user_id"`
	UserCode            string     `json:"userCode" db:"user_code"`
	FirstName           string     `json:"firstName" db:"first_name"`
	MiddleName          string     `json:"middleName,omitempty" db:"middle_name"`
	LastName            string     `json:"lastName" db:"last_name"`
	Email               string     `json:"email" db:"email"`
	Gender              Gender     `json:"gender" db:"gender"`
	DateOfBirth         *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	ContactNo           string     `json:"contactNo" db:"contact_no"`
	AdmissionSemesterID int64      `json:"admissionSemesterId" db:"admission_semester_id"`
	IsDeleted           bool       `json:"isDeleted" db:"is_deleted"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	AdmissionSemester *AcademicSemester `json:"admissionSemester,omitempty" db:"-"`
}

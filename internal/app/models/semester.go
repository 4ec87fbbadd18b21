package models

import "time"

// SemesterName is one of the three academic semesters of a year.
type SemesterName string

const (
	SemesterAutumn SemesterName = "Autumn"
	SemesterSummer SemesterName = "Summer"
	SemesterFall   SemesterName = "Fall"
)

var semesterCodes = map[SemesterName]string{
	SemesterAutumn: "01",
	SemesterSummer: "02",
	SemesterFall:   "03",
}

// Code returns the fixed code for the semester name.
func (n SemesterName) Code() (string, bool) {
	code, ok := semesterCodes[n]
	return code, ok
}

// Months are the accepted start and end month names.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// AcademicSemester is one semester of one year. (Name, Year) is unique.
type AcademicSemester struct {
	ID         int64        `json:"id" db:"id" example:"1"`
	Name       SemesterName `json:"name" db:"name" example:"Autumn"`
	Code       string       `json:"code" db:"code" example:"01"`
	Year       string       `json:"year" db:"year" example:"2030"`
	StartMonth string       `json:"startMonth" db:"start_month" example:"January"`
	EndMonth   string       `json:"endMonth" db:"end_month" example:"April"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time    `json:"updatedAt" db:"updated_at"`
}

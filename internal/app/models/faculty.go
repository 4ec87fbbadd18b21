package models

import "time"

// Faculty is the profile row of a teaching staff account.
type Faculty struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	UserCode    string    `json:"userCode" db:"user_code"`
	Designation string    `json:"designation" db:"designation"`
	FirstName   string    `json:"firstName" db:"first_name"`
	MiddleName  string    `json:"middleName,omitempty" db:"middle_name"`
	LastName    string    `json:"lastName" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	Gender      Gender    `json:"gender" db:"gender"`
	ContactNo   string    `json:"contactNo" db:"contact_no"`
	IsDeleted   bool      `json:"isDeleted" db:"is_deleted"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

package models

import (
	"time"
)

// User is a login account. Students and faculty members each own one.
type User struct {
	ID                  int64      `json:"id" db:"id" example:"1"`
	UserCode            string     `json:"userCode" db:"user_code" example:"2030010001"`
	Email               string     `json:"email" db:"email" example:"student@campus.edu"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	Role                Role       `json:"role" db:"role" example:"student"`
	Status              UserStatus `json:"status" db:"status" example:"in-progress"`
	NeedsPasswordChange bool       `json:"needsPasswordChange" db:"needs_password_change"`
	IsDeleted           bool       `json:"isDeleted" db:"is_deleted"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`
}

package models

// Role is the account role stored on users.role.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

// UserStatus is the lifecycle state of an account.
type UserStatus string

const (
	StatusInProgress UserStatus = "in-progress"
	StatusBlocked    UserStatus = "blocked"
)

// Gender of a student or faculty member
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

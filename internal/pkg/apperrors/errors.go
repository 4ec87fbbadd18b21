package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Course errors
var (
	ErrCourseNotFound      = NewResourceNotFoundError("course not found")
	ErrCourseAlreadyExists = NewConflictError("course with this title already exists")
	ErrUpdateFailed        = errors.New("failed to update course")

	ErrUnknownPrerequisite     = NewBadRequestError("prerequisite course does not exist")
	ErrSelfPrerequisite        = NewBadRequestError("a course cannot be its own prerequisite")
	ErrCourseFacultyNotFound   = NewResourceNotFoundError("no faculty assigned to this course")
	ErrUnknownFacultyReference = NewBadRequestError("faculty does not exist")
)

// Academic semester errors
var (
	ErrSemesterNotFound      = NewResourceNotFoundError("academic semester not found")
	ErrSemesterAlreadyExists = NewConflictError("academic semester already exists for this year")
	ErrInvalidSemesterCode   = NewCustomError(ErrValidationFailed, "invalid semester code for the semester name")
)

// User errors
var (
	ErrUserNotFound       = NewResourceNotFoundError("user not found")
	ErrStudentNotFound    = NewResourceNotFoundError("student not found")
	ErrFacultyNotFound    = NewResourceNotFoundError("faculty not found")
	ErrEmailAlreadyExists = NewConflictError("email already exists")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

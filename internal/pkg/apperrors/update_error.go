package apperrors

import "errors"

// UpdateFailureKind tags why a transactional update was rolled back.
type UpdateFailureKind string

const (
	UpdateNotFound             UpdateFailureKind = "NOT_FOUND"
	UpdateValidationFailed     UpdateFailureKind = "VALIDATION_FAILED"
	UpdateReconciliationFailed UpdateFailureKind = "RECONCILIATION_FAILED"
)

// UpdateError is returned by every failed course update. Its message is always the
// same so existing callers see one failure; Kind carries the reason. The low-level
// cause is intentionally not reachable through errors.Unwrap.
type UpdateError struct {
	Kind  UpdateFailureKind
	cause error
}

// NewUpdateError builds an UpdateError, keeping cause for logging only.
func NewUpdateError(kind UpdateFailureKind, cause error) *UpdateError {
	return &UpdateError{Kind: kind, cause: cause}
}

func (e *UpdateError) Error() string {
	return ErrUpdateFailed.Error()
}

// Is reports the update failure as a bad request regardless of kind.
func (e *UpdateError) Is(target error) bool {
	return target == ErrUpdateFailed || target == ErrBadRequest
}

// Cause returns the underlying error for diagnostics.
func (e *UpdateError) Cause() error {
	return e.cause
}

// UpdateKind extracts the failure kind from err, if err is an UpdateError.
func UpdateKind(err error) (UpdateFailureKind, bool) {
	var ue *UpdateError
	if errors.As(err, &ue) {
		return ue.Kind, true
	}
	return "", false
}

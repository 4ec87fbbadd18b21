package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
		wantMsg    string
	}{
		{"update failure", apperrors.NewUpdateError(apperrors.UpdateNotFound, apperrors.ErrCourseNotFound), http.StatusBadRequest, dto.ErrorCodeUpdateFailed, "failed to update course"},
		{"not found", apperrors.ErrSemesterNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "academic semester not found"},
		{"wrapped not found", fmt.Errorf("loading: %w", apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "student not found"},
		{"conflict", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeConflict, "email already exists"},
		{"validation", apperrors.ErrInvalidSemesterCode, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "invalid semester code for the semester name"},
		{"bad request", apperrors.ErrSelfPrerequisite, http.StatusBadRequest, dto.ErrorCodeBadRequest, "a course cannot be its own prerequisite"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"disabled", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"},
		{"forbidden", apperrors.NewForbiddenError("not yours"), http.StatusForbidden, dto.ErrorCodeForbidden, "not yours"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
		{"invalid token", fmt.Errorf("%w: bad signature", auth.ErrInvalidToken), http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := classifyError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, detail.Code)
			assert.Equal(t, tt.wantMsg, detail.Message)
		})
	}
}

func TestHandleAPIError_HidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses", nil)

	HandleAPIError(c, errors.New("pq: relation courses does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation courses")
	assert.True(t, c.IsAborted())
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, raw := range []string{"abc", "0", "-4"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := ParamID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, ok := ParamID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)
}

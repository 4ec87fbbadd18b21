package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/pkg/validation"
	"github.com/gin-gonic/gin"
)

// BindJSON binds the request body into obj. On failure it writes a 400 with the
// translated field errors and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
			WithDetails(validation.TranslateErrors(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.APIResponse{
			Message:   errorDetail.Message,
			Error:     errorDetail,
			Timestamp: time.Now(),
		})
		return false
	}
	return true
}

// ParamID reads a positive integer path parameter. On failure it writes a 400 and
// returns false.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.APIResponse{
			Message:   errorDetail.Message,
			Error:     errorDetail,
			Timestamp: time.Now(),
		})
		return 0, false
	}
	return id, true
}

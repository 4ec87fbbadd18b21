package controllers

import (
	"net/http"

	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/app/services"
	"github.com/campusdesk/academics/internal/middleware"
	"github.com/campusdesk/academics/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// ProfileController serves student and faculty profile reads
type ProfileController struct {
	userService services.UserService
}

// NewProfileController creates a new ProfileController
func NewProfileController(userService services.UserService) *ProfileController {
	return &ProfileController{
		userService: userService,
	}
}

// GetAllStudents lists students
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param searchTerm query string false "Match on name, email, user code or contact number"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students retrieved successfully"
// @Router /students [get]
func (c *ProfileController) GetAllStudents(ctx *gin.Context) {
	students, pagination, err := c.userService.GetAllStudents(ctx.Request.Context(), helpers.QueryParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(students, helpers.NewPaginationInfo(pagination), "Students are retrieved successfully"))
}

// GetStudentByID retrieves a student
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *ProfileController) GetStudentByID(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	student, err := c.userService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Student is retrieved successfully"))
}

// GetAllFaculties lists faculty members
// @Summary List faculty members
// @Tags faculties
// @Produce json
// @Security BearerAuth
// @Param searchTerm query string false "Match on name, email, designation or user code"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty} "Faculties retrieved successfully"
// @Router /faculties [get]
func (c *ProfileController) GetAllFaculties(ctx *gin.Context) {
	faculties, pagination, err := c.userService.GetAllFaculties(ctx.Request.Context(), helpers.QueryParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(faculties, helpers.NewPaginationInfo(pagination), "Faculties are retrieved successfully"))
}

// GetFacultyByID retrieves a faculty member
// @Summary Get faculty member by ID
// @Tags faculties
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Faculty retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id} [get]
func (c *ProfileController) GetFacultyByID(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	faculty, err := c.userService.GetFacultyByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculty, "Faculty is retrieved successfully"))
}

package controllers

import (
	"net/http"

	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/app/services"
	"github.com/campusdesk/academics/internal/middleware"
	"github.com/gin-gonic/gin"
)

// UserController handles account creation
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateStudent creates a student account and profile
// @Summary Create a student
// @Description Creates the login account and the student profile. Without a password the configured default is used and must be changed on first login.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Password and student profile"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Admission semester not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users/create-student [post]
func (c *UserController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.userService.CreateStudent(ctx.Request.Context(), req.Password, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student, "Student is created successfully"))
}

// CreateFaculty creates a faculty account and profile
// @Summary Create a faculty member
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFacultyRequest true "Password and faculty profile"
// @Success 201 {object} dto.APIResponse{data=models.Faculty} "Faculty created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users/create-faculty [post]
func (c *UserController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculty, err := c.userService.CreateFaculty(ctx.Request.Context(), req.Password, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(faculty, "Faculty is created successfully"))
}

package controllers

import (
	"net/http"

	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/app/services"
	"github.com/campusdesk/academics/internal/middleware"
	"github.com/campusdesk/academics/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// SemesterController handles academic semester operations
type SemesterController struct {
	semesterService services.SemesterService
}

// NewSemesterController creates a new SemesterController
func NewSemesterController(semesterService services.SemesterService) *SemesterController {
	return &SemesterController{
		semesterService: semesterService,
	}
}

// CreateSemester handles semester creation
// @Summary Create an academic semester
// @Description Name and code must match (Autumn 01, Summer 02, Fall 03); name and year are unique together
// @Tags academic-semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSemesterRequest true "Semester information"
// @Success 201 {object} dto.APIResponse{data=models.AcademicSemester} "Academic semester created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Semester already exists"
// @Router /academic-semesters/create-academic-semester [post]
func (c *SemesterController) CreateSemester(ctx *gin.Context) {
	var req dto.CreateSemesterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	semester, err := c.semesterService.CreateSemester(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(semester, "Academic semester is created successfully"))
}

// GetAllSemesters lists academic semesters
// @Summary List academic semesters
// @Tags academic-semesters
// @Produce json
// @Param searchTerm query string false "Match on name, code or year"
// @Param sort query string false "Comma separated fields, '-' for descending" default(-year,code)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.AcademicSemester} "Academic semesters retrieved successfully"
// @Router /academic-semesters [get]
func (c *SemesterController) GetAllSemesters(ctx *gin.Context) {
	semesters, pagination, err := c.semesterService.GetAllSemesters(ctx.Request.Context(), helpers.QueryParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(semesters, helpers.NewPaginationInfo(pagination), "Academic semesters are retrieved successfully"))
}

// GetSemesterByID retrieves a semester
// @Summary Get academic semester by ID
// @Tags academic-semesters
// @Produce json
// @Param semesterId path int true "Semester ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.AcademicSemester} "Academic semester retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /academic-semesters/{semesterId} [get]
func (c *SemesterController) GetSemesterByID(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "semesterId")
	if !ok {
		return
	}

	semester, err := c.semesterService.GetSemesterByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(semester, "Academic semester is retrieved successfully"))
}

// UpdateSemester partially updates a semester
// @Summary Update academic semester
// @Tags academic-semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param semesterId path int true "Semester ID" Format(int64) minimum(1)
// @Param request body dto.UpdateSemesterRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.AcademicSemester} "Academic semester updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Failure 409 {object} dto.ErrorResponse "Semester already exists"
// @Router /academic-semesters/{semesterId} [patch]
func (c *SemesterController) UpdateSemester(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "semesterId")
	if !ok {
		return
	}

	var req dto.UpdateSemesterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	semester, err := c.semesterService.UpdateSemester(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(semester, "Academic semester is updated successfully"))
}

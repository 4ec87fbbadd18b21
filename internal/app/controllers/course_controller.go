package controllers

import (
	"net/http"

	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/app/services"
	"github.com/campusdesk/academics/internal/middleware"
	"github.com/campusdesk/academics/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a course, optionally with prerequisite course references
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown prerequisite"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "Course title already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/create-course [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, prerequisites := req.ToModel()
	created, err := c.courseService.CreateCourse(ctx.Request.Context(), course, prerequisites)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created, "Course is created successfully"))
}

// GetAllCourses lists courses
// @Summary List courses
// @Description Lists courses with search, filters, sorting, pagination and field projection. Deleted courses are hidden unless isDeleted is given.
// @Tags courses
// @Produce json
// @Param searchTerm query string false "Case-insensitive match on title, prefix or code"
// @Param sort query string false "Comma separated fields, '-' for descending" default(-createdAt)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param fields query string false "Comma separated fields to return"
// @Param credits query int false "Filter by credits; credits[gte]=3 style operators are accepted"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, pagination, err := c.courseService.GetAllCourses(ctx.Request.Context(), helpers.QueryParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(courses, helpers.NewPaginationInfo(pagination), "Courses are retrieved successfully"))
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Description Retrieves a course with its prerequisite courses populated
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, "Course is retrieved successfully"))
}

// UpdateCourse partially updates a course
// @Summary Update a course
// @Description Updates scalar fields and applies prerequisite additions and removals in one transaction. Entries with isDeleted=true are removed, the rest are added.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Failed to update course"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Router /courses/{id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, "Course is updated successfully"))
}

// DeleteCourse soft deletes a course
// @Summary Delete a course
// @Description Marks the course deleted and returns it
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.DeleteCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, "Course is deleted successfully"))
}

// AssignFaculties adds faculty members to a course
// @Summary Assign faculties to a course
// @Description Creates the course's faculty assignment if missing and adds the given faculty members
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.AssignFacultiesRequest true "Faculty IDs"
// @Success 200 {object} dto.APIResponse{data=models.CourseFaculty} "Faculties assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown faculty"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/assign-faculties [put]
func (c *CourseController) AssignFaculties(ctx *gin.Context) {
	courseID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignFacultiesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	assignment, err := c.courseService.AssignFaculties(ctx.Request.Context(), courseID, req.Faculties)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignment, "Faculties are assigned successfully"))
}

// GetCourseFaculties lists the faculty members of a course
// @Summary Get course faculties
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.CourseFaculty} "Course faculties retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "No faculty assigned"
// @Router /courses/{id}/faculties [get]
func (c *CourseController) GetCourseFaculties(ctx *gin.Context) {
	courseID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	assignment, err := c.courseService.GetCourseFaculties(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignment, "Course faculties are retrieved successfully"))
}

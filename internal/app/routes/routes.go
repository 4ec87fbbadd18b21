package routes

import (
	"net/http"
	"time"

	"github.com/campusdesk/academics/internal/app/controllers"
	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers groups the handlers the router mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Course   *controllers.CourseController
	Semester *controllers.SemesterController
	User     *controllers.UserController
	Profile  *controllers.ProfileController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	authenticated := authMiddleware.JWTAuth()
	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	staff := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.GET("/me", authenticated, c.Auth.GetProfile)
	}

	// Reads are public, writes need an admin token
	courses := v1.Group("/courses")
	{
		courses.GET("", c.Course.GetAllCourses)
		courses.GET("/:id", c.Course.GetCourseByID)
		courses.GET("/:id/faculties", c.Course.GetCourseFaculties)

		coursesAdmin := courses.Group("", authenticated, adminOnly)
		{
			coursesAdmin.POST("/create-course", c.Course.CreateCourse)
			coursesAdmin.PATCH("/:id", c.Course.UpdateCourse)
			coursesAdmin.DELETE("/:id", c.Course.DeleteCourse)
			coursesAdmin.PUT("/:id/assign-faculties", c.Course.AssignFaculties)
		}
	}

	semesters := v1.Group("/academic-semesters")
	{
		semesters.GET("", c.Semester.GetAllSemesters)
		semesters.GET("/:semesterId", c.Semester.GetSemesterByID)

		semestersAdmin := semesters.Group("", authenticated, adminOnly)
		{
			semestersAdmin.POST("/create-academic-semester", c.Semester.CreateSemester)
			semestersAdmin.PATCH("/:semesterId", c.Semester.UpdateSemester)
		}
	}

	users := v1.Group("/users", authenticated, adminOnly)
	{
		users.POST("/create-student", c.User.CreateStudent)
		users.POST("/create-faculty", c.User.CreateFaculty)
	}

	students := v1.Group("/students", authenticated, staff)
	{
		students.GET("", c.Profile.GetAllStudents)
		students.GET("/:id", c.Profile.GetStudentByID)
	}

	faculties := v1.Group("/faculties", authenticated, staff)
	{
		faculties.GET("", c.Profile.GetAllFaculties)
		faculties.GET("/:id", c.Profile.GetFacultyByID)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}

package services

import (
	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/app/repositories"
	"github.com/campusdesk/academics/internal/pkg/auth"
	"github.com/campusdesk/academics/internal/pkg/cache"
	"github.com/rs/zerolog"
)

// Services defined in this package:
// - CourseService: course CRUD, transactional updates, faculty assignment
// - SemesterService: academic semesters
// - UserService: student and faculty accounts
// - AuthService: login

// Services holds all the service instances
type Services struct {
	CourseService   CourseService
	SemesterService SemesterService
	UserService     UserService
	AuthService     *AuthService
}

// profileReader combines the student and faculty repositories.
type profileReader struct {
	*repositories.StudentRepository
	*repositories.FacultyRepository
}

// NewServices wires every service onto its repositories.
func NewServices(
	repos *repositories.Repositories,
	courseCache *cache.JSONCache[models.Course],
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	defaultPassword string,
	logger zerolog.Logger,
) *Services {
	return &Services{
		CourseService:   NewCourseService(repos.CourseRepository, courseCache, logger),
		SemesterService: NewSemesterService(repos.SemesterRepository, logger),
		UserService: NewUserService(
			repos.UserRepository,
			profileReader{repos.StudentRepository, repos.FacultyRepository},
			hasher,
			defaultPassword,
			logger,
		),
		AuthService: NewAuthService(repos.UserRepository, hasher, jwtService, logger),
	}
}

package repositories

import (
	"github.com/campusdesk/academics/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository   *CourseRepository
	SemesterRepository *SemesterRepository
	UserRepository     *UserRepository
	StudentRepository  *StudentRepository
	FacultyRepository  *FacultyRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pg *db.PostgresDB, limits QueryLimits) *Repositories {
	return &Repositories{
		CourseRepository:   NewCourseRepository(pg, limits),
		SemesterRepository: NewSemesterRepository(pg.Pool, limits),
		UserRepository:     NewUserRepository(pg, limits),
		StudentRepository:  NewStudentRepository(pg.Pool, limits),
		FacultyRepository:  NewFacultyRepository(pg.Pool, limits),
	}
}

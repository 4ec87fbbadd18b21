package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/app/repositories"
	"github.com/campusdesk/academics/internal/pkg/auth"
	"github.com/campusdesk/academics/internal/pkg/querybuilder"
	"github.com/rs/zerolog"
)

const (
	sequenceDigits    = 4
	facultyCodePrefix = "F-"
)

// UserStore is the persistence UserService runs against.
type UserStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.UserTxRepository) error) error
}

// ProfileStore reads student and faculty profiles.
type ProfileStore interface {
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, params map[string]any) ([]models.Student, querybuilder.Pagination, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	ListFaculties(ctx context.Context, params map[string]any) ([]models.Faculty, querybuilder.Pagination, error)
}

// UserService defines the interface for account creation and profile reads
type UserService interface {
	CreateStudent(ctx context.Context, password string, student *models.Student) (*models.Student, error)
	CreateFaculty(ctx context.Context, password string, faculty *models.Faculty) (*models.Faculty, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetAllStudents(ctx context.Context, params map[string]any) ([]models.Student, querybuilder.Pagination, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAllFaculties(ctx context.Context, params map[string]any) ([]models.Faculty, querybuilder.Pagination, error)
}

type userServiceImpl struct {
	users           UserStore
	profiles        ProfileStore
	hasher          *auth.PasswordHasher
	defaultPassword string
	logger          zerolog.Logger
}

// NewUserService creates a new user service. defaultPassword is used for accounts
// created without one; such accounts must change it on first login.
func NewUserService(users UserStore, profiles ProfileStore, hasher *auth.PasswordHasher, defaultPassword string, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		users:           users,
		profiles:        profiles,
		hasher:          hasher,
		defaultPassword: defaultPassword,
		logger:          logger.With().Str("component", "user_service").Logger(),
	}
}

// newUser builds the account row, hashing password or the default one.
func (s *userServiceImpl) newUser(password, email string, role models.Role) (*models.User, error) {
	needsChange := false
	if password == "" {
		password = s.defaultPassword
		needsChange = true
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Email:               email,
		PasswordHash:        hash,
		Role:                role,
		Status:              models.StatusInProgress,
		NeedsPasswordChange: needsChange,
	}, nil
}

// CreateStudent creates the student account and profile in one transaction. The user
// code is the admission year, the semester code and a four digit sequence.
func (s *userServiceImpl) CreateStudent(ctx context.Context, password string, student *models.Student) (*models.Student, error) {
	user, err := s.newUser(password, student.Email, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	err = s.users.WithTx(ctx, func(ctx context.Context, tx repositories.UserTxRepository) error {
		semester, err := tx.GetSemesterByID(ctx, student.AdmissionSemesterID)
		if err != nil {
			return err
		}

		if err := tx.LockUserCodes(ctx, models.RoleStudent); err != nil {
			return err
		}
		prefix := semester.Year + semester.Code
		last, err := tx.LastStudentCode(ctx, prefix)
		if err != nil {
			return err
		}
		user.UserCode = NextStudentCode(prefix, last)

		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}

		student.UserID = user.ID
		student.UserCode = user.UserCode
		if err := tx.CreateStudent(ctx, student); err != nil {
			return err
		}
		student.AdmissionSemester = semester
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("userCode", student.UserCode).Msg("Student created")
	return student, nil
}

// CreateFaculty creates the faculty account and profile in one transaction.
func (s *userServiceImpl) CreateFaculty(ctx context.Context, password string, faculty *models.Faculty) (*models.Faculty, error) {
	user, err := s.newUser(password, faculty.Email, models.RoleFaculty)
	if err != nil {
		return nil, err
	}

	err = s.users.WithTx(ctx, func(ctx context.Context, tx repositories.UserTxRepository) error {
		if err := tx.LockUserCodes(ctx, models.RoleFaculty); err != nil {
			return err
		}
		last, err := tx.LastFacultyCode(ctx)
		if err != nil {
			return err
		}
		user.UserCode = NextFacultyCode(last)

		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}

		faculty.UserID = user.ID
		faculty.UserCode = user.UserCode
		return tx.CreateFaculty(ctx, faculty)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("facultyID", faculty.ID).Str("userCode", faculty.UserCode).Msg("Faculty created")
	return faculty, nil
}

// GetStudentByID retrieves a student by ID
func (s *userServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.profiles.GetStudentByID(ctx, id)
}

// GetAllStudents lists students through the query composer.
func (s *userServiceImpl) GetAllStudents(ctx context.Context, params map[string]any) ([]models.Student, querybuilder.Pagination, error) {
	students, pagination, err := s.profiles.ListStudents(ctx, params)
	if err != nil {
		return nil, pagination, fmt.Errorf("error listing students: %w", err)
	}
	return students, pagination, nil
}

// GetFacultyByID retrieves a faculty member by ID
func (s *userServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	return s.profiles.GetFacultyByID(ctx, id)
}

// GetAllFaculties lists faculty members through the query composer.
func (s *userServiceImpl) GetAllFaculties(ctx context.Context, params map[string]any) ([]models.Faculty, querybuilder.Pagination, error) {
	faculties, pagination, err := s.profiles.ListFaculties(ctx, params)
	if err != nil {
		return nil, pagination, fmt.Errorf("error listing faculties: %w", err)
	}
	return faculties, pagination, nil
}

// NextStudentCode returns the code after last within prefix, starting at 0001.
func NextStudentCode(prefix, last string) string {
	return prefix + nextSequence(strings.TrimPrefix(last, prefix))
}

// NextFacultyCode returns the faculty code after last, starting at F-0001.
func NextFacultyCode(last string) string {
	return facultyCodePrefix + nextSequence(strings.TrimPrefix(last, facultyCodePrefix))
}

func nextSequence(last string) string {
	n, err := strconv.Atoi(last)
	if err != nil || n < 0 {
		n = 0
	}
	return fmt.Sprintf("%0*d", sequenceDigits, n+1)
}

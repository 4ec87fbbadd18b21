package services

import (
	"context"
	"testing"
	"time"

	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture(t *testing.T) (*fakeUserStore, UserService) {
	t.Helper()
	semesters := newFakeSemesterStore()
	require.NoError(t, semesters.CreateSemester(context.Background(), autumn("2030")))

	store := &fakeUserStore{semesters: semesters}
	svc := NewUserService(store, nil, auth.NewPasswordHasher(bcrypt.MinCost), "changeme", zerolog.Nop())
	return store, svc
}

func TestNextCodes(t *testing.T) {
	assert.Equal(t, "2030010001", NextStudentCode("203001", ""))
	assert.Equal(t, "2030010013", NextStudentCode("203001", "2030010012"))
	assert.Equal(t, "F-0001", NextFacultyCode(""))
	assert.Equal(t, "F-0100", NextFacultyCode("F-0099"))
}

func TestCreateStudent_GeneratesSequentialCodes(t *testing.T) {
	store, svc := newUserFixture(t)

	first, err := svc.CreateStudent(context.Background(), "secret1", &models.Student{Email: "a@campus.edu", AdmissionSemesterID: 1})
	require.NoError(t, err)
	second, err := svc.CreateStudent(context.Background(), "", &models.Student{Email: "b@campus.edu", AdmissionSemesterID: 1})
	require.NoError(t, err)

	assert.Equal(t, "2030010001", first.UserCode)
	assert.Equal(t, "2030010002", second.UserCode)
	require.NotNil(t, first.AdmissionSemester)
	assert.Equal(t, models.SemesterAutumn, first.AdmissionSemester.Name)

	require.Len(t, store.users, 2)
	assert.False(t, store.users[0].NeedsPasswordChange)
	assert.True(t, store.users[1].NeedsPasswordChange)
	assert.Equal(t, models.RoleStudent, store.users[1].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users[1].PasswordHash), []byte("changeme")))
	assert.Equal(t, []models.Role{models.RoleStudent, models.RoleStudent}, store.locks)
}

func TestCreateStudent_UnknownSemester(t *testing.T) {
	store, svc := newUserFixture(t)

	_, err := svc.CreateStudent(context.Background(), "", &models.Student{Email: "a@campus.edu", AdmissionSemesterID: 9})

	assert.ErrorIs(t, err, apperrors.ErrSemesterNotFound)
	assert.Empty(t, store.users)
}

func TestCreateStudent_ProfileFailureDropsAccount(t *testing.T) {
	store, svc := newUserFixture(t)
	store.failWith = apperrors.ErrEmailAlreadyExists

	_, err := svc.CreateStudent(context.Background(), "secret1", &models.Student{Email: "a@campus.edu", AdmissionSemesterID: 1})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, store.users)
	assert.Empty(t, store.students)
}

func TestCreateFaculty(t *testing.T) {
	store, svc := newUserFixture(t)

	faculty, err := svc.CreateFaculty(context.Background(), "", &models.Faculty{Email: "f@campus.edu", Designation: "Lecturer"})
	require.NoError(t, err)
	assert.Equal(t, "F-0001", faculty.UserCode)
	assert.Equal(t, store.users[0].ID, faculty.UserID)
	assert.Equal(t, models.RoleFaculty, store.users[0].Role)

	_, err = svc.CreateFaculty(context.Background(), "", &models.Faculty{Email: "f@campus.edu"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Len(t, store.faculties, 1)
}

func TestLogin(t *testing.T) {
	store, svc := newUserFixture(t)
	_, err := svc.CreateFaculty(context.Background(), "s3cret!", &models.Faculty{Email: "f@campus.edu"})
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	authSvc := NewAuthService(store, auth.NewPasswordHasher(bcrypt.MinCost), jwtService, zerolog.Nop())

	resp, err := authSvc.Login(context.Background(), dto.LoginRequest{Email: "f@campus.edu", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, int64(3600), resp.Token.ExpiresIn)

	claims, err := jwtService.ValidateToken(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleFaculty, claims.Role)

	_, err = authSvc.Login(context.Background(), dto.LoginRequest{Email: "f@campus.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = authSvc.Login(context.Background(), dto.LoginRequest{Email: "nobody@campus.edu", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	store.users[0].Status = models.StatusBlocked
	_, err = authSvc.Login(context.Background(), dto.LoginRequest{Email: "f@campus.edu", Password: "s3cret!"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

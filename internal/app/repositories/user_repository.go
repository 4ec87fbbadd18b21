package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/db"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/dberrors"
	"github.com/campusdesk/academics/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	userEmailConstraint = "users_email_key"
	userCodeConstraint  = "users_user_code_key"
)

var userColumns = []string{"id", "user_code", "email", "password_hash", "role", "status", "needs_password_change", "is_deleted", "created_at", "updated_at"}

// UserTxRepository is what account creation needs inside one transaction: the users
// row, the profile row and the code sequence they share.
type UserTxRepository interface {
	LockUserCodes(ctx context.Context, role models.Role) error
	LastStudentCode(ctx context.Context, prefix string) (string, error)
	LastFacultyCode(ctx context.Context) (string, error)
	GetSemesterByID(ctx context.Context, id int64) (*models.AcademicSemester, error)
	CreateUser(ctx context.Context, user *models.User) error
	CreateStudent(ctx context.Context, student *models.Student) error
	CreateFaculty(ctx context.Context, faculty *models.Faculty) error
}

// UserRepository handles users and combines the profile repositories for
// transactional account creation.
type UserRepository struct {
	pg     *db.PostgresDB
	q      db.DBTX
	sb     squirrel.StatementBuilderType
	limits QueryLimits
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pg *db.PostgresDB, limits QueryLimits) *UserRepository {
	return &UserRepository{
		pg:     pg,
		q:      pg.Pool,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		limits: limits,
	}
}

type userTx struct {
	*UserRepository
	*StudentRepository
	*FacultyRepository
	*SemesterRepository
}

// WithTx runs fn against user, student, faculty and semester repositories all bound
// to one transaction.
func (r *UserRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx UserTxRepository) error) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		bound := *r
		bound.q = tx
		return fn(ctx, &userTx{
			UserRepository:     &bound,
			StudentRepository:  NewStudentRepository(tx, r.limits),
			FacultyRepository:  NewFacultyRepository(tx, r.limits),
			SemesterRepository: NewSemesterRepository(tx, r.limits),
		})
	})
}

// LockUserCodes serialises code generation for role until the transaction ends.
func (r *UserRepository) LockUserCodes(ctx context.Context, role models.Role) error {
	if _, err := r.q.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "user_code:"+string(role)); err != nil {
		return fmt.Errorf("error locking user codes: %w", err)
	}
	return nil
}

// CreateUser inserts the account and sets its ID and timestamps.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("user_code", "email", "password_hash", "role", "status", "needs_password_change").
		Values(user.UserCode, strings.ToLower(user.Email), user.PasswordHash, user.Role, user.Status, user.NeedsPasswordChange).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if err := r.q.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, userEmailConstraint):
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, userCodeConstraint):
			return apperrors.NewConflictError("user code already taken")
		}
		logger.Error().Err(err).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves an active account by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": strings.ToLower(email), "is_deleted": false})
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) getUser(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := getOne[models.User](ctx, r.q, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error getting user")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/db"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/dberrors"
	"github.com/campusdesk/academics/internal/pkg/logger"
	"github.com/campusdesk/academics/internal/pkg/querybuilder"
	"github.com/jackc/pgx/v5"
)

const studentEmailConstraint = "students_email_key"

var studentColumns = []string{
	"id", "user_id", "user_code", "first_name", "middle_name", "last_name", "email", "gender",
	"date_of_birth", "contact_no", "admission_semester_id", "is_deleted", "created_at", "updated_at",
}

// StudentRepository handles student profile database operations
type StudentRepository struct {
	q      db.DBTX
	sb     squirrel.StatementBuilderType
	schema querybuilder.Schema
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.DBTX, limits QueryLimits) *StudentRepository {
	return &StudentRepository{
		q:      q,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		schema: StudentSchema(limits),
	}
}

// StudentSchema declares the listable student fields.
func StudentSchema(limits QueryLimits) querybuilder.Schema {
	return querybuilder.Schema{
		Table: "students",
		Fields: []querybuilder.Field{
			{Name: "id", Column: "id", Kind: querybuilder.Int, Filterable: true, Sortable: true, Selectable: true},
			{Name: "userId", Column: "user_id", Kind: querybuilder.Int, Filterable: true, Selectable: true},
			{Name: "userCode", Column: "user_code", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "firstName", Column: "first_name", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "middleName", Column: "middle_name", Kind: querybuilder.String, Selectable: true},
			{Name: "lastName", Column: "last_name", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "email", Column: "email", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "gender", Column: "gender", Kind: querybuilder.String, Filterable: true, Selectable: true},
			{Name: "dateOfBirth", Column: "date_of_birth", Kind: querybuilder.String, Sortable: true, Selectable: true},
			{Name: "contactNo", Column: "contact_no", Kind: querybuilder.String, Searchable: true, Selectable: true},
			{Name: "admissionSemesterId", Column: "admission_semester_id", Kind: querybuilder.Int, Filterable: true, Selectable: true},
			{Name: "isDeleted", Column: "is_deleted", Kind: querybuilder.Bool, Filterable: true, Selectable: true},
			{Name: "createdAt", Column: "created_at", Kind: querybuilder.String, Sortable: true, Selectable: true},
		},
		IDField:      "id",
		DefaultSort:  "-createdAt",
		DefaultLimit: limits.DefaultLimit,
		MaxLimit:     limits.MaxLimit,
		Defaults:     map[string]any{"isDeleted": false},
	}
}

// LastStudentCode returns the highest student code starting with prefix, or "".
func (r *StudentRepository) LastStudentCode(ctx context.Context, prefix string) (string, error) {
	return lastCode(ctx, r.q, r.sb, "students", prefix)
}

// CreateStudent inserts the profile row and sets its ID and timestamps.
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "user_code", "first_name", "middle_name", "last_name", "email", "gender",
			"date_of_birth", "contact_no", "admission_semester_id").
		Values(student.UserID, student.UserCode, student.FirstName, student.MiddleName, student.LastName, student.Email,
			student.Gender, student.DateOfBirth, student.ContactNo, student.AdmissionSemesterID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.q.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, studentEmailConstraint):
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrSemesterNotFound
		}
		logger.Error().Err(err).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetStudentByID returns the student with its admission semester.
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := getOne[models.Student](ctx, r.q, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error getting student by ID")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	semester, err := NewSemesterRepository(r.q, QueryLimits{}).GetSemesterByID(ctx, student.AdmissionSemesterID)
	if err != nil && !errors.Is(err, apperrors.ErrSemesterNotFound) {
		return nil, err
	}
	student.AdmissionSemester = semester
	return student, nil
}

// ListStudents runs a composed list query over students.
func (r *StudentRepository) ListStudents(ctx context.Context, params map[string]any) ([]models.Student, querybuilder.Pagination, error) {
	return runList[models.Student](ctx, r.q, querybuilder.Compose(r.schema, params))
}

// lastCode returns the greatest user_code in table that starts with prefix.
func lastCode(ctx context.Context, q db.DBTX, sb squirrel.StatementBuilderType, table, prefix string) (string, error) {
	sql, args, err := sb.Select("user_code").
		From(table).
		Where(squirrel.Like{"user_code": prefix + "%"}).
		OrderBy("user_code DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build last code query: %w", err)
	}

	var code string
	if err := q.QueryRow(ctx, sql, args...).Scan(&code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("error reading last user code: %w", err)
	}
	return code, nil
}

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

const (
	facultyCodePrefix      = "F-"
	facultyEmailConstraint = "faculties_email_key"
)

var facultyColumns = []string{
	"id", "user_id", "user_code", "designation", "first_name", "middle_name", "last_name", "email",
	"gender", "contact_no", "is_deleted", "created_at", "updated_at",
}

// FacultyRepository handles faculty member database operations
type FacultyRepository struct {
	q      db.DBTX
	sb     squirrel.StatementBuilderType
	schema querybuilder.Schema
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(q db.DBTX, limits QueryLimits) *FacultyRepository {
	return &FacultyRepository{
		q:      q,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		schema: FacultySchema(limits),
	}
}

// FacultySchema declares the listable faculty fields.
func FacultySchema(limits QueryLimits) querybuilder.Schema {
	return querybuilder.Schema{
		Table: "faculties",
		Fields: []querybuilder.Field{
			{Name: "id", Column: "id", Kind: querybuilder.Int, Filterable: true, Sortable: true, Selectable: true},
			{Name: "userId", Column: "user_id", Kind: querybuilder.Int, Filterable: true, Selectable: true},
			{Name: "userCode", Column: "user_code", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "designation", Column: "designation", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "firstName", Column: "first_name", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "middleName", Column: "middle_name", Kind: querybuilder.String, Selectable: true},
			{Name: "lastName", Column: "last_name", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "email", Column: "email", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "gender", Column: "gender", Kind: querybuilder.String, Filterable: true, Selectable: true},
			{Name: "contactNo", Column: "contact_no", Kind: querybuilder.String, Searchable: true, Selectable: true},
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

// LastFacultyCode returns the highest faculty code, or "".
func (r *FacultyRepository) LastFacultyCode(ctx context.Context) (string, error) {
	return lastCode(ctx, r.q, r.sb, "faculties", facultyCodePrefix)
}

// CreateFaculty inserts the profile row and sets its ID and timestamps.
func (r *FacultyRepository) CreateFaculty(ctx context.Context, faculty *models.Faculty) error {
	sql, args, err := r.sb.Insert("faculties").
		Columns("user_id", "user_code", "designation", "first_name", "middle_name", "last_name", "email", "gender", "contact_no").
		Values(faculty.UserID, faculty.UserCode, faculty.Designation, faculty.FirstName, faculty.MiddleName,
			faculty.LastName, faculty.Email, faculty.Gender, faculty.ContactNo).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create faculty query: %w", err)
	}

	if err := r.q.QueryRow(ctx, sql, args...).Scan(&faculty.ID, &faculty.CreatedAt, &faculty.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, facultyEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error creating faculty")
		return fmt.Errorf("error creating faculty: %w", err)
	}
	return nil
}

// GetFacultyByID retrieves a faculty member by ID
func (r *FacultyRepository) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := getOne[models.Faculty](ctx, r.q, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}
	return faculty, nil
}

// ListFaculties runs a composed list query over faculties.
func (r *FacultyRepository) ListFaculties(ctx context.Context, params map[string]any) ([]models.Faculty, querybuilder.Pagination, error) {
	return runList[models.Faculty](ctx, r.q, querybuilder.Compose(r.schema, params))
}

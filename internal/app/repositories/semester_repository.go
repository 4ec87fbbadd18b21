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
	"github.com/campusdesk/academics/internal/pkg/querybuilder"
	"github.com/jackc/pgx/v5"
)

const semesterNameYearConstraint = "academic_semesters_name_year_key"

var semesterColumns = []string{"id", "name", "code", "year", "start_month", "end_month", "created_at", "updated_at"}

// SemesterRepository handles academic semester database operations
type SemesterRepository struct {
	q      db.DBTX
	sb     squirrel.StatementBuilderType
	schema querybuilder.Schema
}

// NewSemesterRepository creates a new SemesterRepository
func NewSemesterRepository(q db.DBTX, limits QueryLimits) *SemesterRepository {
	return &SemesterRepository{
		q:      q,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		schema: SemesterSchema(limits),
	}
}

// SemesterSchema declares the listable semester fields.
func SemesterSchema(limits QueryLimits) querybuilder.Schema {
	return querybuilder.Schema{
		Table: "academic_semesters",
		Fields: []querybuilder.Field{
			{Name: "id", Column: "id", Kind: querybuilder.Int, Filterable: true, Sortable: true, Selectable: true},
			{Name: "name", Column: "name", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "code", Column: "code", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "year", Column: "year", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "startMonth", Column: "start_month", Kind: querybuilder.String, Filterable: true, Selectable: true},
			{Name: "endMonth", Column: "end_month", Kind: querybuilder.String, Filterable: true, Selectable: true},
			{Name: "createdAt", Column: "created_at", Kind: querybuilder.String, Sortable: true, Selectable: true},
		},
		IDField:      "id",
		DefaultSort:  "-year,code",
		DefaultLimit: limits.DefaultLimit,
		MaxLimit:     limits.MaxLimit,
	}
}

// CreateSemester inserts the semester and sets its ID and timestamps.
func (r *SemesterRepository) CreateSemester(ctx context.Context, semester *models.AcademicSemester) error {
	sql, args, err := r.sb.Insert("academic_semesters").
		Columns("name", "code", "year", "start_month", "end_month").
		Values(semester.Name, semester.Code, semester.Year, semester.StartMonth, semester.EndMonth).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create semester query: %w", err)
	}

	if err := r.q.QueryRow(ctx, sql, args...).Scan(&semester.ID, &semester.CreatedAt, &semester.UpdatedAt); err != nil {
		return classifySemesterWriteError(err)
	}
	return nil
}

// GetSemesterByID retrieves a semester by ID
func (r *SemesterRepository) GetSemesterByID(ctx context.Context, id int64) (*models.AcademicSemester, error) {
	sql, args, err := r.sb.Select(semesterColumns...).
		From("academic_semesters").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get semester query: %w", err)
	}

	semester, err := getOne[models.AcademicSemester](ctx, r.q, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		logger.Error().Err(err).Int64("semesterID", id).Msg("Error getting semester by ID")
		return nil, fmt.Errorf("error getting semester by ID: %w", err)
	}
	return semester, nil
}

// ListSemesters runs a composed list query over academic_semesters.
func (r *SemesterRepository) ListSemesters(ctx context.Context, params map[string]any) ([]models.AcademicSemester, querybuilder.Pagination, error) {
	return runList[models.AcademicSemester](ctx, r.q, querybuilder.Compose(r.schema, params))
}

// UpdateSemester writes every field of semester and refreshes its timestamps.
func (r *SemesterRepository) UpdateSemester(ctx context.Context, semester *models.AcademicSemester) (*models.AcademicSemester, error) {
	sql, args, err := r.sb.Update("academic_semesters").
		SetMap(map[string]interface{}{
			"name":        semester.Name,
			"code":        semester.Code,
			"year":        semester.Year,
			"start_month": semester.StartMonth,
			"end_month":   semester.EndMonth,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": semester.ID}).
		Suffix("RETURNING " + strings.Join(semesterColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update semester query: %w", err)
	}

	updated, err := getOne[models.AcademicSemester](ctx, r.q, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		return nil, classifySemesterWriteError(err)
	}
	return updated, nil
}

func classifySemesterWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, semesterNameYearConstraint):
		return apperrors.ErrSemesterAlreadyExists
	case dberrors.IsConstraintViolation(err):
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	logger.Error().Err(err).Msg("Error writing academic semester")
	return fmt.Errorf("error writing academic semester: %w", err)
}

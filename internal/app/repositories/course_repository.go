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

const courseTitleConstraint = "courses_title_key"

var courseColumns = []string{"id", "title", "prefix", "code", "credits", "is_deleted", "created_at", "updated_at"}

// CourseTxRepository is the set of course writes and reads that run inside one
// transaction. Every method issues its statements on the same transaction handle.
type CourseTxRepository interface {
	InsertCourse(ctx context.Context, course *models.Course) error
	UpdateCourseFields(ctx context.Context, id int64, changes map[string]any) error
	RemovePrerequisites(ctx context.Context, id int64, prerequisiteIDs []int64) error
	AddPrerequisites(ctx context.Context, id int64, prerequisiteIDs []int64) error
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	DependentCourseIDs(ctx context.Context, id int64) ([]int64, error)
	EnsureFacultyAssignment(ctx context.Context, courseID int64) error
	AddFacultyMembers(ctx context.Context, courseID int64, facultyIDs []int64) error
	GetCourseFaculties(ctx context.Context, courseID int64) (*models.CourseFaculty, error)
}

// CourseRepository handles course database operations
type CourseRepository struct {
	pg     *db.PostgresDB
	q      db.DBTX
	sb     squirrel.StatementBuilderType
	schema querybuilder.Schema
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(pg *db.PostgresDB, limits QueryLimits) *CourseRepository {
	return &CourseRepository{
		pg:     pg,
		q:      pg.Pool,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		schema: CourseSchema(limits),
	}
}

// CourseSchema declares which course fields list requests may search, filter, sort
// and project. Soft-deleted courses are hidden unless isDeleted is filtered.
func CourseSchema(limits QueryLimits) querybuilder.Schema {
	return querybuilder.Schema{
		Table: "courses",
		Fields: []querybuilder.Field{
			{Name: "id", Column: "id", Kind: querybuilder.Int, Filterable: true, Sortable: true, Selectable: true},
			{Name: "title", Column: "title", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "prefix", Column: "prefix", Kind: querybuilder.String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "code", Column: "code", Kind: querybuilder.Int, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "credits", Column: "credits", Kind: querybuilder.Int, Filterable: true, Sortable: true, Selectable: true},
			{Name: "isDeleted", Column: "is_deleted", Kind: querybuilder.Bool, Filterable: true, Selectable: true},
			{Name: "createdAt", Column: "created_at", Kind: querybuilder.String, Sortable: true, Selectable: true},
			{Name: "updatedAt", Column: "updated_at", Kind: querybuilder.String, Sortable: true, Selectable: true},
		},
		IDField:      "id",
		DefaultSort:  "-createdAt",
		DefaultLimit: limits.DefaultLimit,
		MaxLimit:     limits.MaxLimit,
		Defaults:     map[string]any{"isDeleted": false},
	}
}

// WithTx runs fn with a repository bound to a single transaction. The transaction
// commits only if fn returns nil.
func (r *CourseRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx CourseTxRepository) error) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, r.bind(tx))
	})
}

func (r *CourseRepository) bind(q db.DBTX) *CourseRepository {
	bound := *r
	bound.q = q
	return &bound
}

// InsertCourse creates the course row and sets ID and timestamps on course.
func (r *CourseRepository) InsertCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "prefix", "code", "credits").
		Values(course.Title, course.Prefix, course.Code, course.Credits).
		Suffix("RETURNING id, is_deleted, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.q.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.IsDeleted, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return classifyCourseWriteError(err)
	}
	return nil
}

// UpdateCourseFields applies changes (column to value) to the course and takes its
// row lock. An empty changes map still verifies the course exists.
func (r *CourseRepository) UpdateCourseFields(ctx context.Context, id int64, changes map[string]any) error {
	set := map[string]any{"updated_at": squirrel.Expr("NOW()")}
	for col, v := range changes {
		set[col] = v
	}

	sql, args, err := r.sb.Update("courses").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	var updatedID int64
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCourseNotFound
		}
		return classifyCourseWriteError(err)
	}
	return nil
}

// RemovePrerequisites deletes the listed prerequisite links of course id.
func (r *CourseRepository) RemovePrerequisites(ctx context.Context, id int64, prerequisiteIDs []int64) error {
	if err := r.lockCourse(ctx, id); err != nil {
		return err
	}
	if len(prerequisiteIDs) == 0 {
		return nil
	}

	sql, args, err := r.sb.Delete("course_prerequisites").
		Where(squirrel.Eq{"course_id": id}).
		Where("prerequisite_id = ANY(?)", prerequisiteIDs).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove prerequisites query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error removing prerequisites")
		return fmt.Errorf("error removing prerequisites: %w", err)
	}
	return nil
}

// AddPrerequisites links the listed courses as prerequisites of course id. Links that
// already exist are left as they are.
func (r *CourseRepository) AddPrerequisites(ctx context.Context, id int64, prerequisiteIDs []int64) error {
	if err := r.lockCourse(ctx, id); err != nil {
		return err
	}

	ids := uniqueIDs(prerequisiteIDs)
	if len(ids) == 0 {
		return nil
	}

	insert := r.sb.Insert("course_prerequisites").Columns("course_id", "prerequisite_id")
	for _, prereq := range ids {
		insert = insert.Values(id, prereq)
	}
	sql, args, err := insert.
		Suffix("ON CONFLICT (course_id, prerequisite_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add prerequisites query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrUnknownPrerequisite
		case dberrors.IsConstraintViolation(err):
			return apperrors.ErrSelfPrerequisite
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error adding prerequisites")
		return fmt.Errorf("error adding prerequisites: %w", err)
	}
	return nil
}

// lockCourse takes the course row lock so concurrent updates of the same course
// serialise on it; a missing course means the record vanished.
func (r *CourseRepository) lockCourse(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Select("id").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build lock course query: %w", err)
	}

	var locked int64
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error locking course: %w", err)
	}
	return nil
}

// GetCourseByID returns the course with its prerequisites populated.
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := getOne[models.Course](ctx, r.q, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error getting course by ID")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	if err := r.populate(ctx, []*models.Course{course}); err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses runs the composed list query and populates prerequisites of the page,
// unless a projection left them out.
func (r *CourseRepository) ListCourses(ctx context.Context, params map[string]any) ([]models.Course, querybuilder.Pagination, error) {
	spec := querybuilder.Compose(r.schema, params)

	courses, pagination, err := runList[models.Course](ctx, r.q, spec)
	if err != nil {
		return nil, pagination, err
	}

	if wantsPrerequisites(params) {
		ptrs := make([]*models.Course, len(courses))
		for i := range courses {
			ptrs[i] = &courses[i]
		}
		if err := r.populate(ctx, ptrs); err != nil {
			return nil, pagination, err
		}
	}
	return courses, pagination, nil
}

func wantsPrerequisites(params map[string]any) bool {
	raw, _ := params[querybuilder.FieldsKey].(string)
	if strings.TrimSpace(raw) == "" {
		return true
	}
	for _, f := range strings.Split(raw, ",") {
		if strings.TrimSpace(f) == "preRequisiteCourses" {
			return true
		}
	}
	return false
}

// SoftDeleteCourse flags the course deleted and returns it.
func (r *CourseRepository) SoftDeleteCourse(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Update("courses").
		Set("is_deleted", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(courseColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete course query: %w", err)
	}

	course, err := getOne[models.Course](ctx, r.q, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error soft deleting course")
		return nil, fmt.Errorf("error deleting course: %w", err)
	}

	if err := r.populate(ctx, []*models.Course{course}); err != nil {
		return nil, err
	}
	return course, nil
}

// DependentCourseIDs lists the courses that reference id as a prerequisite.
func (r *CourseRepository) DependentCourseIDs(ctx context.Context, id int64) ([]int64, error) {
	sql, args, err := r.sb.Select("course_id").
		From("course_prerequisites").
		Where(squirrel.Eq{"prerequisite_id": id}).
		OrderBy("course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build dependent courses query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error querying dependent courses")
		return nil, fmt.Errorf("error querying dependent courses: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("error scanning dependent courses: %w", err)
	}
	return ids, nil
}

// populate loads the prerequisite entries of courses, in insertion order, joined
// with the referenced course details.
func (r *CourseRepository) populate(ctx context.Context, courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Course, len(courses))
	ids := make([]int64, 0, len(courses))
	for _, c := range courses {
		c.PreRequisiteCourses = []models.Prerequisite{}
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	sql, args, err := r.sb.Select("cp.course_id", "cp.is_deleted", "c.id", "c.title", "c.prefix", "c.code", "c.credits").
		From("course_prerequisites cp").
		Join("courses c ON c.id = cp.prerequisite_id").
		Where("cp.course_id = ANY(?)", ids).
		OrderBy("cp.course_id", "cp.seq").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build prerequisites query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying prerequisites")
		return fmt.Errorf("error querying prerequisites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var owner int64
		var p models.Prerequisite
		if err := rows.Scan(&owner, &p.IsDeleted, &p.Course.ID, &p.Course.Title, &p.Course.Prefix, &p.Course.Code, &p.Course.Credits); err != nil {
			return fmt.Errorf("error scanning prerequisite row: %w", err)
		}
		if c, ok := byID[owner]; ok {
			c.PreRequisiteCourses = append(c.PreRequisiteCourses, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating prerequisite rows: %w", err)
	}
	return nil
}

// EnsureFacultyAssignment creates the course's assignment record if it is absent.
func (r *CourseRepository) EnsureFacultyAssignment(ctx context.Context, courseID int64) error {
	sql, args, err := r.sb.Insert("course_faculty_assignments").
		Columns("course_id").
		Values(courseID).
		Suffix("ON CONFLICT (course_id) DO UPDATE SET updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build faculty assignment query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating faculty assignment: %w", err)
	}
	return nil
}

// AddFacultyMembers unions facultyIDs into the course's assigned faculty set.
func (r *CourseRepository) AddFacultyMembers(ctx context.Context, courseID int64, facultyIDs []int64) error {
	ids := uniqueIDs(facultyIDs)
	if len(ids) == 0 {
		return nil
	}

	insert := r.sb.Insert("course_faculty_members").Columns("course_id", "faculty_id")
	for _, f := range ids {
		insert = insert.Values(courseID, f)
	}
	sql, args, err := insert.Suffix("ON CONFLICT (course_id, faculty_id) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build faculty members query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUnknownFacultyReference
		}
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error adding faculty members")
		return fmt.Errorf("error adding faculty members: %w", err)
	}
	return nil
}

// GetCourseFaculties returns the assignment record with its faculty members.
func (r *CourseRepository) GetCourseFaculties(ctx context.Context, courseID int64) (*models.CourseFaculty, error) {
	sql, args, err := r.sb.Select("course_id", "created_at", "updated_at").
		From("course_faculty_assignments").
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course faculty query: %w", err)
	}

	assignment, err := getOne[models.CourseFaculty](ctx, r.q, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseFacultyNotFound
		}
		return nil, fmt.Errorf("error getting course faculty: %w", err)
	}

	cols := make([]string, len(facultyColumns))
	for i, c := range facultyColumns {
		cols[i] = "f." + c
	}
	sql, args, err = r.sb.Select(cols...).
		From("faculties f").
		Join("course_faculty_members m ON m.faculty_id = f.id").
		Where(squirrel.Eq{"m.course_id": courseID}).
		OrderBy("f.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course faculty members query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying course faculty members: %w", err)
	}
	faculties, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Faculty])
	if err != nil {
		return nil, fmt.Errorf("error scanning course faculty members: %w", err)
	}

	assignment.Faculties = faculties
	return assignment, nil
}

func classifyCourseWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, courseTitleConstraint):
		return apperrors.ErrCourseAlreadyExists
	case dberrors.IsConstraintViolation(err):
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	logger.Error().Err(err).Msg("Error writing course")
	return fmt.Errorf("error writing course: %w", err)
}

// uniqueIDs drops duplicates and non-positive ids, keeping first-seen order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/querybuilder"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = QueryLimits{DefaultLimit: 10, MaxLimit: 50}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 7}, uniqueIDs([]int64{3, 1, 3, 0, -2, 7, 1}))
	assert.Empty(t, uniqueIDs(nil))
}

func TestWantsPrerequisites(t *testing.T) {
	assert.True(t, wantsPrerequisites(map[string]any{}))
	assert.True(t, wantsPrerequisites(map[string]any{"fields": "title, preRequisiteCourses"}))
	assert.False(t, wantsPrerequisites(map[string]any{"fields": "title,credits"}))
}

func TestCourseSchema_HidesDeletedByDefault(t *testing.T) {
	spec := querybuilder.Compose(CourseSchema(testLimits), map[string]any{"limit": "500"})

	sql, args, err := spec.Select.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "courses.is_deleted = $1")
	assert.Equal(t, []any{false}, args[:1])
	assert.Equal(t, 50, spec.Pagination.Limit)
}

func TestStudentSchema_SearchesContactFields(t *testing.T) {
	spec := querybuilder.New(StudentSchema(testLimits), map[string]any{"searchTerm": "ada"}).Search().Spec()

	sql, _, err := spec.Select.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ILIKE")
	assert.Contains(t, sql, "students.email")
}

func TestClassifyCourseWriteError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: courseTitleConstraint}
	assert.ErrorIs(t, classifyCourseWriteError(fmt.Errorf("insert: %w", dup)), apperrors.ErrCourseAlreadyExists)

	check := &pgconn.PgError{Code: "23514", ConstraintName: "courses_credits_check"}
	assert.ErrorIs(t, classifyCourseWriteError(check), apperrors.ErrValidationFailed)

	other := errors.New("connection reset")
	err := classifyCourseWriteError(other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, apperrors.ErrValidationFailed)
}

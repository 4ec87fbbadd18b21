package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/app/repositories"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/cache"
	"github.com/campusdesk/academics/internal/pkg/querybuilder"
	"github.com/campusdesk/academics/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// CourseStore is the persistence CourseService runs against.
type CourseStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.CourseTxRepository) error) error
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, params map[string]any) ([]models.Course, querybuilder.Pagination, error)
	SoftDeleteCourse(ctx context.Context, id int64) (*models.Course, error)
	GetCourseFaculties(ctx context.Context, courseID int64) (*models.CourseFaculty, error)
}

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course, prerequisiteIDs []int64) (*models.Course, error)
	GetAllCourses(ctx context.Context, params map[string]any) ([]models.Course, querybuilder.Pagination, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, update models.CourseUpdate) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) (*models.Course, error)
	AssignFaculties(ctx context.Context, courseID int64, facultyIDs []int64) (*models.CourseFaculty, error)
	GetCourseFaculties(ctx context.Context, courseID int64) (*models.CourseFaculty, error)
}

// CourseCache is the read-through cache of populated courses. *cache.JSONCache
// satisfies it, including a nil one.
type CourseCache interface {
	Get(ctx context.Context, id int64) (*models.Course, bool)
	Set(ctx context.Context, id int64, course *models.Course)
	Invalidate(ctx context.Context, ids ...int64)
}

type noCourseCache struct{}

func (noCourseCache) Get(context.Context, int64) (*models.Course, bool) {
	return nil, false
}

func (noCourseCache) Set(context.Context, int64, *models.Course) {}

func (noCourseCache) Invalidate(context.Context, ...int64) {}

var _ CourseCache = (*cache.JSONCache[models.Course])(nil)

type courseServiceImpl struct {
	store  CourseStore
	cache  CourseCache
	logger zerolog.Logger
}

// NewCourseService creates a new course service. courseCache may be nil.
func NewCourseService(store CourseStore, courseCache CourseCache, logger zerolog.Logger) CourseService {
	if courseCache == nil {
		courseCache = noCourseCache{}
	}
	return &courseServiceImpl{
		store:  store,
		cache:  courseCache,
		logger: logger.With().Str("component", "course_service").Logger(),
	}
}

// CreateCourse inserts the course and its prerequisite links in one transaction.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course, prerequisiteIDs []int64) (*models.Course, error) {
	var created *models.Course
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.CourseTxRepository) error {
		if err := tx.InsertCourse(ctx, course); err != nil {
			return err
		}
		if len(prerequisiteIDs) > 0 {
			if slices.Contains(prerequisiteIDs, course.ID) {
				return apperrors.ErrSelfPrerequisite
			}
			if err := tx.AddPrerequisites(ctx, course.ID, prerequisiteIDs); err != nil {
				return err
			}
		}

		var err error
		created, err = tx.GetCourseByID(ctx, course.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", created.ID).Str("title", created.Title).Msg("Course created")
	return created, nil
}

// GetAllCourses lists courses through the query composer.
func (s *courseServiceImpl) GetAllCourses(ctx context.Context, params map[string]any) ([]models.Course, querybuilder.Pagination, error) {
	courses, pagination, err := s.store.ListCourses(ctx, params)
	if err != nil {
		return nil, pagination, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, pagination, nil
}

// GetCourseByID returns the populated course, from cache when possible.
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if course, ok := s.cache.Get(ctx, id); ok {
		return course, nil
	}

	course, err := s.store.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, id, course)
	return course, nil
}

// UpdateCourse applies the scalar changes of update and reconciles the prerequisite
// deltas atomically, then returns the populated course. Any failure rolls the whole
// update back and is reported as an *apperrors.UpdateError.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, update models.CourseUpdate) (*models.Course, error) {
	var updated *models.Course
	var dependents []int64

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.CourseTxRepository) error {
		if err := validation.Struct(update); err != nil {
			return apperrors.NewUpdateError(apperrors.UpdateValidationFailed, err)
		}

		if err := tx.UpdateCourseFields(ctx, id, update.Changes()); err != nil {
			return apperrors.NewUpdateError(classifyFieldUpdateFailure(err), err)
		}

		if len(update.PreRequisiteCourses) > 0 {
			toRemove, toAdd := update.PrerequisiteDeltas()
			if slices.Contains(toAdd, id) {
				return apperrors.NewUpdateError(apperrors.UpdateReconciliationFailed, apperrors.ErrSelfPrerequisite)
			}
			if err := tx.RemovePrerequisites(ctx, id, toRemove); err != nil {
				return apperrors.NewUpdateError(apperrors.UpdateReconciliationFailed, err)
			}
			if err := tx.AddPrerequisites(ctx, id, toAdd); err != nil {
				return apperrors.NewUpdateError(apperrors.UpdateReconciliationFailed, err)
			}
		}

		course, err := tx.GetCourseByID(ctx, id)
		if err != nil {
			return apperrors.NewUpdateError(classifyFieldUpdateFailure(err), err)
		}
		updated = course

		// cached courses that list this one carry its old summary
		dependents, err = tx.DependentCourseIDs(ctx, id)
		if err != nil {
			return apperrors.NewUpdateError(apperrors.UpdateReconciliationFailed, err)
		}
		return nil
	})
	if err != nil {
		var ue *apperrors.UpdateError
		if !errors.As(err, &ue) {
			// begin, commit or context failure outside the callback
			ue = apperrors.NewUpdateError(apperrors.UpdateReconciliationFailed, err)
		}
		s.logger.Error().Err(ue.Cause()).Int64("courseID", id).Str("kind", string(ue.Kind)).Msg("Course update rolled back")
		return nil, ue
	}

	s.cache.Invalidate(ctx, append([]int64{id}, dependents...)...)
	s.logger.Info().Int64("courseID", id).Int("dependents", len(dependents)).Msg("Course updated")
	return updated, nil
}

func classifyFieldUpdateFailure(err error) apperrors.UpdateFailureKind {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return apperrors.UpdateNotFound
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrCourseAlreadyExists):
		return apperrors.UpdateValidationFailed
	}
	return apperrors.UpdateReconciliationFailed
}

// DeleteCourse soft deletes the course and returns it.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.store.SoftDeleteCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return course, nil
}

// AssignFaculties creates the course's faculty assignment when absent and adds
// facultyIDs to it. Members already assigned are kept once.
func (s *courseServiceImpl) AssignFaculties(ctx context.Context, courseID int64, facultyIDs []int64) (*models.CourseFaculty, error) {
	var assignment *models.CourseFaculty
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.CourseTxRepository) error {
		if err := tx.EnsureFacultyAssignment(ctx, courseID); err != nil {
			return err
		}
		if err := tx.AddFacultyMembers(ctx, courseID, facultyIDs); err != nil {
			return err
		}

		var err error
		assignment, err = tx.GetCourseFaculties(ctx, courseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// GetCourseFaculties returns the faculty members assigned to a course.
func (s *courseServiceImpl) GetCourseFaculties(ctx context.Context, courseID int64) (*models.CourseFaculty, error) {
	return s.store.GetCourseFaculties(ctx, courseID)
}

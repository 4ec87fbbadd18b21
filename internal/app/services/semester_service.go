package services

import (
	"context"
	"fmt"

	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/querybuilder"
	"github.com/rs/zerolog"
)

// SemesterStore is the persistence SemesterService runs against.
type SemesterStore interface {
	CreateSemester(ctx context.Context, semester *models.AcademicSemester) error
	GetSemesterByID(ctx context.Context, id int64) (*models.AcademicSemester, error)
	ListSemesters(ctx context.Context, params map[string]any) ([]models.AcademicSemester, querybuilder.Pagination, error)
	UpdateSemester(ctx context.Context, semester *models.AcademicSemester) (*models.AcademicSemester, error)
}

// SemesterService defines the interface for academic semester operations
type SemesterService interface {
	CreateSemester(ctx context.Context, semester *models.AcademicSemester) (*models.AcademicSemester, error)
	GetAllSemesters(ctx context.Context, params map[string]any) ([]models.AcademicSemester, querybuilder.Pagination, error)
	GetSemesterByID(ctx context.Context, id int64) (*models.AcademicSemester, error)
	UpdateSemester(ctx context.Context, id int64, req dto.UpdateSemesterRequest) (*models.AcademicSemester, error)
}

type semesterServiceImpl struct {
	store  SemesterStore
	logger zerolog.Logger
}

// NewSemesterService creates a new academic semester service
func NewSemesterService(store SemesterStore, logger zerolog.Logger) SemesterService {
	return &semesterServiceImpl{
		store:  store,
		logger: logger.With().Str("component", "semester_service").Logger(),
	}
}

// checkSemesterCode enforces the fixed name to code mapping.
func checkSemesterCode(semester *models.AcademicSemester) error {
	code, ok := semester.Name.Code()
	if !ok || code != semester.Code {
		return apperrors.ErrInvalidSemesterCode
	}
	return nil
}

// CreateSemester validates the name/code pair and stores the semester.
func (s *semesterServiceImpl) CreateSemester(ctx context.Context, semester *models.AcademicSemester) (*models.AcademicSemester, error) {
	if err := checkSemesterCode(semester); err != nil {
		return nil, err
	}

	if err := s.store.CreateSemester(ctx, semester); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("semesterID", semester.ID).Str("name", string(semester.Name)).Str("year", semester.Year).Msg("Academic semester created")
	return semester, nil
}

// GetAllSemesters lists semesters through the query composer.
func (s *semesterServiceImpl) GetAllSemesters(ctx context.Context, params map[string]any) ([]models.AcademicSemester, querybuilder.Pagination, error) {
	semesters, pagination, err := s.store.ListSemesters(ctx, params)
	if err != nil {
		return nil, pagination, fmt.Errorf("error listing academic semesters: %w", err)
	}
	return semesters, pagination, nil
}

// GetSemesterByID retrieves a semester by ID
func (s *semesterServiceImpl) GetSemesterByID(ctx context.Context, id int64) (*models.AcademicSemester, error) {
	return s.store.GetSemesterByID(ctx, id)
}

// UpdateSemester merges the set fields into the stored semester. The merged name and
// code must still agree.
func (s *semesterServiceImpl) UpdateSemester(ctx context.Context, id int64, req dto.UpdateSemesterRequest) (*models.AcademicSemester, error) {
	semester, err := s.store.GetSemesterByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(semester)
	if err := checkSemesterCode(semester); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateSemester(ctx, semester)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("semesterID", id).Msg("Academic semester updated")
	return updated, nil
}

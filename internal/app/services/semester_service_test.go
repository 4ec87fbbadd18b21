package services

import (
	"context"
	"testing"

	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autumn(year string) *models.AcademicSemester {
	return &models.AcademicSemester{Name: models.SemesterAutumn, Code: "01", Year: year, StartMonth: "January", EndMonth: "April"}
}

func TestCreateSemester(t *testing.T) {
	store := newFakeSemesterStore()
	svc := NewSemesterService(store, zerolog.Nop())

	created, err := svc.CreateSemester(context.Background(), autumn("2030"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = svc.CreateSemester(context.Background(), autumn("2030"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	mismatched := autumn("2031")
	mismatched.Code = "03"
	_, err = svc.CreateSemester(context.Background(), mismatched)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Len(t, store.semesters, 1)
}

func TestUpdateSemester_MergesAndChecksCode(t *testing.T) {
	store := newFakeSemesterStore()
	svc := NewSemesterService(store, zerolog.Nop())
	created, err := svc.CreateSemester(context.Background(), autumn("2030"))
	require.NoError(t, err)

	endMonth := "May"
	updated, err := svc.UpdateSemester(context.Background(), created.ID, dto.UpdateSemesterRequest{EndMonth: &endMonth})
	require.NoError(t, err)
	assert.Equal(t, "May", updated.EndMonth)
	assert.Equal(t, "January", updated.StartMonth)

	fall := models.SemesterFall
	_, err = svc.UpdateSemester(context.Background(), created.ID, dto.UpdateSemesterRequest{Name: &fall})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSemesterCode)
	assert.Equal(t, models.SemesterAutumn, store.semesters[created.ID].Name)

	code := "03"
	updated, err = svc.UpdateSemester(context.Background(), created.ID, dto.UpdateSemesterRequest{Name: &fall, Code: &code})
	require.NoError(t, err)
	assert.Equal(t, models.SemesterFall, updated.Name)

	_, err = svc.UpdateSemester(context.Background(), 7, dto.UpdateSemesterRequest{EndMonth: &endMonth})
	assert.ErrorIs(t, err, apperrors.ErrSemesterNotFound)
}

package validation

import (
	"errors"
	"testing"

	"github.com/campusdesk/academics/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestStruct_CourseUpdate(t *testing.T) {
	assert.NoError(t, Struct(models.CourseUpdate{}))
	assert.NoError(t, Struct(models.CourseUpdate{Title: strPtr("Algorithms"), Credits: intPtr(0)}))

	err := Struct(models.CourseUpdate{Credits: intPtr(-1)})
	require.Error(t, err)
	fields := TranslateErrors(err)
	assert.Contains(t, fields, "credits")

	err = Struct(models.CourseUpdate{Title: strPtr("")})
	require.Error(t, err)
	assert.Contains(t, TranslateErrors(err), "title")
}

func TestStruct_PrerequisiteEntriesAreDived(t *testing.T) {
	update := models.CourseUpdate{
		PreRequisiteCourses: []models.PrerequisiteEntry{{Course: -4}},
	}
	err := Struct(update)
	require.Error(t, err)
	assert.Contains(t, TranslateErrors(err), "course")
}

type monthHolder struct {
	Start string `json:"startMonth" validate:"month"`
}

func TestStruct_MonthTag(t *testing.T) {
	assert.NoError(t, Struct(monthHolder{Start: "January"}))

	err := Struct(monthHolder{Start: "Jan"})
	require.Error(t, err)
	assert.Equal(t, "startMonth must be a month name", TranslateErrors(err)["startMonth"])
}

func TestTranslateErrors_NonValidationError(t *testing.T) {
	fields := TranslateErrors(errors.New("unexpected EOF"))
	assert.Equal(t, map[string]string{"detail": "unexpected EOF"}, fields)
}

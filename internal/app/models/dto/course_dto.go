package dto

import "github.com/campusdesk/academics/internal/app/models"

// CreateCourseRequest is the body of POST /courses/create-course.
type CreateCourseRequest struct {
	Title               string                     `json:"title" binding:"required,max=255" example:"Algorithms"`
	Prefix              string                     `json:"prefix" binding:"required,max=20" example:"CS"`
	Code                int                        `json:"code" binding:"required,gte=1" example:"201"`
	Credits             int                        `json:"credits" binding:"gte=0" example:"3"`
	PreRequisiteCourses []models.PrerequisiteEntry `json:"preRequisiteCourses" binding:"omitempty,dive"`
}

// ToModel converts the request into a course with unpopulated prerequisites.
func (r CreateCourseRequest) ToModel() (*models.Course, []int64) {
	course := &models.Course{
		Title:   r.Title,
		Prefix:  r.Prefix,
		Code:    r.Code,
		Credits: r.Credits,
	}

	prereqs := make([]int64, 0, len(r.PreRequisiteCourses))
	for _, p := range r.PreRequisiteCourses {
		if p.Course > 0 && !p.IsDeleted {
			prereqs = append(prereqs, p.Course)
		}
	}
	return course, prereqs
}

// UpdateCourseRequest is the body of PATCH /courses/{id}. Scalar fields are optional;
// preRequisiteCourses lists additions and removals, not the full set.
type UpdateCourseRequest = models.CourseUpdate

// AssignFacultiesRequest is the body of PUT /courses/{id}/assign-faculties.
type AssignFacultiesRequest struct {
	Faculties []int64 `json:"faculties" binding:"required,min=1,dive,gt=0" example:"3,4"`
}

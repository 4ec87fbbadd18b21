package models

import "time"

// Course is a catalogue entry. PreRequisiteCourses is populated by the repository
// from course_prerequisites in insertion order.
type Course struct {
	ID                  int64          `json:"id" db:"id" example:"1"`
	Title               string         `json:"title" db:"title" example:"Algorithms"`
	Prefix              string         `json:"prefix" db:"prefix" example:"CS"`
	Code                int            `json:"code" db:"code" example:"201"`
	Credits             int            `json:"credits" db:"credits" example:"3"`
	IsDeleted           bool           `json:"isDeleted" db:"is_deleted" example:"false"`
	CreatedAt           time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time      `json:"updatedAt" db:"updated_at"`
	PreRequisiteCourses []Prerequisite `json:"preRequisiteCourses" db:"-"`
}

// Prerequisite is one populated entry of a course's prerequisite list.
type Prerequisite struct {
	Course    CourseSummary `json:"course"`
	IsDeleted bool          `json:"isDeleted"`
}

// CourseSummary is the referenced course's details inside a populated prerequisite.
type CourseSummary struct {
	ID      int64  `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	Prefix  string `json:"prefix" db:"prefix"`
	Code    int    `json:"code" db:"code"`
	Credits int    `json:"credits" db:"credits"`
}

// PrerequisiteEntry is the unpopulated form used in create and update payloads.
// On update it is a delta: IsDeleted true removes Course, otherwise Course is added.
type PrerequisiteEntry struct {
	Course    int64 `json:"course" validate:"gte=0"`
	IsDeleted bool  `json:"isDeleted"`
}

// PrerequisiteIDs returns the referenced course ids of active entries.
func (c *Course) PrerequisiteIDs() []int64 {
	ids := make([]int64, 0, len(c.PreRequisiteCourses))
	for _, p := range c.PreRequisiteCourses {
		if !p.IsDeleted {
			ids = append(ids, p.Course.ID)
		}
	}
	return ids
}

// CourseUpdate is a partial course. Nil scalar fields are left untouched.
type CourseUpdate struct {
	Title               *string             `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Prefix              *string             `json:"prefix,omitempty" validate:"omitempty,min=1,max=20"`
	Code                *int                `json:"code,omitempty" validate:"omitempty,gte=1"`
	Credits             *int                `json:"credits,omitempty" validate:"omitempty,gte=0"`
	PreRequisiteCourses []PrerequisiteEntry `json:"preRequisiteCourses,omitempty" validate:"omitempty,dive"`
}

// Changes maps the set scalar fields to their columns.
func (u CourseUpdate) Changes() map[string]any {
	changes := make(map[string]any, 4)
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Prefix != nil {
		changes["prefix"] = *u.Prefix
	}
	if u.Code != nil {
		changes["code"] = *u.Code
	}
	if u.Credits != nil {
		changes["credits"] = *u.Credits
	}
	return changes
}

// PrerequisiteDeltas partitions the delta list into course ids to remove and to add.
// Entries without a course reference are skipped.
func (u CourseUpdate) PrerequisiteDeltas() (toRemove, toAdd []int64) {
	for _, entry := range u.PreRequisiteCourses {
		if entry.Course == 0 {
			continue
		}
		if entry.IsDeleted {
			toRemove = append(toRemove, entry.Course)
		} else {
			toAdd = append(toAdd, entry.Course)
		}
	}
	return toRemove, toAdd
}

// CourseFaculty is the set of faculty members assigned to a course.
type CourseFaculty struct {
	CourseID  int64     `json:"course" db:"course_id"`
	Faculties []Faculty `json:"faculties" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

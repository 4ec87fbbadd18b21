package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/app/repositories"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/querybuilder"
)

// fakeCourseStore keeps courses in memory. WithTx snapshots the state and restores it
// when the callback fails, so a failed update leaves nothing behind.
type fakeCourseStore struct {
	nextID    int64
	courses   map[int64]models.Course
	prereqs   map[int64][]int64
	faculties map[int64][]int64
	assigned  map[int64]bool

	commits   int
	rollbacks int
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:   map[int64]models.Course{},
		prereqs:   map[int64][]int64{},
		faculties: map[int64][]int64{},
		assigned:  map[int64]bool{},
	}
}

func (s *fakeCourseStore) seed(title string, credits int, prereqs ...int64) int64 {
	s.nextID++
	s.courses[s.nextID] = models.Course{ID: s.nextID, Title: title, Prefix: "CS", Code: int(100 + s.nextID), Credits: credits}
	s.prereqs[s.nextID] = append([]int64(nil), prereqs...)
	return s.nextID
}

type fakeCourseSnapshot struct {
	courses   map[int64]models.Course
	prereqs   map[int64][]int64
	faculties map[int64][]int64
	assigned  map[int64]bool
	nextID    int64
}

func (s *fakeCourseStore) snapshot() fakeCourseSnapshot {
	snap := fakeCourseSnapshot{
		courses:   map[int64]models.Course{},
		prereqs:   map[int64][]int64{},
		faculties: map[int64][]int64{},
		assigned:  map[int64]bool{},
		nextID:    s.nextID,
	}
	for k, v := range s.courses {
		snap.courses[k] = v
	}
	for k, v := range s.prereqs {
		snap.prereqs[k] = slices.Clone(v)
	}
	for k, v := range s.faculties {
		snap.faculties[k] = slices.Clone(v)
	}
	for k, v := range s.assigned {
		snap.assigned[k] = v
	}
	return snap
}

func (s *fakeCourseStore) restore(snap fakeCourseSnapshot) {
	s.courses = snap.courses
	s.prereqs = snap.prereqs
	s.faculties = snap.faculties
	s.assigned = snap.assigned
	s.nextID = snap.nextID
}

func (s *fakeCourseStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.CourseTxRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.snapshot()
	if err := fn(ctx, fakeCourseTx{s}); err != nil {
		s.restore(snap)
		s.rollbacks++
		return err
	}
	if err := ctx.Err(); err != nil {
		s.restore(snap)
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

func (s *fakeCourseStore) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return fakeCourseTx{s}.GetCourseByID(ctx, id)
}

func (s *fakeCourseStore) ListCourses(_ context.Context, _ map[string]any) ([]models.Course, querybuilder.Pagination, error) {
	var out []models.Course
	for id := int64(1); id <= s.nextID; id++ {
		if c, ok := s.courses[id]; ok && !c.IsDeleted {
			out = append(out, c)
		}
	}
	p := querybuilder.Pagination{Page: 1, Limit: 10}
	p.Resolve(int64(len(out)))
	return out, p, nil
}

func (s *fakeCourseStore) SoftDeleteCourse(ctx context.Context, id int64) (*models.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	c.IsDeleted = true
	s.courses[id] = c
	return s.GetCourseByID(ctx, id)
}

func (s *fakeCourseStore) GetCourseFaculties(ctx context.Context, courseID int64) (*models.CourseFaculty, error) {
	return fakeCourseTx{s}.GetCourseFaculties(ctx, courseID)
}

type fakeCourseTx struct {
	s *fakeCourseStore
}

func (t fakeCourseTx) InsertCourse(_ context.Context, course *models.Course) error {
	for _, c := range t.s.courses {
		if c.Title == course.Title {
			return apperrors.ErrCourseAlreadyExists
		}
	}
	t.s.nextID++
	course.ID = t.s.nextID
	t.s.courses[course.ID] = *course
	t.s.prereqs[course.ID] = nil
	return nil
}

func (t fakeCourseTx) UpdateCourseFields(_ context.Context, id int64, changes map[string]any) error {
	c, ok := t.s.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	for col, v := range changes {
		switch col {
		case "title":
			for otherID, other := range t.s.courses {
				if otherID != id && other.Title == v.(string) {
					return apperrors.ErrCourseAlreadyExists
				}
			}
			c.Title = v.(string)
		case "prefix":
			c.Prefix = v.(string)
		case "code":
			c.Code = v.(int)
		case "credits":
			c.Credits = v.(int)
		default:
			return fmt.Errorf("%w: unknown column %s", apperrors.ErrValidationFailed, col)
		}
	}
	t.s.courses[id] = c
	return nil
}

func (t fakeCourseTx) RemovePrerequisites(_ context.Context, id int64, ids []int64) error {
	if _, ok := t.s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	t.s.prereqs[id] = slices.DeleteFunc(t.s.prereqs[id], func(p int64) bool {
		return slices.Contains(ids, p)
	})
	return nil
}

func (t fakeCourseTx) AddPrerequisites(_ context.Context, id int64, ids []int64) error {
	if _, ok := t.s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for _, p := range ids {
		if p == id {
			return apperrors.ErrSelfPrerequisite
		}
		if _, ok := t.s.courses[p]; !ok {
			return apperrors.ErrUnknownPrerequisite
		}
		if !slices.Contains(t.s.prereqs[id], p) {
			t.s.prereqs[id] = append(t.s.prereqs[id], p)
		}
	}
	return nil
}

func (t fakeCourseTx) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := t.s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	c.PreRequisiteCourses = []models.Prerequisite{}
	for _, p := range t.s.prereqs[id] {
		ref := t.s.courses[p]
		c.PreRequisiteCourses = append(c.PreRequisiteCourses, models.Prerequisite{
			Course: models.CourseSummary{ID: ref.ID, Title: ref.Title, Prefix: ref.Prefix, Code: ref.Code, Credits: ref.Credits},
		})
	}
	return &c, nil
}

func (t fakeCourseTx) DependentCourseIDs(_ context.Context, id int64) ([]int64, error) {
	var ids []int64
	for owner, prereqs := range t.s.prereqs {
		if slices.Contains(prereqs, id) {
			ids = append(ids, owner)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// memoryCourseCache records what the service caches and invalidates.
type memoryCourseCache struct {
	entries     map[int64]models.Course
	invalidated []int64
}

func newMemoryCourseCache() *memoryCourseCache {
	return &memoryCourseCache{entries: map[int64]models.Course{}}
}

func (c *memoryCourseCache) Get(_ context.Context, id int64) (*models.Course, bool) {
	course, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return &course, true
}

func (c *memoryCourseCache) Set(_ context.Context, id int64, course *models.Course) {
	c.entries[id] = *course
}

func (c *memoryCourseCache) Invalidate(_ context.Context, ids ...int64) {
	for _, id := range ids {
		delete(c.entries, id)
		c.invalidated = append(c.invalidated, id)
	}
}

func (t fakeCourseTx) EnsureFacultyAssignment(_ context.Context, courseID int64) error {
	if _, ok := t.s.courses[courseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	t.s.assigned[courseID] = true
	return nil
}

func (t fakeCourseTx) AddFacultyMembers(_ context.Context, courseID int64, facultyIDs []int64) error {
	for _, f := range facultyIDs {
		if f > 100 {
			return apperrors.ErrUnknownFacultyReference
		}
		if !slices.Contains(t.s.faculties[courseID], f) {
			t.s.faculties[courseID] = append(t.s.faculties[courseID], f)
		}
	}
	return nil
}

func (t fakeCourseTx) GetCourseFaculties(_ context.Context, courseID int64) (*models.CourseFaculty, error) {
	if !t.s.assigned[courseID] {
		return nil, apperrors.ErrCourseFacultyNotFound
	}
	out := &models.CourseFaculty{CourseID: courseID, Faculties: []models.Faculty{}}
	for _, f := range t.s.faculties[courseID] {
		out.Faculties = append(out.Faculties, models.Faculty{ID: f})
	}
	return out, nil
}

// fakeSemesterStore is an in-memory SemesterStore.
type fakeSemesterStore struct {
	semesters map[int64]models.AcademicSemester
	nextID    int64
}

func newFakeSemesterStore() *fakeSemesterStore {
	return &fakeSemesterStore{semesters: map[int64]models.AcademicSemester{}}
}

func (s *fakeSemesterStore) CreateSemester(_ context.Context, semester *models.AcademicSemester) error {
	for _, existing := range s.semesters {
		if existing.Name == semester.Name && existing.Year == semester.Year {
			return apperrors.ErrSemesterAlreadyExists
		}
	}
	s.nextID++
	semester.ID = s.nextID
	s.semesters[semester.ID] = *semester
	return nil
}

func (s *fakeSemesterStore) GetSemesterByID(_ context.Context, id int64) (*models.AcademicSemester, error) {
	semester, ok := s.semesters[id]
	if !ok {
		return nil, apperrors.ErrSemesterNotFound
	}
	return &semester, nil
}

func (s *fakeSemesterStore) ListSemesters(_ context.Context, _ map[string]any) ([]models.AcademicSemester, querybuilder.Pagination, error) {
	var out []models.AcademicSemester
	for id := int64(1); id <= s.nextID; id++ {
		if semester, ok := s.semesters[id]; ok {
			out = append(out, semester)
		}
	}
	p := querybuilder.Pagination{Page: 1, Limit: 10}
	p.Resolve(int64(len(out)))
	return out, p, nil
}

func (s *fakeSemesterStore) UpdateSemester(_ context.Context, semester *models.AcademicSemester) (*models.AcademicSemester, error) {
	if _, ok := s.semesters[semester.ID]; !ok {
		return nil, apperrors.ErrSemesterNotFound
	}
	s.semesters[semester.ID] = *semester
	updated := *semester
	return &updated, nil
}

// fakeUserStore records accounts and profiles created through its transactions.
type fakeUserStore struct {
	semesters *fakeSemesterStore
	users     []models.User
	students  []models.Student
	faculties []models.Faculty
	locks     []models.Role
	failWith  error
}

func (s *fakeUserStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.UserTxRepository) error) error {
	users, students, faculties := len(s.users), len(s.students), len(s.faculties)
	if err := fn(ctx, fakeUserTx{s}); err != nil {
		s.users, s.students, s.faculties = s.users[:users], s.students[:students], s.faculties[:faculties]
		return err
	}
	return nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeUserTx struct {
	s *fakeUserStore
}

func (t fakeUserTx) LockUserCodes(_ context.Context, role models.Role) error {
	t.s.locks = append(t.s.locks, role)
	return nil
}

func (t fakeUserTx) LastStudentCode(_ context.Context, prefix string) (string, error) {
	last := ""
	for _, st := range t.s.students {
		if len(st.UserCode) > len(prefix) && st.UserCode[:len(prefix)] == prefix && st.UserCode > last {
			last = st.UserCode
		}
	}
	return last, nil
}

func (t fakeUserTx) LastFacultyCode(_ context.Context) (string, error) {
	last := ""
	for _, f := range t.s.faculties {
		if f.UserCode > last {
			last = f.UserCode
		}
	}
	return last, nil
}

func (t fakeUserTx) GetSemesterByID(ctx context.Context, id int64) (*models.AcademicSemester, error) {
	return t.s.semesters.GetSemesterByID(ctx, id)
}

func (t fakeUserTx) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range t.s.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = int64(len(t.s.users) + 1)
	t.s.users = append(t.s.users, *user)
	return nil
}

func (t fakeUserTx) CreateStudent(_ context.Context, student *models.Student) error {
	if t.s.failWith != nil {
		return t.s.failWith
	}
	student.ID = int64(len(t.s.students) + 1)
	t.s.students = append(t.s.students, *student)
	return nil
}

func (t fakeUserTx) CreateFaculty(_ context.Context, faculty *models.Faculty) error {
	if t.s.failWith != nil {
		return t.s.failWith
	}
	faculty.ID = int64(len(t.s.faculties) + 1)
	t.s.faculties = append(t.s.faculties, *faculty)
	return nil
}

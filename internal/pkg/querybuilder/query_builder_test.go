package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() Schema {
	return Schema{
		Table: "courses",
		Fields: []Field{
			{Name: "id", Column: "id", Kind: Int, Filterable: true, Sortable: true, Selectable: true},
			{Name: "title", Column: "title", Kind: String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "prefix", Column: "prefix", Kind: String, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "code", Column: "code", Kind: Int, Searchable: true, Filterable: true, Sortable: true, Selectable: true},
			{Name: "credits", Column: "credits", Kind: Int, Filterable: true, Sortable: true, Selectable: true},
			{Name: "isDeleted", Column: "is_deleted", Kind: Bool, Filterable: true, Selectable: true},
			{Name: "createdAt", Column: "created_at", Kind: String, Sortable: true, Selectable: true},
		},
		IDField:      "id",
		DefaultSort:  "-createdAt",
		DefaultLimit: 10,
		MaxLimit:     100,
		Defaults:     map[string]any{"isDeleted": false},
	}
}

func toSQL(t *testing.T, spec QuerySpec) (string, []any) {
	t.Helper()
	sql, args, err := spec.Select.ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestSort_DescendingThenAscendingWithTieBreaker(t *testing.T) {
	spec := New(testSchema(), map[string]any{"sort": "-credits,title"}).Sort().Spec()

	sql, _ := toSQL(t, spec)
	assert.Contains(t, sql, "ORDER BY courses.credits DESC, courses.title ASC, courses.id ASC")
}

func TestSort_UnknownKeysFallBackToDefault(t *testing.T) {
	spec := New(testSchema(), map[string]any{"sort": "-password,nope"}).Sort().Spec()

	sql, _ := toSQL(t, spec)
	assert.Contains(t, sql, "ORDER BY courses.created_at DESC, courses.id ASC")
}

func TestSort_ExplicitIDNotDuplicated(t *testing.T) {
	spec := New(testSchema(), map[string]any{"sort": "-id"}).Sort().Spec()

	sql, _ := toSQL(t, spec)
	assert.Contains(t, sql, "ORDER BY courses.id DESC")
	assert.NotContains(t, sql, "courses.id ASC")
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		params    map[string]any
		wantPage  int
		wantLimit int
		wantSkip  uint64
	}{
		{"defaults", map[string]any{}, 1, 10, 0},
		{"invalid values fall back", map[string]any{"page": "0", "limit": "abc"}, 1, 10, 0},
		{"negative limit", map[string]any{"page": "2", "limit": "-5"}, 2, 10, 10},
		{"third page of five", map[string]any{"page": "3", "limit": "5"}, 3, 5, 10},
		{"limit clamped", map[string]any{"limit": "1000"}, 1, 100, 0},
		{"query string slices", map[string]any{"page": []string{"2"}, "limit": []string{"20"}}, 2, 20, 20},
		{"numeric json values", map[string]any{"page": float64(4), "limit": float64(25)}, 4, 25, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := New(testSchema(), tt.params).Paginate().Spec()

			assert.Equal(t, tt.wantPage, spec.Pagination.Page)
			assert.Equal(t, tt.wantLimit, spec.Pagination.Limit)
			assert.Equal(t, tt.wantSkip, spec.Pagination.Skip)

			sql, _ := toSQL(t, spec)
			assert.Contains(t, sql, "LIMIT")
			assert.Contains(t, sql, "OFFSET")
		})
	}
}

func TestPagination_Resolve(t *testing.T) {
	p := Pagination{Page: 1, Limit: 10}
	p.Resolve(21)
	assert.Equal(t, int64(21), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	p.Resolve(0)
	assert.Equal(t, 0, p.TotalPages)

	unbounded := Pagination{}
	unbounded.Resolve(7)
	assert.Equal(t, 1, unbounded.TotalPages)
}

func TestSearch_CaseInsensitiveOverSearchableFields(t *testing.T) {
	spec := New(testSchema(), map[string]any{"searchTerm": "algo"}).Search().Spec()

	sql, args := toSQL(t, spec)
	assert.Contains(t, sql, "courses.title ILIKE $1")
	assert.Contains(t, sql, "courses.prefix ILIKE $2")
	assert.Contains(t, sql, "CAST(courses.code AS TEXT) ILIKE $3")
	assert.Contains(t, sql, " OR ")
	assert.Equal(t, []any{"%algo%", "%algo%", "%algo%"}, args)
}

func TestSearch_BlankTermIsNoop(t *testing.T) {
	base, _ := toSQL(t, New(testSchema(), nil).Spec())
	searched, args := toSQL(t, New(testSchema(), map[string]any{"searchTerm": "   "}).Search().Spec())

	assert.Equal(t, base, searched)
	assert.Empty(t, args)
}

func TestSearch_EscapesWildcards(t *testing.T) {
	_, args := toSQL(t, New(testSchema(), map[string]any{"searchTerm": "100%_done"}).Search().Spec())

	require.NotEmpty(t, args)
	assert.Equal(t, `%100\%\_done%`, args[0])
}

func TestFilter_ReservedKeysAreNeverFilters(t *testing.T) {
	params := map[string]any{
		"searchTerm": "x", "sort": "title", "limit": "5", "page": "2", "fields": "title",
	}
	spec := New(testSchema(), params).Filter().Spec()

	sql, args := toSQL(t, spec)
	assert.Empty(t, spec.Ignored)
	assert.Equal(t, "SELECT courses.id, courses.title, courses.prefix, courses.code, courses.credits, courses.is_deleted, courses.created_at FROM courses WHERE (courses.is_deleted = $1)", sql)
	assert.Equal(t, []any{false}, args)
}

func TestFilter_EqualityCoercesToFieldKind(t *testing.T) {
	spec := New(testSchema(), map[string]any{"credits": "3", "prefix": "CS"}).Filter().Spec()

	sql, args := toSQL(t, spec)
	assert.Contains(t, sql, "courses.credits = $1")
	assert.Contains(t, sql, "courses.prefix = $2")
	assert.Equal(t, []any{int64(3), "CS", false}, args)
}

func TestFilter_RangeOperators(t *testing.T) {
	t.Run("nested map", func(t *testing.T) {
		params := map[string]any{"credits": map[string]any{"gte": "3", "lt": float64(5)}}
		sql, args := toSQL(t, New(testSchema(), params).Filter().Spec())

		assert.Contains(t, sql, "courses.credits >= $1")
		assert.Contains(t, sql, "courses.credits < $2")
		assert.Equal(t, []any{int64(3), int64(5), false}, args)
	})

	t.Run("bracketed query keys", func(t *testing.T) {
		params := map[string]any{"credits[gt]": []string{"2"}, "credits[lte]": []string{"4"}}
		sql, args := toSQL(t, New(testSchema(), params).Filter().Spec())

		assert.Contains(t, sql, "courses.credits > $1")
		assert.Contains(t, sql, "courses.credits <= $2")
		assert.Equal(t, []any{int64(2), int64(4), false}, args)
	})
}

func TestFilter_ListBecomesIn(t *testing.T) {
	params := map[string]any{"code": []string{"101", "201"}}
	sql, args := toSQL(t, New(testSchema(), params).Filter().Spec())

	assert.Contains(t, sql, "courses.code IN ($1,$2)")
	assert.Equal(t, []any{int64(101), int64(201), false}, args)
}

func TestFilter_UnknownAndUncoercibleKeysIgnored(t *testing.T) {
	params := map[string]any{
		"password":      "x",
		"createdAt":     "2024",
		"credits":       "three",
		"code[between]": "1",
		"title":         "Algorithms",
	}
	spec := New(testSchema(), params).Filter().Spec()

	assert.Equal(t, []string{"code[between]", "createdAt", "credits", "password"}, spec.Ignored)
	sql, args := toSQL(t, spec)
	assert.Contains(t, sql, "courses.title = $1")
	assert.Equal(t, []any{"Algorithms", false}, args)
}

func TestFilter_ExplicitDefaultFieldOverridesDefault(t *testing.T) {
	spec := New(testSchema(), map[string]any{"isDeleted": "true"}).Filter().Spec()

	sql, args := toSQL(t, spec)
	assert.Contains(t, sql, "WHERE (courses.is_deleted = $1)")
	assert.Equal(t, []any{true}, args)
}

func TestFields_ProjectionAlwaysIncludesID(t *testing.T) {
	spec := New(testSchema(), map[string]any{"fields": "title, credits,bogus,title"}).Fields().Spec()

	assert.Equal(t, []string{"courses.id", "courses.title", "courses.credits"}, spec.Columns)
	sql, _ := toSQL(t, spec)
	assert.Contains(t, sql, "SELECT courses.id, courses.title, courses.credits FROM courses")
}

func TestFields_NothingUsableSelectsAll(t *testing.T) {
	spec := New(testSchema(), map[string]any{"fields": "bogus"}).Fields().Spec()
	assert.Len(t, spec.Columns, 7)
}

func TestCount_SharesFiltersWithoutWindow(t *testing.T) {
	params := map[string]any{"credits": "3", "sort": "title", "page": "2"}
	spec := New(testSchema(), params).Filter().Sort().Paginate().Spec()

	sql, args, err := spec.Count.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM courses WHERE (courses.credits = $1 AND courses.is_deleted = $2)", sql)
	assert.Equal(t, []any{int64(3), false}, args)
}

func TestStages_Idempotent(t *testing.T) {
	params := map[string]any{
		"searchTerm": "algo", "credits": map[string]any{"gte": "3"},
		"sort": "-credits", "page": "2", "limit": "5", "fields": "title",
	}

	once := New(testSchema(), params).Search().Filter().Sort().Paginate().Fields().Spec()
	twice := New(testSchema(), params).
		Search().Search().
		Filter().Filter().
		Sort().Sort().
		Paginate().Paginate().
		Fields().Fields().
		Spec()
	reordered := New(testSchema(), params).Fields().Paginate().Sort().Filter().Search().Spec()

	sqlOnce, argsOnce := toSQL(t, once)
	sqlTwice, argsTwice := toSQL(t, twice)
	sqlReordered, argsReordered := toSQL(t, reordered)

	assert.Equal(t, sqlOnce, sqlTwice)
	assert.Equal(t, argsOnce, argsTwice)
	assert.Equal(t, sqlOnce, sqlReordered)
	assert.Equal(t, argsOnce, argsReordered)
	assert.Equal(t, once.Pagination, twice.Pagination)
}

func TestCompose_DeterministicAcrossCalls(t *testing.T) {
	params := map[string]any{"prefix": "CS", "credits": "3", "code": []string{"101", "102"}, "title[ne]": "Intro"}

	first := Compose(testSchema(), params)
	for i := 0; i < 5; i++ {
		again := Compose(testSchema(), params)

		sqlA, argsA := toSQL(t, first)
		sqlB, argsB := toSQL(t, again)
		assert.Equal(t, sqlA, sqlB)
		assert.Equal(t, argsA, argsB)
		assert.Equal(t, first.Pagination, again.Pagination)
	}
	assert.Len(t, params, 4)
}

func TestFilter_IgnoredDefaultFieldKeepsDefault(t *testing.T) {
	cases := map[string]map[string]any{
		"uncoercible value": {"isDeleted": "maybe"},
		"unknown operator":  {"isDeleted[foo]": "1"},
		"unknown op map":    {"isDeleted": map[string]any{"like": "x"}},
		"empty op map":      {"isDeleted": map[string]any{}},
	}

	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			spec := Compose(testSchema(), params)

			assert.Len(t, spec.Ignored, 1)
			sql, args := toSQL(t, spec)
			assert.Contains(t, sql, "WHERE (courses.is_deleted = $1)")
			assert.Equal(t, false, args[0])
		})
	}
}

func TestFilter_ValidOperatorOnDefaultFieldReplacesDefault(t *testing.T) {
	spec := New(testSchema(), map[string]any{"isDeleted[eq]": "true"}).Filter().Spec()

	sql, args := toSQL(t, spec)
	assert.Contains(t, sql, "WHERE (courses.is_deleted = $1)")
	assert.Equal(t, []any{true}, args)
}

// Package querybuilder turns untyped list-request parameters into a squirrel SELECT
// restricted to the fields a Schema declares.
package querybuilder

import (
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Reserved request keys. They drive search, sort, pagination and projection and
// are never treated as filters.
const (
	SearchTermKey = "searchTerm"
	SortKey       = "sort"
	LimitKey      = "limit"
	PageKey       = "page"
	FieldsKey     = "fields"
)

var reservedKeys = map[string]struct{}{
	SearchTermKey: {},
	SortKey:       {},
	LimitKey:      {},
	PageKey:       {},
	FieldsKey:     {},
}

// IsReserved reports whether key is one of the composer's control parameters.
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

var comparisonOps = map[string]func(col string, v any) squirrel.Sqlizer{
	"eq":  func(c string, v any) squirrel.Sqlizer { return squirrel.Eq{c: v} },
	"ne":  func(c string, v any) squirrel.Sqlizer { return squirrel.NotEq{c: v} },
	"gt":  func(c string, v any) squirrel.Sqlizer { return squirrel.Gt{c: v} },
	"gte": func(c string, v any) squirrel.Sqlizer { return squirrel.GtOrEq{c: v} },
	"lt":  func(c string, v any) squirrel.Sqlizer { return squirrel.Lt{c: v} },
	"lte": func(c string, v any) squirrel.Sqlizer { return squirrel.LtOrEq{c: v} },
}

// Pagination is the resolved page window of a query.
type Pagination struct {
	Page       int
	Limit      int
	Skip       uint64
	Total      int64
	TotalPages int
}

// Resolve records the total row count and derives the page count.
func (p *Pagination) Resolve(total int64) {
	p.Total = total
	if p.Limit <= 0 {
		p.TotalPages = 1
		return
	}
	p.TotalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// QuerySpec is the materialised query. Select returns the page, Count the total of
// the same filtered set without ordering or window.
type QuerySpec struct {
	Select     squirrel.SelectBuilder
	Count      squirrel.SelectBuilder
	Columns    []string
	Pagination Pagination
	Ignored    []string
}

// QueryBuilder accumulates list stages over a base table. Each stage replaces its
// own previous result, so calling a stage twice is the same as calling it once, and
// the stages may be called in any order.
type QueryBuilder struct {
	schema Schema
	params map[string]any

	search    squirrel.Sqlizer
	filters   []squirrel.Sqlizer
	filtered  map[string]bool
	ignored   []string
	orderBy   []string
	columns   []string
	paginated bool
	page      Pagination
}

// New starts a composer over schema with a copy of the caller's raw parameters.
func New(schema Schema, params map[string]any) *QueryBuilder {
	own := make(map[string]any, len(params))
	for k, v := range params {
		own[k] = v
	}
	return &QueryBuilder{schema: schema, params: own}
}

// Compose runs every stage over params.
func Compose(schema Schema, params map[string]any) QuerySpec {
	return New(schema, params).Search().Filter().Sort().Paginate().Fields().Spec()
}

// Search adds a case-insensitive substring match of searchTerm over every searchable
// field, OR-combined. An absent or blank term leaves the query unchanged.
func (q *QueryBuilder) Search() *QueryBuilder {
	q.search = nil

	term, _ := scalarString(q.params[SearchTermKey])
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}

	pattern := "%" + escapeLike(term) + "%"
	var matches squirrel.Or
	for _, f := range q.schema.Fields {
		if !f.Searchable {
			continue
		}
		col := q.schema.qualify(f.Column)
		if f.Kind != String {
			col = "CAST(" + col + " AS TEXT)"
		}
		matches = append(matches, squirrel.ILike{col: pattern})
	}
	if len(matches) > 0 {
		q.search = matches
	}
	return q
}

// Filter turns every non-reserved parameter into an equality, IN or comparison
// predicate on its declared field. Keys that are not filterable, or whose values do
// not coerce to the field's kind, are dropped and reported in QuerySpec.Ignored.
func (q *QueryBuilder) Filter() *QueryBuilder {
	q.filters = nil
	q.filtered = map[string]bool{}
	q.ignored = nil

	keys := make([]string, 0, len(q.params))
	for k := range q.params {
		if IsReserved(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name, op := splitOpKey(key)
		f, ok := q.schema.field(name)
		if !ok || !f.Filterable {
			q.ignored = append(q.ignored, key)
			continue
		}

		var preds []squirrel.Sqlizer
		var err error
		if op != "" {
			preds, err = q.comparison(f, map[string]any{op: q.params[key]})
		} else {
			preds, err = q.predicate(f, q.params[key])
		}
		if err != nil || len(preds) == 0 {
			q.ignored = append(q.ignored, key)
			continue
		}
		q.filters = append(q.filters, preds...)
		q.filtered[f.Name] = true
	}

	// a default yields only to a filter that was actually applied
	for _, name := range sortedKeys(q.schema.Defaults) {
		if q.filtered[name] {
			continue
		}
		f, ok := q.schema.field(name)
		if !ok {
			continue
		}
		q.filters = append(q.filters, squirrel.Eq{q.schema.qualify(f.Column): q.schema.Defaults[name]})
	}
	return q
}

func (q *QueryBuilder) predicate(f Field, raw any) ([]squirrel.Sqlizer, error) {
	col := q.schema.qualify(f.Column)

	switch v := raw.(type) {
	case map[string]any:
		return q.comparison(f, v)
	case []string:
		if len(v) == 1 {
			return q.predicate(f, v[0])
		}
		vals := make([]any, 0, len(v))
		for _, item := range v {
			c, err := coerce(f.Kind, item)
			if err != nil {
				return nil, err
			}
			vals = append(vals, c)
		}
		return []squirrel.Sqlizer{squirrel.Eq{col: vals}}, nil
	case []any:
		vals := make([]any, 0, len(v))
		for _, item := range v {
			c, err := coerce(f.Kind, item)
			if err != nil {
				return nil, err
			}
			vals = append(vals, c)
		}
		return []squirrel.Sqlizer{squirrel.Eq{col: vals}}, nil
	}

	c, err := coerce(f.Kind, raw)
	if err != nil {
		return nil, err
	}
	return []squirrel.Sqlizer{squirrel.Eq{col: c}}, nil
}

func (q *QueryBuilder) comparison(f Field, ops map[string]any) ([]squirrel.Sqlizer, error) {
	col := q.schema.qualify(f.Column)
	preds := make([]squirrel.Sqlizer, 0, len(ops))

	for _, op := range sortedKeys(ops) {
		build, ok := comparisonOps[op]
		if !ok {
			return nil, errUnknownOperator(op)
		}
		raw := ops[op]
		if s, isSlice := raw.([]string); isSlice && len(s) > 0 {
			raw = s[0]
		}
		v, err := coerce(f.Kind, raw)
		if err != nil {
			return nil, err
		}
		preds = append(preds, build(col, v))
	}
	return preds, nil
}

// Sort orders by the comma-separated sort parameter, "-" meaning descending. Unknown
// or non-sortable keys are skipped; if none remain the schema's default sort is used.
// The primary key is always appended as a tie-breaker so pages are stable.
func (q *QueryBuilder) Sort() *QueryBuilder {
	raw, _ := scalarString(q.params[SortKey])
	order := q.parseSort(raw)
	if len(order) == 0 {
		order = q.parseSort(q.schema.DefaultSort)
	}

	idCol := q.schema.idColumn()
	hasID := false
	for _, o := range order {
		if strings.HasPrefix(o, idCol+" ") {
			hasID = true
			break
		}
	}
	if !hasID {
		order = append(order, idCol+" ASC")
	}
	q.orderBy = order
	return q
}

func (q *QueryBuilder) parseSort(raw string) []string {
	var order []string
	seen := map[string]bool{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		dir := "ASC"
		if strings.HasPrefix(part, "-") {
			dir = "DESC"
			part = strings.TrimPrefix(part, "-")
		} else {
			part = strings.TrimPrefix(part, "+")
		}
		f, ok := q.schema.field(part)
		if !ok || !f.Sortable || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		order = append(order, q.schema.qualify(f.Column)+" "+dir)
	}
	return order
}

// Paginate windows the result. Missing, non-numeric or non-positive page and limit
// values fall back to 1 and the schema's default limit; limit is capped at MaxLimit.
func (q *QueryBuilder) Paginate() *QueryBuilder {
	def, max := q.schema.limits()

	page := positiveInt(q.params[PageKey], 1)
	limit := positiveInt(q.params[LimitKey], def)
	if limit > max {
		limit = max
	}

	q.paginated = true
	q.page = Pagination{
		Page:  page,
		Limit: limit,
		Skip:  uint64(page-1) * uint64(limit),
	}
	return q
}

// Fields projects the comma-separated fields parameter onto selectable columns. The
// primary key is always included; with no usable field every selectable column is
// returned.
func (q *QueryBuilder) Fields() *QueryBuilder {
	q.columns = nil

	raw, _ := scalarString(q.params[FieldsKey])
	if strings.TrimSpace(raw) == "" {
		return q
	}

	idCol := q.schema.idColumn()
	cols := []string{idCol}
	seen := map[string]bool{idCol: true}
	for _, name := range strings.Split(raw, ",") {
		f, ok := q.schema.field(strings.TrimSpace(name))
		if !ok || !f.Selectable {
			continue
		}
		col := q.schema.qualify(f.Column)
		if seen[col] {
			continue
		}
		seen[col] = true
		cols = append(cols, col)
	}
	if len(cols) > 1 {
		q.columns = cols
	}
	return q
}

// Spec materialises the accumulated stages. It may be called repeatedly.
func (q *QueryBuilder) Spec() QuerySpec {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	cols := q.columns
	if len(cols) == 0 {
		cols = q.schema.selectableColumns()
	}

	var where []squirrel.Sqlizer
	if q.search != nil {
		where = append(where, q.search)
	}
	where = append(where, q.filters...)

	sel := sb.Select(cols...).From(q.schema.Table)
	count := sb.Select("COUNT(*)").From(q.schema.Table)
	if len(where) > 0 {
		cond := squirrel.And(where)
		sel = sel.Where(cond)
		count = count.Where(cond)
	}
	if len(q.orderBy) > 0 {
		sel = sel.OrderBy(q.orderBy...)
	}

	spec := QuerySpec{
		Columns: append([]string(nil), cols...),
		Ignored: append([]string(nil), q.ignored...),
	}
	if q.paginated {
		sel = sel.Limit(uint64(q.page.Limit)).Offset(q.page.Skip)
		spec.Pagination = q.page
	}
	spec.Select = sel
	spec.Count = count
	return spec
}

// splitOpKey splits a flat "field[op]" key as produced by query strings such as
// credits[gte]=3.
func splitOpKey(key string) (string, string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type errUnknownOperator string

func (e errUnknownOperator) Error() string {
	return "unknown filter operator: " + string(e)
}

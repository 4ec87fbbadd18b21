package querybuilder

// Kind is the value type a request parameter is coerced to before it reaches SQL.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
)

// Field declares one request-visible attribute of a listable table and what the
// composer may do with it.
type Field struct {
	Name       string // request name, e.g. "isDeleted"
	Column     string // column name, e.g. "is_deleted"
	Kind       Kind
	Searchable bool
	Filterable bool
	Sortable   bool
	Selectable bool
}

// Schema is the declared set of permitted keys for one list query.
type Schema struct {
	Table        string
	Fields       []Field
	IDField      string // request name of the primary key; always projected and used as tie-breaker
	DefaultSort  string // same syntax as the sort parameter
	DefaultLimit int
	MaxLimit     int
	// Defaults are filters applied when the caller does not filter that field, e.g.
	// hiding soft-deleted rows unless isDeleted is asked for explicitly.
	Defaults map[string]any
}

const (
	fallbackLimit    = 10
	fallbackMaxLimit = 100
)

func (s Schema) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) qualify(column string) string {
	if s.Table == "" {
		return column
	}
	return s.Table + "." + column
}

func (s Schema) idColumn() string {
	if f, ok := s.field(s.IDField); ok {
		return s.qualify(f.Column)
	}
	return s.qualify("id")
}

func (s Schema) selectableColumns() []string {
	cols := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Selectable {
			cols = append(cols, s.qualify(f.Column))
		}
	}
	return cols
}

func (s Schema) limits() (int, int) {
	def, max := s.DefaultLimit, s.MaxLimit
	if def < 1 {
		def = fallbackLimit
	}
	if max < def {
		max = fallbackMaxLimit
		if max < def {
			max = def
		}
	}
	return def, max
}

package querybuilder

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// coerce converts an untyped request value into the Go type of kind.
func coerce(kind Kind, v any) (any, error) {
	switch kind {
	case String:
		s, ok := scalarString(v)
		if !ok {
			return nil, fmt.Errorf("expected scalar, got %T", v)
		}
		return s, nil

	case Int:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("%v is not an integer", n)
			}
			return int64(n), nil
		case json.Number:
			return n.Int64()
		case string:
			return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		}

	case Float:
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float64:
			return n, nil
		case json.Number:
			return n.Float64()
		case string:
			return strconv.ParseFloat(strings.TrimSpace(n), 64)
		}

	case Bool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			return strconv.ParseBool(strings.TrimSpace(b))
		}
	}
	return nil, fmt.Errorf("cannot coerce %T", v)
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []string:
		if len(s) == 1 {
			return s[0], true
		}
	case fmt.Stringer:
		return s.String(), true
	case int, int32, int64, float64, bool, json.Number:
		return fmt.Sprint(s), true
	}
	return "", false
}

// positiveInt parses v as an integer >= 1, falling back to def on anything else.
func positiveInt(v any, def int) int {
	if v == nil {
		return def
	}
	n, err := coerce(Int, v)
	if err != nil {
		if s, ok := v.([]string); ok && len(s) > 0 {
			n, err = coerce(Int, s[0])
		}
		if err != nil {
			return def
		}
	}
	i := n.(int64)
	if i < 1 || i > math.MaxInt32 {
		return def
	}
	return int(i)
}

// escapeLike makes user text match literally inside a LIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

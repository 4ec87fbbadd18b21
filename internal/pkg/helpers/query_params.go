package helpers

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// QueryParams collects the request's query string into the untyped mapping the list
// endpoints hand to the query builder. Repeated keys become lists and bracketed keys
// such as credits[gte]=3 become nested operator maps.
func QueryParams(c *gin.Context) map[string]any {
	query := c.Request.URL.Query()
	params := make(map[string]any, len(query))

	var bracketed []string
	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		if _, _, ok := splitBracketKey(key); ok {
			bracketed = append(bracketed, key)
			continue
		}
		if len(values) == 1 {
			params[key] = values[0]
		} else {
			params[key] = append([]string(nil), values...)
		}
	}

	sort.Strings(bracketed)
	for _, key := range bracketed {
		name, op, _ := splitBracketKey(key)
		ops, isMap := params[name].(map[string]any)
		if !isMap {
			ops = make(map[string]any)
			if plain, found := params[name]; found {
				ops["eq"] = plain
			}
			params[name] = ops
		}
		values := query[key]
		ops[op] = values[len(values)-1]
	}

	return params
}

func splitBracketKey(key string) (string, string, bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") || open+1 >= len(key)-1 {
		return "", "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

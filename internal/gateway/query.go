package gateway

import (
	"net/url"
	"strconv"
)

// Query describes a table read: projected columns, column filters in the
// backend's "op.value" form (eq.42, ilike.*acme*), ordering and limit.
type Query struct {
	Select  string
	Filters map[string]string
	Order   string
	Limit   int
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Select != "" {
		v.Set("select", q.Select)
	}
	for col, cond := range q.Filters {
		v.Set(col, cond)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Eq builds the equality condition for a filter value.
func Eq(value string) string { return "eq." + value }

// IsNull matches rows where the column is null.
func IsNull() string { return "is.null" }

// Desc builds a descending order clause for a column.
func Desc(column string) string { return column + ".desc" }

// Asc builds an ascending order clause for a column.
func Asc(column string) string { return column + ".asc" }

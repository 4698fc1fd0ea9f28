package apiclient

import (
	"net/url"
	"strconv"
	"strings"
)

// AllFilter is the "no filter" sentinel used by status dropdowns. It is
// never sent to a backend.
const AllFilter = "ALL"

// Query collects query parameters. Blank values and AllFilter are dropped.
type Query struct {
	values url.Values
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// Set adds key=value unless value is blank or AllFilter.
func (q *Query) Set(key, value string) *Query {
	value = strings.TrimSpace(value)
	if value == "" || value == AllFilter {
		return q
	}
	q.values.Set(key, value)
	return q
}

// SetInt always adds key; page 0 is meaningful.
func (q *Query) SetInt(key string, value int) *Query {
	q.values.Set(key, strconv.Itoa(value))
	return q
}

// SetBool adds key only when v is non-nil.
func (q *Query) SetBool(key string, v *bool) *Query {
	if v != nil {
		q.values.Set(key, strconv.FormatBool(*v))
	}
	return q
}

// Encode renders the query in key order. A nil query encodes to "".
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	return q.values.Encode()
}

// PathEscape escapes one path segment.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}

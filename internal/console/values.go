package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Values holds key=value pairs given on the command line, as filters or
// form fields.
type Values map[string]string

// ParseValues parses repeated key=value arguments.
func ParseValues(pairs []string) (Values, error) {
	v := Values{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		v[key] = strings.TrimSpace(value)
	}
	return v, nil
}

// Get returns the trimmed value for key, or "".
func (v Values) Get(key string) string {
	return strings.TrimSpace(v[key])
}

// Bool returns nil when key is unset.
func (v Values) Bool(key string) *bool {
	switch strings.ToLower(v.Get(key)) {
	case "true", "yes", "1":
		b := true
		return &b
	case "false", "no", "0":
		b := false
		return &b
	}
	return nil
}

// decoder converts form values into typed fields, collecting every
// conversion error so a form reports them all at once.
type decoder struct {
	values Values
	errs   map[string]string
}

func newDecoder(v Values) *decoder {
	return &decoder{values: v, errs: map[string]string{}}
}

func (d *decoder) str(key string) string {
	return d.values.Get(key)
}

func (d *decoder) num(key string) int {
	n := d.optNum(key)
	if n == nil {
		return 0
	}
	return *n
}

func (d *decoder) optNum(key string) *int {
	raw := d.values.Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		d.errs[key] = "must be a whole number"
		return nil
	}
	return &n
}

func (d *decoder) decimal(key string) float64 {
	f := d.optDecimal(key)
	if f == nil {
		return 0
	}
	return *f
}

func (d *decoder) optDecimal(key string) *float64 {
	raw := d.values.Get(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		d.errs[key] = "must be a number"
		return nil
	}
	return &f
}

func (d *decoder) err() error {
	if len(d.errs) == 0 {
		return nil
	}
	return &FormError{Fields: d.errs}
}

// FormError lists the fields that failed validation before submission.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// set overwrites dst when key was given.
func set[S ~string](d *decoder, key string, dst *S) {
	if v := d.str(key); v != "" {
		*dst = S(v)
	}
}

func setNum(d *decoder, key string, dst *int) {
	if n := d.optNum(key); n != nil {
		*dst = *n
	}
}

// needAny rejects an edit with nothing to change.
func needAny(d *decoder) error {
	if len(d.values) == 0 {
		d.errs["field"] = "at least one --field is required"
	}
	return d.err()
}

// join concatenates the non-empty parts.
func join(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

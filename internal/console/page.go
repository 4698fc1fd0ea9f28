package console

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/view"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

// Request is one console invocation against a routed path.
type Request struct {
	Path    string
	Vars    map[string]string
	Page    int
	Size    int
	Filters Values
}

func (r *Request) id() string {
	return r.Vars["id"]
}

type page interface {
	open(ctx context.Context, c *Console, req *Request) error
}

type actionable interface {
	act(ctx context.Context, c *Console, req *Request, action workflow.Action, fields Values) error
}

type submittable interface {
	submit(ctx context.Context, c *Console, req *Request, fields Values) error
}

// listPage renders one page of a list with its filters applied.
type listPage[F any, T any] struct {
	title   string
	filters []string
	build   func(v Values) F
	fetch   func(ctx context.Context, f F, page, size int) (pagination.Page[T], error)
	columns []string
	row     func(c *Console, item T) []string
	empty   string
}

func (p *listPage[F, T]) open(ctx context.Context, c *Console, req *Request) error {
	for k := range req.Filters {
		if !containsString(p.filters, k) {
			return fmt.Errorf("unknown filter %q for %s (accepted: %s)", k, req.Path, strings.Join(p.filters, ", "))
		}
	}

	size := req.Size
	list := view.NewList(func(ctx context.Context, f F, page int) (pagination.Page[T], error) {
		return p.fetch(ctx, f, page, size)
	}, p.build(req.Filters), c.logger)

	c.r.Busy("Loading " + strings.ToLower(p.title))
	err := list.GoTo(ctx, req.Page)
	st := list.State()

	c.r.Title(p.title)
	if st.Err != nil {
		c.r.Banner(st.Err, retryHint(req))
		return err
	}

	rows := make([][]string, len(st.Result.Content))
	for i, item := range st.Result.Content {
		rows[i] = p.row(c, item)
	}
	c.r.Table(p.columns, rows, p.empty)
	c.r.Pagination(pagination.ControlFor(st.Result))
	return nil
}

// sliced adapts a backend that returns a raw array to the paged contract.
func sliced[F any, T any](list func(ctx context.Context, f F) ([]T, error)) func(ctx context.Context, f F, page, size int) (pagination.Page[T], error) {
	return func(ctx context.Context, f F, page, size int) (pagination.Page[T], error) {
		items, err := list(ctx, f)
		if err != nil {
			return pagination.Page[T]{}, err
		}
		return pagination.FromSlice(items, page, pagination.SizeOrDefault(size)), nil
	}
}

// detailPage loads one entity and runs the actions its status allows.
type detailPage[T any] struct {
	noun    string
	load    func(ctx context.Context, id string) (T, error)
	show    func(c *Console, e T)
	actions func(e T) []workflow.Action
	run     func(ctx context.Context, id string, e T, action workflow.Action, d *decoder) (T, error)
}

func (p *detailPage[T]) loaded(ctx context.Context, c *Console, req *Request) (*view.Detail[T], error) {
	id := req.id()
	d := view.NewDetail(func(ctx context.Context) (T, error) {
		return p.load(ctx, id)
	}, c.logger)

	c.r.Busy("Loading " + p.noun)
	if err := d.Load(ctx); err != nil {
		c.r.Title(titleCase(p.noun))
		c.r.Banner(d.State().Err, retryHint(req))
		return nil, err
	}
	return d, nil
}

func (p *detailPage[T]) open(ctx context.Context, c *Console, req *Request) error {
	d, err := p.loaded(ctx, c, req)
	if err != nil {
		return err
	}
	p.render(c, req.Path, d.State().Entity)
	return nil
}

func (p *detailPage[T]) render(c *Console, path string, e T) {
	p.show(c, e)
	if p.actions != nil {
		c.r.Actions(path, p.actions(e))
	}
}

func (p *detailPage[T]) act(ctx context.Context, c *Console, req *Request, action workflow.Action, fields Values) error {
	d, err := p.loaded(ctx, c, req)
	if err != nil {
		return err
	}
	current := d.State().Entity

	var offered []workflow.Action
	if p.actions != nil {
		offered = p.actions(current)
	}
	if p.run == nil || !containsAction(offered, action) {
		p.render(c, req.Path, current)
		return fmt.Errorf("%w: %s is not offered for this %s", workflow.ErrActionNotAllowed, action, p.noun)
	}

	dec := newDecoder(fields)
	c.r.Busy("Running " + string(action))
	err = d.Do(ctx, func(ctx context.Context) (T, error) {
		return p.run(ctx, req.id(), current, action, dec)
	})

	st := d.State()
	if err != nil {
		p.show(c, st.Entity)
		c.r.Line("")
		c.r.Banner(&view.Banner{Message: st.ActionErr}, "")
		return err
	}
	c.r.Line("%s: %s done", titleCase(p.noun), action)
	c.r.Line("")
	p.render(c, req.Path, st.Entity)
	return nil
}

// require records a "required" error for every missing key.
func require(d *decoder, keys ...string) error {
	for _, k := range keys {
		if d.str(k) == "" {
			d.errs[k] = "is required"
		}
	}
	return d.err()
}

type field struct {
	name     string
	required bool
	choices  []string
}

// formPage validates fields, builds the request body and submits it with a
// single call. On success the console moves to the new entity's page.
type formPage[R any, T any] struct {
	title  string
	fields []field
	build  func(d *decoder) R
	send   func(ctx context.Context, req R) (T, error)
	path   func(e T) string
	show   func(c *Console, e T)
	notice func(e T) string
}

func (p *formPage[R, T]) open(_ context.Context, c *Console, req *Request) error {
	c.r.Title(p.title)
	rows := make([][]string, len(p.fields))
	for i, f := range p.fields {
		need := "optional"
		if f.required {
			need = "required"
		}
		rows[i] = []string{f.name, need, strings.Join(f.choices, " | ")}
	}
	c.r.Table([]string{"FIELD", "", "CHOICES"}, rows, "")
	c.r.Line("")
	c.r.Line("  console form %s --field key=value ...", req.Path)
	return nil
}

func (p *formPage[R, T]) validate(fields Values) error {
	errs := map[string]string{}
	known := map[string]bool{}
	for _, f := range p.fields {
		known[f.name] = true
		v := fields.Get(f.name)
		switch {
		case v == "" && f.required:
			errs[f.name] = "is required"
		case v != "" && len(f.choices) > 0 && !containsString(f.choices, v):
			errs[f.name] = "must be one of " + strings.Join(f.choices, ", ")
		}
	}
	for k := range fields {
		if !known[k] {
			errs[k] = "is not a field of this form"
		}
	}
	if len(errs) > 0 {
		return &FormError{Fields: errs}
	}
	return nil
}

func (p *formPage[R, T]) submit(ctx context.Context, c *Console, req *Request, fields Values) error {
	c.r.Title(p.title)
	if err := p.validate(fields); err != nil {
		c.r.Banner(&view.Banner{Message: err.Error()}, "")
		return err
	}
	dec := newDecoder(fields)
	body := p.build(dec)
	if err := dec.err(); err != nil {
		c.r.Banner(&view.Banner{Message: err.Error()}, "")
		return err
	}

	c.r.Busy("Saving")
	created, err := p.send(ctx, body)
	if err != nil {
		c.r.Banner(&view.Banner{Message: err.Error()}, "")
		return err
	}

	if p.notice != nil {
		if msg := p.notice(created); msg != "" {
			c.r.Line("Note: %s", msg)
		}
	}
	next := p.path(created)
	c.r.Line("-> %s", next)
	c.r.Line("")
	p.show(c, created)
	return nil
}

func retryHint(req *Request) string {
	hint := "console open " + req.Path
	if req.Page > 0 {
		hint += fmt.Sprintf(" --page %d", req.Page+1)
	}
	keys := make([]string, 0, len(req.Filters))
	for k := range req.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		hint += fmt.Sprintf(" --filter %s=%s", k, req.Filters[k])
	}
	return hint
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsAction(list []workflow.Action, a workflow.Action) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func strs[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// errUnknownAction is returned by run functions for an offered action they
// do not implement; it indicates a table mismatch.
var errUnknownAction = errors.New("action has no handler")

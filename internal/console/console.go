// Package console implements the administration console: one page per
// routed path, rendered to a terminal. List pages fetch a page of results,
// detail pages load one entity and offer the actions its status allows, and
// form pages submit a create request and move to the new entity's page.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/appointment"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/bed"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/billing"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/bloodbank"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/emr"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/inventory"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/lab"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/notification"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/pharmacy"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/staff"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

// HomePath is where "/" leads.
const HomePath = "/patients"

var (
	ErrNoRoute    = errors.New("no page at this path")
	ErrNotActions = errors.New("page has no actions")
	ErrNotForm    = errors.New("page is not a form")
)

// Clients bundles one API client per backend.
type Clients struct {
	Patients      *patient.Client
	Appointments  *appointment.Client
	EMR           *emr.Client
	Billing       *billing.Client
	Notifications *notification.Client
	Pharmacy      *pharmacy.Client
	Lab           *lab.Client
	Beds          *bed.Client
	Staff         *staff.Client
	Inventory     *inventory.Client
	Blood         *bloodbank.Client
}

// NewClients creates every backend client against one gateway.
func NewClients(baseURL string, opts ...apiclient.Option) Clients {
	return Clients{
		Patients:      patient.NewClient(baseURL, opts...),
		Appointments:  appointment.NewClient(baseURL, opts...),
		EMR:           emr.NewClient(baseURL, opts...),
		Billing:       billing.NewClient(baseURL, opts...),
		Notifications: notification.NewClient(baseURL, opts...),
		Pharmacy:      pharmacy.NewClient(baseURL, opts...),
		Lab:           lab.NewClient(baseURL, opts...),
		Beds:          bed.NewClient(baseURL, opts...),
		Staff:         staff.NewClient(baseURL, opts...),
		Inventory:     inventory.NewClient(baseURL, opts...),
		Blood:         bloodbank.NewClient(baseURL, opts...),
	}
}

// Options configures a Console. Status receives busy labels; Now defaults
// to the wall clock.
type Options struct {
	Out    io.Writer
	Status io.Writer
	Color  bool
	Logger zerolog.Logger
	Now    func() time.Time
}

// Console routes paths to pages.
type Console struct {
	clients Clients
	r       *Renderer
	logger  zerolog.Logger
	now     func() time.Time
	router  *mux.Router
	pages   map[string]page
	order   []string
}

func New(clients Clients, opts Options) *Console {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &Console{
		clients: clients,
		r:       NewRenderer(opts.Out, opts.Status, opts.Color),
		logger:  opts.Logger,
		now:     opts.Now,
		router:  mux.NewRouter(),
		pages:   map[string]page{},
	}
	c.registerRoutes()
	return c
}

// handle registers a page. Literal paths must be registered before the
// parameterised path that would also match them.
func (c *Console) handle(path string, p page) {
	c.router.NewRoute().Path(path).Name(path)
	c.pages[path] = p
	c.order = append(c.order, path)
}

// Routes lists every routed path in registration order.
func (c *Console) Routes() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// resolve maps a path, optionally carrying a query string, to its page.
// Query parameters become filters; "page" selects the page.
func (c *Console) resolve(raw string) (page, *Request, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid path %q: %w", raw, err)
	}
	path := u.Path
	if path == "" || path == "/" {
		path = HomePath
	}

	httpReq, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid path %q: %w", raw, err)
	}
	var match mux.RouteMatch
	if !c.router.Match(httpReq, &match) || match.Route == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoRoute, path)
	}

	req := &Request{Path: path, Vars: match.Vars, Filters: Values{}}
	for k, v := range u.Query() {
		if len(v) == 0 {
			continue
		}
		if k == "page" {
			if n, err := strconv.Atoi(v[0]); err == nil {
				req.Page = n
			}
			continue
		}
		req.Filters[k] = v[0]
	}
	return c.pages[match.Route.GetName()], req, nil
}

// OpenOptions selects the page of a list and its filters. Filters given
// here override those in the path's query string.
type OpenOptions struct {
	Page    int
	Size    int
	Filters Values
}

// Open renders the page at path.
func (c *Console) Open(ctx context.Context, path string, opts OpenOptions) error {
	p, req, err := c.resolve(path)
	if err != nil {
		return err
	}
	if opts.Page > 0 {
		req.Page = opts.Page
	}
	if req.Page > pagination.MaxPage {
		req.Page = pagination.MaxPage
	}
	req.Size = opts.Size
	for k, v := range opts.Filters {
		req.Filters[k] = v
	}
	c.logger.Debug().Str("path", req.Path).Int("page", req.Page).Msg("open page")
	return p.open(ctx, c, req)
}

// Act runs a status action on the detail page at path.
func (c *Console) Act(ctx context.Context, path, action string, fields Values) error {
	p, req, err := c.resolve(path)
	if err != nil {
		return err
	}
	a, ok := p.(actionable)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotActions, req.Path)
	}
	c.logger.Debug().Str("path", req.Path).Str("action", action).Msg("run action")
	return a.act(ctx, c, req, workflow.Action(action), fields)
}

// Form submits the create form at path.
func (c *Console) Form(ctx context.Context, path string, fields Values) error {
	p, req, err := c.resolve(path)
	if err != nil {
		return err
	}
	f, ok := p.(submittable)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotForm, req.Path)
	}
	c.logger.Debug().Str("path", req.Path).Int("fields", len(fields)).Msg("submit form")
	return f.submit(ctx, c, req, fields)
}

// Watch re-renders the page at path every interval until ctx is done. A
// backend failure is shown like any other and the next tick tries again.
func (c *Console) Watch(ctx context.Context, path string, opts OpenOptions, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		c.r.Line("-- %s at %s", path, c.now().Format("15:04:05"))
		if err := c.Open(ctx, path, opts); err != nil {
			var apiErr *apiclient.Error
			if !errors.As(err, &apiErr) {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			c.logger.Debug().Err(err).Str("path", path).Msg("refresh failed")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

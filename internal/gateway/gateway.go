package gateway

import (
	"context"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/auth"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/envelope"
	apphttp "github.com/WailSalutem-Health-Care/hospital-console/internal/http"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/logging"
)

const serviceName = "gateway"

// MetricsRecorder receives one observation per proxied request.
type MetricsRecorder interface {
	RecordProxyRequest(ctx context.Context, prefix string, statusCode int, durationMs float64)
}

// Gateway fronts every hospital backend under its path prefix.
type Gateway struct {
	routes  []Route
	metrics MetricsRecorder
	logger  zerolog.Logger
}

// New builds a gateway. metrics may be nil.
func New(routes []Route, metrics MetricsRecorder, logger zerolog.Logger) *Gateway {
	return &Gateway{routes: routes, metrics: metrics, logger: logger}
}

// Handler returns the full gateway: CORS, tracing, access logging, the
// health endpoint and one reverse proxy per prefix.
func (g *Gateway) Handler(corsOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName))
	r.Use(logging.Recovery(g.logger))
	r.Use(logging.AccessLog(g.logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		envelope.Write(w, http.StatusOK, "", map[string]any{
			"status":   "ok",
			"service":  serviceName,
			"backends": len(g.routes),
		})
	}).Methods(http.MethodGet)

	for _, route := range g.routes {
		r.PathPrefix(route.Prefix + "/").Handler(g.measure(route.Prefix, g.proxy(route)))
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope.Fail(w, http.StatusNotFound, "No backend for "+r.URL.Path, nil)
	})

	return apphttp.CORSMiddleware(corsOrigins)(r)
}

func (g *Gateway) proxy(route Route) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = rewritePath(route.Prefix, pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.SetURL(route.Upstream)
			pr.SetXForwarded()

			// X-User-ID and X-User-Id are the same header once canonicalised.
			pr.Out.Header.Set(auth.HeaderActor, auth.NormalizeActor(pr.In.Header.Get(auth.HeaderActor)))
			if rid := logging.RequestIDFromContext(pr.In.Context()); rid != "" {
				pr.Out.Header.Set(logging.HeaderRequestID, rid)
			}
			otel.GetTextMapPropagator().Inject(pr.In.Context(), propagation.HeaderCarrier(pr.Out.Header))
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			g.logger.Error().
				Err(err).
				Str("prefix", route.Prefix).
				Str("upstream", route.Upstream.Host).
				Str("path", r.URL.Path).
				Msg("upstream unreachable")
			envelope.Fail(w, http.StatusBadGateway, "Service unavailable: "+route.Prefix, nil)
		},
	}
}

func (g *Gateway) measure(prefix string, next http.Handler) http.Handler {
	if g.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		g.metrics.RecordProxyRequest(r.Context(), prefix, m.Code, float64(m.Duration)/float64(time.Millisecond))
	})
}

package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/WailSalutem-Health-Care/hospital-console"

// Metrics holds all custom metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	PatientTotal metric.Int64Counter
	EventsTotal  metric.Int64Counter

	// Gateway and console metrics
	ProxyRequestsTotal metric.Int64Counter
	ProxyDurationMs    metric.Float64Histogram
	ClientCallsTotal   metric.Int64Counter
	ClientDurationMs   metric.Float64Histogram

	// Auth metrics
	AuthFailuresTotal       metric.Int64Counter
	PermissionCheckDuration metric.Float64Histogram
}

// InitMetrics initializes all custom metrics against the global meter
// provider. Without an exporter the instruments are no-ops.
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.HTTPRequestsTotal, "http_server_requests_total", "Total number of HTTP requests", "{request}"},
		{&m.PatientTotal, "patient_total", "Total number of patient operations", "{operation}"},
		{&m.EventsTotal, "domain_events_published_total", "Total number of published domain events", "{event}"},
		{&m.ProxyRequestsTotal, "gateway_proxy_requests_total", "Total number of proxied requests", "{request}"},
		{&m.ClientCallsTotal, "backend_client_calls_total", "Total number of backend calls made by the console", "{call}"},
		{&m.AuthFailuresTotal, "auth_failures_total", "Total number of authentication failures", "{failure}"},
	}
	for _, c := range counters {
		inst, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, err
		}
		*c.dst = inst
	}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
		desc string
	}{
		{&m.HTTPDurationMs, "http_server_duration_milliseconds", "HTTP request duration in milliseconds"},
		{&m.ProxyDurationMs, "gateway_proxy_duration_milliseconds", "Upstream round trip in milliseconds"},
		{&m.ClientDurationMs, "backend_client_duration_milliseconds", "Backend call duration in milliseconds"},
		{&m.PermissionCheckDuration, "permission_check_duration_ms", "Permission check duration in milliseconds"},
	}
	for _, h := range histograms {
		inst, err := meter.Float64Histogram(h.name, metric.WithDescription(h.desc), metric.WithUnit("ms"))
		if err != nil {
			return nil, err
		}
		*h.dst = inst
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordPatientOperation records a patient operation metric
func (m *Metrics) RecordPatientOperation(ctx context.Context, operation string) {
	m.PatientTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

func (m *Metrics) RecordEventPublished(ctx context.Context, broker, routingKey string, ok bool) {
	m.EventsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("broker", broker),
		attribute.String("routing_key", routingKey),
		attribute.Bool("ok", ok),
	))
}

// RecordProxyRequest records one request forwarded by the gateway.
func (m *Metrics) RecordProxyRequest(ctx context.Context, prefix string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("prefix", prefix),
		attribute.Int("http_status_code", statusCode),
	}
	m.ProxyRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.ProxyDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordClientCall records one backend call issued by the console.
func (m *Metrics) RecordClientCall(ctx context.Context, backend, method string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("backend", backend),
		attribute.String("http_method", method),
		attribute.Int("http_status_code", statusCode),
	}
	m.ClientCallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.ClientDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordPermissionCheck records a permission check duration metric
func (m *Metrics) RecordPermissionCheck(ctx context.Context, permission string, durationMs float64, allowed bool) {
	m.PermissionCheckDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("permission", permission),
		attribute.Bool("allowed", allowed),
	))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware records request count and duration labelled by the mux
// route template rather than the raw path.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.URL.Path
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.RecordHTTPRequest(r.Context(), r.Method, route, sw.status, float64(time.Since(start).Microseconds())/1000)
	})
}

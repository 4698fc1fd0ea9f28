package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/auth"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/envelope"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/logging"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/telemetry"
)

const serviceName = "patient-service"

// RouterDeps carries everything SetupRouter wires. Verifier nil disables
// bearer auth and permission checks; Metrics and Ping may be nil.
type RouterDeps struct {
	Patients *patient.Handler
	Verifier *auth.Verifier
	Perms    auth.Permissions
	Metrics  *telemetry.Metrics
	Ping     func(ctx context.Context) error
	Logger   zerolog.Logger
}

// SetupRouter initializes all routes for the patient service
func SetupRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName))
	r.Use(logging.Recovery(deps.Logger))
	r.Use(logging.AccessLog(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.HTTPMiddleware)
	}
	r.Use(auth.Actor)

	r.HandleFunc("/health", healthHandler(deps.Ping)).Methods(http.MethodGet)

	protect := func(permission string, h http.HandlerFunc) http.Handler {
		if deps.Verifier == nil {
			return h
		}
		var authMetrics auth.MetricsRecorder
		var permMetrics auth.PermissionMetricsRecorder
		if deps.Metrics != nil {
			authMetrics, permMetrics = deps.Metrics, deps.Metrics
		}
		return auth.Middleware(deps.Verifier, authMetrics, deps.Logger)(
			auth.RequirePermission(permission, deps.Perms, permMetrics, deps.Logger)(h),
		)
	}

	api := r.PathPrefix("/api/v1/patients").Subrouter()
	h := deps.Patients

	api.Handle("", protect("patient:create", h.RegisterPatient)).Methods(http.MethodPost)
	api.Handle("", protect("patient:view", h.SearchPatients)).Methods(http.MethodGet)
	api.Handle("/{patientId}", protect("patient:view", h.GetPatient)).Methods(http.MethodGet)
	api.Handle("/{patientId}", protect("patient:update", h.UpdatePatient)).Methods(http.MethodPut)
	api.Handle("/{patientId}/deactivate", protect("patient:status", h.DeactivatePatient)).Methods(http.MethodPatch)
	api.Handle("/{patientId}/activate", protect("patient:status", h.ActivatePatient)).Methods(http.MethodPatch)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope.Fail(w, http.StatusNotFound, "Resource not found", nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope.Fail(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "service": serviceName}
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				status["status"] = "degraded"
				status["database"] = "unreachable"
				envelope.Fail(w, http.StatusServiceUnavailable, "database unreachable", status)
				return
			}
		}
		envelope.Write(w, http.StatusOK, "", status)
	}
}

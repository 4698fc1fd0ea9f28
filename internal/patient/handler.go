package patient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/auth"
	patientapi "github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/envelope"
)

const msgUnexpected = "An unexpected error occurred. Please contact support."

type Handler struct {
	service ServiceInterface
	logger  zerolog.Logger
}

func NewHandler(service ServiceInterface, logger zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req patientapi.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelope.Fail(w, http.StatusBadRequest, "Malformed request body", nil)
		return
	}

	patient, err := h.service.Register(r.Context(), auth.ActorFromContext(r.Context()), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	envelope.Write(w, http.StatusCreated, "Patient registered successfully", patient)
}

func (h *Handler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := patientapi.SearchParams{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Gender:     q.Get("gender"),
		BloodGroup: q.Get("bloodGroup"),
	}

	fields := map[string]string{}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields["page"] = "Page must be a non-negative integer"
		}
		params.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fields["size"] = "Size must be a positive integer"
		}
		params.Size = n
	}
	if len(fields) > 0 {
		h.respondError(w, r, &ValidationError{Fields: fields})
		return
	}

	page, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	envelope.Write(w, http.StatusOK, "", page)
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.Get(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	envelope.Write(w, http.StatusOK, "", patient)
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var req patientapi.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelope.Fail(w, http.StatusBadRequest, "Malformed request body", nil)
		return
	}

	patient, err := h.service.Update(r.Context(), auth.ActorFromContext(r.Context()), mux.Vars(r)["patientId"], req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	envelope.Write(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *Handler) DeactivatePatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.Deactivate(r.Context(), auth.ActorFromContext(r.Context()), mux.Vars(r)["patientId"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	envelope.Write(w, http.StatusOK, "Patient deactivated successfully", patient)
}

func (h *Handler) ActivatePatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.Activate(r.Context(), auth.ActorFromContext(r.Context()), mux.Vars(r)["patientId"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	envelope.Write(w, http.StatusOK, "Patient activated successfully", patient)
}

// respondError maps service errors onto envelope responses.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		envelope.Fail(w, http.StatusBadRequest, "Validation failed", verr.Fields)
		return
	}

	var perr *Error
	if errors.As(err, &perr) {
		switch {
		case errors.Is(perr.Kind, ErrNotFound):
			envelope.Fail(w, http.StatusNotFound, perr.Message, nil)
			return
		case errors.Is(perr.Kind, ErrStatusConflict), errors.Is(perr.Kind, ErrConcurrentUpdate):
			if errors.Is(perr.Kind, ErrConcurrentUpdate) {
				h.logger.Warn().Str("path", r.URL.Path).Msg("optimistic locking conflict")
			}
			envelope.Fail(w, http.StatusConflict, perr.Message, nil)
			return
		}
	}

	h.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("unexpected error")
	envelope.Fail(w, http.StatusInternalServerError, msgUnexpected, nil)
}

// Package appointment is the client for the doctors and appointments backend.
package appointment

import (
	"context"
	"net/http"
	"strings"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

const Prefix = "/apt-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

// Doctors

func (c *Client) SearchDoctors(ctx context.Context, p DoctorSearch) (pagination.Page[Doctor], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("search", p.Search).
		Set("status", p.Status).
		Set("specialization", p.Specialization)

	return apiclient.Call[pagination.Page[Doctor]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/doctors",
		Query:  q,
	})
}

func (c *Client) GetDoctor(ctx context.Context, id string) (Doctor, error) {
	return apiclient.Call[Doctor](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   doctorPath(id),
	})
}

func (c *Client) RegisterDoctor(ctx context.Context, req DoctorRequest, actor string) (Doctor, error) {
	return apiclient.Call[Doctor](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/doctors",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) UpdateDoctor(ctx context.Context, id string, req DoctorRequest, actor string) (Doctor, error) {
	return apiclient.Call[Doctor](ctx, c.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   doctorPath(id),
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) DeactivateDoctor(ctx context.Context, id, actor string) (Doctor, error) {
	return c.patchDoctor(ctx, id, "deactivate", actor)
}

func (c *Client) ActivateDoctor(ctx context.Context, id, actor string) (Doctor, error) {
	return c.patchDoctor(ctx, id, "activate", actor)
}

func (c *Client) patchDoctor(ctx context.Context, id, action, actor string) (Doctor, error) {
	return apiclient.Call[Doctor](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   doctorPath(id) + "/" + action,
		Body:   apiclient.EmptyBody,
		Actor:  actor,
	})
}

// Appointments

func (c *Client) SearchAppointments(ctx context.Context, p AppointmentSearch) (pagination.Page[Appointment], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("patientId", p.PatientID).
		Set("doctorId", p.DoctorID).
		Set("dateFrom", p.DateFrom).
		Set("dateTo", p.DateTo).
		Set("status", p.Status).
		Set("type", p.Type)

	return apiclient.Call[pagination.Page[Appointment]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/appointments",
		Query:  q,
	})
}

func (c *Client) GetAppointment(ctx context.Context, id string) (Appointment, error) {
	return apiclient.Call[Appointment](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   appointmentPath(id),
	})
}

func (c *Client) BookAppointment(ctx context.Context, b Booking, actor string) (Appointment, error) {
	return apiclient.Call[Appointment](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/appointments",
		Body:   b,
		Actor:  actor,
	})
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, b Booking, actor string) (Appointment, error) {
	return apiclient.Call[Appointment](ctx, c.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   appointmentPath(id),
		Body:   b,
		Actor:  actor,
	})
}

func (c *Client) ConfirmAppointment(ctx context.Context, id, actor string) (Appointment, error) {
	return c.patchAppointment(ctx, id, "confirm", apiclient.EmptyBody, nil, actor)
}

func (c *Client) CancelAppointment(ctx context.Context, id, reason, actor string) (Appointment, error) {
	body := struct {
		CancellationReason string `json:"cancellationReason"`
	}{reason}
	return c.patchAppointment(ctx, id, "cancel", body, nil, actor)
}

// CompleteAppointment sends notes as a query parameter, and only when present.
func (c *Client) CompleteAppointment(ctx context.Context, id, notes, actor string) (Appointment, error) {
	q := apiclient.NewQuery().Set("notes", strings.TrimSpace(notes))
	return c.patchAppointment(ctx, id, "complete", nil, q, actor)
}

func (c *Client) NoShowAppointment(ctx context.Context, id, actor string) (Appointment, error) {
	return c.patchAppointment(ctx, id, "no-show", apiclient.EmptyBody, nil, actor)
}

func (c *Client) patchAppointment(ctx context.Context, id, action string, body any, q *apiclient.Query, actor string) (Appointment, error) {
	return apiclient.Call[Appointment](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   appointmentPath(id) + "/" + action,
		Query:  q,
		Body:   body,
		Actor:  actor,
	})
}

// GetAvailability returns the free slots of a doctor on date (YYYY-MM-DD).
func (c *Client) GetAvailability(ctx context.Context, doctorID, date string) (Availability, error) {
	return apiclient.Call[Availability](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/appointments/availability",
		Query:  apiclient.NewQuery().Set("doctorId", doctorID).Set("date", date),
	})
}

func doctorPath(id string) string {
	return "/doctors/" + apiclient.PathEscape(id)
}

func appointmentPath(id string) string {
	return "/appointments/" + apiclient.PathEscape(id)
}

// Package bed is the client for the ward, bed and admission backend. Its
// list endpoints return plain arrays.
package bed

import (
	"context"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

const Prefix = "/bed-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

// Wards

func (c *Client) ListWards(ctx context.Context, wardType string) ([]Ward, error) {
	return apiclient.Call[[]Ward](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/wards",
		Query:  apiclient.NewQuery().Set("wardType", wardType),
	})
}

func (c *Client) GetWard(ctx context.Context, id string) (Ward, error) {
	return apiclient.Call[Ward](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/wards/" + apiclient.PathEscape(id),
	})
}

func (c *Client) CreateWard(ctx context.Context, req WardRequest, actor string) (Ward, error) {
	return apiclient.Call[Ward](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/wards",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) DeactivateWard(ctx context.Context, id, actor string) (Ward, error) {
	return c.patchWard(ctx, id, "deactivate", actor)
}

func (c *Client) ActivateWard(ctx context.Context, id, actor string) (Ward, error) {
	return c.patchWard(ctx, id, "activate", actor)
}

func (c *Client) patchWard(ctx context.Context, id, action, actor string) (Ward, error) {
	return apiclient.Call[Ward](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/wards/" + apiclient.PathEscape(id) + "/" + action,
		Actor:  actor,
	})
}

// Beds

func (c *Client) ListBeds(ctx context.Context, p BedSearch) ([]Bed, error) {
	return apiclient.Call[[]Bed](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/beds",
		Query:  apiclient.NewQuery().Set("status", p.Status).Set("wardId", p.WardID),
	})
}

func (c *Client) GetBed(ctx context.Context, id string) (Bed, error) {
	return apiclient.Call[Bed](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/beds/" + apiclient.PathEscape(id),
	})
}

func (c *Client) CreateBed(ctx context.Context, req BedRequest, actor string) (Bed, error) {
	return apiclient.Call[Bed](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/beds",
		Body:   req,
		Actor:  actor,
	})
}

// UpdateBedStatus moves a bed between AVAILABLE and MAINTENANCE. OCCUPIED is
// only ever set by an admission.
func (c *Client) UpdateBedStatus(ctx context.Context, id string, status workflow.BedStatus, actor string) (Bed, error) {
	body := struct {
		Status workflow.BedStatus `json:"status"`
	}{status}
	return apiclient.Call[Bed](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/beds/" + apiclient.PathEscape(id) + "/status",
		Body:   body,
		Actor:  actor,
	})
}

// Admissions

func (c *Client) ListAdmissions(ctx context.Context, p AdmissionSearch) ([]Admission, error) {
	return apiclient.Call[[]Admission](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/admissions",
		Query:  apiclient.NewQuery().Set("status", p.Status).Set("patientId", p.PatientID),
	})
}

func (c *Client) GetAdmission(ctx context.Context, id string) (Admission, error) {
	return apiclient.Call[Admission](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   admissionPath(id),
	})
}

func (c *Client) AdmitPatient(ctx context.Context, req AdmissionRequest, actor string) (Admission, error) {
	return apiclient.Call[Admission](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/admissions",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) TransferPatient(ctx context.Context, id, newBedID, actor string) (Admission, error) {
	body := struct {
		NewBedID string `json:"newBedId"`
	}{newBedID}
	return apiclient.Call[Admission](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   admissionPath(id) + "/transfer",
		Body:   body,
		Actor:  actor,
	})
}

func (c *Client) DischargePatient(ctx context.Context, id, notes, actor string) (Admission, error) {
	body := struct {
		DischargeNotes string `json:"dischargeNotes"`
	}{notes}
	return apiclient.Call[Admission](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   admissionPath(id) + "/discharge",
		Body:   body,
		Actor:  actor,
	})
}

func admissionPath(id string) string {
	return "/admissions/" + apiclient.PathEscape(id)
}

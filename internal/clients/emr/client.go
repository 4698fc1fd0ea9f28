// Package emr is the client for the medical records backend.
package emr

import (
	"context"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

const Prefix = "/emr-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

func (c *Client) SearchRecords(ctx context.Context, p RecordSearch) (pagination.Page[Record], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("patientId", p.PatientID).
		Set("doctorId", p.DoctorID).
		Set("appointmentId", p.AppointmentID).
		Set("status", p.Status).
		Set("dateFrom", p.DateFrom).
		Set("dateTo", p.DateTo)

	return apiclient.Call[pagination.Page[Record]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/records",
		Query:  q,
	})
}

func (c *Client) GetRecord(ctx context.Context, id string) (Record, error) {
	return apiclient.Call[Record](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   recordPath(id),
	})
}

func (c *Client) CreateRecord(ctx context.Context, req RecordRequest, actor string) (Record, error) {
	return apiclient.Call[Record](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/records",
		Body:   req,
		Actor:  actor,
	})
}

// UpdateRecord edits a DRAFT or AMENDED record.
func (c *Client) UpdateRecord(ctx context.Context, id string, req RecordRequest, actor string) (Record, error) {
	return apiclient.Call[Record](ctx, c.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   recordPath(id),
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) FinalizeRecord(ctx context.Context, id, actor string) (Record, error) {
	return c.patchRecord(ctx, id, "finalize", actor)
}

func (c *Client) AmendRecord(ctx context.Context, id, actor string) (Record, error) {
	return c.patchRecord(ctx, id, "amend", actor)
}

func (c *Client) patchRecord(ctx context.Context, id, action, actor string) (Record, error) {
	return apiclient.Call[Record](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   recordPath(id) + "/" + action,
		Body:   apiclient.EmptyBody,
		Actor:  actor,
	})
}

// GetPrescriptions lists every prescription on a record. The backend returns
// a plain array.
func (c *Client) GetPrescriptions(ctx context.Context, recordID string) ([]Prescription, error) {
	return apiclient.Call[[]Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   recordPath(recordID) + "/prescriptions",
	})
}

func (c *Client) AddPrescription(ctx context.Context, recordID string, req PrescriptionRequest, actor string) (Prescription, error) {
	return apiclient.Call[Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   recordPath(recordID) + "/prescriptions",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) DiscontinuePrescription(ctx context.Context, recordID, prescriptionID, reason, actor string) (Prescription, error) {
	body := struct {
		DiscontinuedReason string `json:"discontinuedReason"`
	}{reason}
	return apiclient.Call[Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   recordPath(recordID) + "/prescriptions/" + apiclient.PathEscape(prescriptionID) + "/discontinue",
		Body:   body,
		Actor:  actor,
	})
}

func (c *Client) GetActivePatientPrescriptions(ctx context.Context, patientID string) ([]Prescription, error) {
	return apiclient.Call[[]Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/prescriptions/patient/" + apiclient.PathEscape(patientID) + "/active",
	})
}

func recordPath(id string) string {
	return "/records/" + apiclient.PathEscape(id)
}

// Package pharmacy is the client for the medicine catalogue and dispensing
// backend.
package pharmacy

import (
	"context"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

const Prefix = "/pharm-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

// Medicines

func (c *Client) ListMedicines(ctx context.Context, p MedicineSearch) (pagination.Page[Medicine], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("name", p.Name).
		Set("category", p.Category).
		SetBool("isActive", p.IsActive).
		SetBool("lowStock", p.LowStock)

	return apiclient.Call[pagination.Page[Medicine]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/medicines",
		Query:  q,
	})
}

func (c *Client) GetMedicine(ctx context.Context, id string) (Medicine, error) {
	return apiclient.Call[Medicine](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   medicinePath(id),
	})
}

func (c *Client) AddMedicine(ctx context.Context, req MedicineRequest, actor string) (Medicine, error) {
	return apiclient.Call[Medicine](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/medicines",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) UpdateMedicine(ctx context.Context, id string, req MedicineRequest, actor string) (Medicine, error) {
	return apiclient.Call[Medicine](ctx, c.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   medicinePath(id),
		Body:   req,
		Actor:  actor,
	})
}

// AdjustStock applies a signed delta to the stock level.
func (c *Client) AdjustStock(ctx context.Context, id string, quantity int, actor string) (Medicine, error) {
	body := struct {
		Quantity int `json:"quantity"`
	}{quantity}
	return apiclient.Call[Medicine](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   medicinePath(id) + "/stock",
		Body:   body,
		Actor:  actor,
	})
}

func (c *Client) DeactivateMedicine(ctx context.Context, id, actor string) (Medicine, error) {
	return c.patchMedicine(ctx, id, "deactivate", actor)
}

func (c *Client) ActivateMedicine(ctx context.Context, id, actor string) (Medicine, error) {
	return c.patchMedicine(ctx, id, "activate", actor)
}

func (c *Client) patchMedicine(ctx context.Context, id, action, actor string) (Medicine, error) {
	return apiclient.Call[Medicine](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   medicinePath(id) + "/" + action,
		Actor:  actor,
	})
}

// Prescriptions

func (c *Client) ListPrescriptions(ctx context.Context, p PrescriptionSearch) (pagination.Page[Prescription], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("patientId", p.PatientID).
		Set("doctorId", p.DoctorID).
		Set("status", p.Status)

	return apiclient.Call[pagination.Page[Prescription]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/prescriptions",
		Query:  q,
	})
}

func (c *Client) GetPrescription(ctx context.Context, id string) (Prescription, error) {
	return apiclient.Call[Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   prescriptionPath(id),
	})
}

func (c *Client) CreatePrescription(ctx context.Context, req PrescriptionRequest, actor string) (Prescription, error) {
	return apiclient.Call[Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/prescriptions",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) AddPrescriptionItem(ctx context.Context, prescriptionID string, req ItemRequest, actor string) (Prescription, error) {
	return apiclient.Call[Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   prescriptionPath(prescriptionID) + "/items",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) RemovePrescriptionItem(ctx context.Context, prescriptionID, itemID, actor string) (Prescription, error) {
	return apiclient.Call[Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodDelete,
		Path:   prescriptionPath(prescriptionID) + "/items/" + apiclient.PathEscape(itemID),
		Actor:  actor,
	})
}

func (c *Client) DispensePrescription(ctx context.Context, id, actor string) (Prescription, error) {
	return apiclient.Call[Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   prescriptionPath(id) + "/dispense",
		Actor:  actor,
	})
}

func (c *Client) CancelPrescription(ctx context.Context, id, reason, actor string) (Prescription, error) {
	body := struct {
		Reason string `json:"reason"`
	}{reason}
	return apiclient.Call[Prescription](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   prescriptionPath(id) + "/cancel",
		Body:   body,
		Actor:  actor,
	})
}

func medicinePath(id string) string {
	return "/medicines/" + apiclient.PathEscape(id)
}

func prescriptionPath(id string) string {
	return "/prescriptions/" + apiclient.PathEscape(id)
}

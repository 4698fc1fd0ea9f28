// Package billing is the client for the invoicing backend.
package billing

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/envelope"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

const Prefix = "/bill-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

func (c *Client) ListInvoices(ctx context.Context, p InvoiceSearch) (pagination.Page[Invoice], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("patientId", p.PatientID).
		Set("status", p.Status)

	return apiclient.Call[pagination.Page[Invoice]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/invoices",
		Query:  q,
	})
}

func (c *Client) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	return apiclient.Call[Invoice](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   invoicePath(id),
	})
}

func (c *Client) CreateInvoice(ctx context.Context, req InvoiceRequest, actor string) (Invoice, error) {
	return apiclient.Call[Invoice](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/invoices",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) UpdateInvoice(ctx context.Context, id string, req InvoiceRequest, actor string) (Invoice, error) {
	return apiclient.Call[Invoice](ctx, c.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   invoicePath(id),
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) IssueInvoice(ctx context.Context, id, actor string) (Invoice, error) {
	return apiclient.Call[Invoice](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   invoicePath(id) + "/issue",
		Actor:  actor,
	})
}

func (c *Client) RecordPayment(ctx context.Context, id string, p Payment, actor string) (Invoice, error) {
	return apiclient.Call[Invoice](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   invoicePath(id) + "/pay",
		Body:   p,
		Actor:  actor,
	})
}

func (c *Client) CancelInvoice(ctx context.Context, id, reason, actor string) (Invoice, error) {
	body := struct {
		Reason string `json:"reason"`
	}{reason}
	return apiclient.Call[Invoice](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   invoicePath(id) + "/cancel",
		Body:   body,
		Actor:  actor,
	})
}

func (c *Client) AddInvoiceItem(ctx context.Context, invoiceID string, req ItemRequest, actor string) (Invoice, error) {
	return apiclient.Call[Invoice](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   invoicePath(invoiceID) + "/items",
		Body:   req,
		Actor:  actor,
	})
}

// RemoveInvoiceItem returns the backend's whole envelope; its data is not
// guaranteed to be the invoice, so callers reload afterwards.
func (c *Client) RemoveInvoiceItem(ctx context.Context, invoiceID, itemID, actor string) (envelope.Envelope[json.RawMessage], error) {
	return apiclient.CallEnvelope[json.RawMessage](ctx, c.api, apiclient.Request{
		Method: http.MethodDelete,
		Path:   invoicePath(invoiceID) + "/items/" + apiclient.PathEscape(itemID),
		Actor:  actor,
	})
}

func invoicePath(id string) string {
	return "/invoices/" + apiclient.PathEscape(id)
}

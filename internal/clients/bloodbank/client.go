// Package bloodbank is the client for the blood unit and transfusion request
// backend.
package bloodbank

import (
	"context"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
)

const Prefix = "/blood-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

func (c *Client) ListUnits(ctx context.Context, p UnitSearch) ([]Unit, error) {
	return apiclient.Call[[]Unit](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/units",
		Query:  apiclient.NewQuery().Set("bloodGroup", p.BloodGroup).Set("status", p.Status),
	})
}

func (c *Client) GetUnit(ctx context.Context, id string) (Unit, error) {
	return apiclient.Call[Unit](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/units/" + apiclient.PathEscape(id),
	})
}

// RegisterUnit records a donation; the backend derives expiresAt.
func (c *Client) RegisterUnit(ctx context.Context, req UnitRequest, actor string) (Unit, error) {
	return apiclient.Call[Unit](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/units",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) DiscardUnit(ctx context.Context, id, actor string) (Unit, error) {
	return apiclient.Call[Unit](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/units/" + apiclient.PathEscape(id) + "/discard",
		Actor:  actor,
	})
}

// GetStock returns availability per blood group.
func (c *Client) GetStock(ctx context.Context) ([]Stock, error) {
	return apiclient.Call[[]Stock](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/stock",
	})
}

func (c *Client) ListRequests(ctx context.Context, p RequestSearch) ([]Request, error) {
	return apiclient.Call[[]Request](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/requests",
		Query:  apiclient.NewQuery().Set("status", p.Status).Set("patientId", p.PatientID),
	})
}

func (c *Client) GetRequest(ctx context.Context, id string) (Request, error) {
	return apiclient.Call[Request](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   requestPath(id),
	})
}

func (c *Client) CreateRequest(ctx context.Context, form RequestForm, actor string) (Request, error) {
	return apiclient.Call[Request](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/requests",
		Body:   form,
		Actor:  actor,
	})
}

// FulfillRequest allocates available units of the requested group.
func (c *Client) FulfillRequest(ctx context.Context, id, actor string) (Request, error) {
	return c.patchRequest(ctx, id, "fulfill", nil, actor)
}

func (c *Client) RejectRequest(ctx context.Context, id, notes, actor string) (Request, error) {
	body := struct {
		Notes string `json:"notes,omitempty"`
	}{notes}
	return c.patchRequest(ctx, id, "reject", body, actor)
}

func (c *Client) CancelRequest(ctx context.Context, id, actor string) (Request, error) {
	return c.patchRequest(ctx, id, "cancel", nil, actor)
}

func (c *Client) patchRequest(ctx context.Context, id, action string, body any, actor string) (Request, error) {
	return apiclient.Call[Request](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   requestPath(id) + "/" + action,
		Body:   body,
		Actor:  actor,
	})
}

func requestPath(id string) string {
	return "/requests/" + apiclient.PathEscape(id)
}

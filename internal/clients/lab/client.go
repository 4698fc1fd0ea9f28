// Package lab is the client for the laboratory backend: the test catalogue
// and lab orders.
package lab

import (
	"context"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

const Prefix = "/lab-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

func (c *Client) ListLabTests(ctx context.Context, p TestSearch) (pagination.Page[Test], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("name", p.Name).
		Set("category", p.Category).
		SetBool("isActive", p.IsActive)

	return apiclient.Call[pagination.Page[Test]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/lab-tests",
		Query:  q,
	})
}

func (c *Client) GetLabTest(ctx context.Context, id string) (Test, error) {
	return apiclient.Call[Test](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   testPath(id),
	})
}

// AddLabTest creates a catalogue entry. A zero TurnaroundHours is sent as
// DefaultTurnaroundHours.
func (c *Client) AddLabTest(ctx context.Context, req TestRequest, actor string) (Test, error) {
	if req.TurnaroundHours <= 0 {
		req.TurnaroundHours = DefaultTurnaroundHours
	}
	return apiclient.Call[Test](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/lab-tests",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) UpdateLabTest(ctx context.Context, id string, req TestRequest, actor string) (Test, error) {
	if req.TurnaroundHours <= 0 {
		req.TurnaroundHours = DefaultTurnaroundHours
	}
	return apiclient.Call[Test](ctx, c.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   testPath(id),
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) DeactivateLabTest(ctx context.Context, id, actor string) (Test, error) {
	return c.patchTest(ctx, id, "deactivate", actor)
}

func (c *Client) ActivateLabTest(ctx context.Context, id, actor string) (Test, error) {
	return c.patchTest(ctx, id, "activate", actor)
}

func (c *Client) patchTest(ctx context.Context, id, action, actor string) (Test, error) {
	return apiclient.Call[Test](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   testPath(id) + "/" + action,
		Actor:  actor,
	})
}

func (c *Client) ListLabOrders(ctx context.Context, p OrderSearch) (pagination.Page[Order], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("patientId", p.PatientID).
		Set("doctorId", p.DoctorID).
		Set("status", p.Status)

	return apiclient.Call[pagination.Page[Order]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/lab-orders",
		Query:  q,
	})
}

func (c *Client) GetLabOrder(ctx context.Context, id string) (Order, error) {
	return apiclient.Call[Order](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   orderPath(id),
	})
}

func (c *Client) CreateLabOrder(ctx context.Context, req OrderRequest, actor string) (Order, error) {
	return apiclient.Call[Order](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/lab-orders",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) AddLabOrderItem(ctx context.Context, orderID, testID, actor string) (Order, error) {
	body := struct {
		TestID string `json:"testId"`
	}{testID}
	return apiclient.Call[Order](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   orderPath(orderID) + "/items",
		Body:   body,
		Actor:  actor,
	})
}

func (c *Client) RemoveLabOrderItem(ctx context.Context, orderID, itemID, actor string) (Order, error) {
	return apiclient.Call[Order](ctx, c.api, apiclient.Request{
		Method: http.MethodDelete,
		Path:   orderPath(orderID) + "/items/" + apiclient.PathEscape(itemID),
		Actor:  actor,
	})
}

func (c *Client) CollectSample(ctx context.Context, orderID, actor string) (Order, error) {
	return c.patchOrder(ctx, orderID, "collect", nil, actor)
}

func (c *Client) StartProcessing(ctx context.Context, orderID, actor string) (Order, error) {
	return c.patchOrder(ctx, orderID, "process", nil, actor)
}

// RecordResult stores the result of one order item. The order completes once
// every item has a result.
func (c *Client) RecordResult(ctx context.Context, orderID, itemID string, res Result, actor string) (Order, error) {
	return apiclient.Call[Order](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   orderPath(orderID) + "/items/" + apiclient.PathEscape(itemID) + "/result",
		Body:   res,
		Actor:  actor,
	})
}

func (c *Client) CancelLabOrder(ctx context.Context, orderID, reason, actor string) (Order, error) {
	body := struct {
		Reason string `json:"reason"`
	}{reason}
	return c.patchOrder(ctx, orderID, "cancel", body, actor)
}

func (c *Client) patchOrder(ctx context.Context, id, action string, body any, actor string) (Order, error) {
	return apiclient.Call[Order](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   orderPath(id) + "/" + action,
		Body:   body,
		Actor:  actor,
	})
}

func testPath(id string) string {
	return "/lab-tests/" + apiclient.PathEscape(id)
}

func orderPath(id string) string {
	return "/lab-orders/" + apiclient.PathEscape(id)
}

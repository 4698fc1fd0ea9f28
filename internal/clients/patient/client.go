// Package patient is the client for the patient registry backend.
package patient

import (
	"context"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

// Prefix is the gateway path the registry is mounted under.
const Prefix = "/api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

func (c *Client) SearchPatients(ctx context.Context, p SearchParams) (pagination.Page[Summary], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("search", p.Search).
		Set("status", p.Status).
		Set("gender", p.Gender).
		Set("bloodGroup", p.BloodGroup)

	return apiclient.Call[pagination.Page[Summary]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/patients",
		Query:  q,
	})
}

func (c *Client) RegisterPatient(ctx context.Context, reg Registration, actor string) (Patient, error) {
	return apiclient.Call[Patient](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/patients",
		Body:   reg,
		Actor:  actor,
	})
}

func (c *Client) GetPatient(ctx context.Context, id string) (Patient, error) {
	return apiclient.Call[Patient](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/patients/" + apiclient.PathEscape(id),
	})
}

func (c *Client) UpdatePatient(ctx context.Context, id string, reg Registration, actor string) (Patient, error) {
	return apiclient.Call[Patient](ctx, c.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   "/patients/" + apiclient.PathEscape(id),
		Body:   reg,
		Actor:  actor,
	})
}

func (c *Client) DeactivatePatient(ctx context.Context, id, actor string) (Patient, error) {
	return c.toggle(ctx, id, "deactivate", actor)
}

func (c *Client) ActivatePatient(ctx context.Context, id, actor string) (Patient, error) {
	return c.toggle(ctx, id, "activate", actor)
}

func (c *Client) toggle(ctx context.Context, id, action, actor string) (Patient, error) {
	return apiclient.Call[Patient](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/patients/" + apiclient.PathEscape(id) + "/" + action,
		Body:   apiclient.EmptyBody,
		Actor:  actor,
	})
}


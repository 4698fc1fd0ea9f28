// Package inventory is the client for the stock backend.
package inventory

import (
	"context"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
)

const Prefix = "/inv-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

func (c *Client) ListItems(ctx context.Context, p ItemSearch) ([]Item, error) {
	q := apiclient.NewQuery().
		Set("category", p.Category).
		SetBool("activeOnly", p.ActiveOnly)
	if p.LowStockOnly {
		lowOnly := true
		q.SetBool("lowStockOnly", &lowOnly)
	}

	return apiclient.Call[[]Item](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/items",
		Query:  q,
	})
}

func (c *Client) GetItem(ctx context.Context, id string) (Item, error) {
	return apiclient.Call[Item](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   itemPath(id),
	})
}

func (c *Client) CreateItem(ctx context.Context, req ItemRequest, actor string) (Item, error) {
	return apiclient.Call[Item](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/items",
		Body:   req,
		Actor:  actor,
	})
}

// UpdateItem edits catalogue fields. Stock only changes through transactions,
// so InitialStock is ignored by the backend here.
func (c *Client) UpdateItem(ctx context.Context, id string, req ItemRequest, actor string) (Item, error) {
	req.InitialStock = nil
	return apiclient.Call[Item](ctx, c.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   itemPath(id),
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) DeactivateItem(ctx context.Context, id, actor string) (Item, error) {
	return c.patchItem(ctx, id, "deactivate", actor)
}

func (c *Client) ActivateItem(ctx context.Context, id, actor string) (Item, error) {
	return c.patchItem(ctx, id, "activate", actor)
}

func (c *Client) patchItem(ctx context.Context, id, action, actor string) (Item, error) {
	return apiclient.Call[Item](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   itemPath(id) + "/" + action,
		Actor:  actor,
	})
}

func (c *Client) ListTransactions(ctx context.Context, p TransactionSearch) ([]Transaction, error) {
	return apiclient.Call[[]Transaction](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/transactions",
		Query:  apiclient.NewQuery().Set("itemId", p.ItemID).Set("type", p.Type),
	})
}

func (c *Client) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	return apiclient.Call[Transaction](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/transactions/" + apiclient.PathEscape(id),
	})
}

func (c *Client) RecordTransaction(ctx context.Context, req TransactionRequest, actor string) (Transaction, error) {
	return apiclient.Call[Transaction](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/transactions",
		Body:   req,
		Actor:  actor,
	})
}

func itemPath(id string) string {
	return "/items/" + apiclient.PathEscape(id)
}

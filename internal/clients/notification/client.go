// Package notification is the client for the notification backend.
package notification

import (
	"context"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

const Prefix = "/notif-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

func (c *Client) ListNotifications(ctx context.Context, p Search) (pagination.Page[Notification], error) {
	q := apiclient.NewQuery().
		SetInt("page", p.Page).
		SetInt("size", pagination.SizeOrDefault(p.Size)).
		Set("recipientId", p.RecipientID).
		Set("channel", p.Channel).
		Set("status", p.Status)

	return apiclient.Call[pagination.Page[Notification]](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/notifications",
		Query:  q,
	})
}

func (c *Client) GetNotification(ctx context.Context, id string) (Notification, error) {
	return apiclient.Call[Notification](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   notificationPath(id),
	})
}

func (c *Client) SendNotification(ctx context.Context, req SendRequest, actor string) (Notification, error) {
	return apiclient.Call[Notification](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/notifications",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) MarkAsRead(ctx context.Context, id, actor string) (Notification, error) {
	return c.patch(ctx, id, "read", actor)
}

// RetryNotification resends a FAILED notification.
func (c *Client) RetryNotification(ctx context.Context, id, actor string) (Notification, error) {
	return c.patch(ctx, id, "retry", actor)
}

func (c *Client) patch(ctx context.Context, id, action, actor string) (Notification, error) {
	return apiclient.Call[Notification](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   notificationPath(id) + "/" + action,
		Actor:  actor,
	})
}

func notificationPath(id string) string {
	return "/notifications/" + apiclient.PathEscape(id)
}

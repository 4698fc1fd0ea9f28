// Package staff is the client for the staff and leave backend.
package staff

import (
	"context"
	"fmt"
	"net/http"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

const Prefix = "/staff-api/v1"

type Client struct {
	api *apiclient.Client
}

func NewClient(baseURL string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New(baseURL, Prefix, opts...)}
}

func (c *Client) ListStaff(ctx context.Context, p MemberSearch) ([]Member, error) {
	q := apiclient.NewQuery().
		Set("role", p.Role).
		Set("department", p.Department).
		Set("status", p.Status)

	return apiclient.Call[[]Member](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/staff",
		Query:  q,
	})
}

func (c *Client) GetStaff(ctx context.Context, id string) (Member, error) {
	return apiclient.Call[Member](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   staffPath(id),
	})
}

func (c *Client) CreateStaff(ctx context.Context, req MemberRequest, actor string) (Member, error) {
	return apiclient.Call[Member](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/staff",
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) UpdateStaff(ctx context.Context, id string, req MemberRequest, actor string) (Member, error) {
	return apiclient.Call[Member](ctx, c.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   staffPath(id),
		Body:   req,
		Actor:  actor,
	})
}

func (c *Client) DeactivateStaff(ctx context.Context, id, actor string) (Member, error) {
	return c.patchStaff(ctx, id, "deactivate", actor)
}

func (c *Client) ActivateStaff(ctx context.Context, id, actor string) (Member, error) {
	return c.patchStaff(ctx, id, "activate", actor)
}

func (c *Client) patchStaff(ctx context.Context, id, action, actor string) (Member, error) {
	return apiclient.Call[Member](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   staffPath(id) + "/" + action,
		Actor:  actor,
	})
}

func (c *Client) ListLeaves(ctx context.Context, p LeaveSearch) ([]Leave, error) {
	return apiclient.Call[[]Leave](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/leaves",
		Query:  apiclient.NewQuery().Set("status", p.Status).Set("staffId", p.StaffID),
	})
}

func (c *Client) GetLeave(ctx context.Context, id string) (Leave, error) {
	return apiclient.Call[Leave](ctx, c.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   leavePath(id),
	})
}

func (c *Client) RequestLeave(ctx context.Context, req LeaveRequest, actor string) (Leave, error) {
	return apiclient.Call[Leave](ctx, c.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/leaves",
		Body:   req,
		Actor:  actor,
	})
}

// ReviewLeave approves or rejects a pending leave. Any other decision is
// refused before a request is made.
func (c *Client) ReviewLeave(ctx context.Context, id string, review Review, reviewer string) (Leave, error) {
	if review.Decision != workflow.LeaveApproved && review.Decision != workflow.LeaveRejected {
		return Leave{}, fmt.Errorf("decision must be %s or %s", workflow.LeaveApproved, workflow.LeaveRejected)
	}
	return apiclient.Call[Leave](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   leavePath(id) + "/review",
		Body:   review,
		Actor:  reviewer,
	})
}

func (c *Client) CancelLeave(ctx context.Context, id, actor string) (Leave, error) {
	return apiclient.Call[Leave](ctx, c.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   leavePath(id) + "/cancel",
		Actor:  actor,
	})
}

func staffPath(id string) string {
	return "/staff/" + apiclient.PathEscape(id)
}

func leavePath(id string) string {
	return "/leaves/" + apiclient.PathEscape(id)
}

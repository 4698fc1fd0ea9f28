// Package view holds page state for list and detail pages. Every fetch is
// tagged with a request token so a slow, older response can never overwrite
// the result of a newer one.
package view

import (
	"context"
	"errors"
	"sync/atomic"
)

var (
	// ErrStale is returned by a load whose response arrived after a newer
	// request was issued. The response was discarded.
	ErrStale = errors.New("response superseded by a newer request")

	// ErrBusy is returned when an action is submitted while another one
	// from the same page is still in flight.
	ErrBusy = errors.New("an action is already in progress")
)

// Tracker issues monotonically increasing request tokens.
type Tracker struct {
	latest atomic.Uint64
}

// Begin starts a request and returns its token. Any earlier token stops
// being the latest.
func (t *Tracker) Begin() uint64 {
	return t.latest.Add(1)
}

// IsLatest reports whether token belongs to the most recent request.
func (t *Tracker) IsLatest(token uint64) bool {
	return t.latest.Load() == token
}

// Banner is an error message shown above a page, with an optional retry.
type Banner struct {
	Message string
	Retry   func(ctx context.Context) error
}

// CanRetry reports whether the banner offers a retry.
func (b *Banner) CanRetry() bool {
	return b != nil && b.Retry != nil
}

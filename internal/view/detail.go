package view

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// DetailState is a snapshot of a detail page.
type DetailState[T any] struct {
	Entity  T
	Loaded  bool
	Loading bool
	Err     *Banner
	// ActionErr is the inline message of the last failed action. It never
	// replaces the loaded entity.
	ActionErr string
	Busy      bool
}

// Detail holds one entity and runs status actions against it.
type Detail[T any] struct {
	mu      sync.Mutex
	state   DetailState[T]
	load    func(ctx context.Context) (T, error)
	tracker Tracker
	logger  zerolog.Logger
}

// NewDetail creates a detail page backed by load.
func NewDetail[T any](load func(ctx context.Context) (T, error), logger zerolog.Logger) *Detail[T] {
	return &Detail[T]{load: load, logger: logger}
}

// State returns a snapshot of the page.
func (d *Detail[T]) State() DetailState[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Load fetches the entity. A response that was overtaken by a newer load or
// by a completed action is discarded with ErrStale.
func (d *Detail[T]) Load(ctx context.Context) error {
	d.mu.Lock()
	token := d.tracker.Begin()
	d.state.Loading = true
	d.mu.Unlock()

	entity, err := d.load(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.tracker.IsLatest(token) {
		d.logger.Debug().Uint64("token", token).Msg("discarding stale detail response")
		return ErrStale
	}

	d.state.Loading = false
	if err != nil {
		d.state.Err = &Banner{Message: err.Error(), Retry: d.Load}
		return err
	}
	d.state.Err = nil
	d.state.Entity = entity
	d.state.Loaded = true
	return nil
}

// Do runs an action that returns the updated entity. While it is in flight a
// second Do returns ErrBusy.
func (d *Detail[T]) Do(ctx context.Context, action func(ctx context.Context) (T, error)) error {
	if err := d.begin(); err != nil {
		return err
	}

	entity, err := action(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Busy = false
	if err != nil {
		d.state.ActionErr = err.Error()
		return err
	}

	// invalidate loads started before the action finished
	d.tracker.Begin()
	d.state.Entity = entity
	d.state.Loaded = true
	d.state.Loading = false
	return nil
}

// DoAndReload runs an action whose response is not the entity, then reloads.
func (d *Detail[T]) DoAndReload(ctx context.Context, action func(ctx context.Context) error) error {
	if err := d.begin(); err != nil {
		return err
	}

	err := action(ctx)

	d.mu.Lock()
	d.state.Busy = false
	if err != nil {
		d.state.ActionErr = err.Error()
	}
	d.mu.Unlock()

	if err != nil {
		return err
	}
	return d.Load(ctx)
}

func (d *Detail[T]) begin() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Busy {
		return ErrBusy
	}
	d.state.Busy = true
	d.state.ActionErr = ""
	return nil
}

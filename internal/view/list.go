package view

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

// Fetcher loads one page of a list for the given filters.
type Fetcher[F any, T any] func(ctx context.Context, filters F, page int) (pagination.Page[T], error)

// ListState is a snapshot of a list page.
type ListState[F any, T any] struct {
	// Filters is the draft being edited; Applied produced Result.
	Filters F
	Applied F
	Page    int
	Result  pagination.Page[T]
	Loading bool
	Err     *Banner
}

// List binds a Fetcher to list page state.
type List[F any, T any] struct {
	mu      sync.Mutex
	state   ListState[F, T]
	initial F
	fetch   Fetcher[F, T]
	tracker Tracker
	logger  zerolog.Logger
}

// NewList creates a list page with initial filters applied.
func NewList[F any, T any](fetch Fetcher[F, T], initial F, logger zerolog.Logger) *List[F, T] {
	return &List[F, T]{
		state:   ListState[F, T]{Filters: initial, Applied: initial},
		initial: initial,
		fetch:   fetch,
		logger:  logger,
	}
}

// State returns a snapshot of the page.
func (l *List[F, T]) State() ListState[F, T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// SetFilters updates the draft filters without fetching.
func (l *List[F, T]) SetFilters(filters F) {
	l.mu.Lock()
	l.state.Filters = filters
	l.mu.Unlock()
}

// Search applies the draft filters and reloads from page 0.
func (l *List[F, T]) Search(ctx context.Context) error {
	l.mu.Lock()
	l.state.Applied = l.state.Filters
	l.state.Page = 0
	l.mu.Unlock()
	return l.Load(ctx)
}

// Clear restores the initial filters and reloads from page 0.
func (l *List[F, T]) Clear(ctx context.Context) error {
	l.mu.Lock()
	l.state.Filters = l.initial
	l.state.Applied = l.initial
	l.state.Page = 0
	l.mu.Unlock()
	return l.Load(ctx)
}

// GoTo loads another page with the applied filters.
func (l *List[F, T]) GoTo(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	l.mu.Lock()
	l.state.Page = page
	l.mu.Unlock()
	return l.Load(ctx)
}

// Load fetches the current page. Only the response to the latest call is
// applied; earlier ones return ErrStale.
func (l *List[F, T]) Load(ctx context.Context) error {
	l.mu.Lock()
	token := l.tracker.Begin()
	filters := l.state.Applied
	page := l.state.Page
	l.state.Loading = true
	l.mu.Unlock()

	result, err := l.fetch(ctx, filters, page)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.tracker.IsLatest(token) {
		l.logger.Debug().Uint64("token", token).Int("page", page).Msg("discarding stale list response")
		return ErrStale
	}

	l.state.Loading = false
	if err != nil {
		l.state.Err = &Banner{Message: err.Error(), Retry: l.Load}
		return err
	}

	l.state.Err = nil
	l.state.Result = result
	return nil
}

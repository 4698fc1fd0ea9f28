package view

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

type patientFilters struct {
	Search string
	Status string
}

func TestList_StaleResponseIsDiscarded(t *testing.T) {
	releaseFirst := make(chan struct{})
	firstStarted := make(chan struct{})

	fetch := func(ctx context.Context, f patientFilters, page int) (pagination.Page[string], error) {
		if f.Search == "slow" {
			close(firstStarted)
			<-releaseFirst
			return pagination.FromSlice([]string{"stale"}, page, 20), nil
		}
		return pagination.FromSlice([]string{"fresh"}, page, 20), nil
	}

	list := NewList(fetch, patientFilters{Status: "ALL"}, zerolog.Nop())

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		list.SetFilters(patientFilters{Search: "slow"})
		slowErr = list.Search(context.Background())
	}()

	<-firstStarted
	list.SetFilters(patientFilters{Search: "fast"})
	if err := list.Search(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	close(releaseFirst)
	wg.Wait()

	if !errors.Is(slowErr, ErrStale) {
		t.Errorf("Expected ErrStale for overtaken request, got %v", slowErr)
	}

	state := list.State()
	if len(state.Result.Content) != 1 || state.Result.Content[0] != "fresh" {
		t.Errorf("Expected fresh result to survive, got %v", state.Result.Content)
	}
	if state.Loading {
		t.Error("Expected loading to be cleared")
	}
}

func TestList_SearchResetsPage(t *testing.T) {
	var gotPages []int
	fetch := func(ctx context.Context, f patientFilters, page int) (pagination.Page[string], error) {
		gotPages = append(gotPages, page)
		return pagination.Page[string]{Page: page, TotalPages: 5}, nil
	}

	list := NewList(fetch, patientFilters{}, zerolog.Nop())
	if err := list.GoTo(context.Background(), 3); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	list.SetFilters(patientFilters{Status: "ACTIVE"})
	if err := list.Search(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gotPages) != 2 || gotPages[0] != 3 || gotPages[1] != 0 {
		t.Errorf("Expected pages [3 0], got %v", gotPages)
	}
	if list.State().Applied.Status != "ACTIVE" {
		t.Error("Expected filters to be applied on search")
	}

	if err := list.Clear(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if list.State().Applied.Status != "" {
		t.Error("Expected clear to restore initial filters")
	}
}

func TestList_ErrorSetsRetryBanner(t *testing.T) {
	fail := true
	fetch := func(ctx context.Context, f patientFilters, page int) (pagination.Page[string], error) {
		if fail {
			return pagination.Page[string]{}, errors.New("Service Unavailable")
		}
		return pagination.FromSlice([]string{"a"}, 0, 20), nil
	}

	list := NewList(fetch, patientFilters{}, zerolog.Nop())
	if err := list.Load(context.Background()); err == nil {
		t.Fatal("Expected error")
	}

	banner := list.State().Err
	if banner == nil || banner.Message != "Service Unavailable" {
		t.Fatalf("Expected banner with message, got %+v", banner)
	}
	if !banner.CanRetry() {
		t.Fatal("Expected banner to offer retry")
	}

	fail = false
	if err := banner.Retry(context.Background()); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if list.State().Err != nil {
		t.Error("Expected banner to clear after successful retry")
	}
}

type appointment struct {
	ID     string
	Status string
}

func TestDetail_ActionReplacesEntity(t *testing.T) {
	d := NewDetail(func(ctx context.Context) (appointment, error) {
		return appointment{ID: "APT1", Status: "SCHEDULED"}, nil
	}, zerolog.Nop())

	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := d.Do(context.Background(), func(ctx context.Context) (appointment, error) {
		return appointment{ID: "APT1", Status: "CONFIRMED"}, nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := d.State().Entity.Status; got != "CONFIRMED" {
		t.Errorf("Expected CONFIRMED, got %s", got)
	}
}

func TestDetail_ActionErrorKeepsEntity(t *testing.T) {
	d := NewDetail(func(ctx context.Context) (appointment, error) {
		return appointment{ID: "APT1", Status: "CONFIRMED"}, nil
	}, zerolog.Nop())
	d.Load(context.Background())

	err := d.Do(context.Background(), func(ctx context.Context) (appointment, error) {
		return appointment{}, errors.New("Appointment already completed")
	})
	if err == nil {
		t.Fatal("Expected action error")
	}

	state := d.State()
	if state.ActionErr != "Appointment already completed" {
		t.Errorf("Expected inline action error, got %q", state.ActionErr)
	}
	if state.Entity.Status != "CONFIRMED" {
		t.Errorf("Expected entity to be untouched, got %+v", state.Entity)
	}
	if state.Err != nil {
		t.Error("Action failure must not raise the page banner")
	}
}

func TestDetail_RejectsConcurrentAction(t *testing.T) {
	d := NewDetail(func(ctx context.Context) (appointment, error) {
		return appointment{ID: "APT1"}, nil
	}, zerolog.Nop())

	inFlight := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- d.Do(context.Background(), func(ctx context.Context) (appointment, error) {
			close(inFlight)
			<-release
			return appointment{ID: "APT1", Status: "CONFIRMED"}, nil
		})
	}()

	<-inFlight
	if !d.State().Busy {
		t.Error("Expected busy flag while action is in flight")
	}
	err := d.Do(context.Background(), func(ctx context.Context) (appointment, error) {
		t.Error("Second action must not run")
		return appointment{}, nil
	})
	if !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if d.State().Busy {
		t.Error("Expected busy flag to clear")
	}
}

func TestDetail_DoAndReload(t *testing.T) {
	loads := 0
	d := NewDetail(func(ctx context.Context) (appointment, error) {
		loads++
		return appointment{ID: "INV1", Status: "DRAFT"}, nil
	}, zerolog.Nop())

	err := d.DoAndReload(context.Background(), func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if loads != 1 || !d.State().Loaded {
		t.Errorf("Expected one reload, got %d", loads)
	}
}

func TestTracker(t *testing.T) {
	var tr Tracker
	a := tr.Begin()
	b := tr.Begin()
	if tr.IsLatest(a) || !tr.IsLatest(b) {
		t.Error("Expected only the newest token to be latest")
	}
	if b <= a {
		t.Error("Expected tokens to increase")
	}
}

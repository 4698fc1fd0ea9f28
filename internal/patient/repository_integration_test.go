//go:build integration

package patient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	patientapi "github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/testutil"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

func newRecord(first, phone string, created time.Time) *Record {
	return &Record{
		FirstName:   first,
		LastName:    "Tester",
		DateOfBirth: time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC),
		Gender:      patientapi.GenderOther,
		Phone:       phone,
		BloodGroup:  patientapi.BloodUnknown,
		Status:      workflow.Active,
		CreatedAt:   created,
		CreatedBy:   "SYSTEM",
		UpdatedAt:   created,
		UpdatedBy:   "SYSTEM",
	}
}

func TestRepositoryCreate_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)
	repo := NewRepository(db, zerolog.Nop())
	ctx := context.Background()

	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	first, err := repo.Create(ctx, newRecord("Ann", "555-000-0001", created))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := repo.Create(ctx, newRecord("Bob", "555-000-0002", created.Add(time.Minute)))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.PatientID != "P2026001" || second.PatientID != "P2026002" {
		t.Errorf("Expected P2026001/P2026002, got %s/%s", first.PatientID, second.PatientID)
	}
	if first.Email != "" || first.Version != 0 {
		t.Errorf("Unexpected defaults: email=%q version=%d", first.Email, first.Version)
	}

	nextYear, err := repo.Create(ctx, newRecord("Cid", "555-000-0003", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if nextYear.PatientID != "P2027001" {
		t.Errorf("Expected counter to restart per year, got %s", nextYear.PatientID)
	}
}

func TestRepositoryCreate_Concurrent_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)
	repo := NewRepository(db, zerolog.Nop())

	created := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	ids := make(chan string, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := repo.Create(context.Background(), newRecord("Par", "555-000-0100", created))
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			ids <- rec.PatientID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate patient id %s", id)
		}
		seen[id] = true
	}
}

func TestRepositorySearch_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)
	repo := NewRepository(db, zerolog.Nop())
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Alice", "Alina", "Brian"} {
		rec := newRecord(name, "555-000-000"+string(rune('1'+i)), base.Add(time.Duration(i)*time.Hour))
		if _, err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	records, total, err := repo.Search(ctx, SearchFilter{Search: "ali", Params: pagination.Params{Page: 0, Size: 20}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 2 || len(records) != 2 {
		t.Fatalf("Expected 2 matches, got total=%d len=%d", total, len(records))
	}
	if records[0].FirstName != "Alina" {
		t.Errorf("Expected newest first, got %s", records[0].FirstName)
	}

	records, total, err = repo.Search(ctx, SearchFilter{Params: pagination.Params{Page: 1, Size: 2}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 3 || len(records) != 1 || records[0].FirstName != "Alice" {
		t.Errorf("Unexpected second page: total=%d %+v", total, records)
	}

	_, total, err = repo.Search(ctx, SearchFilter{Status: workflow.Inactive, Params: pagination.Params{Size: 20}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected no inactive patients, got %d", total)
	}
}

func TestRepositoryUpdate_OptimisticLock_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)
	repo := NewRepository(db, zerolog.Nop())
	ctx := context.Background()

	created, err := repo.Create(ctx, newRecord("Dana", "555-000-0200", time.Now().UTC()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first := *created
	first.City = "Springfield"
	updated, err := repo.Update(ctx, &first)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Version != 1 || updated.City != "Springfield" {
		t.Errorf("Expected version 1 with city, got %d %q", updated.Version, updated.City)
	}

	stale := *created
	stale.City = "Shelbyville"
	_, err = repo.Update(ctx, &stale)
	if !errors.Is(err, ErrConcurrentUpdate) {
		t.Errorf("Expected ErrConcurrentUpdate for stale version, got %v", err)
	}

	missing := *created
	missing.PatientID = "P1999001"
	if _, err := repo.Update(ctx, &missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryPhoneExists_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)
	repo := NewRepository(db, zerolog.Nop())
	ctx := context.Background()

	rec, err := repo.Create(ctx, newRecord("Eve", "555-000-0300", time.Now().UTC()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exists, err := repo.PhoneExists(ctx, "555-000-0300", "")
	if err != nil || !exists {
		t.Errorf("Expected phone to exist, got %v %v", exists, err)
	}
	exists, err = repo.PhoneExists(ctx, "555-000-0300", rec.PatientID)
	if err != nil || exists {
		t.Errorf("Expected self to be excluded, got %v %v", exists, err)
	}
}

func TestRepositoryGet_NotFound_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())

	if _, err := repo.Get(context.Background(), "P1900001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

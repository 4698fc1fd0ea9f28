package patient

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	patientapi "github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/messaging"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/testutil"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

// mockRepository is a mock implementation of RepositoryInterface
type mockRepository struct {
	createFunc      func(ctx context.Context, rec *Record) (*Record, error)
	getFunc         func(ctx context.Context, patientID string) (*Record, error)
	searchFunc      func(ctx context.Context, f SearchFilter) ([]Record, int, error)
	updateFunc      func(ctx context.Context, rec *Record) (*Record, error)
	phoneExistsFunc func(ctx context.Context, phone, excludeID string) (bool, error)
}

func (m *mockRepository) Create(ctx context.Context, rec *Record) (*Record, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, rec)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Get(ctx context.Context, patientID string) (*Record, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, patientID)
	}
	return nil, notFound(patientID)
}

func (m *mockRepository) Search(ctx context.Context, f SearchFilter) ([]Record, int, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *mockRepository) Update(ctx context.Context, rec *Record) (*Record, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, rec)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) PhoneExists(ctx context.Context, phone, excludeID string) (bool, error) {
	if m.phoneExistsFunc != nil {
		return m.phoneExistsFunc(ctx, phone, excludeID)
	}
	return false, nil
}

type mockMetrics struct {
	operations []string
	published  map[string]bool
}

func (m *mockMetrics) RecordPatientOperation(_ context.Context, operation string) {
	m.operations = append(m.operations, operation)
}

func (m *mockMetrics) RecordEventPublished(_ context.Context, _ string, routingKey string, ok bool) {
	if m.published == nil {
		m.published = map[string]bool{}
	}
	m.published[routingKey] = ok
}

var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestService(repo RepositoryInterface, pub messaging.PublisherInterface, metrics MetricsRecorder) *Service {
	s := NewService(repo, pub, metrics, "rabbitmq", zerolog.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func validRegistration() patientapi.Registration {
	return patientapi.Registration{
		FirstName:   "  Jane ",
		LastName:    "Doe",
		DateOfBirth: "1990-06-20",
		Gender:      patientapi.GenderFemale,
		PhoneNumber: " 555-123-4567 ",
		Email:       "jane.doe@example.com",
	}
}

func storedRecord(id string, status workflow.ActiveStatus) *Record {
	return &Record{
		PatientID:   id,
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: time.Date(1990, 6, 20, 0, 0, 0, 0, time.UTC),
		Gender:      patientapi.GenderFemale,
		Phone:       "555-123-4567",
		BloodGroup:  patientapi.BloodOPos,
		Status:      status,
		CreatedAt:   fixedNow.Add(-48 * time.Hour),
		CreatedBy:   "SYSTEM",
		UpdatedAt:   fixedNow.Add(-48 * time.Hour),
		UpdatedBy:   "SYSTEM",
		Version:     3,
	}
}

func TestRegister_Success(t *testing.T) {
	var inserted *Record
	repo := &mockRepository{
		createFunc: func(ctx context.Context, rec *Record) (*Record, error) {
			inserted = rec
			out := *rec
			out.PatientID = "P2026001"
			return &out, nil
		},
	}
	pub := testutil.NewMockPublisher()
	metrics := &mockMetrics{}

	patient, err := newTestService(repo, pub, metrics).Register(context.Background(), "admin-1", validRegistration())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if patient.PatientID != "P2026001" {
		t.Errorf("Expected P2026001, got %s", patient.PatientID)
	}
	if inserted.FirstName != "Jane" || inserted.Phone != "555-123-4567" {
		t.Errorf("Expected trimmed name and phone, got %q %q", inserted.FirstName, inserted.Phone)
	}
	if inserted.BloodGroup != patientapi.BloodUnknown {
		t.Errorf("Expected missing blood group to default to UNKNOWN, got %s", inserted.BloodGroup)
	}
	if inserted.Status != workflow.Active {
		t.Errorf("Expected ACTIVE, got %s", inserted.Status)
	}
	if inserted.CreatedBy != "admin-1" || inserted.UpdatedBy != "admin-1" {
		t.Errorf("Expected audit actor admin-1, got %s/%s", inserted.CreatedBy, inserted.UpdatedBy)
	}
	if inserted.CreatedAt.Year() != 2026 {
		t.Errorf("Expected creation year 2026, got %d", inserted.CreatedAt.Year())
	}
	if patient.Age != 35 {
		t.Errorf("Expected age 35, got %d", patient.Age)
	}
	if patient.DuplicatePhoneWarning {
		t.Error("Expected no duplicate phone warning")
	}

	pub.AssertEventCount(t, messaging.EventPatientRegistered, 1)
	last := pub.GetLastEventByKey(messaging.EventPatientRegistered)
	event, ok := last.EventData.(messaging.PatientRegisteredEvent)
	if !ok {
		t.Fatalf("Unexpected event type %T", last.EventData)
	}
	if event.Data.PatientID != "P2026001" || event.Actor != "admin-1" {
		t.Errorf("Unexpected event: %+v", event)
	}
	if len(metrics.operations) != 1 || metrics.operations[0] != "register" {
		t.Errorf("Expected register operation metric, got %v", metrics.operations)
	}
	if !metrics.published[messaging.EventPatientRegistered] {
		t.Error("Expected successful publish metric")
	}
}

func TestRegister_DuplicatePhoneWarning(t *testing.T) {
	var excluded string
	repo := &mockRepository{
		phoneExistsFunc: func(ctx context.Context, phone, excludeID string) (bool, error) {
			excluded = excludeID
			return phone == "555-123-4567", nil
		},
		createFunc: func(ctx context.Context, rec *Record) (*Record, error) {
			out := *rec
			out.PatientID = "P2026002"
			return &out, nil
		},
	}

	patient, err := newTestService(repo, nil, nil).Register(context.Background(), "SYSTEM", validRegistration())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !patient.DuplicatePhoneWarning {
		t.Error("Expected duplicate phone warning")
	}
	if excluded != "" {
		t.Errorf("Register must check every patient, excluded %q", excluded)
	}
}

func TestRegister_ValidationError(t *testing.T) {
	called := false
	repo := &mockRepository{
		createFunc: func(ctx context.Context, rec *Record) (*Record, error) {
			called = true
			return rec, nil
		},
	}

	req := validRegistration()
	req.FirstName = "   "
	req.PhoneNumber = "5551234567"
	req.DateOfBirth = "2027-01-01"

	_, err := newTestService(repo, nil, nil).Register(context.Background(), "SYSTEM", req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ErrValidation sentinel")
	}
	want := map[string]string{
		"firstName":   "First name is required",
		"phoneNumber": msgInvalidPhone,
		"dateOfBirth": "Date of birth must not be in the future",
	}
	for field, msg := range want {
		if verr.Fields[field] != msg {
			t.Errorf("%s: expected %q, got %q", field, msg, verr.Fields[field])
		}
	}
	if called {
		t.Error("Repository must not be called for invalid input")
	}
}

func TestRegister_RepositoryError(t *testing.T) {
	pub := testutil.NewMockPublisher()
	repo := &mockRepository{
		createFunc: func(ctx context.Context, rec *Record) (*Record, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := newTestService(repo, pub, nil).Register(context.Background(), "SYSTEM", validRegistration())
	if err == nil {
		t.Fatal("Expected error")
	}
	if pub.GetEventCount() != 0 {
		t.Error("No event should be published when the insert fails")
	}
}

func TestRegister_PublishFailureDoesNotFail(t *testing.T) {
	pub := testutil.NewMockPublisher()
	pub.FailWith(errors.New("broker down"))
	metrics := &mockMetrics{}
	repo := &mockRepository{
		createFunc: func(ctx context.Context, rec *Record) (*Record, error) {
			out := *rec
			out.PatientID = "P2026003"
			return &out, nil
		},
	}

	if _, err := newTestService(repo, pub, metrics).Register(context.Background(), "SYSTEM", validRegistration()); err != nil {
		t.Fatalf("Expected publish failure to be swallowed, got %v", err)
	}
	if ok, seen := metrics.published[messaging.EventPatientRegistered]; !seen || ok {
		t.Error("Expected failed publish metric")
	}
}

func TestSearch_BuildsFilterAndPage(t *testing.T) {
	var got SearchFilter
	repo := &mockRepository{
		searchFunc: func(ctx context.Context, f SearchFilter) ([]Record, int, error) {
			got = f
			return []Record{*storedRecord("P2026005", workflow.Active)}, 41, nil
		},
	}

	page, err := newTestService(repo, nil, nil).Search(context.Background(), patientapi.SearchParams{
		Search:     " doe ",
		Status:     "inactive",
		Gender:     "female",
		BloodGroup: "o_pos",
		Page:       2,
		Size:       20,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got.Search != "doe" || got.Status != workflow.Inactive || got.Gender != patientapi.GenderFemale || got.BloodGroup != patientapi.BloodOPos {
		t.Errorf("Unexpected filter: %+v", got)
	}
	if got.Offset() != 40 {
		t.Errorf("Expected offset 40, got %d", got.Offset())
	}
	if page.TotalPages != 3 || !page.Last || page.First {
		t.Errorf("Unexpected page metadata: %+v", page)
	}
	if len(page.Content) != 1 || page.Content[0].Age != 35 {
		t.Errorf("Unexpected content: %+v", page.Content)
	}
}

func TestSearch_Defaults(t *testing.T) {
	var got SearchFilter
	repo := &mockRepository{
		searchFunc: func(ctx context.Context, f SearchFilter) ([]Record, int, error) {
			got = f
			return nil, 0, nil
		},
	}

	page, err := newTestService(repo, nil, nil).Search(context.Background(), patientapi.SearchParams{Status: "ALL"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.Status != "" {
		t.Errorf("ALL must not filter, got %q", got.Status)
	}
	if got.Page != 0 || got.Size != 20 {
		t.Errorf("Expected page 0 size 20, got %d/%d", got.Page, got.Size)
	}
	if page.Content == nil || len(page.Content) != 0 || page.TotalPages != 0 {
		t.Errorf("Expected empty page, got %+v", page)
	}
}

func TestSearch_HugePageKeepsOffsetInRange(t *testing.T) {
	var got SearchFilter
	repo := &mockRepository{
		searchFunc: func(ctx context.Context, f SearchFilter) ([]Record, int, error) {
			got = f
			return nil, 3, nil
		},
	}

	page, err := newTestService(repo, nil, nil).Search(context.Background(), patientapi.SearchParams{
		Page: math.MaxInt / 10,
		Size: pagination.MaxSize,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.Page != pagination.MaxPage {
		t.Errorf("Expected page clamped to %d, got %d", pagination.MaxPage, got.Page)
	}
	if got.Offset() < 0 {
		t.Errorf("Expected non-negative offset, got %d", got.Offset())
	}
	if len(page.Content) != 0 || !page.Last {
		t.Errorf("Expected empty last page, got %+v", page)
	}
}

func TestSearch_InvalidFilters(t *testing.T) {
	_, err := newTestService(&mockRepository{}, nil, nil).Search(context.Background(), patientapi.SearchParams{
		Status:     "ARCHIVED",
		BloodGroup: "Z_POS",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if verr.Fields["status"] == "" || verr.Fields["bloodGroup"] == "" {
		t.Errorf("Expected status and bloodGroup errors, got %v", verr.Fields)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := newTestService(&mockRepository{}, nil, nil).Get(context.Background(), "P2026999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err.Error() != "Patient not found: P2026999" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestUpdate_Success(t *testing.T) {
	var excluded string
	var written *Record
	repo := &mockRepository{
		getFunc: func(ctx context.Context, id string) (*Record, error) {
			return storedRecord(id, workflow.Active), nil
		},
		phoneExistsFunc: func(ctx context.Context, phone, excludeID string) (bool, error) {
			excluded = excludeID
			return false, nil
		},
		updateFunc: func(ctx context.Context, rec *Record) (*Record, error) {
			written = rec
			out := *rec
			out.Version = rec.Version + 1
			return &out, nil
		},
	}
	pub := testutil.NewMockPublisher()

	req := validRegistration()
	req.City = "Springfield"
	patient, err := newTestService(repo, pub, nil).Update(context.Background(), "clerk-2", "P2026001", req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if excluded != "P2026001" {
		t.Errorf("Update must exclude the patient itself, got %q", excluded)
	}
	if written.Version != 3 {
		t.Errorf("Expected the read version to be sent for the lock check, got %d", written.Version)
	}
	if written.UpdatedBy != "clerk-2" || !written.UpdatedAt.Equal(fixedNow) {
		t.Errorf("Unexpected audit fields %s %v", written.UpdatedBy, written.UpdatedAt)
	}
	if written.CreatedBy != "SYSTEM" {
		t.Error("Creation audit must be preserved")
	}
	if written.BloodGroup != patientapi.BloodUnknown {
		t.Errorf("Expected missing blood group to become UNKNOWN on update, got %s", written.BloodGroup)
	}
	if patient.City != "Springfield" {
		t.Errorf("Expected city to be updated, got %s", patient.City)
	}
	event := pub.GetLastEventByKey(messaging.EventPatientUpdated)
	if event == nil {
		t.Fatal("Expected patient.updated event")
	}
	if data := event.EventData.(messaging.PatientUpdatedEvent).Data; data.Version != 4 {
		t.Errorf("Expected event version 4, got %d", data.Version)
	}
}

func TestUpdate_ConcurrentModification(t *testing.T) {
	repo := &mockRepository{
		getFunc: func(ctx context.Context, id string) (*Record, error) {
			return storedRecord(id, workflow.Active), nil
		},
		updateFunc: func(ctx context.Context, rec *Record) (*Record, error) {
			return nil, &Error{Kind: ErrConcurrentUpdate, Message: MsgConcurrentUpdate}
		},
	}
	pub := testutil.NewMockPublisher()

	_, err := newTestService(repo, pub, nil).Update(context.Background(), "SYSTEM", "P2026001", validRegistration())
	if !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("Expected ErrConcurrentUpdate, got %v", err)
	}
	pub.AssertEventNotPublished(t, messaging.EventPatientUpdated)
}

func TestUpdate_NotFoundBeforeWrite(t *testing.T) {
	repo := &mockRepository{
		updateFunc: func(ctx context.Context, rec *Record) (*Record, error) {
			t.Error("Update must not be called")
			return nil, nil
		},
	}
	_, err := newTestService(repo, nil, nil).Update(context.Background(), "SYSTEM", "P2026404", validRegistration())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestChangeStatus(t *testing.T) {
	tests := []struct {
		name       string
		current    workflow.ActiveStatus
		deactivate bool
		wantStatus workflow.ActiveStatus
		wantErr    string
	}{
		{"deactivate active", workflow.Active, true, workflow.Inactive, ""},
		{"activate inactive", workflow.Inactive, false, workflow.Active, ""},
		{"deactivate inactive", workflow.Inactive, true, "", "Patient P2026001 is already inactive"},
		{"activate active", workflow.Active, false, "", "Patient P2026001 is already active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var written *Record
			repo := &mockRepository{
				getFunc: func(ctx context.Context, id string) (*Record, error) {
					return storedRecord(id, tt.current), nil
				},
				updateFunc: func(ctx context.Context, rec *Record) (*Record, error) {
					written = rec
					return rec, nil
				},
			}
			pub := testutil.NewMockPublisher()
			svc := newTestService(repo, pub, nil)

			var patient *patientapi.Patient
			var err error
			if tt.deactivate {
				patient, err = svc.Deactivate(context.Background(), "admin-9", "P2026001")
			} else {
				patient, err = svc.Activate(context.Background(), "admin-9", "P2026001")
			}

			if tt.wantErr != "" {
				if !errors.Is(err, ErrStatusConflict) {
					t.Fatalf("Expected ErrStatusConflict, got %v", err)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("Expected %q, got %q", tt.wantErr, err.Error())
				}
				if written != nil {
					t.Error("Conflicting status change must not write")
				}
				pub.AssertEventNotPublished(t, messaging.EventPatientStatusChanged)
				return
			}

			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if patient.Status != tt.wantStatus {
				t.Errorf("Expected %s, got %s", tt.wantStatus, patient.Status)
			}
			if tt.deactivate {
				if written.DeactivatedBy != "admin-9" || written.DeactivatedAt == nil {
					t.Error("Expected deactivation audit fields")
				}
			} else if written.ActivatedBy != "admin-9" || written.ActivatedAt == nil {
				t.Error("Expected activation audit fields")
			}

			event := pub.GetLastEventByKey(messaging.EventPatientStatusChanged)
			if event == nil {
				t.Fatal("Expected status change event")
			}
			data := event.EventData.(messaging.PatientStatusChangedEvent).Data
			if data.OldStatus != string(tt.current) || data.NewStatus != string(tt.wantStatus) {
				t.Errorf("Unexpected event transition %s -> %s", data.OldStatus, data.NewStatus)
			}
		})
	}
}

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/auth"
	patientapi "github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/envelope"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/messaging"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/testutil"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

// memoryRepo keeps patients in a map; enough to drive the router end to end.
type memoryRepo struct {
	rows map[string]*patient.Record
	next int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[string]*patient.Record{}}
}

func (m *memoryRepo) Create(_ context.Context, rec *patient.Record) (*patient.Record, error) {
	m.next++
	out := *rec
	out.PatientID = fmt.Sprintf("P2026%03d", m.next)
	m.rows[out.PatientID] = &out
	cp := out
	return &cp, nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (*patient.Record, error) {
	rec, ok := m.rows[id]
	if !ok {
		return nil, &patient.Error{Kind: patient.ErrNotFound, Message: "Patient not found: " + id}
	}
	cp := *rec
	return &cp, nil
}

func (m *memoryRepo) Search(_ context.Context, f patient.SearchFilter) ([]patient.Record, int, error) {
	var out []patient.Record
	for _, rec := range m.rows {
		if f.Status == "" || rec.Status == f.Status {
			out = append(out, *rec)
		}
	}
	return out, len(out), nil
}

func (m *memoryRepo) Update(_ context.Context, rec *patient.Record) (*patient.Record, error) {
	stored, ok := m.rows[rec.PatientID]
	if !ok {
		return nil, errors.New("missing")
	}
	if stored.Version != rec.Version {
		return nil, &patient.Error{Kind: patient.ErrConcurrentUpdate, Message: patient.MsgConcurrentUpdate}
	}
	out := *rec
	out.Version++
	m.rows[rec.PatientID] = &out
	cp := out
	return &cp, nil
}

func (m *memoryRepo) PhoneExists(_ context.Context, phone, excludeID string) (bool, error) {
	for id, rec := range m.rows {
		if id != excludeID && rec.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func newTestServer(t *testing.T, verifier *auth.Verifier, perms auth.Permissions) (*httptest.Server, *testutil.MockPublisher) {
	t.Helper()
	pub := testutil.NewMockPublisher()
	svc := patient.NewService(newMemoryRepo(), pub, nil, "none", zerolog.Nop())
	router := SetupRouter(RouterDeps{
		Patients: patient.NewHandler(svc, zerolog.Nop()),
		Verifier: verifier,
		Perms:    perms,
		Logger:   zerolog.Nop(),
	})
	srv := httptest.NewServer(CORSMiddleware([]string{"http://localhost:3000"})(router))
	t.Cleanup(srv.Close)
	return srv, pub
}

func registration(phone string) patientapi.Registration {
	return patientapi.Registration{
		FirstName:   "Sam",
		LastName:    "Rivera",
		DateOfBirth: "1979-11-03",
		Gender:      patientapi.GenderMale,
		PhoneNumber: phone,
	}
}

func TestPatientLifecycle(t *testing.T) {
	srv, pub := newTestServer(t, nil, nil)
	client := testutil.NewHTTPTestClient(srv.URL, "reception-4")

	resp := client.POST(t, "/api/v1/patients", registration("555-222-3333"))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var created envelope.Envelope[patientapi.Patient]
	testutil.DecodeJSON(t, resp, &created)
	if created.Data.PatientID != "P2026001" || created.Data.CreatedBy != "reception-4" {
		t.Fatalf("Unexpected registration: %+v", created.Data)
	}

	resp = client.POST(t, "/api/v1/patients", registration("555-222-3333"))
	var dup envelope.Envelope[patientapi.Patient]
	testutil.DecodeJSON(t, resp, &dup)
	if dup.Data.PatientID != "P2026002" || !dup.Data.DuplicatePhoneWarning {
		t.Errorf("Expected second patient with duplicate warning, got %+v", dup.Data)
	}

	resp = client.PATCH(t, "/api/v1/patients/P2026001/deactivate")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = client.PATCH(t, "/api/v1/patients/P2026001/deactivate")
	var conflict envelope.Envelope[any]
	testutil.DecodeJSON(t, resp, &conflict)
	if resp.StatusCode != http.StatusConflict || conflict.Message != "Patient P2026001 is already inactive" {
		t.Errorf("Expected 409 conflict, got %d %q", resp.StatusCode, conflict.Message)
	}

	resp = client.GET(t, "/api/v1/patients?status=INACTIVE")
	var page envelope.Envelope[pagination.Page[patientapi.Summary]]
	testutil.DecodeJSON(t, resp, &page)
	if page.Data.TotalElements != 1 || page.Data.Content[0].Status != workflow.Inactive {
		t.Errorf("Expected one inactive patient, got %+v", page.Data)
	}

	resp = client.GET(t, "/api/v1/patients/P2026999")
	var missing envelope.Envelope[any]
	testutil.DecodeJSON(t, resp, &missing)
	if resp.StatusCode != http.StatusNotFound || missing.Message != "Patient not found: P2026999" {
		t.Errorf("Expected 404, got %d %q", resp.StatusCode, missing.Message)
	}

	if got := len(pub.GetAllEvents()); got != 3 {
		t.Errorf("Expected 3 events, got %d", got)
	}
	pub.AssertEventCount(t, messaging.EventPatientRegistered, 2)
	pub.AssertEventPublished(t, messaging.EventPatientStatusChanged)
}

func TestAuthEnabled(t *testing.T) {
	verifier, key := testutil.CreateTestVerifier(t)
	perms := auth.Permissions{
		"ADMIN":  {"patient:view", "patient:create", "patient:status"},
		"DOCTOR": {"patient:view"},
	}
	srv, pub := newTestServer(t, verifier, perms)

	anonymous := testutil.NewHTTPTestClient(srv.URL, "")
	resp := anonymous.GET(t, "/api/v1/patients")
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	doctor := testutil.NewHTTPTestClient(srv.URL, "")
	doctor.Token = testutil.GenerateDoctorToken(t, key)
	resp = doctor.POST(t, "/api/v1/patients", registration("555-999-0000"))
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	resp.Body.Close()

	admin := testutil.NewHTTPTestClient(srv.URL, "spoofed-header")
	admin.Token = testutil.GenerateAdminToken(t, key)
	resp = admin.POST(t, "/api/v1/patients", registration("555-999-0000"))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	event := pub.GetLastEvent()
	if event == nil {
		t.Fatal("Expected registration event")
	}
	if actor := event.EventData.(messaging.PatientRegisteredEvent).Actor; actor != "admin-123" {
		t.Errorf("Expected token subject to be the actor, got %s", actor)
	}
}

func TestHealth(t *testing.T) {
	router := SetupRouter(RouterDeps{
		Patients: patient.NewHandler(nil, zerolog.Nop()),
		Logger:   zerolog.Nop(),
		Ping:     func(ctx context.Context) error { return errors.New("down") },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 when the database is down, got %d", rec.Code)
	}

	router = SetupRouter(RouterDeps{Patients: patient.NewHandler(nil, zerolog.Nop()), Logger: zerolog.Nop()})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("Expected a request id on every response")
	}
}

func TestCORS(t *testing.T) {
	h := CORSMiddleware([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/patients", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("Expected origin to be allowed")
	}

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("Unknown origin must not be allowed")
	}
}

func TestUnknownRoute(t *testing.T) {
	router := SetupRouter(RouterDeps{Patients: patient.NewHandler(nil, zerolog.Nop()), Logger: zerolog.Nop()})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

package patient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

func TestSearchPatients_SendsFiltersAndDecodesPage(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/patients" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"data":{"content":[{"patientId":"P2025001","firstName":"Jane","status":"ACTIVE"}],"page":0,"size":20,"totalElements":1,"totalPages":1,"first":true,"last":true}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	page, err := c.SearchPatients(context.Background(), SearchParams{Search: "jane", Status: "ALL", Gender: "FEMALE"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotQuery != "gender=FEMALE&page=0&search=jane&size=20" {
		t.Errorf("Unexpected query: %s", gotQuery)
	}
	if len(page.Content) != 1 || page.Content[0].PatientID != "P2025001" {
		t.Errorf("Unexpected content: %+v", page.Content)
	}
	if page.Content[0].Status != workflow.Active {
		t.Errorf("Expected ACTIVE, got %s", page.Content[0].Status)
	}
}

func TestRegisterPatient_OmitsEmptyOptionalFields(t *testing.T) {
	var body map[string]any
	var actor string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = r.Header.Get(apiclient.HeaderUserID)
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"patientId":"P2025002"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.RegisterPatient(context.Background(), Registration{
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: "1990-01-01",
		Gender:      GenderMale,
		PhoneNumber: "+14155550100",
	}, "clerk-7")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got.PatientID != "P2025002" {
		t.Errorf("Expected P2025002, got %s", got.PatientID)
	}
	if actor != "clerk-7" {
		t.Errorf("Expected actor clerk-7, got %s", actor)
	}
	if len(body) != 5 {
		t.Errorf("Expected only the five populated fields, got %v", body)
	}
	if _, ok := body["email"]; ok {
		t.Error("Empty email must not be sent")
	}
}

func TestDeactivatePatient_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/v1/patients/P1/deactivate" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Patient not found: P1"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).DeactivatePatient(context.Background(), "P1", "")
	if err == nil || err.Error() != "Patient not found: P1" {
		t.Fatalf("Expected backend message, got %v", err)
	}
	if !apiclient.IsNotFound(err) {
		t.Error("Expected IsNotFound")
	}
}

func TestBloodGroupLabel(t *testing.T) {
	if BloodABNeg.Label() != "AB-" {
		t.Errorf("Expected AB-, got %s", BloodABNeg.Label())
	}
	if BloodGroup("X").Valid() {
		t.Error("Expected unknown group to be invalid")
	}
}

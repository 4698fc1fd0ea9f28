package emr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

func TestCreateRecord_FlatVitalsOnlyWhenSet(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"recordId":"MR1","status":"DRAFT","heartRate":72,"temperatureCelsius":37.2}}`))
	}))
	defer srv.Close()

	hr := 72
	temp := 37.2
	got, err := NewClient(srv.URL).CreateRecord(context.Background(), RecordRequest{
		PatientID:      "P1",
		DoctorID:       "DR1",
		ChiefComplaint: "headache",
		Vitals:         Vitals{HeartRate: &hr, TemperatureCelsius: &temp},
	}, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if body["heartRate"] != float64(72) || body["temperatureCelsius"] != 37.2 {
		t.Errorf("Expected flat vitals, got %v", body)
	}
	if _, ok := body["weightKg"]; ok {
		t.Error("Unset vitals must not be sent")
	}
	if _, ok := body["Vitals"]; ok {
		t.Error("Vitals must be flattened")
	}
	if got.Status != workflow.RecordDraft || got.HeartRate == nil || *got.HeartRate != 72 {
		t.Errorf("Unexpected record: %+v", got)
	}
	if got.Vitals.Empty() {
		t.Error("Expected vitals to be populated")
	}
}

func TestGetPrescriptions_PlainArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emr-api/v1/records/MR1/prescriptions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":[{"prescriptionId":"RX1","medicationName":"Ibuprofen","status":"ACTIVE"}]}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).GetPrescriptions(context.Background(), "MR1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Status != workflow.RecordPrescriptionActive {
		t.Errorf("Unexpected prescriptions: %+v", got)
	}
}

func TestDiscontinuePrescription(t *testing.T) {
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/emr-api/v1/records/MR1/prescriptions/RX1/discontinue" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"success":true,"data":{"prescriptionId":"RX1","status":"DISCONTINUED","discontinuedReason":"rash"}}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).DiscontinuePrescription(context.Background(), "MR1", "RX1", "rash", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if body["discontinuedReason"] != "rash" {
		t.Errorf("Expected discontinuedReason in body, got %v", body)
	}
	if got.Status != workflow.RecordPrescriptionDiscontinued {
		t.Errorf("Expected DISCONTINUED, got %s", got.Status)
	}
}

package bloodbank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

func TestUnitExpiryAt(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		unit        Unit
		wantOK      bool
		wantDays    int
		wantExpired bool
		wantSoon    bool
	}{
		{name: "plenty of time", unit: Unit{Status: workflow.BloodUnitAvailable, ExpiresAt: "2025-04-01"}, wantOK: true, wantDays: 22},
		{name: "expiring soon", unit: Unit{Status: workflow.BloodUnitAvailable, ExpiresAt: "2025-03-15"}, wantOK: true, wantDays: 5, wantSoon: true},
		{name: "expires today", unit: Unit{Status: workflow.BloodUnitAvailable, ExpiresAt: "2025-03-10"}, wantOK: true, wantDays: 0, wantSoon: true},
		{name: "already expired", unit: Unit{Status: workflow.BloodUnitAvailable, ExpiresAt: "2025-03-01"}, wantOK: true, wantDays: -9, wantExpired: true},
		{name: "used unit has no hint", unit: Unit{Status: workflow.BloodUnitUsed, ExpiresAt: "2025-04-01"}},
		{name: "bad date", unit: Unit{Status: workflow.BloodUnitAvailable, ExpiresAt: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.unit.ExpiryAt(today)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if got.DaysRemaining != tt.wantDays || got.Expired != tt.wantExpired || got.Soon != tt.wantSoon {
				t.Errorf("Unexpected expiry: %+v", got)
			}
		})
	}
}

func TestGetStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blood-api/v1/stock" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":[{"bloodGroup":"O_NEG","availableUnits":3,"expiringSoonUnits":1}]}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).GetStock(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].BloodGroup != patient.BloodONeg || got[0].AvailableUnits != 3 {
		t.Errorf("Unexpected stock: %+v", got)
	}
}

func TestRejectRequest_Notes(t *testing.T) {
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"success":true,"data":{"requestId":"BR1","status":"REJECTED","notes":"no match"}}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).RejectRequest(context.Background(), "BR1", "no match", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if body["notes"] != "no match" || got.Status != workflow.BloodRequestRejected {
		t.Errorf("Unexpected reject: body=%v request=%+v", body, got)
	}
}

func TestFulfillRequest_NotEnoughUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"Not enough AB_NEG units available"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FulfillRequest(context.Background(), "BR1", "")
	if err == nil || err.Error() != "Not enough AB_NEG units available" {
		t.Errorf("Expected backend message, got %v", err)
	}
}

package staff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

func TestReviewLeave(t *testing.T) {
	var body map[string]string
	var reviewer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/staff-api/v1/leaves/LV1/review" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		reviewer = r.Header.Get(apiclient.HeaderUserID)
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"success":true,"data":{"leaveId":"LV1","status":"APPROVED","reviewedBy":"hr-1"}}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).ReviewLeave(context.Background(), "LV1", Review{Decision: workflow.LeaveApproved, ReviewNotes: "ok"}, "hr-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if body["decision"] != "APPROVED" || body["reviewNotes"] != "ok" {
		t.Errorf("Unexpected review body: %v", body)
	}
	if reviewer != "hr-1" {
		t.Errorf("Expected reviewer as actor, got %s", reviewer)
	}
	if got.Status != workflow.LeaveApproved {
		t.Errorf("Expected APPROVED, got %s", got.Status)
	}
}

func TestReviewLeave_RejectsInvalidDecision(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ReviewLeave(context.Background(), "LV1", Review{Decision: workflow.LeaveCancelled}, "")
	if err == nil {
		t.Fatal("Expected error for CANCELLED decision")
	}
	if called {
		t.Error("No request should be made for an invalid decision")
	}
}

func TestListStaff_PlainArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("role") != "NURSE" {
			t.Errorf("Expected role filter, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"success":true,"data":[{"staffId":"ST1","firstName":"Ana","lastName":"Lee","status":"ON_LEAVE","isActive":true}]}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).ListStaff(context.Background(), MemberSearch{Role: "NURSE"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].FullName() != "Ana Lee" || got[0].Status != workflow.StaffOnLeave {
		t.Errorf("Unexpected staff: %+v", got)
	}
	if got[0].ActiveStatus() != workflow.Active {
		t.Errorf("Expected ACTIVE toggle, got %s", got[0].ActiveStatus())
	}
}

package billing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

func TestRecordPayment(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bill-api/v1/invoices/INV1/pay" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"success":true,"data":{"invoiceId":"INV1","status":"PARTIALLY_PAID","totalAmount":100,"paidAmount":40,"balanceDue":60}}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).RecordPayment(context.Background(), "INV1", Payment{Amount: 40, PaymentMethod: PaymentCard}, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if body["amount"] != float64(40) || body["paymentMethod"] != "CARD" {
		t.Errorf("Unexpected payment body: %v", body)
	}
	if got.Status != workflow.InvoicePartiallyPaid || got.BalanceDue != 60 {
		t.Errorf("Unexpected invoice: %+v", got)
	}
}

func TestCreateInvoice_OmitsUntouchedAmounts(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"success":true,"data":{"invoiceId":"INV2","status":"DRAFT"}}`))
	}))
	defer srv.Close()

	zero := 0.0
	_, err := NewClient(srv.URL).CreateInvoice(context.Background(), InvoiceRequest{
		PatientID:      "P1",
		DoctorID:       "DR1",
		DiscountAmount: &zero,
	}, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := `{"patientId":"P1","doctorId":"DR1","discountAmount":0}`
	if string(raw) != want {
		t.Errorf("Expected %s, got %s", want, raw)
	}
}

func TestRemoveInvoiceItem_ReturnsWholeEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/bill-api/v1/invoices/INV1/items/IT9" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"message":"Item removed","data":null}`))
	}))
	defer srv.Close()

	env, err := NewClient(srv.URL).RemoveInvoiceItem(context.Background(), "INV1", "IT9", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !env.Success || env.Message != "Item removed" {
		t.Errorf("Unexpected envelope: %+v", env)
	}
}

func TestIssueInvoice_NotAllowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Cannot issue an invoice with no items"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).IssueInvoice(context.Background(), "INV1", "")
	if err == nil || err.Error() != "Cannot issue an invoice with no items" {
		t.Errorf("Expected backend message, got %v", err)
	}
}

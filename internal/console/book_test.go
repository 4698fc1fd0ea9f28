package console

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

const availabilityPath = "/apt-api/v1/appointments/availability"

func withSlots(b *backend, slots ...string) {
	list := make([]map[string]string, len(slots))
	for i, s := range slots {
		list[i] = map[string]string{"startTime": s}
	}
	b.on(http.MethodGet, availabilityPath, http.StatusOK, map[string]any{"doctorId": "DR1", "date": "2026-01-10", "availableSlots": list})
}

func TestBook_BooksChosenSlotAndNavigates(t *testing.T) {
	c, b, out := newTestConsole(t)
	withSlots(b, "09:00", "09:30")
	b.on(http.MethodPost, "/apt-api/v1/appointments", http.StatusCreated, map[string]any{
		"appointmentId":   "APT-20260110-001",
		"patientId":       "PAT-2026-0001",
		"doctorId":        "DR1",
		"doctorName":      "Dr. Grey",
		"appointmentDate": "2026-01-10",
		"appointmentTime": "09:00",
		"durationMinutes": 30,
		"appointmentType": "CONSULTATION",
		"status":          "SCHEDULED",
	})

	err := c.Book(context.Background(), Booking{PatientID: "PAT-2026-0001", DoctorID: "DR1", Date: "2026-01-10", Slot: "09:00"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(b.calls) != 2 {
		t.Fatalf("Expected availability then booking, got %+v", b.calls)
	}
	avail := b.calls[0]
	if avail.path != availabilityPath || !strings.Contains(avail.query, "doctorId=DR1") || !strings.Contains(avail.query, "date=2026-01-10") {
		t.Errorf("Unexpected availability call %+v", avail)
	}
	post := b.calls[1]
	if post.method != http.MethodPost || post.path != "/apt-api/v1/appointments" {
		t.Fatalf("Unexpected booking call %+v", post)
	}
	if post.body["appointmentTime"] != "09:00" || post.body["appointmentType"] != "CONSULTATION" {
		t.Errorf("Unexpected booking body %v", post.body)
	}
	if _, ok := post.body["reason"]; ok {
		t.Error("Empty reason must be omitted")
	}
	if !strings.Contains(out.String(), "-> /appointments/APT-20260110-001") {
		t.Errorf("Expected navigation:\n%s", out.String())
	}
}

func TestBook_ListsSlotsWithoutBooking(t *testing.T) {
	c, b, out := newTestConsole(t)
	withSlots(b, "09:00", "09:30")

	if err := c.Book(context.Background(), Booking{PatientID: "P1", DoctorID: "DR1", Date: "2026-01-10"}); err != nil {
		t.Fatal(err)
	}
	if w := b.writes(); len(w) != 0 {
		t.Errorf("Expected no booking, got %+v", w)
	}
	got := out.String()
	if !strings.Contains(got, "09:00") || !strings.Contains(got, "09:30") {
		t.Errorf("Expected slots listed:\n%s", got)
	}
}

func TestBook_RejectsSlotNotFree(t *testing.T) {
	c, b, _ := newTestConsole(t)
	withSlots(b, "09:00")

	err := c.Book(context.Background(), Booking{PatientID: "P1", DoctorID: "DR1", Date: "2026-01-10", Slot: "10:00"})
	var fe *FormError
	if !errors.As(err, &fe) || fe.Fields["slot"] == "" {
		t.Fatalf("Expected slot error, got %v", err)
	}
	if w := b.writes(); len(w) != 0 {
		t.Errorf("Expected no booking, got %+v", w)
	}
}

func TestBook_NoSlotsReportedRefusesBooking(t *testing.T) {
	c, b, out := newTestConsole(t)
	withSlots(b)

	if err := c.Book(context.Background(), Booking{PatientID: "P1", DoctorID: "DR1", Date: "2026-01-10"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No available slots for this date.") {
		t.Errorf("Expected no-slots notice:\n%s", out.String())
	}

	err := c.Book(context.Background(), Booking{PatientID: "P1", DoctorID: "DR1", Date: "2026-01-10", Slot: "14:15"})
	var fe *FormError
	if !errors.As(err, &fe) || fe.Fields["slot"] != "no available slots for this date" {
		t.Fatalf("Expected no-slots error, got %v", err)
	}
	if w := b.writes(); len(w) != 0 {
		t.Errorf("Expected no booking, got %+v", w)
	}
}

func TestBook_ManualTimeWhenAvailabilityFails(t *testing.T) {
	c, b, out := newTestConsole(t)
	b.on(http.MethodGet, availabilityPath, http.StatusServiceUnavailable, "Service unavailable: /apt-api")
	b.on(http.MethodPost, "/apt-api/v1/appointments", http.StatusCreated, map[string]any{"appointmentId": "APT-2", "status": "SCHEDULED"})

	err := c.Book(context.Background(), Booking{PatientID: "P1", DoctorID: "DR1", Date: "2026-01-10", Slot: "14:15"})
	if err != nil {
		t.Fatalf("Expected manual time to be booked, got %v", err)
	}
	if w := b.writes(); len(w) != 1 || w[0].body["appointmentTime"] != "14:15" {
		t.Errorf("Unexpected writes %+v", w)
	}
	got := out.String()
	if !strings.Contains(got, "! Service unavailable: /apt-api") {
		t.Errorf("Expected availability banner:\n%s", got)
	}
	if !strings.Contains(got, "-> /appointments/APT-2") {
		t.Errorf("Expected navigation:\n%s", got)
	}
}

func TestBook_ValidatesInput(t *testing.T) {
	tests := []struct {
		name string
		in   Booking
		key  string
	}{
		{"missing patient", Booking{DoctorID: "DR1", Date: "2026-01-10"}, "patient"},
		{"missing doctor", Booking{PatientID: "P1", Date: "2026-01-10"}, "doctor"},
		{"missing date", Booking{PatientID: "P1", DoctorID: "DR1"}, "date"},
		{"bad slot", Booking{PatientID: "P1", DoctorID: "DR1", Date: "2026-01-10", Slot: "9am"}, "slot"},
		{"bad type", Booking{PatientID: "P1", DoctorID: "DR1", Date: "2026-01-10", Type: "SPA"}, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, b, _ := newTestConsole(t)
			err := c.Book(context.Background(), tt.in)
			var fe *FormError
			if !errors.As(err, &fe) || fe.Fields[tt.key] == "" {
				t.Fatalf("Expected %s error, got %v", tt.key, err)
			}
			if len(b.calls) != 0 {
				t.Errorf("Expected no calls, got %d", len(b.calls))
			}
		})
	}
}

func TestBook_AvailabilityFailureShowsRetry(t *testing.T) {
	c, b, out := newTestConsole(t)
	b.on(http.MethodGet, availabilityPath, http.StatusServiceUnavailable, "Service unavailable: /apt-api")

	err := c.Book(context.Background(), Booking{PatientID: "P1", DoctorID: "DR1", Date: "2026-01-10"})
	if err == nil {
		t.Fatal("Expected error")
	}
	got := out.String()
	if !strings.Contains(got, "! Service unavailable: /apt-api") || !strings.Contains(got, "Try again: console book") {
		t.Errorf("Unexpected output:\n%s", got)
	}
	if !strings.Contains(got, "--slot HH:MM") {
		t.Errorf("Expected manual time hint:\n%s", got)
	}
	if w := b.writes(); len(w) != 0 {
		t.Errorf("Expected no booking, got %+v", w)
	}
}

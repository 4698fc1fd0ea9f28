package workflow

import (
	"errors"
	"reflect"
	"testing"
)

func TestAppointmentActions(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   []Action
	}{
		{AppointmentScheduled, []Action{ActionConfirm, ActionCancel}},
		{AppointmentConfirmed, []Action{ActionComplete, ActionNoShow, ActionCancel}},
		{AppointmentCompleted, nil},
		{AppointmentCancelled, nil},
		{AppointmentNoShow, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := Appointment.Actions(tt.status)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestActionsArePureFunctionsOfStatus(t *testing.T) {
	first := Invoice.Actions(InvoiceIssued)
	for i := 0; i < 5; i++ {
		if got := Invoice.Actions(InvoiceIssued); !reflect.DeepEqual(got, first) {
			t.Fatalf("Expected stable actions %v, got %v", first, got)
		}
	}
}

func TestNext(t *testing.T) {
	next, err := LabOrder.Next(LabOrderOrdered, ActionCollect)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if next != LabOrderSampleCollected {
		t.Errorf("Expected SAMPLE_COLLECTED, got %s", next)
	}

	same, err := Invoice.Next(InvoiceDraft, ActionAddItem)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if same != InvoiceDraft {
		t.Errorf("Expected status to stay DRAFT, got %s", same)
	}

	_, err = LabOrder.Next(LabOrderInProgress, ActionCancel)
	if !errors.Is(err, ErrActionNotAllowed) {
		t.Errorf("Expected ErrActionNotAllowed, got %v", err)
	}

	_, err = Bed.Next(BedAvailable, ActionDispense)
	if !errors.Is(err, ErrActionNotAllowed) {
		t.Errorf("Expected ErrActionNotAllowed for unknown action, got %v", err)
	}
}

func TestTerminalStatuses(t *testing.T) {
	if !Invoice.Terminal(InvoicePaid) || !Invoice.Terminal(InvoiceCancelled) {
		t.Error("Expected PAID and CANCELLED invoices to be terminal")
	}
	if !Admission.Terminal(AdmissionDischarged) {
		t.Error("Expected DISCHARGED admission to be terminal")
	}
	if !Bed.Terminal(BedOccupied) {
		t.Error("Expected OCCUPIED bed to offer no actions")
	}
	if Prescription.Terminal(PrescriptionPending) {
		t.Error("Expected PENDING prescription to offer actions")
	}
}

func TestInvoiceActions(t *testing.T) {
	tests := []struct {
		status InvoiceStatus
		action Action
		want   bool
	}{
		{InvoiceDraft, ActionIssue, true},
		{InvoiceDraft, ActionPay, false},
		{InvoiceIssued, ActionPay, true},
		{InvoicePartiallyPaid, ActionPay, true},
		{InvoicePartiallyPaid, ActionCancel, true},
		{InvoicePaid, ActionCancel, false},
		{InvoiceIssued, ActionEdit, false},
	}

	for _, tt := range tests {
		if got := Invoice.Can(tt.status, tt.action); got != tt.want {
			t.Errorf("Can(%s, %s): expected %v, got %v", tt.status, tt.action, tt.want, got)
		}
	}
}

func TestRecordAndPrescription(t *testing.T) {
	if !Record.Can(RecordAmended, ActionPrescribe) {
		t.Error("Expected amended record to accept prescriptions")
	}
	if Record.Can(RecordFinalized, ActionEdit) {
		t.Error("Expected finalized record to be read-only")
	}
	if !Record.Can(RecordFinalized, ActionAmend) {
		t.Error("Expected finalized record to be amendable")
	}
	if RecordPrescription.Can(RecordPrescriptionDiscontinued, ActionDiscontinue) {
		t.Error("Expected discontinued prescription to be terminal")
	}
}

func TestToggle(t *testing.T) {
	if got := Toggle.Actions(FromActive(true)); !reflect.DeepEqual(got, []Action{ActionDeactivate}) {
		t.Errorf("Expected deactivate for active record, got %v", got)
	}
	if got := Toggle.Actions(FromActive(false)); !reflect.DeepEqual(got, []Action{ActionActivate}) {
		t.Errorf("Expected activate for inactive record, got %v", got)
	}
}

func TestStatusesAreCopied(t *testing.T) {
	s := Notification.Statuses()
	s[0] = "MUTATED"
	if Notification.Statuses()[0] != NotificationPending {
		t.Error("Statuses must return a copy")
	}
}

func TestOtherMachines(t *testing.T) {
	if !BloodUnit.Can(BloodUnitAvailable, ActionDiscard) || BloodUnit.Can(BloodUnitUsed, ActionDiscard) {
		t.Error("Unexpected blood unit discard rules")
	}
	if !Notification.Can(NotificationFailed, ActionRetry) || Notification.Can(NotificationSent, ActionRetry) {
		t.Error("Unexpected notification retry rules")
	}
	if !Leave.Can(LeavePending, ActionReview) || Leave.Can(LeaveApproved, ActionCancel) {
		t.Error("Unexpected leave rules")
	}
	if got := BloodRequest.Actions(BloodRequestPending); len(got) != 3 {
		t.Errorf("Expected three actions on pending blood request, got %v", got)
	}
	if !LabItem.Can(LabItemInProgress, ActionRecordResult) || LabItem.Can(LabItemPending, ActionRecordResult) {
		t.Error("Unexpected lab item result rules")
	}
}

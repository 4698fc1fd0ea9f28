package workflow

// Action names. The same name may appear in several machines.
const (
	ActionEdit         Action = "edit"
	ActionActivate     Action = "activate"
	ActionDeactivate   Action = "deactivate"
	ActionCancel       Action = "cancel"
	ActionAddItem      Action = "add-item"
	ActionRemoveItem   Action = "remove-item"
	ActionConfirm      Action = "confirm"
	ActionComplete     Action = "complete"
	ActionNoShow       Action = "no-show"
	ActionIssue        Action = "issue"
	ActionPay          Action = "pay"
	ActionCollect      Action = "collect"
	ActionProcess      Action = "process"
	ActionRecordResult Action = "record-result"
	ActionFinalize     Action = "finalize"
	ActionAmend        Action = "amend"
	ActionPrescribe    Action = "add-prescription"
	ActionDiscontinue  Action = "discontinue"
	ActionDispense     Action = "dispense"
	ActionTransfer     Action = "transfer"
	ActionDischarge    Action = "discharge"
	ActionMaintenance  Action = "maintenance"
	ActionAvailable    Action = "mark-available"
	ActionReview       Action = "review"
	ActionFulfill      Action = "fulfill"
	ActionReject       Action = "reject"
	ActionDiscard      Action = "discard"
	ActionMarkRead     Action = "mark-read"
	ActionRetry        Action = "retry"
)

// Toggle covers every entity with an ACTIVE/INACTIVE switch.
var Toggle = NewMachine("record", []ActiveStatus{Active, Inactive},
	Transition[ActiveStatus]{Action: ActionDeactivate, From: []ActiveStatus{Active}, To: Inactive},
	Transition[ActiveStatus]{Action: ActionActivate, From: []ActiveStatus{Inactive}, To: Active},
)

var Appointment = NewMachine("appointment",
	[]AppointmentStatus{AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow},
	Transition[AppointmentStatus]{Action: ActionConfirm, From: []AppointmentStatus{AppointmentScheduled}, To: AppointmentConfirmed},
	Transition[AppointmentStatus]{Action: ActionComplete, From: []AppointmentStatus{AppointmentConfirmed}, To: AppointmentCompleted},
	Transition[AppointmentStatus]{Action: ActionNoShow, From: []AppointmentStatus{AppointmentConfirmed}, To: AppointmentNoShow},
	Transition[AppointmentStatus]{Action: ActionCancel, From: []AppointmentStatus{AppointmentScheduled, AppointmentConfirmed}, To: AppointmentCancelled},
)

// Invoice payments may leave the invoice PARTIALLY_PAID; the backend decides,
// so pay carries no fixed target.
var Invoice = NewMachine("invoice",
	[]InvoiceStatus{InvoiceDraft, InvoiceIssued, InvoicePartiallyPaid, InvoicePaid, InvoiceCancelled},
	Transition[InvoiceStatus]{Action: ActionEdit, From: []InvoiceStatus{InvoiceDraft}},
	Transition[InvoiceStatus]{Action: ActionAddItem, From: []InvoiceStatus{InvoiceDraft}},
	Transition[InvoiceStatus]{Action: ActionRemoveItem, From: []InvoiceStatus{InvoiceDraft}},
	Transition[InvoiceStatus]{Action: ActionIssue, From: []InvoiceStatus{InvoiceDraft}, To: InvoiceIssued},
	Transition[InvoiceStatus]{Action: ActionPay, From: []InvoiceStatus{InvoiceIssued, InvoicePartiallyPaid}},
	Transition[InvoiceStatus]{Action: ActionCancel, From: []InvoiceStatus{InvoiceDraft, InvoiceIssued, InvoicePartiallyPaid}, To: InvoiceCancelled},
)

var LabOrder = NewMachine("lab order",
	[]LabOrderStatus{LabOrderOrdered, LabOrderSampleCollected, LabOrderInProgress, LabOrderCompleted, LabOrderCancelled},
	Transition[LabOrderStatus]{Action: ActionAddItem, From: []LabOrderStatus{LabOrderOrdered}},
	Transition[LabOrderStatus]{Action: ActionRemoveItem, From: []LabOrderStatus{LabOrderOrdered}},
	Transition[LabOrderStatus]{Action: ActionCollect, From: []LabOrderStatus{LabOrderOrdered}, To: LabOrderSampleCollected},
	Transition[LabOrderStatus]{Action: ActionProcess, From: []LabOrderStatus{LabOrderSampleCollected}, To: LabOrderInProgress},
	Transition[LabOrderStatus]{Action: ActionRecordResult, From: []LabOrderStatus{LabOrderInProgress}},
	Transition[LabOrderStatus]{Action: ActionCancel, From: []LabOrderStatus{LabOrderOrdered, LabOrderSampleCollected}, To: LabOrderCancelled},
)

// LabItem gates result entry per line; the order must also be IN_PROGRESS.
var LabItem = NewMachine("lab order item",
	[]LabItemStatus{LabItemPending, LabItemCollected, LabItemInProgress, LabItemCompleted},
	Transition[LabItemStatus]{Action: ActionRecordResult, From: []LabItemStatus{LabItemInProgress}, To: LabItemCompleted},
)

var Record = NewMachine("medical record",
	[]RecordStatus{RecordDraft, RecordFinalized, RecordAmended},
	Transition[RecordStatus]{Action: ActionEdit, From: []RecordStatus{RecordDraft, RecordAmended}},
	Transition[RecordStatus]{Action: ActionPrescribe, From: []RecordStatus{RecordDraft, RecordAmended}},
	Transition[RecordStatus]{Action: ActionFinalize, From: []RecordStatus{RecordDraft}, To: RecordFinalized},
	Transition[RecordStatus]{Action: ActionAmend, From: []RecordStatus{RecordFinalized}, To: RecordAmended},
)

// RecordPrescription is only actionable while its record accepts
// prescriptions (see Record's add-prescription).
var RecordPrescription = NewMachine("prescription",
	[]RecordPrescriptionStatus{RecordPrescriptionActive, RecordPrescriptionDiscontinued},
	Transition[RecordPrescriptionStatus]{Action: ActionDiscontinue, From: []RecordPrescriptionStatus{RecordPrescriptionActive}, To: RecordPrescriptionDiscontinued},
)

var Prescription = NewMachine("prescription",
	[]PrescriptionStatus{PrescriptionPending, PrescriptionDispensed, PrescriptionCancelled},
	Transition[PrescriptionStatus]{Action: ActionAddItem, From: []PrescriptionStatus{PrescriptionPending}},
	Transition[PrescriptionStatus]{Action: ActionRemoveItem, From: []PrescriptionStatus{PrescriptionPending}},
	Transition[PrescriptionStatus]{Action: ActionDispense, From: []PrescriptionStatus{PrescriptionPending}, To: PrescriptionDispensed},
	Transition[PrescriptionStatus]{Action: ActionCancel, From: []PrescriptionStatus{PrescriptionPending}, To: PrescriptionCancelled},
)

var Admission = NewMachine("admission",
	[]AdmissionStatus{AdmissionAdmitted, AdmissionDischarged},
	Transition[AdmissionStatus]{Action: ActionTransfer, From: []AdmissionStatus{AdmissionAdmitted}},
	Transition[AdmissionStatus]{Action: ActionDischarge, From: []AdmissionStatus{AdmissionAdmitted}, To: AdmissionDischarged},
)

// Occupied beds change only through admissions.
var Bed = NewMachine("bed",
	[]BedStatus{BedAvailable, BedOccupied, BedMaintenance},
	Transition[BedStatus]{Action: ActionMaintenance, From: []BedStatus{BedAvailable}, To: BedMaintenance},
	Transition[BedStatus]{Action: ActionAvailable, From: []BedStatus{BedMaintenance}, To: BedAvailable},
)

// Leave review outcome (APPROVED or REJECTED) is chosen by the reviewer.
var Leave = NewMachine("leave request",
	[]LeaveStatus{LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled},
	Transition[LeaveStatus]{Action: ActionReview, From: []LeaveStatus{LeavePending}},
	Transition[LeaveStatus]{Action: ActionCancel, From: []LeaveStatus{LeavePending}, To: LeaveCancelled},
)

var BloodRequest = NewMachine("blood request",
	[]BloodRequestStatus{BloodRequestPending, BloodRequestFulfilled, BloodRequestRejected, BloodRequestCancelled},
	Transition[BloodRequestStatus]{Action: ActionFulfill, From: []BloodRequestStatus{BloodRequestPending}, To: BloodRequestFulfilled},
	Transition[BloodRequestStatus]{Action: ActionReject, From: []BloodRequestStatus{BloodRequestPending}, To: BloodRequestRejected},
	Transition[BloodRequestStatus]{Action: ActionCancel, From: []BloodRequestStatus{BloodRequestPending}, To: BloodRequestCancelled},
)

var BloodUnit = NewMachine("blood unit",
	[]BloodUnitStatus{BloodUnitAvailable, BloodUnitUsed, BloodUnitExpired, BloodUnitDiscarded},
	Transition[BloodUnitStatus]{Action: ActionDiscard, From: []BloodUnitStatus{BloodUnitAvailable}, To: BloodUnitDiscarded},
)

var Notification = NewMachine("notification",
	[]NotificationStatus{NotificationPending, NotificationSent, NotificationFailed, NotificationRead},
	Transition[NotificationStatus]{Action: ActionMarkRead, From: []NotificationStatus{NotificationSent}, To: NotificationRead},
	Transition[NotificationStatus]{Action: ActionRetry, From: []NotificationStatus{NotificationFailed}, To: NotificationPending},
)

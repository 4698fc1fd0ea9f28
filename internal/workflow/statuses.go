package workflow

// ActiveStatus is the ACTIVE/INACTIVE toggle shared by patients, doctors,
// staff, wards, medicines, lab tests and inventory items.
type ActiveStatus string

const (
	Active   ActiveStatus = "ACTIVE"
	Inactive ActiveStatus = "INACTIVE"
)

// FromActive maps an isActive flag to its toggle status.
func FromActive(active bool) ActiveStatus {
	if active {
		return Active
	}
	return Inactive
}

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentNoShow    AppointmentStatus = "NO_SHOW"
)

type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "DRAFT"
	InvoiceIssued        InvoiceStatus = "ISSUED"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
)

type LabOrderStatus string

const (
	LabOrderOrdered         LabOrderStatus = "ORDERED"
	LabOrderSampleCollected LabOrderStatus = "SAMPLE_COLLECTED"
	LabOrderInProgress      LabOrderStatus = "IN_PROGRESS"
	LabOrderCompleted       LabOrderStatus = "COMPLETED"
	LabOrderCancelled       LabOrderStatus = "CANCELLED"
)

type LabItemStatus string

const (
	LabItemPending    LabItemStatus = "PENDING"
	LabItemCollected  LabItemStatus = "COLLECTED"
	LabItemInProgress LabItemStatus = "IN_PROGRESS"
	LabItemCompleted  LabItemStatus = "COMPLETED"
)

type RecordStatus string

const (
	RecordDraft     RecordStatus = "DRAFT"
	RecordFinalized RecordStatus = "FINALIZED"
	RecordAmended   RecordStatus = "AMENDED"
)

type RecordPrescriptionStatus string

const (
	RecordPrescriptionActive       RecordPrescriptionStatus = "ACTIVE"
	RecordPrescriptionDiscontinued RecordPrescriptionStatus = "DISCONTINUED"
)

type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "PENDING"
	PrescriptionDispensed PrescriptionStatus = "DISPENSED"
	PrescriptionCancelled PrescriptionStatus = "CANCELLED"
)

type AdmissionStatus string

const (
	AdmissionAdmitted   AdmissionStatus = "ADMITTED"
	AdmissionDischarged AdmissionStatus = "DISCHARGED"
)

type BedStatus string

const (
	BedAvailable   BedStatus = "AVAILABLE"
	BedOccupied    BedStatus = "OCCUPIED"
	BedMaintenance BedStatus = "MAINTENANCE"
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "PENDING"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

type BloodRequestStatus string

const (
	BloodRequestPending   BloodRequestStatus = "PENDING"
	BloodRequestFulfilled BloodRequestStatus = "FULFILLED"
	BloodRequestRejected  BloodRequestStatus = "REJECTED"
	BloodRequestCancelled BloodRequestStatus = "CANCELLED"
)

type BloodUnitStatus string

const (
	BloodUnitAvailable BloodUnitStatus = "AVAILABLE"
	BloodUnitUsed      BloodUnitStatus = "USED"
	BloodUnitExpired   BloodUnitStatus = "EXPIRED"
	BloodUnitDiscarded BloodUnitStatus = "DISCARDED"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "PENDING"
	NotificationSent    NotificationStatus = "SENT"
	NotificationFailed  NotificationStatus = "FAILED"
	NotificationRead    NotificationStatus = "READ"
)

type StaffStatus string

const (
	StaffActive     StaffStatus = "ACTIVE"
	StaffOnLeave    StaffStatus = "ON_LEAVE"
	StaffResigned   StaffStatus = "RESIGNED"
	StaffTerminated StaffStatus = "TERMINATED"
)

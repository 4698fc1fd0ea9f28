package emr

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

var StatusFilters = []string{
	"ALL",
	string(workflow.RecordDraft),
	string(workflow.RecordFinalized),
	string(workflow.RecordAmended),
}

// Vitals are flat on the wire. Unset readings are nil and left out of
// request bodies.
type Vitals struct {
	BloodPressureSystolic   *int     `json:"bloodPressureSystolic,omitempty"`
	BloodPressureDiastolic  *int     `json:"bloodPressureDiastolic,omitempty"`
	HeartRate               *int     `json:"heartRate,omitempty"`
	OxygenSaturationPercent *int     `json:"oxygenSaturationPercent,omitempty"`
	RespiratoryRate         *int     `json:"respiratoryRate,omitempty"`
	TemperatureCelsius      *float64 `json:"temperatureCelsius,omitempty"`
	WeightKg                *float64 `json:"weightKg,omitempty"`
	HeightCm                *float64 `json:"heightCm,omitempty"`
}

// Empty reports whether no reading is recorded.
func (v Vitals) Empty() bool {
	return v.BloodPressureSystolic == nil && v.BloodPressureDiastolic == nil &&
		v.HeartRate == nil && v.OxygenSaturationPercent == nil && v.RespiratoryRate == nil &&
		v.TemperatureCelsius == nil && v.WeightKg == nil && v.HeightCm == nil
}

type Record struct {
	RecordID             string                `json:"recordId"`
	PatientID            string                `json:"patientId"`
	DoctorID             string                `json:"doctorId"`
	AppointmentID        string                `json:"appointmentId,omitempty"`
	ChiefComplaint       string                `json:"chiefComplaint"`
	ClinicalNotes        string                `json:"clinicalNotes,omitempty"`
	DiagnosisCode        string                `json:"diagnosisCode,omitempty"`
	DiagnosisDescription string                `json:"diagnosisDescription,omitempty"`
	Status               workflow.RecordStatus `json:"status"`
	Vitals
	CreatedAt   string `json:"createdAt,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
	FinalizedAt string `json:"finalizedAt,omitempty"`
	FinalizedBy string `json:"finalizedBy,omitempty"`
}

// RecordRequest is the create/update form.
type RecordRequest struct {
	PatientID            string `json:"patientId,omitempty"`
	DoctorID             string `json:"doctorId,omitempty"`
	AppointmentID        string `json:"appointmentId,omitempty"`
	ChiefComplaint       string `json:"chiefComplaint"`
	ClinicalNotes        string `json:"clinicalNotes,omitempty"`
	DiagnosisCode        string `json:"diagnosisCode,omitempty"`
	DiagnosisDescription string `json:"diagnosisDescription,omitempty"`
	Vitals
}

type RecordSearch struct {
	PatientID     string
	DoctorID      string
	AppointmentID string
	Status        string
	DateFrom      string
	DateTo        string
	Page          int
	Size          int
}

type Prescription struct {
	PrescriptionID     string                            `json:"prescriptionId"`
	RecordID           string                            `json:"recordId,omitempty"`
	PatientID          string                            `json:"patientId,omitempty"`
	MedicationName     string                            `json:"medicationName"`
	Dosage             string                            `json:"dosage"`
	Frequency          string                            `json:"frequency"`
	DurationDays       int                               `json:"durationDays"`
	Instructions       string                            `json:"instructions,omitempty"`
	Status             workflow.RecordPrescriptionStatus `json:"status"`
	DiscontinuedReason string                            `json:"discontinuedReason,omitempty"`
	CreatedAt          string                            `json:"createdAt,omitempty"`
}

type PrescriptionRequest struct {
	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	DurationDays   int    `json:"durationDays"`
	Instructions   string `json:"instructions,omitempty"`
}

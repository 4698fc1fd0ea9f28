package bed

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

type WardType string

const (
	WardGeneral    WardType = "GENERAL"
	WardICU        WardType = "ICU"
	WardEmergency  WardType = "EMERGENCY"
	WardMaternity  WardType = "MATERNITY"
	WardPediatric  WardType = "PEDIATRIC"
	WardSurgical   WardType = "SURGICAL"
	WardOrthopedic WardType = "ORTHOPEDIC"
)

var AllWardTypes = []WardType{WardGeneral, WardICU, WardEmergency, WardMaternity, WardPediatric, WardSurgical, WardOrthopedic}

type BedType string

const (
	BedGeneral     BedType = "GENERAL"
	BedICU         BedType = "ICU"
	BedPrivate     BedType = "PRIVATE"
	BedSemiPrivate BedType = "SEMI_PRIVATE"
)

var AllBedTypes = []BedType{BedGeneral, BedICU, BedPrivate, BedSemiPrivate}

var BedStatusFilters = []string{
	"ALL",
	string(workflow.BedAvailable),
	string(workflow.BedOccupied),
	string(workflow.BedMaintenance),
}

var AdmissionStatuses = []workflow.AdmissionStatus{workflow.AdmissionAdmitted, workflow.AdmissionDischarged}

type Ward struct {
	WardID        string   `json:"wardId"`
	Name          string   `json:"name"`
	WardType      WardType `json:"wardType"`
	Floor         int      `json:"floor"`
	Description   string   `json:"description,omitempty"`
	TotalBeds     int      `json:"totalBeds"`
	OccupiedBeds  int      `json:"occupiedBeds"`
	AvailableBeds int      `json:"availableBeds"`
	IsActive      bool     `json:"isActive"`
}

func (w Ward) Status() workflow.ActiveStatus {
	return workflow.FromActive(w.IsActive)
}

type WardRequest struct {
	Name        string   `json:"name"`
	WardType    WardType `json:"wardType"`
	Floor       int      `json:"floor"`
	Description string   `json:"description,omitempty"`
}

type Bed struct {
	BedID     string             `json:"bedId"`
	BedNumber string             `json:"bedNumber"`
	BedType   BedType            `json:"bedType"`
	WardID    string             `json:"wardId"`
	WardName  string             `json:"wardName"`
	Status    workflow.BedStatus `json:"status"`
}

type BedRequest struct {
	WardID    string  `json:"wardId"`
	BedNumber string  `json:"bedNumber"`
	BedType   BedType `json:"bedType"`
}

type BedSearch struct {
	Status string
	WardID string
}

type Admission struct {
	AdmissionID    string                   `json:"admissionId"`
	PatientID      string                   `json:"patientId"`
	BedID          string                   `json:"bedId"`
	BedNumber      string                   `json:"bedNumber"`
	WardID         string                   `json:"wardId"`
	WardName       string                   `json:"wardName"`
	AdmitReason    string                   `json:"admitReason,omitempty"`
	Status         workflow.AdmissionStatus `json:"status"`
	DischargeNotes string                   `json:"dischargeNotes,omitempty"`
	AdmittedAt     string                   `json:"admittedAt,omitempty"`
	DischargedAt   string                   `json:"dischargedAt,omitempty"`
	CreatedAt      string                   `json:"createdAt,omitempty"`
	CreatedBy      string                   `json:"createdBy,omitempty"`
	UpdatedAt      string                   `json:"updatedAt,omitempty"`
	UpdatedBy      string                   `json:"updatedBy,omitempty"`
}

type AdmissionRequest struct {
	PatientID   string `json:"patientId"`
	BedID       string `json:"bedId"`
	AdmitReason string `json:"admitReason,omitempty"`
}

type AdmissionSearch struct {
	Status    string
	PatientID string
}

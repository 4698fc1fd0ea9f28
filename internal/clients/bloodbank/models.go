package bloodbank

import (
	"math"
	"time"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

// BloodGroups excludes UNKNOWN; a donated unit is always typed.
var BloodGroups = []patient.BloodGroup{
	patient.BloodAPos, patient.BloodANeg, patient.BloodBPos, patient.BloodBNeg,
	patient.BloodABPos, patient.BloodABNeg, patient.BloodOPos, patient.BloodONeg,
}

type Priority string

const (
	PriorityNormal   Priority = "NORMAL"
	PriorityUrgent   Priority = "URGENT"
	PriorityCritical Priority = "CRITICAL"
)

var AllPriorities = []Priority{PriorityNormal, PriorityUrgent, PriorityCritical}

var UnitStatuses = []workflow.BloodUnitStatus{
	workflow.BloodUnitAvailable, workflow.BloodUnitUsed, workflow.BloodUnitExpired, workflow.BloodUnitDiscarded,
}

var RequestStatuses = []workflow.BloodRequestStatus{
	workflow.BloodRequestPending, workflow.BloodRequestFulfilled, workflow.BloodRequestRejected, workflow.BloodRequestCancelled,
}

// ShelfLifeDays is how long a unit keeps after donation.
const ShelfLifeDays = 42

// ExpiryWarningDays marks units close to expiry.
const ExpiryWarningDays = 7

const dateLayout = "2006-01-02"

type Unit struct {
	UnitID     string                   `json:"unitId"`
	BloodGroup patient.BloodGroup       `json:"bloodGroup"`
	DonorName  string                   `json:"donorName"`
	DonorAge   int                      `json:"donorAge,omitempty"`
	DonorPhone string                   `json:"donorPhone,omitempty"`
	DonatedAt  string                   `json:"donatedAt"`
	ExpiresAt  string                   `json:"expiresAt"`
	Status     workflow.BloodUnitStatus `json:"status"`
	RequestID  string                   `json:"requestId,omitempty"`
	CreatedAt  string                   `json:"createdAt,omitempty"`
	CreatedBy  string                   `json:"createdBy,omitempty"`
}

// Expiry describes how close an available unit is to its expiry date.
type Expiry struct {
	DaysRemaining int
	Expired       bool
	Soon          bool
}

// ExpiryAt computes the hint relative to today. ok is false when the unit is
// not AVAILABLE or its expiry date cannot be parsed.
func (u Unit) ExpiryAt(today time.Time) (Expiry, bool) {
	if u.Status != workflow.BloodUnitAvailable {
		return Expiry{}, false
	}
	expires, err := time.Parse(dateLayout, u.ExpiresAt)
	if err != nil {
		return Expiry{}, false
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Ceil(expires.Sub(day).Hours() / 24))

	return Expiry{
		DaysRemaining: days,
		Expired:       days < 0,
		Soon:          days >= 0 && days <= ExpiryWarningDays,
	}, true
}

type UnitRequest struct {
	BloodGroup patient.BloodGroup `json:"bloodGroup"`
	DonorName  string             `json:"donorName"`
	DonorAge   int                `json:"donorAge,omitempty"`
	DonorPhone string             `json:"donorPhone,omitempty"`
	DonatedAt  string             `json:"donatedAt"`
}

type UnitSearch struct {
	BloodGroup string
	Status     string
}

type Stock struct {
	BloodGroup        patient.BloodGroup `json:"bloodGroup"`
	AvailableUnits    int                `json:"availableUnits"`
	ExpiringSoonUnits int                `json:"expiringSoonUnits"`
}

type Request struct {
	RequestID      string                      `json:"requestId"`
	PatientID      string                      `json:"patientId"`
	BloodGroup     patient.BloodGroup          `json:"bloodGroup"`
	UnitsRequested int                         `json:"unitsRequested"`
	UnitsFulfilled int                         `json:"unitsFulfilled"`
	Priority       Priority                    `json:"priority"`
	Status         workflow.BloodRequestStatus `json:"status"`
	Notes          string                      `json:"notes,omitempty"`
	FulfilledAt    string                      `json:"fulfilledAt,omitempty"`
	CreatedAt      string                      `json:"createdAt,omitempty"`
	CreatedBy      string                      `json:"createdBy,omitempty"`
}

type RequestForm struct {
	PatientID      string             `json:"patientId"`
	BloodGroup     patient.BloodGroup `json:"bloodGroup"`
	UnitsRequested int                `json:"unitsRequested"`
	Priority       Priority           `json:"priority"`
	Notes          string             `json:"notes,omitempty"`
}

type RequestSearch struct {
	Status    string
	PatientID string
}

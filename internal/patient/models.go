package patient

import (
	"time"

	patientapi "github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

const dateLayout = "2006-01-02"

// Record is one row of the patients table.
type Record struct {
	PatientID                    string
	FirstName                    string
	LastName                     string
	DateOfBirth                  time.Time
	Gender                       patientapi.Gender
	Phone                        string
	Email                        string
	Address                      string
	City                         string
	State                        string
	ZipCode                      string
	EmergencyContactName         string
	EmergencyContactPhone        string
	EmergencyContactRelationship string
	BloodGroup                   patientapi.BloodGroup
	KnownAllergies               string
	ChronicConditions            string
	Status                       workflow.ActiveStatus
	CreatedAt                    time.Time
	CreatedBy                    string
	UpdatedAt                    time.Time
	UpdatedBy                    string
	DeactivatedAt                *time.Time
	DeactivatedBy                string
	ActivatedAt                  *time.Time
	ActivatedBy                  string
	Version                      int
}

// SearchFilter narrows the patient list. Empty fields do not filter.
type SearchFilter struct {
	Search     string
	Status     workflow.ActiveStatus
	Gender     patientapi.Gender
	BloodGroup patientapi.BloodGroup
	pagination.Params
}

// ageOn returns completed years between dob and today; zero for a missing dob.
func ageOn(dob, today time.Time) int {
	if dob.IsZero() {
		return 0
	}
	years := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func (rec *Record) toPatient(today time.Time) *patientapi.Patient {
	return &patientapi.Patient{
		PatientID:                    rec.PatientID,
		FirstName:                    rec.FirstName,
		LastName:                     rec.LastName,
		DateOfBirth:                  rec.DateOfBirth.Format(dateLayout),
		Age:                          ageOn(rec.DateOfBirth, today),
		Gender:                       rec.Gender,
		BloodGroup:                   rec.BloodGroup,
		PhoneNumber:                  rec.Phone,
		Email:                        rec.Email,
		Address:                      rec.Address,
		City:                         rec.City,
		State:                        rec.State,
		ZipCode:                      rec.ZipCode,
		EmergencyContactName:         rec.EmergencyContactName,
		EmergencyContactPhone:        rec.EmergencyContactPhone,
		EmergencyContactRelationship: rec.EmergencyContactRelationship,
		KnownAllergies:               rec.KnownAllergies,
		ChronicConditions:            rec.ChronicConditions,
		Status:                       rec.Status,
		CreatedAt:                    formatTime(rec.CreatedAt),
		CreatedBy:                    rec.CreatedBy,
		UpdatedAt:                    formatTime(rec.UpdatedAt),
		UpdatedBy:                    rec.UpdatedBy,
		DeactivatedAt:                formatOptionalTime(rec.DeactivatedAt),
		DeactivatedBy:                rec.DeactivatedBy,
		ActivatedAt:                  formatOptionalTime(rec.ActivatedAt),
		ActivatedBy:                  rec.ActivatedBy,
	}
}

func (rec *Record) toSummary(today time.Time) patientapi.Summary {
	return patientapi.Summary{
		PatientID:   rec.PatientID,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		Age:         ageOn(rec.DateOfBirth, today),
		Gender:      rec.Gender,
		PhoneNumber: rec.Phone,
		Status:      rec.Status,
	}
}

// applyRegistration copies the demographic fields of a validated request.
func (rec *Record) applyRegistration(req patientapi.Registration, dob time.Time) {
	rec.FirstName = req.FirstName
	rec.LastName = req.LastName
	rec.DateOfBirth = dob
	rec.Gender = req.Gender
	rec.Phone = req.PhoneNumber
	rec.Email = req.Email
	rec.Address = req.Address
	rec.City = req.City
	rec.State = req.State
	rec.ZipCode = req.ZipCode
	rec.EmergencyContactName = req.EmergencyContactName
	rec.EmergencyContactPhone = req.EmergencyContactPhone
	rec.EmergencyContactRelationship = req.EmergencyContactRelationship
	rec.BloodGroup = req.BloodGroup
	rec.KnownAllergies = req.KnownAllergies
	rec.ChronicConditions = req.ChronicConditions
}

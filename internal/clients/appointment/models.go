package appointment

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

type Type string

const (
	TypeConsultation Type = "CONSULTATION"
	TypeFollowUp     Type = "FOLLOW_UP"
	TypeProcedure    Type = "PROCEDURE"
	TypeEmergency    Type = "EMERGENCY"
)

var AllTypes = []Type{TypeConsultation, TypeFollowUp, TypeProcedure, TypeEmergency}

// StatusFilters lists the appointment list dropdown, ALL first.
var StatusFilters = []string{
	"ALL",
	string(workflow.AppointmentScheduled),
	string(workflow.AppointmentConfirmed),
	string(workflow.AppointmentCompleted),
	string(workflow.AppointmentCancelled),
	string(workflow.AppointmentNoShow),
}

var DoctorStatusFilters = []string{"ALL", string(workflow.Active), string(workflow.Inactive)}

const DefaultConsultationMinutes = 30

type Doctor struct {
	DoctorID                    string                `json:"doctorId"`
	FullName                    string                `json:"fullName"`
	FirstName                   string                `json:"firstName,omitempty"`
	LastName                    string                `json:"lastName,omitempty"`
	Specialization              string                `json:"specialization"`
	Department                  string                `json:"department,omitempty"`
	PhoneNumber                 string                `json:"phoneNumber,omitempty"`
	Email                       string                `json:"email,omitempty"`
	ConsultationDurationMinutes int                   `json:"consultationDurationMinutes"`
	Status                      workflow.ActiveStatus `json:"status"`
}

type DoctorRequest struct {
	FirstName                   string `json:"firstName"`
	LastName                    string `json:"lastName"`
	Specialization              string `json:"specialization"`
	Department                  string `json:"department,omitempty"`
	PhoneNumber                 string `json:"phoneNumber,omitempty"`
	Email                       string `json:"email,omitempty"`
	ConsultationDurationMinutes int    `json:"consultationDurationMinutes,omitempty"`
}

type DoctorSearch struct {
	Search         string
	Status         string
	Specialization string
	Page           int
	Size           int
}

type Appointment struct {
	AppointmentID        string                     `json:"appointmentId"`
	PatientID            string                     `json:"patientId"`
	DoctorID             string                     `json:"doctorId"`
	DoctorName           string                     `json:"doctorName"`
	DoctorSpecialization string                     `json:"doctorSpecialization,omitempty"`
	AppointmentDate      string                     `json:"appointmentDate"`
	AppointmentTime      string                     `json:"appointmentTime"`
	DurationMinutes      int                        `json:"durationMinutes"`
	AppointmentType      Type                       `json:"appointmentType"`
	Status               workflow.AppointmentStatus `json:"status"`
	Reason               string                     `json:"reason,omitempty"`
	Notes                string                     `json:"notes,omitempty"`
	CancellationReason   string                     `json:"cancellationReason,omitempty"`
	CreatedAt            string                     `json:"createdAt,omitempty"`
	CreatedBy            string                     `json:"createdBy,omitempty"`
	ConfirmedAt          string                     `json:"confirmedAt,omitempty"`
	ConfirmedBy          string                     `json:"confirmedBy,omitempty"`
	CancelledAt          string                     `json:"cancelledAt,omitempty"`
	CancelledBy          string                     `json:"cancelledBy,omitempty"`
	CompletedAt          string                     `json:"completedAt,omitempty"`
	CompletedBy          string                     `json:"completedBy,omitempty"`
	NoShowAt             string                     `json:"noShowAt,omitempty"`
}

// Booking is the book/update form.
type Booking struct {
	PatientID       string `json:"patientId"`
	DoctorID        string `json:"doctorId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	AppointmentType Type   `json:"appointmentType"`
	Reason          string `json:"reason,omitempty"`
}

type AppointmentSearch struct {
	PatientID string
	DoctorID  string
	DateFrom  string
	DateTo    string
	Status    string
	Type      string
	Page      int
	Size      int
}

type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
}

type Availability struct {
	DoctorID       string `json:"doctorId,omitempty"`
	Date           string `json:"date,omitempty"`
	AvailableSlots []Slot `json:"availableSlots"`
}

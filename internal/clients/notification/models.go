package notification

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelInApp Channel = "IN_APP"
)

var AllChannels = []Channel{ChannelEmail, ChannelSMS, ChannelInApp}

type RecipientType string

const (
	RecipientPatient RecipientType = "PATIENT"
	RecipientDoctor  RecipientType = "DOCTOR"
	RecipientStaff   RecipientType = "STAFF"
)

var AllRecipientTypes = []RecipientType{RecipientPatient, RecipientDoctor, RecipientStaff}

type ReferenceType string

const (
	ReferenceAppointment ReferenceType = "APPOINTMENT"
	ReferenceInvoice     ReferenceType = "INVOICE"
	ReferencePatient     ReferenceType = "PATIENT"
	ReferenceGeneral     ReferenceType = "GENERAL"
)

var AllReferenceTypes = []ReferenceType{ReferenceAppointment, ReferenceInvoice, ReferencePatient, ReferenceGeneral}

var StatusFilters = []string{
	"ALL",
	string(workflow.NotificationPending),
	string(workflow.NotificationSent),
	string(workflow.NotificationFailed),
	string(workflow.NotificationRead),
}

type Notification struct {
	NotificationID string                      `json:"notificationId"`
	RecipientID    string                      `json:"recipientId"`
	RecipientType  RecipientType               `json:"recipientType"`
	Channel        Channel                     `json:"channel"`
	Subject        string                      `json:"subject"`
	Body           string                      `json:"body"`
	ReferenceType  ReferenceType               `json:"referenceType,omitempty"`
	ReferenceID    string                      `json:"referenceId,omitempty"`
	Status         workflow.NotificationStatus `json:"status"`
	ErrorMessage   string                      `json:"errorMessage,omitempty"`
	SentAt         string                      `json:"sentAt,omitempty"`
	ReadAt         string                      `json:"readAt,omitempty"`
	CreatedAt      string                      `json:"createdAt,omitempty"`
	CreatedBy      string                      `json:"createdBy,omitempty"`
}

type SendRequest struct {
	RecipientID   string        `json:"recipientId"`
	RecipientType RecipientType `json:"recipientType"`
	Channel       Channel       `json:"channel"`
	Subject       string        `json:"subject"`
	Body          string        `json:"body"`
	ReferenceType ReferenceType `json:"referenceType,omitempty"`
	ReferenceID   string        `json:"referenceId,omitempty"`
}

type Search struct {
	RecipientID string
	Channel     string
	Status      string
	Page        int
	Size        int
}

package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	EventPatientRegistered    = "patient.registered"
	EventPatientUpdated       = "patient.updated"
	EventPatientStatusChanged = "patient.status_changed"
)

// ServiceName is stamped on every event this process publishes.
const ServiceName = "patient-service"

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
	Actor       string    `json:"actor"`
}

// Keyed events choose their own Kafka partition key.
type Keyed interface {
	PartitionKey() string
}

// PatientRegisteredEvent carries identifiers only; demographics stay in the
// registry.
type PatientRegisteredEvent struct {
	BaseEvent
	Data PatientRegisteredData `json:"data"`
}

type PatientRegisteredData struct {
	PatientID             string    `json:"patient_id"`
	Gender                string    `json:"gender"`
	BloodGroup            string    `json:"blood_group"`
	DuplicatePhoneWarning bool      `json:"duplicate_phone_warning"`
	CreatedAt             time.Time `json:"created_at"`
}

func (e PatientRegisteredEvent) PartitionKey() string { return e.Data.PatientID }

type PatientUpdatedEvent struct {
	BaseEvent
	Data PatientUpdatedData `json:"data"`
}

type PatientUpdatedData struct {
	PatientID string    `json:"patient_id"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e PatientUpdatedEvent) PartitionKey() string { return e.Data.PatientID }

// PatientStatusChangedEvent represents a patient status change event
type PatientStatusChangedEvent struct {
	BaseEvent
	Data PatientStatusChangedData `json:"data"`
}

type PatientStatusChangedData struct {
	PatientID string    `json:"patient_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

func (e PatientStatusChangedEvent) PartitionKey() string { return e.Data.PatientID }

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType, actor string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		ServiceName: ServiceName,
		Actor:       actor,
	}
}

package patient

import (
	"context"

	patientapi "github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
)

// ServiceInterface defines the contract for patient business logic operations
type ServiceInterface interface {
	Register(ctx context.Context, actor string, req patientapi.Registration) (*patientapi.Patient, error)
	Search(ctx context.Context, params patientapi.SearchParams) (pagination.Page[patientapi.Summary], error)
	Get(ctx context.Context, patientID string) (*patientapi.Patient, error)
	Update(ctx context.Context, actor, patientID string, req patientapi.Registration) (*patientapi.Patient, error)
	Deactivate(ctx context.Context, actor, patientID string) (*patientapi.Patient, error)
	Activate(ctx context.Context, actor, patientID string) (*patientapi.Patient, error)
}

// MetricsRecorder is the slice of telemetry the service reports to.
type MetricsRecorder interface {
	RecordPatientOperation(ctx context.Context, operation string)
	RecordEventPublished(ctx context.Context, broker, routingKey string, ok bool)
}

var _ ServiceInterface = (*Service)(nil)

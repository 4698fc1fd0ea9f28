package patient

import "context"

// RepositoryInterface defines the contract for patient data access
type RepositoryInterface interface {
	Create(ctx context.Context, rec *Record) (*Record, error)
	Get(ctx context.Context, patientID string) (*Record, error)
	Search(ctx context.Context, f SearchFilter) ([]Record, int, error)
	Update(ctx context.Context, rec *Record) (*Record, error)
	PhoneExists(ctx context.Context, phone, excludeID string) (bool, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

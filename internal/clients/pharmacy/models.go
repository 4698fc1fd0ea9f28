package pharmacy

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

type Category string

const (
	CategoryTablet    Category = "TABLET"
	CategoryCapsule   Category = "CAPSULE"
	CategorySyrup     Category = "SYRUP"
	CategoryInjection Category = "INJECTION"
	CategoryOintment  Category = "OINTMENT"
	CategoryDrops     Category = "DROPS"
	CategoryInhaler   Category = "INHALER"
	CategoryOther     Category = "OTHER"
)

var AllCategories = []Category{
	CategoryTablet, CategoryCapsule, CategorySyrup, CategoryInjection,
	CategoryOintment, CategoryDrops, CategoryInhaler, CategoryOther,
}

var PrescriptionStatusFilters = []string{
	"ALL",
	string(workflow.PrescriptionPending),
	string(workflow.PrescriptionDispensed),
	string(workflow.PrescriptionCancelled),
}

type Medicine struct {
	MedicineID    string   `json:"medicineId"`
	Name          string   `json:"name"`
	GenericName   string   `json:"genericName,omitempty"`
	Category      Category `json:"category"`
	Manufacturer  string   `json:"manufacturer,omitempty"`
	Description   string   `json:"description,omitempty"`
	UnitPrice     float64  `json:"unitPrice"`
	StockQuantity int      `json:"stockQuantity"`
	ReorderLevel  int      `json:"reorderLevel"`
	LowStock      bool     `json:"lowStock"`
	Active        bool     `json:"active"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	CreatedBy     string   `json:"createdBy,omitempty"`
}

// Status maps the active flag onto the shared toggle vocabulary.
func (m Medicine) Status() workflow.ActiveStatus {
	return workflow.FromActive(m.Active)
}

type MedicineRequest struct {
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	UnitPrice     float64  `json:"unitPrice"`
	GenericName   string   `json:"genericName,omitempty"`
	Manufacturer  string   `json:"manufacturer,omitempty"`
	StockQuantity *int     `json:"stockQuantity,omitempty"`
	ReorderLevel  *int     `json:"reorderLevel,omitempty"`
	Description   string   `json:"description,omitempty"`
}

type MedicineSearch struct {
	Name     string
	Category string
	IsActive *bool
	LowStock *bool
	Page     int
	Size     int
}

type PrescriptionItem struct {
	ItemID       string  `json:"itemId"`
	MedicineID   string  `json:"medicineId"`
	MedicineName string  `json:"medicineName"`
	Dosage       string  `json:"dosage"`
	Frequency    string  `json:"frequency"`
	DurationDays int     `json:"durationDays"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"totalPrice"`
}

type Prescription struct {
	PrescriptionID string                      `json:"prescriptionId"`
	PatientID      string                      `json:"patientId"`
	DoctorID       string                      `json:"doctorId"`
	RecordID       string                      `json:"recordId,omitempty"`
	Status         workflow.PrescriptionStatus `json:"status"`
	Notes          string                      `json:"notes,omitempty"`
	TotalPrice     float64                     `json:"totalPrice"`
	Items          []PrescriptionItem          `json:"items"`
	CancelReason   string                      `json:"cancelReason,omitempty"`
	CreatedAt      string                      `json:"createdAt,omitempty"`
	DispensedAt    string                      `json:"dispensedAt,omitempty"`
	CancelledAt    string                      `json:"cancelledAt,omitempty"`
}

type PrescriptionRequest struct {
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	RecordID  string `json:"recordId,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type ItemRequest struct {
	MedicineID   string `json:"medicineId"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	DurationDays int    `json:"durationDays"`
	Quantity     int    `json:"quantity"`
}

type PrescriptionSearch struct {
	PatientID string
	DoctorID  string
	Status    string
	Page      int
	Size      int
}

package lab

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

type Category string

const (
	CategoryHematology   Category = "HEMATOLOGY"
	CategoryBiochemistry Category = "BIOCHEMISTRY"
	CategoryMicrobiology Category = "MICROBIOLOGY"
	CategoryPathology    Category = "PATHOLOGY"
	CategoryRadiology    Category = "RADIOLOGY"
	CategoryImmunology   Category = "IMMUNOLOGY"
	CategoryOther        Category = "OTHER"
)

var AllCategories = []Category{
	CategoryHematology, CategoryBiochemistry, CategoryMicrobiology, CategoryPathology,
	CategoryRadiology, CategoryImmunology, CategoryOther,
}

var OrderStatusFilters = []string{
	"ALL",
	string(workflow.LabOrderOrdered),
	string(workflow.LabOrderSampleCollected),
	string(workflow.LabOrderInProgress),
	string(workflow.LabOrderCompleted),
	string(workflow.LabOrderCancelled),
}

// DefaultTurnaroundHours is used when the form leaves turnaround blank.
const DefaultTurnaroundHours = 24

type Test struct {
	TestID          string   `json:"testId"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Category        Category `json:"category"`
	NormalRange     string   `json:"normalRange,omitempty"`
	Unit            string   `json:"unit,omitempty"`
	Price           float64  `json:"price"`
	TurnaroundHours int      `json:"turnaroundHours"`
	Active          bool     `json:"active"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	CreatedBy       string   `json:"createdBy,omitempty"`
}

func (t Test) Status() workflow.ActiveStatus {
	return workflow.FromActive(t.Active)
}

type TestRequest struct {
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	Price           float64  `json:"price"`
	TurnaroundHours int      `json:"turnaroundHours"`
	Description     string   `json:"description,omitempty"`
	NormalRange     string   `json:"normalRange,omitempty"`
	Unit            string   `json:"unit,omitempty"`
}

type TestSearch struct {
	Name     string
	Category string
	IsActive *bool
	Page     int
	Size     int
}

type OrderItem struct {
	ItemID   string                 `json:"itemId"`
	TestID   string                 `json:"testId"`
	TestName string                 `json:"testName"`
	Price    float64                `json:"price"`
	Status   workflow.LabItemStatus `json:"status"`
	Result   string                 `json:"result,omitempty"`
	Remarks  string                 `json:"remarks,omitempty"`
	ResultAt string                 `json:"resultAt,omitempty"`
}

type Order struct {
	OrderID      string                  `json:"orderId"`
	PatientID    string                  `json:"patientId"`
	DoctorID     string                  `json:"doctorId"`
	Status       workflow.LabOrderStatus `json:"status"`
	Notes        string                  `json:"notes,omitempty"`
	TotalPrice   float64                 `json:"totalPrice"`
	Items        []OrderItem             `json:"items"`
	CancelReason string                  `json:"cancelReason,omitempty"`
	CreatedAt    string                  `json:"createdAt,omitempty"`
	CompletedAt  string                  `json:"completedAt,omitempty"`
	CancelledAt  string                  `json:"cancelledAt,omitempty"`
}

type OrderRequest struct {
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	Notes     string `json:"notes,omitempty"`
}

type Result struct {
	Result  string `json:"result"`
	Remarks string `json:"remarks"`
}

type OrderSearch struct {
	PatientID string
	DoctorID  string
	Status    string
	Page      int
	Size      int
}

package inventory

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

type Category string

const (
	CategoryMedicine   Category = "MEDICINE"
	CategorySurgical   Category = "SURGICAL"
	CategoryDiagnostic Category = "DIAGNOSTIC"
	CategoryConsumable Category = "CONSUMABLE"
	CategoryEquipment  Category = "EQUIPMENT"
	CategoryLaboratory Category = "LABORATORY"
	CategoryOffice     Category = "OFFICE"
)

var AllCategories = []Category{
	CategoryMedicine, CategorySurgical, CategoryDiagnostic, CategoryConsumable,
	CategoryEquipment, CategoryLaboratory, CategoryOffice,
}

type TransactionType string

const (
	TransactionIn         TransactionType = "IN"
	TransactionOut        TransactionType = "OUT"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
)

var AllTransactionTypes = []TransactionType{TransactionIn, TransactionOut, TransactionAdjustment}

type Item struct {
	ItemID        string   `json:"itemId"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Description   string   `json:"description,omitempty"`
	Unit          string   `json:"unit"`
	UnitPrice     float64  `json:"unitPrice"`
	CurrentStock  int      `json:"currentStock"`
	MinStockLevel int      `json:"minStockLevel"`
	LowStock      bool     `json:"lowStock"`
	Active        bool     `json:"active"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	CreatedBy     string   `json:"createdBy,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
	UpdatedBy     string   `json:"updatedBy,omitempty"`
}

func (i Item) Status() workflow.ActiveStatus {
	return workflow.FromActive(i.Active)
}

type ItemRequest struct {
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Unit          string   `json:"unit"`
	UnitPrice     *float64 `json:"unitPrice,omitempty"`
	MinStockLevel *int     `json:"minStockLevel,omitempty"`
	InitialStock  *int     `json:"initialStock,omitempty"`
	Description   string   `json:"description,omitempty"`
}

type ItemSearch struct {
	Category     string
	ActiveOnly   *bool
	LowStockOnly bool
}

type Transaction struct {
	TransactionID   string          `json:"transactionId"`
	ItemID          string          `json:"itemId"`
	TransactionType TransactionType `json:"transactionType"`
	Quantity        int             `json:"quantity"`
	StockBefore     int             `json:"stockBefore"`
	StockAfter      int             `json:"stockAfter"`
	ReferenceID     string          `json:"referenceId,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	TransactedAt    string          `json:"transactedAt,omitempty"`
	CreatedBy       string          `json:"createdBy,omitempty"`
}

type TransactionRequest struct {
	ItemID          string          `json:"itemId"`
	TransactionType TransactionType `json:"transactionType"`
	Quantity        int             `json:"quantity"`
	ReferenceID     string          `json:"referenceId,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type TransactionSearch struct {
	ItemID string
	Type   string
}

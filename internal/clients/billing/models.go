package billing

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCard         PaymentMethod = "CARD"
	PaymentInsurance    PaymentMethod = "INSURANCE"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentOther        PaymentMethod = "OTHER"
)

var AllPaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentInsurance, PaymentBankTransfer, PaymentOther}

var StatusFilters = []string{
	"ALL",
	string(workflow.InvoiceDraft),
	string(workflow.InvoiceIssued),
	string(workflow.InvoicePartiallyPaid),
	string(workflow.InvoicePaid),
	string(workflow.InvoiceCancelled),
}

type Item struct {
	ItemID      string  `json:"itemId"`
	Description string  `json:"description"`
	ServiceCode string  `json:"serviceCode,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

type Invoice struct {
	InvoiceID      string                 `json:"invoiceId"`
	PatientID      string                 `json:"patientId"`
	DoctorID       string                 `json:"doctorId"`
	AppointmentID  string                 `json:"appointmentId,omitempty"`
	InvoiceDate    string                 `json:"invoiceDate,omitempty"`
	DueDate        string                 `json:"dueDate,omitempty"`
	Status         workflow.InvoiceStatus `json:"status"`
	Subtotal       float64                `json:"subtotal"`
	TaxAmount      float64                `json:"taxAmount"`
	DiscountAmount float64                `json:"discountAmount"`
	TotalAmount    float64                `json:"totalAmount"`
	PaidAmount     float64                `json:"paidAmount"`
	BalanceDue     float64                `json:"balanceDue"`
	Notes          string                 `json:"notes,omitempty"`
	Items          []Item                 `json:"items,omitempty"`
}

// InvoiceRequest is the create/update form. Amounts are pointers so an
// untouched field is left out rather than sent as zero.
type InvoiceRequest struct {
	PatientID      string   `json:"patientId"`
	DoctorID       string   `json:"doctorId"`
	AppointmentID  string   `json:"appointmentId,omitempty"`
	TaxAmount      *float64 `json:"taxAmount,omitempty"`
	DiscountAmount *float64 `json:"discountAmount,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

type ItemRequest struct {
	Description string  `json:"description"`
	ServiceCode string  `json:"serviceCode,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type Payment struct {
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

type InvoiceSearch struct {
	PatientID string
	Status    string
	Page      int
	Size      int
}

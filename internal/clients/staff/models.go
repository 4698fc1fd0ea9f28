package staff

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

type Role string

const (
	RoleDoctor        Role = "DOCTOR"
	RoleNurse         Role = "NURSE"
	RoleTechnician    Role = "TECHNICIAN"
	RoleAdmin         Role = "ADMIN"
	RolePharmacist    Role = "PHARMACIST"
	RoleReceptionist  Role = "RECEPTIONIST"
	RoleLabTechnician Role = "LAB_TECHNICIAN"
)

var AllRoles = []Role{RoleDoctor, RoleNurse, RoleTechnician, RoleAdmin, RolePharmacist, RoleReceptionist, RoleLabTechnician}

var AllDepartments = []string{
	"GENERAL", "ICU", "EMERGENCY", "MATERNITY", "PEDIATRIC", "SURGICAL",
	"ORTHOPEDIC", "RADIOLOGY", "PHARMACY", "ADMINISTRATION", "LABORATORY",
}

var AllStatuses = []workflow.StaffStatus{workflow.StaffActive, workflow.StaffOnLeave, workflow.StaffResigned, workflow.StaffTerminated}

type LeaveType string

const (
	LeaveSick      LeaveType = "SICK"
	LeaveCasual    LeaveType = "CASUAL"
	LeaveAnnual    LeaveType = "ANNUAL"
	LeaveEmergency LeaveType = "EMERGENCY"
)

var AllLeaveTypes = []LeaveType{LeaveSick, LeaveCasual, LeaveAnnual, LeaveEmergency}

var LeaveStatusFilters = []workflow.LeaveStatus{workflow.LeavePending, workflow.LeaveApproved, workflow.LeaveRejected}

type Member struct {
	StaffID       string               `json:"staffId"`
	FirstName     string               `json:"firstName"`
	LastName      string               `json:"lastName"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone,omitempty"`
	StaffRole     Role                 `json:"staffRole"`
	Department    string               `json:"department"`
	LicenseNumber string               `json:"licenseNumber,omitempty"`
	JoinDate      string               `json:"joinDate,omitempty"`
	Status        workflow.StaffStatus `json:"status"`
	IsActive      bool                 `json:"isActive"`
	CreatedAt     string               `json:"createdAt,omitempty"`
	CreatedBy     string               `json:"createdBy,omitempty"`
	UpdatedAt     string               `json:"updatedAt,omitempty"`
	UpdatedBy     string               `json:"updatedBy,omitempty"`
}

// FullName joins first and last name.
func (m Member) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// ActiveStatus maps the active flag onto the shared toggle vocabulary.
func (m Member) ActiveStatus() workflow.ActiveStatus {
	return workflow.FromActive(m.IsActive)
}

type MemberRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	StaffRole     Role   `json:"staffRole"`
	Department    string `json:"department"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	JoinDate      string `json:"joinDate,omitempty"`
}

type MemberSearch struct {
	Role       string
	Department string
	Status     string
}

type Leave struct {
	LeaveID      string               `json:"leaveId"`
	StaffID      string               `json:"staffId"`
	LeaveType    LeaveType            `json:"leaveType"`
	StartDate    string               `json:"startDate"`
	EndDate      string               `json:"endDate"`
	DurationDays int                  `json:"durationDays"`
	Reason       string               `json:"reason,omitempty"`
	Status       workflow.LeaveStatus `json:"status"`
	ReviewNotes  string               `json:"reviewNotes,omitempty"`
	ReviewedAt   string               `json:"reviewedAt,omitempty"`
	ReviewedBy   string               `json:"reviewedBy,omitempty"`
	CreatedAt    string               `json:"createdAt,omitempty"`
	CreatedBy    string               `json:"createdBy,omitempty"`
}

type LeaveRequest struct {
	StaffID   string    `json:"staffId"`
	LeaveType LeaveType `json:"leaveType"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Reason    string    `json:"reason,omitempty"`
}

// Review is the reviewer's decision on a pending leave.
type Review struct {
	Decision    workflow.LeaveStatus `json:"decision"`
	ReviewNotes string               `json:"reviewNotes,omitempty"`
}

type LeaveSearch struct {
	Status  string
	StaffID string
}

package patient

import "github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// BloodGroup uses the backend's enum names; Label gives the clinical form.
type BloodGroup string

const (
	BloodAPos    BloodGroup = "A_POS"
	BloodANeg    BloodGroup = "A_NEG"
	BloodBPos    BloodGroup = "B_POS"
	BloodBNeg    BloodGroup = "B_NEG"
	BloodABPos   BloodGroup = "AB_POS"
	BloodABNeg   BloodGroup = "AB_NEG"
	BloodOPos    BloodGroup = "O_POS"
	BloodONeg    BloodGroup = "O_NEG"
	BloodUnknown BloodGroup = "UNKNOWN"
)

var BloodGroups = []BloodGroup{BloodAPos, BloodANeg, BloodBPos, BloodBNeg, BloodABPos, BloodABNeg, BloodOPos, BloodONeg, BloodUnknown}

var bloodLabels = map[BloodGroup]string{
	BloodAPos:    "A+",
	BloodANeg:    "A-",
	BloodBPos:    "B+",
	BloodBNeg:    "B-",
	BloodABPos:   "AB+",
	BloodABNeg:   "AB-",
	BloodOPos:    "O+",
	BloodONeg:    "O-",
	BloodUnknown: "Unknown",
}

// Label returns the display form, e.g. "AB+".
func (b BloodGroup) Label() string {
	if l, ok := bloodLabels[b]; ok {
		return l
	}
	return string(b)
}

// Valid reports whether b is one of the known groups.
func (b BloodGroup) Valid() bool {
	_, ok := bloodLabels[b]
	return ok
}

// StatusFilters are the choices offered by the patient list.
var StatusFilters = []string{"ALL", string(workflow.Active), string(workflow.Inactive)}

// Summary is one row of the patient list.
type Summary struct {
	PatientID   string                `json:"patientId"`
	FirstName   string                `json:"firstName"`
	LastName    string                `json:"lastName"`
	Age         int                   `json:"age"`
	Gender      Gender                `json:"gender"`
	PhoneNumber string                `json:"phoneNumber"`
	Status      workflow.ActiveStatus `json:"status"`
}

// Patient is the full profile.
type Patient struct {
	PatientID                    string                `json:"patientId"`
	FirstName                    string                `json:"firstName"`
	LastName                     string                `json:"lastName"`
	DateOfBirth                  string                `json:"dateOfBirth"`
	Age                          int                   `json:"age"`
	Gender                       Gender                `json:"gender"`
	BloodGroup                   BloodGroup            `json:"bloodGroup"`
	PhoneNumber                  string                `json:"phoneNumber"`
	Email                        string                `json:"email,omitempty"`
	Address                      string                `json:"address,omitempty"`
	City                         string                `json:"city,omitempty"`
	State                        string                `json:"state,omitempty"`
	ZipCode                      string                `json:"zipCode,omitempty"`
	EmergencyContactName         string                `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone        string                `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelationship string                `json:"emergencyContactRelationship,omitempty"`
	KnownAllergies               string                `json:"knownAllergies,omitempty"`
	ChronicConditions            string                `json:"chronicConditions,omitempty"`
	Status                       workflow.ActiveStatus `json:"status"`
	DuplicatePhoneWarning        bool                  `json:"duplicatePhoneWarning,omitempty"`
	CreatedAt                    string                `json:"createdAt,omitempty"`
	CreatedBy                    string                `json:"createdBy,omitempty"`
	UpdatedAt                    string                `json:"updatedAt,omitempty"`
	UpdatedBy                    string                `json:"updatedBy,omitempty"`
	DeactivatedAt                string                `json:"deactivatedAt,omitempty"`
	DeactivatedBy                string                `json:"deactivatedBy,omitempty"`
	ActivatedAt                  string                `json:"activatedAt,omitempty"`
	ActivatedBy                  string                `json:"activatedBy,omitempty"`
}

// Registration is the register/update form. Empty optional fields are omitted
// from the request body.
type Registration struct {
	FirstName                    string     `json:"firstName"`
	LastName                     string     `json:"lastName"`
	DateOfBirth                  string     `json:"dateOfBirth"`
	Gender                       Gender     `json:"gender"`
	PhoneNumber                  string     `json:"phoneNumber"`
	BloodGroup                   BloodGroup `json:"bloodGroup,omitempty"`
	Email                        string     `json:"email,omitempty"`
	Address                      string     `json:"address,omitempty"`
	City                         string     `json:"city,omitempty"`
	State                        string     `json:"state,omitempty"`
	ZipCode                      string     `json:"zipCode,omitempty"`
	EmergencyContactName         string     `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone        string     `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelationship string     `json:"emergencyContactRelationship,omitempty"`
	KnownAllergies               string     `json:"knownAllergies,omitempty"`
	ChronicConditions            string     `json:"chronicConditions,omitempty"`
}

// SearchParams are the list filters.
type SearchParams struct {
	Search     string
	Status     string
	Gender     string
	BloodGroup string
	Page       int
	Size       int
}

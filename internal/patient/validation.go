package patient

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	patientapi "github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
)

var phonePattern = regexp.MustCompile(`^(\+1-\d{3}-\d{3}-\d{4}|\(\d{3}\) \d{3}-\d{4}|\d{3}-\d{3}-\d{4})$`)

const msgInvalidPhone = "Invalid phone number format. Accepted: +1-XXX-XXX-XXXX, (XXX) XXX-XXXX, XXX-XXX-XXXX"

type lengthRule struct {
	field string
	label string
	value string
	max   int
}

// normalize trims the identifying fields and defaults the blood group.
func normalize(req *patientapi.Registration) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Email = strings.TrimSpace(req.Email)
	if req.BloodGroup == "" {
		req.BloodGroup = patientapi.BloodUnknown
	}
}

// validate checks a normalised registration and returns its parsed date of
// birth. today is the caller's current date.
func validate(req patientapi.Registration, today time.Time) (time.Time, error) {
	fields := map[string]string{}
	set := func(field, msg string) {
		if _, ok := fields[field]; !ok {
			fields[field] = msg
		}
	}

	if req.FirstName == "" {
		set("firstName", "First name is required")
	}
	if req.LastName == "" {
		set("lastName", "Last name is required")
	}

	var dob time.Time
	if strings.TrimSpace(req.DateOfBirth) == "" {
		set("dateOfBirth", "Date of birth is required")
	} else if parsed, err := time.Parse(dateLayout, strings.TrimSpace(req.DateOfBirth)); err != nil {
		set("dateOfBirth", "Date of birth must be a valid date (YYYY-MM-DD)")
	} else if parsed.After(dateOnly(today)) {
		set("dateOfBirth", "Date of birth must not be in the future")
	} else {
		dob = parsed
	}

	switch req.Gender {
	case "":
		set("gender", "Gender is required")
	case patientapi.GenderMale, patientapi.GenderFemale, patientapi.GenderOther:
	default:
		set("gender", "Gender must be one of MALE, FEMALE, OTHER")
	}

	if req.PhoneNumber == "" {
		set("phoneNumber", "Phone number is required")
	} else if !phonePattern.MatchString(req.PhoneNumber) {
		set("phoneNumber", msgInvalidPhone)
	}

	if req.Email != "" {
		if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
			set("email", "Invalid email format")
		}
	}

	if !req.BloodGroup.Valid() {
		set("bloodGroup", "Blood group must be one of A_POS, A_NEG, B_POS, B_NEG, AB_POS, AB_NEG, O_POS, O_NEG, UNKNOWN")
	}

	for _, r := range []lengthRule{
		{"firstName", "First name", req.FirstName, 50},
		{"lastName", "Last name", req.LastName, 50},
		{"email", "Email", req.Email, 100},
		{"address", "Address", req.Address, 255},
		{"city", "City", req.City, 100},
		{"state", "State", req.State, 100},
		{"zipCode", "Zip code", req.ZipCode, 20},
		{"emergencyContactName", "Emergency contact name", req.EmergencyContactName, 100},
		{"emergencyContactPhone", "Emergency contact phone", req.EmergencyContactPhone, 20},
		{"emergencyContactRelationship", "Emergency contact relationship", req.EmergencyContactRelationship, 50},
	} {
		if utf8.RuneCountInString(r.value) > r.max {
			set(r.field, r.label+" must not exceed "+strconv.Itoa(r.max)+" characters")
		}
	}

	if len(fields) > 0 {
		return time.Time{}, &ValidationError{Fields: fields}
	}
	return dob, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

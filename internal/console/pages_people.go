package console

import (
	"context"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/appointment"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

// Patients

func (c *Console) patientList() page {
	return &listPage[patient.SearchParams, patient.Summary]{
		title:   "Patients",
		filters: []string{"search", "status", "gender", "bloodGroup"},
		build: func(v Values) patient.SearchParams {
			return patient.SearchParams{
				Search:     v.Get("search"),
				Status:     v.Get("status"),
				Gender:     v.Get("gender"),
				BloodGroup: v.Get("bloodGroup"),
			}
		},
		fetch: func(ctx context.Context, f patient.SearchParams, page, size int) (pagination.Page[patient.Summary], error) {
			f.Page, f.Size = page, size
			return c.clients.Patients.SearchPatients(ctx, f)
		},
		columns: []string{"ID", "NAME", "AGE", "GENDER", "PHONE", "STATUS"},
		row: func(c *Console, p patient.Summary) []string {
			return []string{p.PatientID, join(" ", p.FirstName, p.LastName), itoa(p.Age), string(p.Gender), p.PhoneNumber, c.r.Badge(string(p.Status))}
		},
		empty: "No patients found.",
	}
}

var patientFields = []field{
	{"firstName", true, nil},
	{"lastName", true, nil},
	{"dateOfBirth", true, nil},
	{"gender", true, strs(patient.Genders)},
	{"phoneNumber", true, nil},
	{"bloodGroup", false, strs(patient.BloodGroups)},
	{"email", false, nil},
	{"address", false, nil},
	{"city", false, nil},
	{"state", false, nil},
	{"zipCode", false, nil},
	{"emergencyContactName", false, nil},
	{"emergencyContactPhone", false, nil},
	{"emergencyContactRelationship", false, nil},
	{"knownAllergies", false, nil},
	{"chronicConditions", false, nil},
}

// applyRegistration copies every given field onto reg.
func applyRegistration(d *decoder, reg *patient.Registration) {
	set(d, "firstName", &reg.FirstName)
	set(d, "lastName", &reg.LastName)
	set(d, "dateOfBirth", &reg.DateOfBirth)
	set(d, "gender", &reg.Gender)
	set(d, "phoneNumber", &reg.PhoneNumber)
	set(d, "bloodGroup", &reg.BloodGroup)
	set(d, "email", &reg.Email)
	set(d, "address", &reg.Address)
	set(d, "city", &reg.City)
	set(d, "state", &reg.State)
	set(d, "zipCode", &reg.ZipCode)
	set(d, "emergencyContactName", &reg.EmergencyContactName)
	set(d, "emergencyContactPhone", &reg.EmergencyContactPhone)
	set(d, "emergencyContactRelationship", &reg.EmergencyContactRelationship)
	set(d, "knownAllergies", &reg.KnownAllergies)
	set(d, "chronicConditions", &reg.ChronicConditions)
}

func registrationOf(p patient.Patient) patient.Registration {
	return patient.Registration{
		FirstName:                    p.FirstName,
		LastName:                     p.LastName,
		DateOfBirth:                  p.DateOfBirth,
		Gender:                       p.Gender,
		PhoneNumber:                  p.PhoneNumber,
		BloodGroup:                   p.BloodGroup,
		Email:                        p.Email,
		Address:                      p.Address,
		City:                         p.City,
		State:                        p.State,
		ZipCode:                      p.ZipCode,
		EmergencyContactName:         p.EmergencyContactName,
		EmergencyContactPhone:        p.EmergencyContactPhone,
		EmergencyContactRelationship: p.EmergencyContactRelationship,
		KnownAllergies:               p.KnownAllergies,
		ChronicConditions:            p.ChronicConditions,
	}
}

func (c *Console) patientRegister() page {
	return &formPage[patient.Registration, patient.Patient]{
		title:  "Register patient",
		fields: patientFields,
		build: func(d *decoder) patient.Registration {
			var reg patient.Registration
			applyRegistration(d, &reg)
			return reg
		},
		send: func(ctx context.Context, reg patient.Registration) (patient.Patient, error) {
			return c.clients.Patients.RegisterPatient(ctx, reg, "")
		},
		path: func(p patient.Patient) string { return "/patients/" + p.PatientID },
		show: showPatient,
		notice: func(p patient.Patient) string {
			if p.DuplicatePhoneWarning {
				return "another patient is already registered with this phone number"
			}
			return ""
		},
	}
}

func (c *Console) patientDetail() page {
	return &detailPage[patient.Patient]{
		noun: "patient",
		load: c.clients.Patients.GetPatient,
		show: showPatient,
		actions: func(p patient.Patient) []workflow.Action {
			return append([]workflow.Action{workflow.ActionEdit}, workflow.Toggle.Actions(p.Status)...)
		},
		run: func(ctx context.Context, id string, p patient.Patient, a workflow.Action, d *decoder) (patient.Patient, error) {
			switch a {
			case workflow.ActionEdit:
				if err := needAny(d); err != nil {
					return p, err
				}
				reg := registrationOf(p)
				applyRegistration(d, &reg)
				return c.clients.Patients.UpdatePatient(ctx, id, reg, "")
			case workflow.ActionDeactivate:
				return c.clients.Patients.DeactivatePatient(ctx, id, "")
			case workflow.ActionActivate:
				return c.clients.Patients.ActivatePatient(ctx, id, "")
			}
			return p, errUnknownAction
		},
	}
}

func showPatient(c *Console, p patient.Patient) {
	c.r.Title("Patient " + p.PatientID)
	c.r.Fields(
		kv{"Name", join(" ", p.FirstName, p.LastName)},
		kv{"Status", c.r.Badge(string(p.Status))},
		kv{"Date of birth", join(" ", p.DateOfBirth, "(age "+itoa(p.Age)+")")},
		kv{"Gender", string(p.Gender)},
		kv{"Blood group", p.BloodGroup.Label()},
		kv{"Phone", p.PhoneNumber},
		kv{"Email", p.Email},
		kv{"Address", join(", ", p.Address, p.City, p.State, p.ZipCode)},
		kv{"Emergency contact", join(" / ", p.EmergencyContactName, p.EmergencyContactRelationship, p.EmergencyContactPhone)},
		kv{"Known allergies", p.KnownAllergies},
		kv{"Chronic conditions", p.ChronicConditions},
		kv{"Registered", join(" by ", p.CreatedAt, p.CreatedBy)},
		kv{"Last updated", join(" by ", p.UpdatedAt, p.UpdatedBy)},
		kv{"Deactivated", join(" by ", p.DeactivatedAt, p.DeactivatedBy)},
		kv{"Activated", join(" by ", p.ActivatedAt, p.ActivatedBy)},
	)
}

// Doctors

func (c *Console) doctorList() page {
	return &listPage[appointment.DoctorSearch, appointment.Doctor]{
		title:   "Doctors",
		filters: []string{"search", "status", "specialization"},
		build: func(v Values) appointment.DoctorSearch {
			return appointment.DoctorSearch{Search: v.Get("search"), Status: v.Get("status"), Specialization: v.Get("specialization")}
		},
		fetch: func(ctx context.Context, f appointment.DoctorSearch, page, size int) (pagination.Page[appointment.Doctor], error) {
			f.Page, f.Size = page, size
			return c.clients.Appointments.SearchDoctors(ctx, f)
		},
		columns: []string{"ID", "NAME", "SPECIALIZATION", "DEPARTMENT", "SLOT (MIN)", "STATUS"},
		row: func(c *Console, d appointment.Doctor) []string {
			return []string{d.DoctorID, d.FullName, d.Specialization, d.Department, itoa(d.ConsultationDurationMinutes), c.r.Badge(string(d.Status))}
		},
		empty: "No doctors found.",
	}
}

var doctorFields = []field{
	{"firstName", true, nil},
	{"lastName", true, nil},
	{"specialization", true, nil},
	{"department", false, nil},
	{"phoneNumber", false, nil},
	{"email", false, nil},
	{"consultationDurationMinutes", false, nil},
}

func applyDoctor(d *decoder, req *appointment.DoctorRequest) {
	set(d, "firstName", &req.FirstName)
	set(d, "lastName", &req.LastName)
	set(d, "specialization", &req.Specialization)
	set(d, "department", &req.Department)
	set(d, "phoneNumber", &req.PhoneNumber)
	set(d, "email", &req.Email)
	setNum(d, "consultationDurationMinutes", &req.ConsultationDurationMinutes)
}

func (c *Console) doctorNew() page {
	return &formPage[appointment.DoctorRequest, appointment.Doctor]{
		title:  "Register doctor",
		fields: doctorFields,
		build: func(d *decoder) appointment.DoctorRequest {
			var req appointment.DoctorRequest
			applyDoctor(d, &req)
			return req
		},
		send: func(ctx context.Context, req appointment.DoctorRequest) (appointment.Doctor, error) {
			return c.clients.Appointments.RegisterDoctor(ctx, req, "")
		},
		path: func(d appointment.Doctor) string { return "/doctors/" + d.DoctorID },
		show: showDoctor,
	}
}

func (c *Console) doctorDetail() page {
	return &detailPage[appointment.Doctor]{
		noun: "doctor",
		load: c.clients.Appointments.GetDoctor,
		show: showDoctor,
		actions: func(d appointment.Doctor) []workflow.Action {
			return append([]workflow.Action{workflow.ActionEdit}, workflow.Toggle.Actions(d.Status)...)
		},
		run: func(ctx context.Context, id string, doc appointment.Doctor, a workflow.Action, d *decoder) (appointment.Doctor, error) {
			switch a {
			case workflow.ActionEdit:
				if err := needAny(d); err != nil {
					return doc, err
				}
				req := appointment.DoctorRequest{
					FirstName:                   doc.FirstName,
					LastName:                    doc.LastName,
					Specialization:              doc.Specialization,
					Department:                  doc.Department,
					PhoneNumber:                 doc.PhoneNumber,
					Email:                       doc.Email,
					ConsultationDurationMinutes: doc.ConsultationDurationMinutes,
				}
				applyDoctor(d, &req)
				if err := d.err(); err != nil {
					return doc, err
				}
				return c.clients.Appointments.UpdateDoctor(ctx, id, req, "")
			case workflow.ActionDeactivate:
				return c.clients.Appointments.DeactivateDoctor(ctx, id, "")
			case workflow.ActionActivate:
				return c.clients.Appointments.ActivateDoctor(ctx, id, "")
			}
			return doc, errUnknownAction
		},
	}
}

func showDoctor(c *Console, d appointment.Doctor) {
	c.r.Title("Doctor " + d.DoctorID)
	c.r.Fields(
		kv{"Name", d.FullName},
		kv{"Status", c.r.Badge(string(d.Status))},
		kv{"Specialization", d.Specialization},
		kv{"Department", d.Department},
		kv{"Phone", d.PhoneNumber},
		kv{"Email", d.Email},
		kv{"Consultation", itoa(d.ConsultationDurationMinutes) + " min"},
	)
}

// Appointments

func (c *Console) appointmentList() page {
	return &listPage[appointment.AppointmentSearch, appointment.Appointment]{
		title:   "Appointments",
		filters: []string{"patientId", "doctorId", "dateFrom", "dateTo", "status", "type"},
		build: func(v Values) appointment.AppointmentSearch {
			return appointment.AppointmentSearch{
				PatientID: v.Get("patientId"),
				DoctorID:  v.Get("doctorId"),
				DateFrom:  v.Get("dateFrom"),
				DateTo:    v.Get("dateTo"),
				Status:    v.Get("status"),
				Type:      v.Get("type"),
			}
		},
		fetch: func(ctx context.Context, f appointment.AppointmentSearch, page, size int) (pagination.Page[appointment.Appointment], error) {
			f.Page, f.Size = page, size
			return c.clients.Appointments.SearchAppointments(ctx, f)
		},
		columns: []string{"ID", "DATE", "TIME", "PATIENT", "DOCTOR", "TYPE", "STATUS"},
		row: func(c *Console, a appointment.Appointment) []string {
			return []string{a.AppointmentID, a.AppointmentDate, a.AppointmentTime, a.PatientID, a.DoctorName, string(a.AppointmentType), c.r.Badge(string(a.Status))}
		},
		empty: "No appointments found.",
	}
}

func (c *Console) appointmentBook() page {
	return &formPage[appointment.Booking, appointment.Appointment]{
		title: "Book appointment",
		fields: []field{
			{"patientId", true, nil},
			{"doctorId", true, nil},
			{"appointmentDate", true, nil},
			{"appointmentTime", true, nil},
			{"appointmentType", false, strs(appointment.AllTypes)},
			{"reason", false, nil},
		},
		build: func(d *decoder) appointment.Booking {
			b := appointment.Booking{AppointmentType: appointment.TypeConsultation}
			set(d, "patientId", &b.PatientID)
			set(d, "doctorId", &b.DoctorID)
			set(d, "appointmentDate", &b.AppointmentDate)
			set(d, "appointmentTime", &b.AppointmentTime)
			set(d, "appointmentType", &b.AppointmentType)
			set(d, "reason", &b.Reason)
			return b
		},
		send: func(ctx context.Context, b appointment.Booking) (appointment.Appointment, error) {
			return c.clients.Appointments.BookAppointment(ctx, b, "")
		},
		path: appointmentPath,
		show: showAppointment,
	}
}

func appointmentPath(a appointment.Appointment) string {
	return "/appointments/" + a.AppointmentID
}

func (c *Console) appointmentDetail() page {
	return &detailPage[appointment.Appointment]{
		noun: "appointment",
		load: c.clients.Appointments.GetAppointment,
		show: showAppointment,
		actions: func(a appointment.Appointment) []workflow.Action {
			return workflow.Appointment.Actions(a.Status)
		},
		run: func(ctx context.Context, id string, a appointment.Appointment, action workflow.Action, d *decoder) (appointment.Appointment, error) {
			switch action {
			case workflow.ActionConfirm:
				return c.clients.Appointments.ConfirmAppointment(ctx, id, "")
			case workflow.ActionCancel:
				return c.clients.Appointments.CancelAppointment(ctx, id, d.str("reason"), "")
			case workflow.ActionComplete:
				return c.clients.Appointments.CompleteAppointment(ctx, id, d.str("notes"), "")
			case workflow.ActionNoShow:
				return c.clients.Appointments.NoShowAppointment(ctx, id, "")
			}
			return a, errUnknownAction
		},
	}
}

func showAppointment(c *Console, a appointment.Appointment) {
	c.r.Title("Appointment " + a.AppointmentID)
	c.r.Fields(
		kv{"Status", c.r.Badge(string(a.Status))},
		kv{"Patient", a.PatientID},
		kv{"Doctor", join(" - ", a.DoctorName, a.DoctorSpecialization)},
		kv{"When", join(" ", a.AppointmentDate, a.AppointmentTime)},
		kv{"Duration", itoa(a.DurationMinutes) + " min"},
		kv{"Type", string(a.AppointmentType)},
		kv{"Reason", a.Reason},
		kv{"Notes", a.Notes},
		kv{"Cancellation reason", a.CancellationReason},
		kv{"Booked", join(" by ", a.CreatedAt, a.CreatedBy)},
		kv{"Confirmed", join(" by ", a.ConfirmedAt, a.ConfirmedBy)},
		kv{"Completed", join(" by ", a.CompletedAt, a.CompletedBy)},
		kv{"Cancelled", join(" by ", a.CancelledAt, a.CancelledBy)},
		kv{"No-show", a.NoShowAt},
	)
}

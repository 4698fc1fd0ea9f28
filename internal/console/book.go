package console

import (
	"context"
	"regexp"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/appointment"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/view"
)

var slotTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Booking is the guided booking flow's input. Slot empty means "show me the
// free slots".
type Booking struct {
	PatientID string
	DoctorID  string
	Date      string
	Slot      string
	Type      string
	Reason    string
}

// Book checks the doctor's availability for the date and, when a slot is
// given, books it and moves to the new appointment's page. Without a slot
// it lists the free slots. A date with no free slots cannot be booked. When
// availability cannot be loaded the given slot is booked as entered.
func (c *Console) Book(ctx context.Context, b Booking) error {
	c.r.Title("Book appointment")
	errs := map[string]string{}
	if b.PatientID == "" {
		errs["patient"] = "is required"
	}
	if b.DoctorID == "" {
		errs["doctor"] = "is required"
	}
	if b.Date == "" {
		errs["date"] = "is required"
	}
	if b.Slot != "" && !slotTime.MatchString(b.Slot) {
		errs["slot"] = "must be HH:MM"
	}
	if b.Type != "" && !containsString(strs(appointment.AllTypes), b.Type) {
		errs["type"] = "must be one of " + join(", ", strs(appointment.AllTypes)...)
	}
	if len(errs) > 0 {
		err := &FormError{Fields: errs}
		c.r.Banner(&view.Banner{Message: err.Error()}, "")
		return err
	}

	c.r.Busy("Checking availability")
	avail, err := c.clients.Appointments.GetAvailability(ctx, b.DoctorID, b.Date)
	if err != nil {
		if b.Slot == "" {
			retry := func(ctx context.Context) error { return c.Book(ctx, b) }
			c.r.Banner(&view.Banner{Message: err.Error(), Retry: retry}, "console book --patient "+b.PatientID+" --doctor "+b.DoctorID+" --date "+b.Date)
			c.r.Line("Or enter a time with --slot HH:MM.")
			return err
		}
		c.r.Banner(&view.Banner{Message: err.Error()}, "")
		c.logger.Warn().Err(err).Str("doctor_id", b.DoctorID).Str("slot", b.Slot).Msg("availability unavailable, booking entered time")
		return c.bookSlot(ctx, b)
	}
	slots := make([]string, len(avail.AvailableSlots))
	for i, s := range avail.AvailableSlots {
		slots[i] = s.StartTime
	}

	if len(slots) == 0 {
		if b.Slot == "" {
			c.r.Line("Doctor %s on %s", b.DoctorID, b.Date)
			c.r.Line("No available slots for this date.")
			return nil
		}
		err := &FormError{Fields: map[string]string{"slot": "no available slots for this date"}}
		c.r.Banner(&view.Banner{Message: err.Error()}, "")
		return err
	}

	if b.Slot == "" {
		c.r.Line("Doctor %s on %s", b.DoctorID, b.Date)
		rows := make([][]string, len(avail.AvailableSlots))
		for i, s := range avail.AvailableSlots {
			rows[i] = []string{s.StartTime, s.EndTime}
		}
		c.r.Table([]string{"START", "END"}, rows, "")
		c.r.Line("")
		c.r.Line("  console book --patient %s --doctor %s --date %s --slot HH:MM", b.PatientID, b.DoctorID, b.Date)
		return nil
	}

	if !containsString(slots, b.Slot) {
		err := &FormError{Fields: map[string]string{"slot": "is not free; choose one of " + join(", ", slots...)}}
		c.r.Banner(&view.Banner{Message: err.Error()}, "")
		return err
	}
	return c.bookSlot(ctx, b)
}

func (c *Console) bookSlot(ctx context.Context, b Booking) error {
	booking := appointment.Booking{
		PatientID:       b.PatientID,
		DoctorID:        b.DoctorID,
		AppointmentDate: b.Date,
		AppointmentTime: b.Slot,
		AppointmentType: appointment.TypeConsultation,
		Reason:          b.Reason,
	}
	if b.Type != "" {
		booking.AppointmentType = appointment.Type(b.Type)
	}

	c.r.Busy("Booking")
	created, err := c.clients.Appointments.BookAppointment(ctx, booking, "")
	if err != nil {
		c.r.Banner(&view.Banner{Message: err.Error()}, "")
		return err
	}
	c.logger.Info().Str("appointment_id", created.AppointmentID).Str("doctor_id", b.DoctorID).Msg("appointment booked")
	c.r.Line("-> %s", appointmentPath(created))
	c.r.Line("")
	showAppointment(c, created)
	return nil
}

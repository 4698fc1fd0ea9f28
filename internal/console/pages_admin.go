package console

import (
	"context"
	"fmt"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/bed"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/billing"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/notification"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/staff"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

// Invoices

func (c *Console) invoiceList() page {
	return &listPage[billing.InvoiceSearch, billing.Invoice]{
		title:   "Invoices",
		filters: []string{"patientId", "status"},
		build: func(v Values) billing.InvoiceSearch {
			return billing.InvoiceSearch{PatientID: v.Get("patientId"), Status: v.Get("status")}
		},
		fetch: func(ctx context.Context, f billing.InvoiceSearch, page, size int) (pagination.Page[billing.Invoice], error) {
			f.Page, f.Size = page, size
			return c.clients.Billing.ListInvoices(ctx, f)
		},
		columns: []string{"ID", "PATIENT", "DATE", "TOTAL", "PAID", "BALANCE", "STATUS"},
		row: func(c *Console, inv billing.Invoice) []string {
			return []string{inv.InvoiceID, inv.PatientID, inv.InvoiceDate, money(inv.TotalAmount), money(inv.PaidAmount), money(inv.BalanceDue), c.r.Badge(string(inv.Status))}
		},
		empty: "No invoices found.",
	}
}

func applyInvoice(d *decoder, req *billing.InvoiceRequest) {
	set(d, "patientId", &req.PatientID)
	set(d, "doctorId", &req.DoctorID)
	set(d, "appointmentId", &req.AppointmentID)
	set(d, "notes", &req.Notes)
	if f := d.optDecimal("taxAmount"); f != nil {
		req.TaxAmount = f
	}
	if f := d.optDecimal("discountAmount"); f != nil {
		req.DiscountAmount = f
	}
}

func (c *Console) invoiceNew() page {
	return &formPage[billing.InvoiceRequest, billing.Invoice]{
		title: "New invoice",
		fields: []field{
			{"patientId", true, nil},
			{"doctorId", true, nil},
			{"appointmentId", false, nil},
			{"taxAmount", false, nil},
			{"discountAmount", false, nil},
			{"notes", false, nil},
		},
		build: func(d *decoder) billing.InvoiceRequest {
			var req billing.InvoiceRequest
			applyInvoice(d, &req)
			return req
		},
		send: func(ctx context.Context, req billing.InvoiceRequest) (billing.Invoice, error) {
			return c.clients.Billing.CreateInvoice(ctx, req, "")
		},
		path: func(inv billing.Invoice) string { return "/invoices/" + inv.InvoiceID },
		show: showInvoice,
	}
}

func (c *Console) invoiceDetail() page {
	return &detailPage[billing.Invoice]{
		noun: "invoice",
		load: c.clients.Billing.GetInvoice,
		show: showInvoice,
		actions: func(inv billing.Invoice) []workflow.Action {
			return workflow.Invoice.Actions(inv.Status)
		},
		run: func(ctx context.Context, id string, inv billing.Invoice, a workflow.Action, d *decoder) (billing.Invoice, error) {
			switch a {
			case workflow.ActionEdit:
				if err := needAny(d); err != nil {
					return inv, err
				}
				tax, discount := inv.TaxAmount, inv.DiscountAmount
				req := billing.InvoiceRequest{
					PatientID:      inv.PatientID,
					DoctorID:       inv.DoctorID,
					AppointmentID:  inv.AppointmentID,
					TaxAmount:      &tax,
					DiscountAmount: &discount,
					Notes:          inv.Notes,
				}
				applyInvoice(d, &req)
				if err := d.err(); err != nil {
					return inv, err
				}
				return c.clients.Billing.UpdateInvoice(ctx, id, req, "")
			case workflow.ActionAddItem:
				if err := require(d, "description", "quantity", "unitPrice"); err != nil {
					return inv, err
				}
				req := billing.ItemRequest{
					Description: d.str("description"),
					ServiceCode: d.str("serviceCode"),
					Quantity:    d.num("quantity"),
					UnitPrice:   d.decimal("unitPrice"),
				}
				if err := d.err(); err != nil {
					return inv, err
				}
				return c.clients.Billing.AddInvoiceItem(ctx, id, req, "")
			case workflow.ActionRemoveItem:
				if err := require(d, "itemId"); err != nil {
					return inv, err
				}
				if _, err := c.clients.Billing.RemoveInvoiceItem(ctx, id, d.str("itemId"), ""); err != nil {
					return inv, err
				}
				return c.clients.Billing.GetInvoice(ctx, id)
			case workflow.ActionIssue:
				return c.clients.Billing.IssueInvoice(ctx, id, "")
			case workflow.ActionPay:
				if err := require(d, "amount", "paymentMethod"); err != nil {
					return inv, err
				}
				p := billing.Payment{Amount: d.decimal("amount"), PaymentMethod: billing.PaymentMethod(d.str("paymentMethod"))}
				if err := d.err(); err != nil {
					return inv, err
				}
				if !containsString(strs(billing.AllPaymentMethods), string(p.PaymentMethod)) {
					return inv, &FormError{Fields: map[string]string{"paymentMethod": "must be one of " + join(", ", strs(billing.AllPaymentMethods)...)}}
				}
				if p.Amount <= 0 {
					return inv, &FormError{Fields: map[string]string{"amount": "must be greater than zero"}}
				}
				return c.clients.Billing.RecordPayment(ctx, id, p, "")
			case workflow.ActionCancel:
				return c.clients.Billing.CancelInvoice(ctx, id, d.str("reason"), "")
			}
			return inv, errUnknownAction
		},
	}
}

func showInvoice(c *Console, inv billing.Invoice) {
	c.r.Title("Invoice " + inv.InvoiceID)
	c.r.Fields(
		kv{"Status", c.r.Badge(string(inv.Status))},
		kv{"Patient", inv.PatientID},
		kv{"Doctor", inv.DoctorID},
		kv{"Appointment", inv.AppointmentID},
		kv{"Invoice date", inv.InvoiceDate},
		kv{"Due date", inv.DueDate},
		kv{"Notes", inv.Notes},
	)
	c.r.Line("")
	rows := make([][]string, len(inv.Items))
	for i, it := range inv.Items {
		rows[i] = []string{it.ItemID, it.Description, it.ServiceCode, itoa(it.Quantity), money(it.UnitPrice), money(it.Amount)}
	}
	c.r.Table([]string{"ITEM", "DESCRIPTION", "CODE", "QTY", "UNIT PRICE", "AMOUNT"}, rows, "No line items.")
	c.r.Line("")
	c.r.Fields(
		kv{"Subtotal", money(inv.Subtotal)},
		kv{"Tax", money(inv.TaxAmount)},
		kv{"Discount", money(inv.DiscountAmount)},
		kv{"Total", money(inv.TotalAmount)},
		kv{"Paid", money(inv.PaidAmount)},
		kv{"Balance due", money(inv.BalanceDue)},
	)
}

// Notifications

func (c *Console) notificationList() page {
	return &listPage[notification.Search, notification.Notification]{
		title:   "Notifications",
		filters: []string{"recipientId", "channel", "status"},
		build: func(v Values) notification.Search {
			return notification.Search{RecipientID: v.Get("recipientId"), Channel: v.Get("channel"), Status: v.Get("status")}
		},
		fetch: func(ctx context.Context, f notification.Search, page, size int) (pagination.Page[notification.Notification], error) {
			f.Page, f.Size = page, size
			return c.clients.Notifications.ListNotifications(ctx, f)
		},
		columns: []string{"ID", "RECIPIENT", "CHANNEL", "SUBJECT", "STATUS", "CREATED"},
		row: func(c *Console, n notification.Notification) []string {
			return []string{n.NotificationID, join(" ", string(n.RecipientType), n.RecipientID), string(n.Channel), n.Subject, c.r.Badge(string(n.Status)), n.CreatedAt}
		},
		empty: "No notifications found.",
	}
}

func (c *Console) notificationSend() page {
	return &formPage[notification.SendRequest, notification.Notification]{
		title: "Send notification",
		fields: []field{
			{"recipientId", true, nil},
			{"recipientType", true, strs(notification.AllRecipientTypes)},
			{"channel", true, strs(notification.AllChannels)},
			{"subject", true, nil},
			{"body", true, nil},
			{"referenceType", false, strs(notification.AllReferenceTypes)},
			{"referenceId", false, nil},
		},
		build: func(d *decoder) notification.SendRequest {
			var req notification.SendRequest
			set(d, "recipientId", &req.RecipientID)
			set(d, "recipientType", &req.RecipientType)
			set(d, "channel", &req.Channel)
			set(d, "subject", &req.Subject)
			set(d, "body", &req.Body)
			set(d, "referenceType", &req.ReferenceType)
			set(d, "referenceId", &req.ReferenceID)
			return req
		},
		send: func(ctx context.Context, req notification.SendRequest) (notification.Notification, error) {
			return c.clients.Notifications.SendNotification(ctx, req, "")
		},
		path: func(n notification.Notification) string { return "/notifications/" + n.NotificationID },
		show: showNotification,
	}
}

func (c *Console) notificationDetail() page {
	return &detailPage[notification.Notification]{
		noun: "notification",
		load: c.clients.Notifications.GetNotification,
		show: showNotification,
		actions: func(n notification.Notification) []workflow.Action {
			return workflow.Notification.Actions(n.Status)
		},
		run: func(ctx context.Context, id string, n notification.Notification, a workflow.Action, _ *decoder) (notification.Notification, error) {
			switch a {
			case workflow.ActionMarkRead:
				return c.clients.Notifications.MarkAsRead(ctx, id, "")
			case workflow.ActionRetry:
				return c.clients.Notifications.RetryNotification(ctx, id, "")
			}
			return n, errUnknownAction
		},
	}
}

func showNotification(c *Console, n notification.Notification) {
	c.r.Title("Notification " + n.NotificationID)
	c.r.Fields(
		kv{"Status", c.r.Badge(string(n.Status))},
		kv{"Recipient", join(" ", string(n.RecipientType), n.RecipientID)},
		kv{"Channel", string(n.Channel)},
		kv{"Subject", n.Subject},
		kv{"Body", n.Body},
		kv{"Reference", join(" ", string(n.ReferenceType), n.ReferenceID)},
		kv{"Error", n.ErrorMessage},
		kv{"Created", join(" by ", n.CreatedAt, n.CreatedBy)},
		kv{"Sent", n.SentAt},
		kv{"Read", n.ReadAt},
	)
}

// Wards

func (c *Console) wardList() page {
	return &listPage[string, bed.Ward]{
		title:   "Wards",
		filters: []string{"wardType"},
		build:   func(v Values) string { return v.Get("wardType") },
		fetch:   sliced(c.clients.Beds.ListWards),
		columns: []string{"ID", "NAME", "TYPE", "FLOOR", "BEDS", "OCCUPIED", "AVAILABLE", "STATUS"},
		row: func(c *Console, w bed.Ward) []string {
			return []string{w.WardID, w.Name, string(w.WardType), itoa(w.Floor), itoa(w.TotalBeds), itoa(w.OccupiedBeds), itoa(w.AvailableBeds), c.r.Badge(string(w.Status()))}
		},
		empty: "No wards found.",
	}
}

func (c *Console) wardNew() page {
	return &formPage[bed.WardRequest, bed.Ward]{
		title: "New ward",
		fields: []field{
			{"name", true, nil},
			{"wardType", true, strs(bed.AllWardTypes)},
			{"floor", true, nil},
			{"description", false, nil},
		},
		build: func(d *decoder) bed.WardRequest {
			var req bed.WardRequest
			set(d, "name", &req.Name)
			set(d, "wardType", &req.WardType)
			setNum(d, "floor", &req.Floor)
			set(d, "description", &req.Description)
			return req
		},
		send: func(ctx context.Context, req bed.WardRequest) (bed.Ward, error) {
			return c.clients.Beds.CreateWard(ctx, req, "")
		},
		path: func(w bed.Ward) string { return "/wards/" + w.WardID },
		show: showWard,
	}
}

func (c *Console) wardDetail() page {
	return &detailPage[bed.Ward]{
		noun: "ward",
		load: c.clients.Beds.GetWard,
		show: showWard,
		actions: func(w bed.Ward) []workflow.Action {
			return workflow.Toggle.Actions(w.Status())
		},
		run: func(ctx context.Context, id string, w bed.Ward, a workflow.Action, _ *decoder) (bed.Ward, error) {
			switch a {
			case workflow.ActionDeactivate:
				return c.clients.Beds.DeactivateWard(ctx, id, "")
			case workflow.ActionActivate:
				return c.clients.Beds.ActivateWard(ctx, id, "")
			}
			return w, errUnknownAction
		},
	}
}

func showWard(c *Console, w bed.Ward) {
	c.r.Title("Ward " + w.WardID)
	c.r.Fields(
		kv{"Name", w.Name},
		kv{"Status", c.r.Badge(string(w.Status()))},
		kv{"Type", string(w.WardType)},
		kv{"Floor", itoa(w.Floor)},
		kv{"Beds", fmt.Sprintf("%d total, %d occupied, %d available", w.TotalBeds, w.OccupiedBeds, w.AvailableBeds)},
		kv{"Description", w.Description},
	)
}

// Beds

func (c *Console) bedList() page {
	return &listPage[bed.BedSearch, bed.Bed]{
		title:   "Beds",
		filters: []string{"status", "wardId"},
		build: func(v Values) bed.BedSearch {
			return bed.BedSearch{Status: v.Get("status"), WardID: v.Get("wardId")}
		},
		fetch:   sliced(c.clients.Beds.ListBeds),
		columns: []string{"ID", "NUMBER", "TYPE", "WARD", "STATUS"},
		row: func(c *Console, b bed.Bed) []string {
			return []string{b.BedID, b.BedNumber, string(b.BedType), b.WardName, c.r.Badge(string(b.Status))}
		},
		empty: "No beds found.",
	}
}

func (c *Console) bedNew() page {
	return &formPage[bed.BedRequest, bed.Bed]{
		title: "New bed",
		fields: []field{
			{"wardId", true, nil},
			{"bedNumber", true, nil},
			{"bedType", true, strs(bed.AllBedTypes)},
		},
		build: func(d *decoder) bed.BedRequest {
			var req bed.BedRequest
			set(d, "wardId", &req.WardID)
			set(d, "bedNumber", &req.BedNumber)
			set(d, "bedType", &req.BedType)
			return req
		},
		send: func(ctx context.Context, req bed.BedRequest) (bed.Bed, error) {
			return c.clients.Beds.CreateBed(ctx, req, "")
		},
		path: func(b bed.Bed) string { return "/beds/" + b.BedID },
		show: showBed,
	}
}

func (c *Console) bedDetail() page {
	return &detailPage[bed.Bed]{
		noun: "bed",
		load: c.clients.Beds.GetBed,
		show: showBed,
		actions: func(b bed.Bed) []workflow.Action {
			return workflow.Bed.Actions(b.Status)
		},
		run: func(ctx context.Context, id string, b bed.Bed, a workflow.Action, _ *decoder) (bed.Bed, error) {
			next, err := workflow.Bed.Next(b.Status, a)
			if err != nil {
				return b, err
			}
			return c.clients.Beds.UpdateBedStatus(ctx, id, next, "")
		},
	}
}

func showBed(c *Console, b bed.Bed) {
	c.r.Title("Bed " + b.BedNumber)
	c.r.Fields(
		kv{"ID", b.BedID},
		kv{"Status", c.r.Badge(string(b.Status))},
		kv{"Type", string(b.BedType)},
		kv{"Ward", join(" ", b.WardName, "("+b.WardID+")")},
	)
}

// Admissions

func (c *Console) admissionList() page {
	return &listPage[bed.AdmissionSearch, bed.Admission]{
		title:   "Admissions",
		filters: []string{"status", "patientId"},
		build: func(v Values) bed.AdmissionSearch {
			return bed.AdmissionSearch{Status: v.Get("status"), PatientID: v.Get("patientId")}
		},
		fetch:   sliced(c.clients.Beds.ListAdmissions),
		columns: []string{"ID", "PATIENT", "WARD", "BED", "ADMITTED", "STATUS"},
		row: func(c *Console, a bed.Admission) []string {
			return []string{a.AdmissionID, a.PatientID, a.WardName, a.BedNumber, a.AdmittedAt, c.r.Badge(string(a.Status))}
		},
		empty: "No admissions found.",
	}
}

func (c *Console) admissionNew() page {
	return &formPage[bed.AdmissionRequest, bed.Admission]{
		title: "Admit patient",
		fields: []field{
			{"patientId", true, nil},
			{"bedId", true, nil},
			{"admitReason", false, nil},
		},
		build: func(d *decoder) bed.AdmissionRequest {
			return bed.AdmissionRequest{PatientID: d.str("patientId"), BedID: d.str("bedId"), AdmitReason: d.str("admitReason")}
		},
		send: func(ctx context.Context, req bed.AdmissionRequest) (bed.Admission, error) {
			return c.clients.Beds.AdmitPatient(ctx, req, "")
		},
		path: func(a bed.Admission) string { return "/admissions/" + a.AdmissionID },
		show: showAdmission,
	}
}

func (c *Console) admissionDetail() page {
	return &detailPage[bed.Admission]{
		noun: "admission",
		load: c.clients.Beds.GetAdmission,
		show: showAdmission,
		actions: func(a bed.Admission) []workflow.Action {
			return workflow.Admission.Actions(a.Status)
		},
		run: func(ctx context.Context, id string, adm bed.Admission, a workflow.Action, d *decoder) (bed.Admission, error) {
			switch a {
			case workflow.ActionTransfer:
				if err := require(d, "newBedId"); err != nil {
					return adm, err
				}
				if d.str("newBedId") == adm.BedID {
					return adm, &FormError{Fields: map[string]string{"newBedId": "is the current bed"}}
				}
				return c.clients.Beds.TransferPatient(ctx, id, d.str("newBedId"), "")
			case workflow.ActionDischarge:
				return c.clients.Beds.DischargePatient(ctx, id, d.str("notes"), "")
			}
			return adm, errUnknownAction
		},
	}
}

func showAdmission(c *Console, a bed.Admission) {
	c.r.Title("Admission " + a.AdmissionID)
	c.r.Fields(
		kv{"Status", c.r.Badge(string(a.Status))},
		kv{"Patient", a.PatientID},
		kv{"Ward", a.WardName},
		kv{"Bed", join(" ", a.BedNumber, "("+a.BedID+")")},
		kv{"Reason", a.AdmitReason},
		kv{"Admitted", a.AdmittedAt},
		kv{"Discharged", a.DischargedAt},
		kv{"Discharge notes", a.DischargeNotes},
		kv{"Created", join(" by ", a.CreatedAt, a.CreatedBy)},
		kv{"Updated", join(" by ", a.UpdatedAt, a.UpdatedBy)},
	)
}

// Staff

func (c *Console) staffList() page {
	return &listPage[staff.MemberSearch, staff.Member]{
		title:   "Staff",
		filters: []string{"role", "department", "status"},
		build: func(v Values) staff.MemberSearch {
			return staff.MemberSearch{Role: v.Get("role"), Department: v.Get("department"), Status: v.Get("status")}
		},
		fetch:   sliced(c.clients.Staff.ListStaff),
		columns: []string{"ID", "NAME", "ROLE", "DEPARTMENT", "EMAIL", "STATUS", "ACTIVE"},
		row: func(c *Console, m staff.Member) []string {
			return []string{m.StaffID, m.FullName(), string(m.StaffRole), m.Department, m.Email, c.r.Badge(string(m.Status)), yesNo(m.IsActive)}
		},
		empty: "No staff found.",
	}
}

func applyMember(d *decoder, req *staff.MemberRequest) {
	set(d, "firstName", &req.FirstName)
	set(d, "lastName", &req.LastName)
	set(d, "email", &req.Email)
	set(d, "phone", &req.Phone)
	set(d, "staffRole", &req.StaffRole)
	set(d, "department", &req.Department)
	set(d, "licenseNumber", &req.LicenseNumber)
	set(d, "joinDate", &req.JoinDate)
}

func (c *Console) staffNew() page {
	return &formPage[staff.MemberRequest, staff.Member]{
		title: "Add staff member",
		fields: []field{
			{"firstName", true, nil},
			{"lastName", true, nil},
			{"email", true, nil},
			{"staffRole", true, strs(staff.AllRoles)},
			{"department", true, staff.AllDepartments},
			{"phone", false, nil},
			{"licenseNumber", false, nil},
			{"joinDate", false, nil},
		},
		build: func(d *decoder) staff.MemberRequest {
			var req staff.MemberRequest
			applyMember(d, &req)
			return req
		},
		send: func(ctx context.Context, req staff.MemberRequest) (staff.Member, error) {
			return c.clients.Staff.CreateStaff(ctx, req, "")
		},
		path: func(m staff.Member) string { return "/staff/" + m.StaffID },
		show: showMember,
	}
}

func (c *Console) staffDetail() page {
	return &detailPage[staff.Member]{
		noun: "staff member",
		load: c.clients.Staff.GetStaff,
		show: showMember,
		actions: func(m staff.Member) []workflow.Action {
			return append([]workflow.Action{workflow.ActionEdit}, workflow.Toggle.Actions(m.ActiveStatus())...)
		},
		run: func(ctx context.Context, id string, m staff.Member, a workflow.Action, d *decoder) (staff.Member, error) {
			switch a {
			case workflow.ActionEdit:
				if err := needAny(d); err != nil {
					return m, err
				}
				req := staff.MemberRequest{
					FirstName:     m.FirstName,
					LastName:      m.LastName,
					Email:         m.Email,
					Phone:         m.Phone,
					StaffRole:     m.StaffRole,
					Department:    m.Department,
					LicenseNumber: m.LicenseNumber,
					JoinDate:      m.JoinDate,
				}
				applyMember(d, &req)
				return c.clients.Staff.UpdateStaff(ctx, id, req, "")
			case workflow.ActionDeactivate:
				return c.clients.Staff.DeactivateStaff(ctx, id, "")
			case workflow.ActionActivate:
				return c.clients.Staff.ActivateStaff(ctx, id, "")
			}
			return m, errUnknownAction
		},
	}
}

func showMember(c *Console, m staff.Member) {
	c.r.Title("Staff member " + m.StaffID)
	c.r.Fields(
		kv{"Name", m.FullName()},
		kv{"Status", c.r.Badge(string(m.Status))},
		kv{"Active", yesNo(m.IsActive)},
		kv{"Role", string(m.StaffRole)},
		kv{"Department", m.Department},
		kv{"Email", m.Email},
		kv{"Phone", m.Phone},
		kv{"License", m.LicenseNumber},
		kv{"Joined", m.JoinDate},
		kv{"Created", join(" by ", m.CreatedAt, m.CreatedBy)},
		kv{"Updated", join(" by ", m.UpdatedAt, m.UpdatedBy)},
	)
}

// Leaves

func (c *Console) leaveList() page {
	return &listPage[staff.LeaveSearch, staff.Leave]{
		title:   "Leave requests",
		filters: []string{"status", "staffId"},
		build: func(v Values) staff.LeaveSearch {
			return staff.LeaveSearch{Status: v.Get("status"), StaffID: v.Get("staffId")}
		},
		fetch:   sliced(c.clients.Staff.ListLeaves),
		columns: []string{"ID", "STAFF", "TYPE", "FROM", "TO", "DAYS", "STATUS"},
		row: func(c *Console, l staff.Leave) []string {
			return []string{l.LeaveID, l.StaffID, string(l.LeaveType), l.StartDate, l.EndDate, itoa(l.DurationDays), c.r.Badge(string(l.Status))}
		},
		empty: "No leave requests found.",
	}
}

func (c *Console) leaveNew() page {
	return &formPage[staff.LeaveRequest, staff.Leave]{
		title: "Request leave",
		fields: []field{
			{"staffId", true, nil},
			{"leaveType", true, strs(staff.AllLeaveTypes)},
			{"startDate", true, nil},
			{"endDate", true, nil},
			{"reason", false, nil},
		},
		build: func(d *decoder) staff.LeaveRequest {
			var req staff.LeaveRequest
			set(d, "staffId", &req.StaffID)
			set(d, "leaveType", &req.LeaveType)
			set(d, "startDate", &req.StartDate)
			set(d, "endDate", &req.EndDate)
			set(d, "reason", &req.Reason)
			return req
		},
		send: func(ctx context.Context, req staff.LeaveRequest) (staff.Leave, error) {
			return c.clients.Staff.RequestLeave(ctx, req, "")
		},
		path: func(l staff.Leave) string { return "/leaves/" + l.LeaveID },
		show: showLeave,
	}
}

var leaveDecisions = []string{string(workflow.LeaveApproved), string(workflow.LeaveRejected)}

func (c *Console) leaveDetail() page {
	return &detailPage[staff.Leave]{
		noun: "leave request",
		load: c.clients.Staff.GetLeave,
		show: showLeave,
		actions: func(l staff.Leave) []workflow.Action {
			return workflow.Leave.Actions(l.Status)
		},
		run: func(ctx context.Context, id string, l staff.Leave, a workflow.Action, d *decoder) (staff.Leave, error) {
			switch a {
			case workflow.ActionReview:
				if err := require(d, "decision"); err != nil {
					return l, err
				}
				decision := d.str("decision")
				if !containsString(leaveDecisions, decision) {
					return l, &FormError{Fields: map[string]string{"decision": "must be one of " + join(", ", leaveDecisions...)}}
				}
				review := staff.Review{Decision: workflow.LeaveStatus(decision), ReviewNotes: d.str("reviewNotes")}
				return c.clients.Staff.ReviewLeave(ctx, id, review, "")
			case workflow.ActionCancel:
				return c.clients.Staff.CancelLeave(ctx, id, "")
			}
			return l, errUnknownAction
		},
	}
}

func showLeave(c *Console, l staff.Leave) {
	c.r.Title("Leave request " + l.LeaveID)
	c.r.Fields(
		kv{"Status", c.r.Badge(string(l.Status))},
		kv{"Staff", l.StaffID},
		kv{"Type", string(l.LeaveType)},
		kv{"Dates", l.StartDate + " to " + l.EndDate},
		kv{"Days", itoa(l.DurationDays)},
		kv{"Reason", l.Reason},
		kv{"Review notes", l.ReviewNotes},
		kv{"Reviewed", join(" by ", l.ReviewedAt, l.ReviewedBy)},
		kv{"Requested", join(" by ", l.CreatedAt, l.CreatedBy)},
	)
}

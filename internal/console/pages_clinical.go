package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/emr"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/lab"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/pharmacy"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

// Medical records

// chart is a record with the prescriptions written against it.
type chart struct {
	emr.Record
	Prescriptions []emr.Prescription
}

func (c *Console) loadChart(ctx context.Context, id string) (chart, error) {
	rec, err := c.clients.EMR.GetRecord(ctx, id)
	if err != nil {
		return chart{}, err
	}
	rx, err := c.clients.EMR.GetPrescriptions(ctx, id)
	if err != nil {
		return chart{}, err
	}
	return chart{Record: rec, Prescriptions: rx}, nil
}

func (c *Console) recordList() page {
	return &listPage[emr.RecordSearch, emr.Record]{
		title:   "Medical records",
		filters: []string{"patientId", "doctorId", "appointmentId", "status", "dateFrom", "dateTo"},
		build: func(v Values) emr.RecordSearch {
			return emr.RecordSearch{
				PatientID:     v.Get("patientId"),
				DoctorID:      v.Get("doctorId"),
				AppointmentID: v.Get("appointmentId"),
				Status:        v.Get("status"),
				DateFrom:      v.Get("dateFrom"),
				DateTo:        v.Get("dateTo"),
			}
		},
		fetch: func(ctx context.Context, f emr.RecordSearch, page, size int) (pagination.Page[emr.Record], error) {
			f.Page, f.Size = page, size
			return c.clients.EMR.SearchRecords(ctx, f)
		},
		columns: []string{"ID", "PATIENT", "DOCTOR", "COMPLAINT", "DIAGNOSIS", "STATUS", "CREATED"},
		row: func(c *Console, r emr.Record) []string {
			return []string{r.RecordID, r.PatientID, r.DoctorID, r.ChiefComplaint, r.DiagnosisCode, c.r.Badge(string(r.Status)), r.CreatedAt}
		},
		empty: "No medical records found.",
	}
}

var vitalFields = []field{
	{"bloodPressureSystolic", false, nil},
	{"bloodPressureDiastolic", false, nil},
	{"heartRate", false, nil},
	{"oxygenSaturationPercent", false, nil},
	{"respiratoryRate", false, nil},
	{"temperatureCelsius", false, nil},
	{"weightKg", false, nil},
	{"heightCm", false, nil},
}

// applyVitals overwrites every reading that was given.
func applyVitals(d *decoder, v *emr.Vitals) {
	ints := map[string]**int{
		"bloodPressureSystolic":   &v.BloodPressureSystolic,
		"bloodPressureDiastolic":  &v.BloodPressureDiastolic,
		"heartRate":               &v.HeartRate,
		"oxygenSaturationPercent": &v.OxygenSaturationPercent,
		"respiratoryRate":         &v.RespiratoryRate,
	}
	for k, dst := range ints {
		if n := d.optNum(k); n != nil {
			*dst = n
		}
	}
	floats := map[string]**float64{
		"temperatureCelsius": &v.TemperatureCelsius,
		"weightKg":           &v.WeightKg,
		"heightCm":           &v.HeightCm,
	}
	for k, dst := range floats {
		if f := d.optDecimal(k); f != nil {
			*dst = f
		}
	}
}

func applyRecord(d *decoder, req *emr.RecordRequest) {
	set(d, "chiefComplaint", &req.ChiefComplaint)
	set(d, "clinicalNotes", &req.ClinicalNotes)
	set(d, "diagnosisCode", &req.DiagnosisCode)
	set(d, "diagnosisDescription", &req.DiagnosisDescription)
	applyVitals(d, &req.Vitals)
}

func (c *Console) recordNew() page {
	fields := append([]field{
		{"patientId", true, nil},
		{"doctorId", true, nil},
		{"appointmentId", false, nil},
		{"chiefComplaint", true, nil},
		{"clinicalNotes", false, nil},
		{"diagnosisCode", false, nil},
		{"diagnosisDescription", false, nil},
	}, vitalFields...)
	return &formPage[emr.RecordRequest, emr.Record]{
		title:  "New medical record",
		fields: fields,
		build: func(d *decoder) emr.RecordRequest {
			var req emr.RecordRequest
			set(d, "patientId", &req.PatientID)
			set(d, "doctorId", &req.DoctorID)
			set(d, "appointmentId", &req.AppointmentID)
			applyRecord(d, &req)
			return req
		},
		send: func(ctx context.Context, req emr.RecordRequest) (emr.Record, error) {
			return c.clients.EMR.CreateRecord(ctx, req, "")
		},
		path: func(r emr.Record) string { return "/records/" + r.RecordID },
		show: func(c *Console, r emr.Record) { showChart(c, chart{Record: r}) },
	}
}

func chartActions(ch chart) []workflow.Action {
	actions := workflow.Record.Actions(ch.Status)
	if !workflow.Record.Can(ch.Status, workflow.ActionPrescribe) {
		return actions
	}
	for _, p := range ch.Prescriptions {
		if workflow.RecordPrescription.Can(p.Status, workflow.ActionDiscontinue) {
			return append(actions, workflow.ActionDiscontinue)
		}
	}
	return actions
}

func (c *Console) recordDetail() page {
	return &detailPage[chart]{
		noun:    "medical record",
		load:    c.loadChart,
		show:    showChart,
		actions: chartActions,
		run: func(ctx context.Context, id string, ch chart, a workflow.Action, d *decoder) (chart, error) {
			var err error
			switch a {
			case workflow.ActionEdit:
				if err := needAny(d); err != nil {
					return ch, err
				}
				req := emr.RecordRequest{
					ChiefComplaint:       ch.ChiefComplaint,
					ClinicalNotes:        ch.ClinicalNotes,
					DiagnosisCode:        ch.DiagnosisCode,
					DiagnosisDescription: ch.DiagnosisDescription,
					Vitals:               ch.Vitals,
				}
				applyRecord(d, &req)
				if err := d.err(); err != nil {
					return ch, err
				}
				_, err = c.clients.EMR.UpdateRecord(ctx, id, req, "")
			case workflow.ActionPrescribe:
				if err := require(d, "medicationName", "dosage", "frequency", "durationDays"); err != nil {
					return ch, err
				}
				req := emr.PrescriptionRequest{
					MedicationName: d.str("medicationName"),
					Dosage:         d.str("dosage"),
					Frequency:      d.str("frequency"),
					DurationDays:   d.num("durationDays"),
					Instructions:   d.str("instructions"),
				}
				if err := d.err(); err != nil {
					return ch, err
				}
				_, err = c.clients.EMR.AddPrescription(ctx, id, req, "")
			case workflow.ActionDiscontinue:
				if err := require(d, "prescriptionId"); err != nil {
					return ch, err
				}
				_, err = c.clients.EMR.DiscontinuePrescription(ctx, id, d.str("prescriptionId"), d.str("reason"), "")
			case workflow.ActionFinalize:
				_, err = c.clients.EMR.FinalizeRecord(ctx, id, "")
			case workflow.ActionAmend:
				_, err = c.clients.EMR.AmendRecord(ctx, id, "")
			default:
				return ch, errUnknownAction
			}
			if err != nil {
				return ch, err
			}
			return c.loadChart(ctx, id)
		},
	}
}

func showChart(c *Console, ch chart) {
	c.r.Title("Medical record " + ch.RecordID)
	c.r.Fields(
		kv{"Status", c.r.Badge(string(ch.Status))},
		kv{"Patient", ch.PatientID},
		kv{"Doctor", ch.DoctorID},
		kv{"Appointment", ch.AppointmentID},
		kv{"Chief complaint", ch.ChiefComplaint},
		kv{"Clinical notes", ch.ClinicalNotes},
		kv{"Diagnosis", join(" ", ch.DiagnosisCode, ch.DiagnosisDescription)},
		kv{"Created", join(" by ", ch.CreatedAt, ch.CreatedBy)},
		kv{"Updated", join(" by ", ch.UpdatedAt, ch.UpdatedBy)},
		kv{"Finalized", join(" by ", ch.FinalizedAt, ch.FinalizedBy)},
	)
	if !ch.Vitals.Empty() {
		c.r.Line("")
		c.r.Line("Vitals")
		v := ch.Vitals
		c.r.Fields(
			kv{"Blood pressure", bloodPressure(v.BloodPressureSystolic, v.BloodPressureDiastolic)},
			kv{"Heart rate", optInt(v.HeartRate, " bpm")},
			kv{"SpO2", optInt(v.OxygenSaturationPercent, "%")},
			kv{"Respiratory rate", optInt(v.RespiratoryRate, "/min")},
			kv{"Temperature", optFloat(v.TemperatureCelsius, " C")},
			kv{"Weight", optFloat(v.WeightKg, " kg")},
			kv{"Height", optFloat(v.HeightCm, " cm")},
		)
	}
	c.r.Line("")
	c.r.Line("Prescriptions")
	rows := make([][]string, len(ch.Prescriptions))
	for i, p := range ch.Prescriptions {
		rows[i] = []string{p.PrescriptionID, p.MedicationName, p.Dosage, p.Frequency, itoa(p.DurationDays) + "d", c.r.Badge(string(p.Status))}
	}
	c.r.Table([]string{"ID", "MEDICATION", "DOSAGE", "FREQUENCY", "DURATION", "STATUS"}, rows, "No prescriptions.")
}

func bloodPressure(sys, dia *int) string {
	if sys == nil && dia == nil {
		return ""
	}
	return optInt(sys, "") + "/" + optInt(dia, "") + " mmHg"
}

func optInt(v *int, unit string) string {
	if v == nil {
		return ""
	}
	return itoa(*v) + unit
}

func optFloat(v *float64, unit string) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

// Medicines

const actionAdjustStock workflow.Action = "adjust-stock"

func (c *Console) medicineList() page {
	return &listPage[pharmacy.MedicineSearch, pharmacy.Medicine]{
		title:   "Medicines",
		filters: []string{"name", "category", "isActive", "lowStock"},
		build: func(v Values) pharmacy.MedicineSearch {
			return pharmacy.MedicineSearch{
				Name:     v.Get("name"),
				Category: v.Get("category"),
				IsActive: v.Bool("isActive"),
				LowStock: v.Bool("lowStock"),
			}
		},
		fetch: func(ctx context.Context, f pharmacy.MedicineSearch, page, size int) (pagination.Page[pharmacy.Medicine], error) {
			f.Page, f.Size = page, size
			return c.clients.Pharmacy.ListMedicines(ctx, f)
		},
		columns: []string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK", "LOW", "STATUS"},
		row: func(c *Console, m pharmacy.Medicine) []string {
			return []string{m.MedicineID, m.Name, string(m.Category), money(m.UnitPrice), itoa(m.StockQuantity), lowFlag(m.LowStock), c.r.Badge(string(m.Status()))}
		},
		empty: "No medicines found.",
	}
}

func lowFlag(low bool) string {
	if low {
		return "LOW"
	}
	return ""
}

func applyMedicine(d *decoder, req *pharmacy.MedicineRequest) {
	set(d, "name", &req.Name)
	set(d, "category", &req.Category)
	set(d, "genericName", &req.GenericName)
	set(d, "manufacturer", &req.Manufacturer)
	set(d, "description", &req.Description)
	if f := d.optDecimal("unitPrice"); f != nil {
		req.UnitPrice = *f
	}
	if n := d.optNum("stockQuantity"); n != nil {
		req.StockQuantity = n
	}
	if n := d.optNum("reorderLevel"); n != nil {
		req.ReorderLevel = n
	}
}

func (c *Console) medicineNew() page {
	return &formPage[pharmacy.MedicineRequest, pharmacy.Medicine]{
		title: "Add medicine",
		fields: []field{
			{"name", true, nil},
			{"category", true, strs(pharmacy.AllCategories)},
			{"unitPrice", true, nil},
			{"genericName", false, nil},
			{"manufacturer", false, nil},
			{"stockQuantity", false, nil},
			{"reorderLevel", false, nil},
			{"description", false, nil},
		},
		build: func(d *decoder) pharmacy.MedicineRequest {
			var req pharmacy.MedicineRequest
			applyMedicine(d, &req)
			return req
		},
		send: func(ctx context.Context, req pharmacy.MedicineRequest) (pharmacy.Medicine, error) {
			return c.clients.Pharmacy.AddMedicine(ctx, req, "")
		},
		path: func(m pharmacy.Medicine) string { return "/medicines/" + m.MedicineID },
		show: showMedicine,
	}
}

func (c *Console) medicineDetail() page {
	return &detailPage[pharmacy.Medicine]{
		noun: "medicine",
		load: c.clients.Pharmacy.GetMedicine,
		show: showMedicine,
		actions: func(m pharmacy.Medicine) []workflow.Action {
			return append([]workflow.Action{workflow.ActionEdit, actionAdjustStock}, workflow.Toggle.Actions(m.Status())...)
		},
		run: func(ctx context.Context, id string, m pharmacy.Medicine, a workflow.Action, d *decoder) (pharmacy.Medicine, error) {
			switch a {
			case workflow.ActionEdit:
				if err := needAny(d); err != nil {
					return m, err
				}
				req := pharmacy.MedicineRequest{
					Name:         m.Name,
					Category:     m.Category,
					UnitPrice:    m.UnitPrice,
					GenericName:  m.GenericName,
					Manufacturer: m.Manufacturer,
					ReorderLevel: &m.ReorderLevel,
					Description:  m.Description,
				}
				applyMedicine(d, &req)
				if err := d.err(); err != nil {
					return m, err
				}
				return c.clients.Pharmacy.UpdateMedicine(ctx, id, req, "")
			case actionAdjustStock:
				if err := require(d, "quantity"); err != nil {
					return m, err
				}
				qty := d.num("quantity")
				if err := d.err(); err != nil {
					return m, err
				}
				return c.clients.Pharmacy.AdjustStock(ctx, id, qty, "")
			case workflow.ActionDeactivate:
				return c.clients.Pharmacy.DeactivateMedicine(ctx, id, "")
			case workflow.ActionActivate:
				return c.clients.Pharmacy.ActivateMedicine(ctx, id, "")
			}
			return m, errUnknownAction
		},
	}
}

func showMedicine(c *Console, m pharmacy.Medicine) {
	c.r.Title("Medicine " + m.MedicineID)
	stock := itoa(m.StockQuantity) + " (reorder at " + itoa(m.ReorderLevel) + ")"
	if m.LowStock {
		stock += " LOW STOCK"
	}
	c.r.Fields(
		kv{"Name", m.Name},
		kv{"Generic name", m.GenericName},
		kv{"Status", c.r.Badge(string(m.Status()))},
		kv{"Category", string(m.Category)},
		kv{"Manufacturer", m.Manufacturer},
		kv{"Unit price", money(m.UnitPrice)},
		kv{"Stock", stock},
		kv{"Description", m.Description},
		kv{"Added", join(" by ", m.CreatedAt, m.CreatedBy)},
	)
}

// Pharmacy prescriptions

func (c *Console) prescriptionList() page {
	return &listPage[pharmacy.PrescriptionSearch, pharmacy.Prescription]{
		title:   "Prescriptions",
		filters: []string{"patientId", "doctorId", "status"},
		build: func(v Values) pharmacy.PrescriptionSearch {
			return pharmacy.PrescriptionSearch{PatientID: v.Get("patientId"), DoctorID: v.Get("doctorId"), Status: v.Get("status")}
		},
		fetch: func(ctx context.Context, f pharmacy.PrescriptionSearch, page, size int) (pagination.Page[pharmacy.Prescription], error) {
			f.Page, f.Size = page, size
			return c.clients.Pharmacy.ListPrescriptions(ctx, f)
		},
		columns: []string{"ID", "PATIENT", "DOCTOR", "ITEMS", "TOTAL", "STATUS", "CREATED"},
		row: func(c *Console, p pharmacy.Prescription) []string {
			return []string{p.PrescriptionID, p.PatientID, p.DoctorID, itoa(len(p.Items)), money(p.TotalPrice), c.r.Badge(string(p.Status)), p.CreatedAt}
		},
		empty: "No prescriptions found.",
	}
}

func (c *Console) prescriptionNew() page {
	return &formPage[pharmacy.PrescriptionRequest, pharmacy.Prescription]{
		title: "New prescription",
		fields: []field{
			{"patientId", true, nil},
			{"doctorId", true, nil},
			{"recordId", false, nil},
			{"notes", false, nil},
		},
		build: func(d *decoder) pharmacy.PrescriptionRequest {
			return pharmacy.PrescriptionRequest{
				PatientID: d.str("patientId"),
				DoctorID:  d.str("doctorId"),
				RecordID:  d.str("recordId"),
				Notes:     d.str("notes"),
			}
		},
		send: func(ctx context.Context, req pharmacy.PrescriptionRequest) (pharmacy.Prescription, error) {
			return c.clients.Pharmacy.CreatePrescription(ctx, req, "")
		},
		path: func(p pharmacy.Prescription) string { return "/prescriptions/" + p.PrescriptionID },
		show: showPrescription,
	}
}

func (c *Console) prescriptionDetail() page {
	return &detailPage[pharmacy.Prescription]{
		noun: "prescription",
		load: c.clients.Pharmacy.GetPrescription,
		show: showPrescription,
		actions: func(p pharmacy.Prescription) []workflow.Action {
			return workflow.Prescription.Actions(p.Status)
		},
		run: func(ctx context.Context, id string, p pharmacy.Prescription, a workflow.Action, d *decoder) (pharmacy.Prescription, error) {
			switch a {
			case workflow.ActionAddItem:
				if err := require(d, "medicineId", "dosage", "frequency", "durationDays", "quantity"); err != nil {
					return p, err
				}
				req := pharmacy.ItemRequest{
					MedicineID:   d.str("medicineId"),
					Dosage:       d.str("dosage"),
					Frequency:    d.str("frequency"),
					DurationDays: d.num("durationDays"),
					Quantity:     d.num("quantity"),
				}
				if err := d.err(); err != nil {
					return p, err
				}
				return c.clients.Pharmacy.AddPrescriptionItem(ctx, id, req, "")
			case workflow.ActionRemoveItem:
				if err := require(d, "itemId"); err != nil {
					return p, err
				}
				return c.clients.Pharmacy.RemovePrescriptionItem(ctx, id, d.str("itemId"), "")
			case workflow.ActionDispense:
				return c.clients.Pharmacy.DispensePrescription(ctx, id, "")
			case workflow.ActionCancel:
				return c.clients.Pharmacy.CancelPrescription(ctx, id, d.str("reason"), "")
			}
			return p, errUnknownAction
		},
	}
}

func showPrescription(c *Console, p pharmacy.Prescription) {
	c.r.Title("Prescription " + p.PrescriptionID)
	c.r.Fields(
		kv{"Status", c.r.Badge(string(p.Status))},
		kv{"Patient", p.PatientID},
		kv{"Doctor", p.DoctorID},
		kv{"Medical record", p.RecordID},
		kv{"Notes", p.Notes},
		kv{"Total", money(p.TotalPrice)},
		kv{"Cancel reason", p.CancelReason},
		kv{"Created", p.CreatedAt},
		kv{"Dispensed", p.DispensedAt},
		kv{"Cancelled", p.CancelledAt},
	)
	c.r.Line("")
	rows := make([][]string, len(p.Items))
	for i, it := range p.Items {
		rows[i] = []string{it.ItemID, it.MedicineName, it.Dosage, it.Frequency, itoa(it.DurationDays) + "d", itoa(it.Quantity), money(it.TotalPrice)}
	}
	c.r.Table([]string{"ITEM", "MEDICINE", "DOSAGE", "FREQUENCY", "DURATION", "QTY", "PRICE"}, rows, "No items.")
}

// Lab tests

func (c *Console) labTestList() page {
	return &listPage[lab.TestSearch, lab.Test]{
		title:   "Lab tests",
		filters: []string{"name", "category", "isActive"},
		build: func(v Values) lab.TestSearch {
			return lab.TestSearch{Name: v.Get("name"), Category: v.Get("category"), IsActive: v.Bool("isActive")}
		},
		fetch: func(ctx context.Context, f lab.TestSearch, page, size int) (pagination.Page[lab.Test], error) {
			f.Page, f.Size = page, size
			return c.clients.Lab.ListLabTests(ctx, f)
		},
		columns: []string{"ID", "NAME", "CATEGORY", "PRICE", "TURNAROUND", "STATUS"},
		row: func(c *Console, t lab.Test) []string {
			return []string{t.TestID, t.Name, string(t.Category), money(t.Price), itoa(t.TurnaroundHours) + "h", c.r.Badge(string(t.Status()))}
		},
		empty: "No lab tests found.",
	}
}

func applyLabTest(d *decoder, req *lab.TestRequest) {
	set(d, "name", &req.Name)
	set(d, "category", &req.Category)
	set(d, "description", &req.Description)
	set(d, "normalRange", &req.NormalRange)
	set(d, "unit", &req.Unit)
	if f := d.optDecimal("price"); f != nil {
		req.Price = *f
	}
	setNum(d, "turnaroundHours", &req.TurnaroundHours)
}

func (c *Console) labTestNew() page {
	return &formPage[lab.TestRequest, lab.Test]{
		title: "Add lab test",
		fields: []field{
			{"name", true, nil},
			{"category", true, strs(lab.AllCategories)},
			{"price", true, nil},
			{"turnaroundHours", false, nil},
			{"description", false, nil},
			{"normalRange", false, nil},
			{"unit", false, nil},
		},
		build: func(d *decoder) lab.TestRequest {
			req := lab.TestRequest{TurnaroundHours: lab.DefaultTurnaroundHours}
			applyLabTest(d, &req)
			return req
		},
		send: func(ctx context.Context, req lab.TestRequest) (lab.Test, error) {
			return c.clients.Lab.AddLabTest(ctx, req, "")
		},
		path: func(t lab.Test) string { return "/lab-tests/" + t.TestID },
		show: showLabTest,
	}
}

func (c *Console) labTestDetail() page {
	return &detailPage[lab.Test]{
		noun: "lab test",
		load: c.clients.Lab.GetLabTest,
		show: showLabTest,
		actions: func(t lab.Test) []workflow.Action {
			return append([]workflow.Action{workflow.ActionEdit}, workflow.Toggle.Actions(t.Status())...)
		},
		run: func(ctx context.Context, id string, t lab.Test, a workflow.Action, d *decoder) (lab.Test, error) {
			switch a {
			case workflow.ActionEdit:
				if err := needAny(d); err != nil {
					return t, err
				}
				req := lab.TestRequest{
					Name:            t.Name,
					Category:        t.Category,
					Price:           t.Price,
					TurnaroundHours: t.TurnaroundHours,
					Description:     t.Description,
					NormalRange:     t.NormalRange,
					Unit:            t.Unit,
				}
				applyLabTest(d, &req)
				if err := d.err(); err != nil {
					return t, err
				}
				return c.clients.Lab.UpdateLabTest(ctx, id, req, "")
			case workflow.ActionDeactivate:
				return c.clients.Lab.DeactivateLabTest(ctx, id, "")
			case workflow.ActionActivate:
				return c.clients.Lab.ActivateLabTest(ctx, id, "")
			}
			return t, errUnknownAction
		},
	}
}

func showLabTest(c *Console, t lab.Test) {
	c.r.Title("Lab test " + t.TestID)
	c.r.Fields(
		kv{"Name", t.Name},
		kv{"Status", c.r.Badge(string(t.Status()))},
		kv{"Category", string(t.Category)},
		kv{"Price", money(t.Price)},
		kv{"Turnaround", itoa(t.TurnaroundHours) + " hours"},
		kv{"Normal range", join(" ", t.NormalRange, t.Unit)},
		kv{"Description", t.Description},
		kv{"Added", join(" by ", t.CreatedAt, t.CreatedBy)},
	)
}

// Lab orders

func (c *Console) labOrderList() page {
	return &listPage[lab.OrderSearch, lab.Order]{
		title:   "Lab orders",
		filters: []string{"patientId", "doctorId", "status"},
		build: func(v Values) lab.OrderSearch {
			return lab.OrderSearch{PatientID: v.Get("patientId"), DoctorID: v.Get("doctorId"), Status: v.Get("status")}
		},
		fetch: func(ctx context.Context, f lab.OrderSearch, page, size int) (pagination.Page[lab.Order], error) {
			f.Page, f.Size = page, size
			return c.clients.Lab.ListLabOrders(ctx, f)
		},
		columns: []string{"ID", "PATIENT", "DOCTOR", "TESTS", "TOTAL", "STATUS", "CREATED"},
		row: func(c *Console, o lab.Order) []string {
			return []string{o.OrderID, o.PatientID, o.DoctorID, itoa(len(o.Items)), money(o.TotalPrice), c.r.Badge(string(o.Status)), o.CreatedAt}
		},
		empty: "No lab orders found.",
	}
}

func (c *Console) labOrderNew() page {
	return &formPage[lab.OrderRequest, lab.Order]{
		title: "New lab order",
		fields: []field{
			{"patientId", true, nil},
			{"doctorId", true, nil},
			{"notes", false, nil},
		},
		build: func(d *decoder) lab.OrderRequest {
			return lab.OrderRequest{PatientID: d.str("patientId"), DoctorID: d.str("doctorId"), Notes: d.str("notes")}
		},
		send: func(ctx context.Context, req lab.OrderRequest) (lab.Order, error) {
			return c.clients.Lab.CreateLabOrder(ctx, req, "")
		},
		path: func(o lab.Order) string { return "/lab-orders/" + o.OrderID },
		show: showLabOrder,
	}
}

func (c *Console) labOrderDetail() page {
	return &detailPage[lab.Order]{
		noun: "lab order",
		load: c.clients.Lab.GetLabOrder,
		show: showLabOrder,
		actions: func(o lab.Order) []workflow.Action {
			return workflow.LabOrder.Actions(o.Status)
		},
		run: func(ctx context.Context, id string, o lab.Order, a workflow.Action, d *decoder) (lab.Order, error) {
			switch a {
			case workflow.ActionAddItem:
				if err := require(d, "testId"); err != nil {
					return o, err
				}
				return c.clients.Lab.AddLabOrderItem(ctx, id, d.str("testId"), "")
			case workflow.ActionRemoveItem:
				if err := require(d, "itemId"); err != nil {
					return o, err
				}
				return c.clients.Lab.RemoveLabOrderItem(ctx, id, d.str("itemId"), "")
			case workflow.ActionCollect:
				return c.clients.Lab.CollectSample(ctx, id, "")
			case workflow.ActionProcess:
				return c.clients.Lab.StartProcessing(ctx, id, "")
			case workflow.ActionRecordResult:
				if err := require(d, "itemId", "result"); err != nil {
					return o, err
				}
				itemID := d.str("itemId")
				item, ok := findLabItem(o.Items, itemID)
				if !ok {
					return o, fmt.Errorf("lab order %s has no item %s", id, itemID)
				}
				if !workflow.LabItem.Can(item.Status, a) {
					return o, fmt.Errorf("%w: item %s is %s", workflow.ErrActionNotAllowed, itemID, item.Status)
				}
				return c.clients.Lab.RecordResult(ctx, id, itemID, lab.Result{Result: d.str("result"), Remarks: d.str("remarks")}, "")
			case workflow.ActionCancel:
				return c.clients.Lab.CancelLabOrder(ctx, id, d.str("reason"), "")
			}
			return o, errUnknownAction
		},
	}
}

func findLabItem(items []lab.OrderItem, id string) (lab.OrderItem, bool) {
	for _, it := range items {
		if it.ItemID == id {
			return it, true
		}
	}
	return lab.OrderItem{}, false
}

func showLabOrder(c *Console, o lab.Order) {
	c.r.Title("Lab order " + o.OrderID)
	c.r.Fields(
		kv{"Status", c.r.Badge(string(o.Status))},
		kv{"Patient", o.PatientID},
		kv{"Doctor", o.DoctorID},
		kv{"Notes", o.Notes},
		kv{"Total", money(o.TotalPrice)},
		kv{"Cancel reason", o.CancelReason},
		kv{"Created", o.CreatedAt},
		kv{"Completed", o.CompletedAt},
		kv{"Cancelled", o.CancelledAt},
	)
	c.r.Line("")
	rows := make([][]string, len(o.Items))
	for i, it := range o.Items {
		rows[i] = []string{it.ItemID, it.TestName, money(it.Price), c.r.Badge(string(it.Status)), it.Result, it.Remarks}
	}
	c.r.Table([]string{"ITEM", "TEST", "PRICE", "STATUS", "RESULT", "REMARKS"}, rows, "No tests ordered.")
}

package console

// registerRoutes builds the page table. For each entity the list comes
// first, then its literal form path, then the {id} detail path.
func (c *Console) registerRoutes() {
	c.handle("/patients", c.patientList())
	c.handle("/patients/register", c.patientRegister())
	c.handle("/patients/{id}", c.patientDetail())

	c.handle("/doctors", c.doctorList())
	c.handle("/doctors/new", c.doctorNew())
	c.handle("/doctors/{id}", c.doctorDetail())

	c.handle("/appointments", c.appointmentList())
	c.handle("/appointments/book", c.appointmentBook())
	c.handle("/appointments/{id}", c.appointmentDetail())

	c.handle("/records", c.recordList())
	c.handle("/records/new", c.recordNew())
	c.handle("/records/{id}", c.recordDetail())

	c.handle("/invoices", c.invoiceList())
	c.handle("/invoices/new", c.invoiceNew())
	c.handle("/invoices/{id}", c.invoiceDetail())

	c.handle("/notifications", c.notificationList())
	c.handle("/notifications/send", c.notificationSend())
	c.handle("/notifications/{id}", c.notificationDetail())

	c.handle("/medicines", c.medicineList())
	c.handle("/medicines/new", c.medicineNew())
	c.handle("/medicines/{id}", c.medicineDetail())

	c.handle("/prescriptions", c.prescriptionList())
	c.handle("/prescriptions/new", c.prescriptionNew())
	c.handle("/prescriptions/{id}", c.prescriptionDetail())

	c.handle("/lab-tests", c.labTestList())
	c.handle("/lab-tests/new", c.labTestNew())
	c.handle("/lab-tests/{id}", c.labTestDetail())

	c.handle("/lab-orders", c.labOrderList())
	c.handle("/lab-orders/new", c.labOrderNew())
	c.handle("/lab-orders/{id}", c.labOrderDetail())

	c.handle("/wards", c.wardList())
	c.handle("/wards/new", c.wardNew())
	c.handle("/wards/{id}", c.wardDetail())

	c.handle("/beds", c.bedList())
	c.handle("/beds/new", c.bedNew())
	c.handle("/beds/{id}", c.bedDetail())

	c.handle("/admissions", c.admissionList())
	c.handle("/admissions/new", c.admissionNew())
	c.handle("/admissions/{id}", c.admissionDetail())

	c.handle("/staff", c.staffList())
	c.handle("/staff/new", c.staffNew())
	c.handle("/staff/{id}", c.staffDetail())

	c.handle("/leaves", c.leaveList())
	c.handle("/leaves/new", c.leaveNew())
	c.handle("/leaves/{id}", c.leaveDetail())

	c.handle("/inventory/items", c.itemList())
	c.handle("/inventory/items/new", c.itemNew())
	c.handle("/inventory/items/{id}", c.itemDetail())

	c.handle("/inventory/transactions", c.transactionList())
	c.handle("/inventory/transactions/new", c.transactionNew())
	c.handle("/inventory/transactions/{id}", c.transactionDetail())

	c.handle("/blood/units", c.unitList())
	c.handle("/blood/units/new", c.unitNew())
	c.handle("/blood/units/{id}", c.unitDetail())
	c.handle("/blood/stock", stockPage{})
	c.handle("/blood/requests", c.bloodRequestList())
	c.handle("/blood/requests/new", c.bloodRequestNew())
	c.handle("/blood/requests/{id}", c.bloodRequestDetail())
}

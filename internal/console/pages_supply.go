package console

import (
	"context"
	"fmt"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/bloodbank"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/clients/inventory"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/view"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

// Inventory items

func (c *Console) itemList() page {
	return &listPage[inventory.ItemSearch, inventory.Item]{
		title:   "Inventory items",
		filters: []string{"category", "activeOnly", "lowStockOnly"},
		build: func(v Values) inventory.ItemSearch {
			low := v.Bool("lowStockOnly")
			return inventory.ItemSearch{
				Category:     v.Get("category"),
				ActiveOnly:   v.Bool("activeOnly"),
				LowStockOnly: low != nil && *low,
			}
		},
		fetch:   sliced(c.clients.Inventory.ListItems),
		columns: []string{"ID", "NAME", "CATEGORY", "STOCK", "MIN", "LOW", "STATUS"},
		row: func(c *Console, it inventory.Item) []string {
			return []string{it.ItemID, it.Name, string(it.Category), itoa(it.CurrentStock) + " " + it.Unit, itoa(it.MinStockLevel), lowFlag(it.LowStock), c.r.Badge(string(it.Status()))}
		},
		empty: "No inventory items found.",
	}
}

func applyItem(d *decoder, req *inventory.ItemRequest) {
	set(d, "name", &req.Name)
	set(d, "category", &req.Category)
	set(d, "unit", &req.Unit)
	set(d, "description", &req.Description)
	if f := d.optDecimal("unitPrice"); f != nil {
		req.UnitPrice = f
	}
	if n := d.optNum("minStockLevel"); n != nil {
		req.MinStockLevel = n
	}
}

func (c *Console) itemNew() page {
	return &formPage[inventory.ItemRequest, inventory.Item]{
		title: "Add inventory item",
		fields: []field{
			{"name", true, nil},
			{"category", true, strs(inventory.AllCategories)},
			{"unit", true, nil},
			{"unitPrice", false, nil},
			{"minStockLevel", false, nil},
			{"initialStock", false, nil},
			{"description", false, nil},
		},
		build: func(d *decoder) inventory.ItemRequest {
			var req inventory.ItemRequest
			applyItem(d, &req)
			req.InitialStock = d.optNum("initialStock")
			return req
		},
		send: func(ctx context.Context, req inventory.ItemRequest) (inventory.Item, error) {
			return c.clients.Inventory.CreateItem(ctx, req, "")
		},
		path: func(it inventory.Item) string { return "/inventory/items/" + it.ItemID },
		show: showItem,
	}
}

func (c *Console) itemDetail() page {
	return &detailPage[inventory.Item]{
		noun: "inventory item",
		load: c.clients.Inventory.GetItem,
		show: showItem,
		actions: func(it inventory.Item) []workflow.Action {
			return append([]workflow.Action{workflow.ActionEdit}, workflow.Toggle.Actions(it.Status())...)
		},
		run: func(ctx context.Context, id string, it inventory.Item, a workflow.Action, d *decoder) (inventory.Item, error) {
			switch a {
			case workflow.ActionEdit:
				if err := needAny(d); err != nil {
					return it, err
				}
				price, minLevel := it.UnitPrice, it.MinStockLevel
				req := inventory.ItemRequest{
					Name:          it.Name,
					Category:      it.Category,
					Unit:          it.Unit,
					UnitPrice:     &price,
					MinStockLevel: &minLevel,
					Description:   it.Description,
				}
				applyItem(d, &req)
				if err := d.err(); err != nil {
					return it, err
				}
				return c.clients.Inventory.UpdateItem(ctx, id, req, "")
			case workflow.ActionDeactivate:
				return c.clients.Inventory.DeactivateItem(ctx, id, "")
			case workflow.ActionActivate:
				return c.clients.Inventory.ActivateItem(ctx, id, "")
			}
			return it, errUnknownAction
		},
	}
}

func showItem(c *Console, it inventory.Item) {
	c.r.Title("Inventory item " + it.ItemID)
	stock := fmt.Sprintf("%d %s (minimum %d)", it.CurrentStock, it.Unit, it.MinStockLevel)
	if it.LowStock {
		stock += " LOW STOCK"
	}
	c.r.Fields(
		kv{"Name", it.Name},
		kv{"Status", c.r.Badge(string(it.Status()))},
		kv{"Category", string(it.Category)},
		kv{"Unit price", money(it.UnitPrice)},
		kv{"Stock", stock},
		kv{"Description", it.Description},
		kv{"Created", join(" by ", it.CreatedAt, it.CreatedBy)},
		kv{"Updated", join(" by ", it.UpdatedAt, it.UpdatedBy)},
	)
}

// Inventory transactions

func (c *Console) transactionList() page {
	return &listPage[inventory.TransactionSearch, inventory.Transaction]{
		title:   "Inventory transactions",
		filters: []string{"itemId", "type"},
		build: func(v Values) inventory.TransactionSearch {
			return inventory.TransactionSearch{ItemID: v.Get("itemId"), Type: v.Get("type")}
		},
		fetch:   sliced(c.clients.Inventory.ListTransactions),
		columns: []string{"ID", "ITEM", "TYPE", "QTY", "BEFORE", "AFTER", "WHEN"},
		row: func(c *Console, t inventory.Transaction) []string {
			return []string{t.TransactionID, t.ItemID, string(t.TransactionType), itoa(t.Quantity), itoa(t.StockBefore), itoa(t.StockAfter), t.TransactedAt}
		},
		empty: "No transactions found.",
	}
}

func (c *Console) transactionNew() page {
	return &formPage[inventory.TransactionRequest, inventory.Transaction]{
		title: "Record stock movement",
		fields: []field{
			{"itemId", true, nil},
			{"transactionType", true, strs(inventory.AllTransactionTypes)},
			{"quantity", true, nil},
			{"referenceId", false, nil},
			{"notes", false, nil},
		},
		build: func(d *decoder) inventory.TransactionRequest {
			var req inventory.TransactionRequest
			set(d, "itemId", &req.ItemID)
			set(d, "transactionType", &req.TransactionType)
			setNum(d, "quantity", &req.Quantity)
			set(d, "referenceId", &req.ReferenceID)
			set(d, "notes", &req.Notes)
			return req
		},
		send: func(ctx context.Context, req inventory.TransactionRequest) (inventory.Transaction, error) {
			return c.clients.Inventory.RecordTransaction(ctx, req, "")
		},
		path: func(t inventory.Transaction) string { return "/inventory/transactions/" + t.TransactionID },
		show: showTransaction,
	}
}

// Transactions are immutable; the page offers no actions.
func (c *Console) transactionDetail() page {
	return &detailPage[inventory.Transaction]{
		noun: "transaction",
		load: c.clients.Inventory.GetTransaction,
		show: showTransaction,
	}
}

func showTransaction(c *Console, t inventory.Transaction) {
	c.r.Title("Transaction " + t.TransactionID)
	c.r.Fields(
		kv{"Item", t.ItemID},
		kv{"Type", string(t.TransactionType)},
		kv{"Quantity", itoa(t.Quantity)},
		kv{"Stock", fmt.Sprintf("%d -> %d", t.StockBefore, t.StockAfter)},
		kv{"Reference", t.ReferenceID},
		kv{"Notes", t.Notes},
		kv{"When", join(" by ", t.TransactedAt, t.CreatedBy)},
	)
}

// Blood units

func (c *Console) unitList() page {
	return &listPage[bloodbank.UnitSearch, bloodbank.Unit]{
		title:   "Blood units",
		filters: []string{"bloodGroup", "status"},
		build: func(v Values) bloodbank.UnitSearch {
			return bloodbank.UnitSearch{BloodGroup: v.Get("bloodGroup"), Status: v.Get("status")}
		},
		fetch:   sliced(c.clients.Blood.ListUnits),
		columns: []string{"ID", "GROUP", "DONOR", "DONATED", "EXPIRES", "STATUS"},
		row: func(c *Console, u bloodbank.Unit) []string {
			return []string{u.UnitID, u.BloodGroup.Label(), u.DonorName, u.DonatedAt, join(" ", u.ExpiresAt, expiryHint(u, c)), c.r.Badge(string(u.Status))}
		},
		empty: "No blood units found.",
	}
}

// expiryHint is empty unless an available unit is expired or close to it.
func expiryHint(u bloodbank.Unit, c *Console) string {
	e, ok := u.ExpiryAt(c.now())
	switch {
	case !ok:
		return ""
	case e.Expired:
		return "(expired)"
	case e.Soon:
		return fmt.Sprintf("(%d days left)", e.DaysRemaining)
	}
	return ""
}

func (c *Console) unitNew() page {
	return &formPage[bloodbank.UnitRequest, bloodbank.Unit]{
		title: "Register blood unit",
		fields: []field{
			{"bloodGroup", true, strs(bloodbank.BloodGroups)},
			{"donorName", true, nil},
			{"donatedAt", true, nil},
			{"donorAge", false, nil},
			{"donorPhone", false, nil},
		},
		build: func(d *decoder) bloodbank.UnitRequest {
			var req bloodbank.UnitRequest
			set(d, "bloodGroup", &req.BloodGroup)
			set(d, "donorName", &req.DonorName)
			set(d, "donatedAt", &req.DonatedAt)
			setNum(d, "donorAge", &req.DonorAge)
			set(d, "donorPhone", &req.DonorPhone)
			return req
		},
		send: func(ctx context.Context, req bloodbank.UnitRequest) (bloodbank.Unit, error) {
			return c.clients.Blood.RegisterUnit(ctx, req, "")
		},
		path: func(u bloodbank.Unit) string { return "/blood/units/" + u.UnitID },
		show: showUnit,
	}
}

func (c *Console) unitDetail() page {
	return &detailPage[bloodbank.Unit]{
		noun: "blood unit",
		load: c.clients.Blood.GetUnit,
		show: showUnit,
		actions: func(u bloodbank.Unit) []workflow.Action {
			return workflow.BloodUnit.Actions(u.Status)
		},
		run: func(ctx context.Context, id string, u bloodbank.Unit, a workflow.Action, _ *decoder) (bloodbank.Unit, error) {
			if a == workflow.ActionDiscard {
				return c.clients.Blood.DiscardUnit(ctx, id, "")
			}
			return u, errUnknownAction
		},
	}
}

func showUnit(c *Console, u bloodbank.Unit) {
	c.r.Title("Blood unit " + u.UnitID)
	donor := u.DonorName
	if u.DonorAge > 0 {
		donor += fmt.Sprintf(" (%d)", u.DonorAge)
	}
	c.r.Fields(
		kv{"Status", c.r.Badge(string(u.Status))},
		kv{"Blood group", u.BloodGroup.Label()},
		kv{"Donor", donor},
		kv{"Donor phone", u.DonorPhone},
		kv{"Donated", u.DonatedAt},
		kv{"Expires", join(" ", u.ExpiresAt, expiryHint(u, c))},
		kv{"Request", u.RequestID},
		kv{"Registered", join(" by ", u.CreatedAt, u.CreatedBy)},
	)
}

// Blood stock

type stockPage struct{}

func (stockPage) open(ctx context.Context, c *Console, req *Request) error {
	if len(req.Filters) > 0 {
		return fmt.Errorf("%s takes no filters", req.Path)
	}
	d := view.NewDetail(c.clients.Blood.GetStock, c.logger)
	c.r.Busy("Loading blood stock")
	err := d.Load(ctx)
	st := d.State()

	c.r.Title("Blood stock")
	if err != nil {
		c.r.Banner(st.Err, retryHint(req))
		return err
	}
	rows := make([][]string, len(st.Entity))
	for i, s := range st.Entity {
		rows[i] = []string{s.BloodGroup.Label(), itoa(s.AvailableUnits), itoa(s.ExpiringSoonUnits)}
	}
	c.r.Table([]string{"GROUP", "AVAILABLE", "EXPIRING SOON"}, rows, "No stock recorded.")
	return nil
}

// Blood requests

func (c *Console) bloodRequestList() page {
	return &listPage[bloodbank.RequestSearch, bloodbank.Request]{
		title:   "Blood requests",
		filters: []string{"status", "patientId"},
		build: func(v Values) bloodbank.RequestSearch {
			return bloodbank.RequestSearch{Status: v.Get("status"), PatientID: v.Get("patientId")}
		},
		fetch:   sliced(c.clients.Blood.ListRequests),
		columns: []string{"ID", "PATIENT", "GROUP", "UNITS", "PRIORITY", "STATUS", "CREATED"},
		row: func(c *Console, r bloodbank.Request) []string {
			return []string{r.RequestID, r.PatientID, r.BloodGroup.Label(), fmt.Sprintf("%d/%d", r.UnitsFulfilled, r.UnitsRequested), string(r.Priority), c.r.Badge(string(r.Status)), r.CreatedAt}
		},
		empty: "No blood requests found.",
	}
}

func (c *Console) bloodRequestNew() page {
	return &formPage[bloodbank.RequestForm, bloodbank.Request]{
		title: "Request blood",
		fields: []field{
			{"patientId", true, nil},
			{"bloodGroup", true, strs(bloodbank.BloodGroups)},
			{"unitsRequested", true, nil},
			{"priority", false, strs(bloodbank.AllPriorities)},
			{"notes", false, nil},
		},
		build: func(d *decoder) bloodbank.RequestForm {
			form := bloodbank.RequestForm{Priority: bloodbank.PriorityNormal}
			set(d, "patientId", &form.PatientID)
			set(d, "bloodGroup", &form.BloodGroup)
			setNum(d, "unitsRequested", &form.UnitsRequested)
			set(d, "priority", &form.Priority)
			set(d, "notes", &form.Notes)
			return form
		},
		send: func(ctx context.Context, form bloodbank.RequestForm) (bloodbank.Request, error) {
			return c.clients.Blood.CreateRequest(ctx, form, "")
		},
		path: func(r bloodbank.Request) string { return "/blood/requests/" + r.RequestID },
		show: showBloodRequest,
	}
}

func (c *Console) bloodRequestDetail() page {
	return &detailPage[bloodbank.Request]{
		noun: "blood request",
		load: c.clients.Blood.GetRequest,
		show: showBloodRequest,
		actions: func(r bloodbank.Request) []workflow.Action {
			return workflow.BloodRequest.Actions(r.Status)
		},
		run: func(ctx context.Context, id string, r bloodbank.Request, a workflow.Action, d *decoder) (bloodbank.Request, error) {
			switch a {
			case workflow.ActionFulfill:
				return c.clients.Blood.FulfillRequest(ctx, id, "")
			case workflow.ActionReject:
				return c.clients.Blood.RejectRequest(ctx, id, d.str("notes"), "")
			case workflow.ActionCancel:
				return c.clients.Blood.CancelRequest(ctx, id, "")
			}
			return r, errUnknownAction
		},
	}
}

func showBloodRequest(c *Console, r bloodbank.Request) {
	c.r.Title("Blood request " + r.RequestID)
	c.r.Fields(
		kv{"Status", c.r.Badge(string(r.Status))},
		kv{"Patient", r.PatientID},
		kv{"Blood group", r.BloodGroup.Label()},
		kv{"Units", fmt.Sprintf("%d requested, %d fulfilled", r.UnitsRequested, r.UnitsFulfilled)},
		kv{"Priority", string(r.Priority)},
		kv{"Notes", r.Notes},
		kv{"Fulfilled", r.FulfilledAt},
		kv{"Requested", join(" by ", r.CreatedAt, r.CreatedBy)},
	)
}

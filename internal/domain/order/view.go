package order

// View is the read model produced by reconciliation. It is built fresh on
// every request and never persisted.
//
// Provenance rules: session-sourced fields (id, amount, customer details,
// line items, variant selection, price snapshot) come from the resolved
// processor session; the remaining product fields come from the catalog as
// it exists at reconciliation time. The two must not be mixed up: the
// catalog may have drifted since purchase, the selection and the charged
// price may not.
type View struct {
	SessionID       string
	AmountTotal     int64
	Currency        string
	PaymentStatus   string
	CustomerDetails CustomerDetails
	LineItems       []LineItem
	Product         ProductSnapshot
}

// CustomerDetails carries the customer-supplied contact details held by the
// processor session.
type CustomerDetails struct {
	Name    string
	Email   string
	Address string
}

// LineItem is one line of the processor session.
type LineItem struct {
	Description string
	Quantity    int64
	AmountTotal int64
	Currency    string
}

// ProductSnapshot joins current catalog fields with purchase-time state.
type ProductSnapshot struct {
	Name        string
	Description string
	Category    string
	// Price is the unit amount snapshotted into the session at initiation,
	// i.e. what the customer was actually charged per unit. It is not
	// re-read from the live catalog.
	Price int64
	// SelectedColor and SelectedSize come from session metadata only.
	SelectedColor string
	SelectedSize  string
}

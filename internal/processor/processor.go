package processor

import "context"

// Session is the processor's view of one purchase attempt. The metadata bag
// is written once at creation and comes back verbatim on retrieval; the
// reconciliation flow depends on that round-trip staying intact.
type Session struct {
	ID              string
	AmountTotal     int64
	Currency        string
	PaymentStatus   string
	URL             string
	CustomerDetails *CustomerDetails
	LineItems       []LineItem
	Metadata        map[string]string
}

// CustomerDetails holds the customer-supplied contact details collected by
// the processor's hosted payment page.
type CustomerDetails struct {
	Name    string
	Email   string
	Address string
}

// LineItem is one line of a checkout session.
type LineItem struct {
	Description string
	Quantity    int64
	AmountTotal int64
	Currency    string
}

// CreateSessionInput holds everything needed to open a session.
type CreateSessionInput struct {
	ProductName        string
	ProductDescription string
	// UnitAmount is in the smallest currency unit.
	UnitAmount    int64
	Currency      string
	Quantity      int64
	CustomerEmail string
	Metadata      map[string]string
}

// Processor is the external payment processor. Implementations must return
// errors.ErrSessionNotFound when the processor reports no such session and
// must never mutate a session after creation.
type Processor interface {
	// Name returns the processor name.
	Name() string
	// CreateSession opens a checkout session and returns the
	// processor-issued handle.
	CreateSession(ctx context.Context, in CreateSessionInput) (*Session, error)
	// GetSession retrieves the processor's current view of a session with
	// line items expanded.
	GetSession(ctx context.Context, id string) (*Session, error)
}

package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeProcessor implements Processor against the Stripe Checkout API.
type StripeProcessor struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeProcessor creates a processor with its own API client. The key
// is held by the client, not by package-level state.
func NewStripeProcessor(apiKey, successURL, cancelURL string) *StripeProcessor {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeProcessor{
		api:        api,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (p *StripeProcessor) Name() string { return "stripe" }

// CreateSession opens a hosted-checkout session. The metadata bag is
// attached as-is; Stripe returns it unchanged on retrieval.
func (p *StripeProcessor) CreateSession(ctx context.Context, in CreateSessionInput) (*Session, error) {
	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(in.ProductName),
	}
	if in.ProductDescription != "" {
		productData.Description = stripe.String(in.ProductDescription)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(quantity),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(in.Currency),
					UnitAmount:  stripe.Int64(in.UnitAmount),
					ProductData: productData,
				},
			},
		},
	}
	params.Context = ctx
	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, classifyStripeError(err, "create checkout session")
	}
	return fromStripeSession(s), nil
}

// GetSession retrieves a session with line items expanded.
func (p *StripeProcessor) GetSession(ctx context.Context, id string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("line_items")

	s, err := p.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, classifyStripeError(err, "retrieve checkout session")
	}
	return fromStripeSession(s), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *Session {
	out := &Session{
		ID:            s.ID,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		PaymentStatus: string(s.PaymentStatus),
		URL:           s.URL,
		Metadata:      s.Metadata,
	}
	if s.CustomerDetails != nil {
		out.CustomerDetails = &CustomerDetails{
			Name:    s.CustomerDetails.Name,
			Email:   s.CustomerDetails.Email,
			Address: formatAddress(s.CustomerDetails.Address),
		}
	}
	if s.LineItems != nil {
		for _, li := range s.LineItems.Data {
			out.LineItems = append(out.LineItems, LineItem{
				Description: li.Description,
				Quantity:    li.Quantity,
				AmountTotal: li.AmountTotal,
				Currency:    string(li.Currency),
			})
		}
	}
	return out
}

func formatAddress(a *stripe.Address) string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func classifyStripeError(err error, op string) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		switch {
		case sErr.Code == stripe.ErrorCodeResourceMissing, sErr.HTTPStatusCode == 404:
			return domainErrors.ErrSessionNotFound
		case sErr.HTTPStatusCode >= 400 && sErr.HTTPStatusCode < 500:
			return fmt.Errorf("%s: %s: %w", op, sErr.Msg, domainErrors.ErrProcessorRejected)
		}
	}
	return fmt.Errorf("%s: %v: %w", op, err, domainErrors.ErrProcessorUnavailable)
}

package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const (
	metaUserID    = "userId"
	metaCartItems = "cartItems"
)

type StripeGateway struct {
	api        *client.API
	currency   string
	successURL string
	cancelURL  string
}

func NewStripeGateway(secretKey, currency, successURL, cancelURL string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, currency: currency, successURL: successURL, cancelURL: cancelURL}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	ids := make([]string, 0, len(req.Items))
	lines := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.BookID)

		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{Name: stripe.String(it.Name)}
		if it.ImageURL != "" {
			product.Images = []*string{stripe.String(it.ImageURL)}
		}
		lines = append(lines, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(g.currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(MinorUnits(it.UnitPrice)),
			},
			Quantity: stripe.Int64(1),
		})
	}

	cart, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems:  lines,
	}
	params.Context = ctx
	params.AddMetadata(metaUserID, req.UserID)
	params.AddMetadata(metaCartItems, string(cart))

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}
	return fromStripe(s)
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return fromStripe(s)
}

func fromStripe(s *stripe.CheckoutSession) (*CheckoutSession, error) {
	out := &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		UserID:        s.Metadata[metaUserID],
	}
	if raw := s.Metadata[metaCartItems]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &out.CartItems); err != nil {
			return nil, fmt.Errorf("%w: cart metadata: %v", ErrInvalidSession, err)
		}
	}
	return out, nil
}

// MinorUnits converts a price to the smallest currency unit, rounded half away
// from zero.
func MinorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Shift(2).Round(0).IntPart()
}

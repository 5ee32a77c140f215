package payment

import (
	"context"
	"errors"
)

const StatusPaid = "paid"

var ErrInvalidSession = errors.New("payment: invalid checkout session")

type LineItem struct {
	BookID    string
	Name      string
	ImageURL  string
	UnitPrice float64
}

type CheckoutRequest struct {
	UserID string
	Items  []LineItem
}

// CheckoutSession is the gateway-neutral view of a hosted checkout.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	UserID        string
	CartItems     []string
}

func (s *CheckoutSession) Paid() bool { return s.PaymentStatus == StatusPaid }

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// Package checkout turns a paid payment session into orders.
package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookstore/apperror"
	"bookstore/database"
	"bookstore/metrics"
	"bookstore/models"
	"bookstore/payment"
	"bookstore/queue"
	"bookstore/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	gateway  payment.Gateway
	users    repository.UserRepository
	books    repository.BookRepository
	orders   repository.OrderRepository
	sessions repository.CheckoutSessionRepository
	tx       database.TxRunner
	invoices queue.Publisher
	log      zerolog.Logger
	now      func() time.Time
}

type Deps struct {
	Gateway  payment.Gateway
	Users    repository.UserRepository
	Books    repository.BookRepository
	Orders   repository.OrderRepository
	Sessions repository.CheckoutSessionRepository
	Tx       database.TxRunner
	Invoices queue.Publisher
	Log      zerolog.Logger
}

func New(d Deps) *Service {
	return &Service{
		gateway:  d.Gateway,
		users:    d.Users,
		books:    d.Books,
		orders:   d.Orders,
		sessions: d.Sessions,
		tx:       d.Tx,
		invoices: d.Invoices,
		log:      d.Log.With().Str("component", "checkout").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateSession opens a hosted checkout for everything in the user's cart.
func (s *Service) CreateSession(ctx context.Context, userID string) (*payment.CheckoutSession, error) {
	uid, err := models.ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.New(apperror.UserNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	if len(u.Cart) == 0 {
		return nil, apperror.New(apperror.EmptyCart, "Cart is empty")
	}

	books, err := s.books.GetByIDs(ctx, u.Cart)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperror.New(apperror.EmptyCart, "Cart is empty")
	}

	req := payment.CheckoutRequest{UserID: uid.Hex()}
	for _, b := range books {
		req.Items = append(req.Items, payment.LineItem{
			BookID:    b.ID.Hex(),
			Name:      b.Name,
			ImageURL:  b.URL,
			UnitPrice: b.SalePrice(),
		})
	}

	cs, err := s.gateway.CreateCheckoutSession(ctx, req)
	metrics.RecordOrderOperation("create_session", err == nil)
	return cs, err
}

// PlaceOrder verifies that sessionID is paid and belongs to requesterID, then
// creates one order per cart line, attaches them to the user and clears those
// lines from the cart, all in one transaction. Invoice jobs are queued after
// commit; queueing failures are logged and never fail the call.
func (s *Service) PlaceOrder(ctx context.Context, requesterID, sessionID string) ([]primitive.ObjectID, error) {
	ids, err := s.placeOrder(ctx, requesterID, sessionID)
	metrics.RecordOrderOperation("place_order", err == nil)
	return ids, err
}

func (s *Service) placeOrder(ctx context.Context, requesterID, sessionID string) ([]primitive.ObjectID, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperror.New(apperror.BadInput, "session_id is required")
	}
	uid, err := models.ParseID(requesterID, "user")
	if err != nil {
		return nil, err
	}

	cs, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, apperror.Wrap(apperror.PaymentSessionInvalid, "Invalid payment session", err)
	}
	if !cs.Paid() {
		return nil, apperror.New(apperror.PaymentNotConfirmed, "Payment not completed")
	}
	if cs.UserID != uid.Hex() {
		return nil, apperror.New(apperror.Forbidden, "Payment session belongs to another user")
	}

	bookIDs, err := cartItems(cs.CartItems)
	if err != nil {
		return nil, err
	}

	var orderIDs []primitive.ObjectID
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		now := s.now()
		orders := make([]models.Order, len(bookIDs))
		for i, bid := range bookIDs {
			orders[i] = models.Order{
				User:      uid,
				Book:      []primitive.ObjectID{bid},
				Status:    models.StatusPlaced,
				SessionID: cs.ID,
				CreatedAt: now,
			}
		}
		ids, err := s.orders.InsertMany(ctx, orders)
		if err != nil {
			return err
		}

		err = s.users.AttachOrders(ctx, uid, ids, bookIDs)
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.New(apperror.UserNotFound, "User not found")
		}
		if err != nil {
			return err
		}

		ledger := &models.CheckoutSession{ID: cs.ID, UserID: uid.Hex(), CreatedAt: now}
		for _, id := range ids {
			ledger.OrderIDs = append(ledger.OrderIDs, id.Hex())
		}
		err = s.sessions.Record(ctx, ledger)
		if errors.Is(err, repository.ErrDuplicate) {
			return apperror.New(apperror.SessionConsumed, "Payment session already used")
		}
		if err != nil {
			return err
		}
		orderIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range orderIDs {
		job := queue.InvoiceJob{OrderID: id.Hex(), UserID: uid.Hex()}
		if err := s.invoices.Publish(ctx, job); err != nil {
			metrics.RecordInvoiceJob("enqueue_failed")
			s.log.Warn().Err(err).Str("order_id", job.OrderID).Msg("could not queue invoice")
		}
	}

	s.log.Info().Str("session_id", cs.ID).Str("user_id", uid.Hex()).Int("orders", len(orderIDs)).Msg("orders placed")
	return orderIDs, nil
}

func cartItems(raw []string) ([]primitive.ObjectID, error) {
	if len(raw) == 0 {
		return nil, apperror.New(apperror.PaymentSessionInvalid, "Payment session has no cart items")
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, apperror.Wrap(apperror.PaymentSessionInvalid, "Payment session has a malformed cart item", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

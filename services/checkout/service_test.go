package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/payment"
	"bookstore/queue"
	"bookstore/repository/repotest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGateway struct {
	sessions map[string]*payment.CheckoutSession
	created  *payment.CheckoutRequest
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	g.created = &req
	return &payment.CheckoutSession{ID: "cs_new", URL: "https://pay.example.com/cs_new"}, nil
}

func (g *fakeGateway) RetrieveSession(ctx context.Context, id string) (*payment.CheckoutSession, error) {
	cs, ok := g.sessions[id]
	if !ok {
		return nil, payment.ErrInvalidSession
	}
	return cs, nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []queue.InvoiceJob
	err  error
}

func (p *fakePublisher) Publish(ctx context.Context, job queue.InvoiceJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

type fixture struct {
	svc     *Service
	store   *repotest.Store
	gateway *fakeGateway
	pub     *fakePublisher
	user    models.User
	books   []models.Book
}

func newFixture(t *testing.T, nBooks int) *fixture {
	t.Helper()
	store := repotest.NewStore()

	var books []models.Book
	var cart []primitive.ObjectID
	for i := 0; i < nBooks; i++ {
		b := store.PutBook(models.Book{Name: string(rune('A' + i)), Price: 100, DiscountedPrice: 100})
		books = append(books, b)
		cart = append(cart, b.ID)
	}
	extra := store.PutBook(models.Book{Name: "kept"})
	cart = append(cart, extra.ID)
	u := store.PutUser(models.User{Email: "a@example.com", Cart: cart})

	f := &fixture{
		store:   store,
		gateway: &fakeGateway{sessions: map[string]*payment.CheckoutSession{}},
		pub:     &fakePublisher{},
		user:    u,
		books:   books,
	}
	f.svc = New(Deps{
		Gateway:  f.gateway,
		Users:    store.Users(),
		Books:    store.Books(),
		Orders:   store.Orders(),
		Sessions: store.Sessions(),
		Tx:       store,
		Invoices: f.pub,
		Log:      zerolog.Nop(),
	})
	return f
}

func (f *fixture) paidSession(id string, owner primitive.ObjectID, books []models.Book) {
	cs := &payment.CheckoutSession{ID: id, PaymentStatus: payment.StatusPaid, UserID: owner.Hex()}
	for _, b := range books {
		cs.CartItems = append(cs.CartItems, b.ID.Hex())
	}
	f.gateway.sessions[id] = cs
}

func TestPlaceOrder_OneOrderPerCartLine(t *testing.T) {
	f := newFixture(t, 3)
	f.paidSession("cs_1", f.user.ID, f.books)

	ids, err := f.svc.PlaceOrder(context.Background(), f.user.ID.Hex(), "cs_1")
	require.NoError(t, err)
	require.Len(t, ids, 3)
	require.Equal(t, 3, f.store.OrderCount())

	u, _ := f.store.User(f.user.ID)
	require.Equal(t, ids, u.Orders)
	for _, b := range f.books {
		require.False(t, u.InCart(b.ID), "book %s still in cart", b.Name)
	}
	require.Len(t, u.Cart, 1)

	for i, id := range ids {
		o, err := f.store.Orders().GetByID(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, models.StatusPlaced, o.Status)
		require.Equal(t, []primitive.ObjectID{f.books[i].ID}, o.Book)
	}

	require.Len(t, f.pub.jobs, 3)
	require.Equal(t, ids[0].Hex(), f.pub.jobs[0].OrderID)
	require.Equal(t, f.user.ID.Hex(), f.pub.jobs[0].UserID)
}

func TestPlaceOrder_NotPaidMutatesNothing(t *testing.T) {
	f := newFixture(t, 2)
	f.paidSession("cs_1", f.user.ID, f.books)
	f.gateway.sessions["cs_1"].PaymentStatus = "unpaid"

	_, err := f.svc.PlaceOrder(context.Background(), f.user.ID.Hex(), "cs_1")
	require.Equal(t, apperror.PaymentNotConfirmed, apperror.CodeOf(err))
	require.Equal(t, 0, f.store.OrderCount())

	u, _ := f.store.User(f.user.ID)
	require.Len(t, u.Cart, 3)
	require.Empty(t, f.pub.jobs)
}

func TestPlaceOrder_SessionReuseRejected(t *testing.T) {
	f := newFixture(t, 2)
	f.paidSession("cs_1", f.user.ID, f.books)
	ctx := context.Background()

	_, err := f.svc.PlaceOrder(ctx, f.user.ID.Hex(), "cs_1")
	require.NoError(t, err)

	_, err = f.svc.PlaceOrder(ctx, f.user.ID.Hex(), "cs_1")
	require.Equal(t, apperror.SessionConsumed, apperror.CodeOf(err))
	require.Equal(t, 2, f.store.OrderCount())
	require.Len(t, f.pub.jobs, 2)
}

func TestPlaceOrder_UnknownSession(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.svc.PlaceOrder(context.Background(), f.user.ID.Hex(), "cs_missing")
	require.Equal(t, apperror.PaymentSessionInvalid, apperror.CodeOf(err))

	_, err = f.svc.PlaceOrder(context.Background(), f.user.ID.Hex(), " ")
	require.Equal(t, apperror.BadInput, apperror.CodeOf(err))
}

func TestPlaceOrder_MalformedCartMetadata(t *testing.T) {
	f := newFixture(t, 1)
	f.gateway.sessions["cs_1"] = &payment.CheckoutSession{
		ID: "cs_1", PaymentStatus: payment.StatusPaid, UserID: f.user.ID.Hex(), CartItems: []string{"nope"},
	}

	_, err := f.svc.PlaceOrder(context.Background(), f.user.ID.Hex(), "cs_1")
	require.Equal(t, apperror.PaymentSessionInvalid, apperror.CodeOf(err))
	require.Equal(t, 0, f.store.OrderCount())
}

func TestPlaceOrder_OtherUsersSession(t *testing.T) {
	f := newFixture(t, 1)
	f.paidSession("cs_1", primitive.NewObjectID(), f.books)

	_, err := f.svc.PlaceOrder(context.Background(), f.user.ID.Hex(), "cs_1")
	require.Equal(t, apperror.Forbidden, apperror.CodeOf(err))
	require.Equal(t, 0, f.store.OrderCount())
}

func TestPlaceOrder_MissingUserRollsBack(t *testing.T) {
	f := newFixture(t, 2)
	ghost := primitive.NewObjectID()
	f.paidSession("cs_1", ghost, f.books)

	_, err := f.svc.PlaceOrder(context.Background(), ghost.Hex(), "cs_1")
	require.Equal(t, apperror.UserNotFound, apperror.CodeOf(err))
	require.Equal(t, 0, f.store.OrderCount())
	require.Empty(t, f.pub.jobs)

	// the session was not consumed by the failed attempt
	require.NoError(t, f.store.Sessions().Record(context.Background(), &models.CheckoutSession{ID: "cs_1"}))
}

func TestPlaceOrder_QueueFailureDoesNotFail(t *testing.T) {
	f := newFixture(t, 2)
	f.pub.err = errors.New("broker down")
	f.paidSession("cs_1", f.user.ID, f.books)

	ids, err := f.svc.PlaceOrder(context.Background(), f.user.ID.Hex(), "cs_1")
	require.NoError(t, err)
	require.Len(t, ids, 2)
	require.Equal(t, 2, f.store.OrderCount())
}

func TestCreateSession(t *testing.T) {
	f := newFixture(t, 2)

	cs, err := f.svc.CreateSession(context.Background(), f.user.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "cs_new", cs.ID)
	require.Equal(t, f.user.ID.Hex(), f.gateway.created.UserID)
	require.Len(t, f.gateway.created.Items, 3)
}

func TestCreateSession_EmptyCart(t *testing.T) {
	f := newFixture(t, 0)
	empty := f.store.PutUser(models.User{Email: "b@example.com"})

	_, err := f.svc.CreateSession(context.Background(), empty.ID.Hex())
	require.Equal(t, apperror.EmptyCart, apperror.CodeOf(err))
}

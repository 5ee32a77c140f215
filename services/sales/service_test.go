package sales

import (
	"context"
	"testing"
	"time"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/repository/repotest"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var day = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func order(store *repotest.Store, status models.OrderStatus, at time.Time, books ...models.Book) {
	ids := make([]primitive.ObjectID, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	store.PutOrder(models.Order{User: primitive.NewObjectID(), Book: ids, Status: status, CreatedAt: at})
}

func TestReport_NoDeliveredOrders(t *testing.T) {
	store := repotest.NewStore()
	b := store.PutBook(models.Book{Name: "Dune", Price: 300})
	order(store, models.StatusPlaced, day, b)
	order(store, models.StatusCancelled, day.Add(time.Hour), b)

	r, err := New(store.Orders()).Report(context.Background(), day.Add(-time.Hour), day.Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 0.0, r.TotalRevenue)
	require.Equal(t, 0, r.TotalBooksSold)
	require.Empty(t, r.TopSellingBooks)
	require.Len(t, r.MonthlySales, 2)
	require.Equal(t, 0.0, r.MonthlySales[0].Sales)
	require.Len(t, r.AllOrders, 2)
}

func TestReport_Aggregates(t *testing.T) {
	store := repotest.NewStore()
	dune := store.PutBook(models.Book{Name: "Dune", Price: 300.10, DiscountedPrice: 250})
	emma := store.PutBook(models.Book{Name: "Emma", Price: 199.95})

	order(store, models.StatusDelivered, day, dune)
	order(store, models.StatusDelivered, day, emma)
	order(store, models.StatusDelivered, day.Add(time.Hour), dune)
	order(store, models.StatusOutForDelivery, day.Add(time.Hour), emma)
	// outside the range but counted in the global totals
	order(store, models.StatusDelivered, day.AddDate(0, -2, 0), dune)

	r, err := New(store.Orders()).Report(context.Background(), day.Add(-time.Minute), day.Add(2*time.Hour))
	require.NoError(t, err)

	require.Equal(t, int64(5), r.TotalOrders)
	require.Equal(t, int64(4), r.TotalDeliveredOrders)
	require.Equal(t, 3, r.TotalBooksSold)
	require.Equal(t, 800.15, r.TotalRevenue)
	require.Equal(t, models.BookTally{Count: 2, Revenue: 600.2}, r.SalesByBook["Dune"])
	require.Equal(t, []models.TopSeller{{Name: "Dune", Sales: 2}, {Name: "Emma", Sales: 1}}, r.TopSellingBooks)

	require.Len(t, r.MonthlySales, 2)
	require.Equal(t, "2025-03-10T09:00:00.000Z", r.MonthlySales[0].Month)
	require.Equal(t, "2025-03-10T10:00:00.000Z", r.MonthlySales[1].Month)
	require.Equal(t, 500.05, r.MonthlySales[0].Sales)
	require.Equal(t, 300.1, r.MonthlySales[1].Sales)
	require.Len(t, r.AllOrders, 4)
}

func TestReport_SubSecondBucketsStayDistinct(t *testing.T) {
	store := repotest.NewStore()
	b := store.PutBook(models.Book{Name: "Dune", Price: 100})
	order(store, models.StatusDelivered, day.Add(120*time.Millisecond), b)
	order(store, models.StatusDelivered, day.Add(870*time.Millisecond), b)
	// same millisecond as the first order
	order(store, models.StatusDelivered, day.Add(120*time.Millisecond+300*time.Microsecond), b)

	r, err := New(store.Orders()).Report(context.Background(), day, day.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, []models.SalesBucket{
		{Month: "2025-03-10T09:00:00.120Z", Sales: 200},
		{Month: "2025-03-10T09:00:00.870Z", Sales: 100},
	}, r.MonthlySales)
}

func TestReport_TopFiveTiesByName(t *testing.T) {
	store := repotest.NewStore()
	for _, name := range []string{"f", "e", "d", "c", "b", "a"} {
		b := store.PutBook(models.Book{Name: name, Price: 10})
		order(store, models.StatusDelivered, day, b)
	}
	top := store.PutBook(models.Book{Name: "z", Price: 10})
	order(store, models.StatusDelivered, day, top)
	order(store, models.StatusDelivered, day, top)

	r, err := New(store.Orders()).Report(context.Background(), day, day)
	require.NoError(t, err)
	require.Len(t, r.TopSellingBooks, 5)
	require.Equal(t, "z", r.TopSellingBooks[0].Name)
	require.Equal(t, []string{"a", "b", "c", "d"}, []string{
		r.TopSellingBooks[1].Name, r.TopSellingBooks[2].Name, r.TopSellingBooks[3].Name, r.TopSellingBooks[4].Name,
	})
}

func TestParseRange(t *testing.T) {
	start, end, err := ParseRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), end)

	_, end, err = ParseRange("2025-03-01T00:00:00Z", "2025-03-02T10:00:00+05:30")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 2, 4, 30, 0, 0, time.UTC), end)

	// "+05:30" after query decoding
	_, end, err = ParseRange("2025-03-01T00:00:00Z", "2025-03-02T10:00:00 05:30")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 2, 4, 30, 0, 0, time.UTC), end)

	_, _, err = ParseRange("2025-03-01 junk", "2025-03-31")
	require.Equal(t, apperror.BadInput, apperror.CodeOf(err))

	_, _, err = ParseRange("", "2025-03-31")
	require.Equal(t, apperror.BadInput, apperror.CodeOf(err))

	_, _, err = ParseRange("yesterday", "2025-03-31")
	require.Equal(t, apperror.BadInput, apperror.CodeOf(err))

	_, _, err = ParseRange("2025-04-01", "2025-03-31")
	require.Equal(t, apperror.BadInput, apperror.CodeOf(err))
}

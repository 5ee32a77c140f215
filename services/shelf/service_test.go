package shelf

import (
	"context"
	"testing"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/repository/repotest"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setup(t *testing.T) (*Service, *repotest.Store, models.User, []models.Book) {
	t.Helper()
	store := repotest.NewStore()
	u := store.PutUser(models.User{Email: "a@example.com"})
	books := []models.Book{
		store.PutBook(models.Book{Name: "Dune", Quantity: 1}),
		store.PutBook(models.Book{Name: "Emma", Quantity: 1}),
	}
	return New(store.Users(), store.Books()), store, u, books
}

func TestAddToCart(t *testing.T) {
	svc, store, u, books := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, u.ID.Hex(), books[0].ID.Hex(), 3))
	require.NoError(t, svc.AddToCart(ctx, u.ID.Hex(), books[1].ID.Hex(), 0))

	got, _ := store.User(u.ID)
	require.Equal(t, []primitive.ObjectID{books[0].ID, books[1].ID}, got.Cart)

	b, err := store.Books().GetByID(ctx, books[0].ID)
	require.NoError(t, err)
	require.Equal(t, 3, b.Quantity)

	err = svc.AddToCart(ctx, u.ID.Hex(), books[0].ID.Hex(), 1)
	require.Equal(t, apperror.AlreadyExists, apperror.CodeOf(err))
}

func TestAddToCart_Errors(t *testing.T) {
	svc, _, u, books := setup(t)
	ctx := context.Background()

	err := svc.AddToCart(ctx, u.ID.Hex(), primitive.NewObjectID().Hex(), 1)
	require.Equal(t, apperror.BookNotFound, apperror.CodeOf(err))

	err = svc.AddToCart(ctx, u.ID.Hex(), books[0].ID.Hex(), -1)
	require.Equal(t, apperror.BadInput, apperror.CodeOf(err))

	err = svc.AddToCart(ctx, "bad", books[0].ID.Hex(), 1)
	require.Equal(t, apperror.BadInput, apperror.CodeOf(err))
}

func TestCart_MostRecentFirst(t *testing.T) {
	svc, _, u, books := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, u.ID.Hex(), books[0].ID.Hex(), 1))
	require.NoError(t, svc.AddToCart(ctx, u.ID.Hex(), books[1].ID.Hex(), 1))

	got, err := svc.Cart(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "Emma", got[0].Name)
	require.Equal(t, "Dune", got[1].Name)

	require.NoError(t, svc.RemoveFromCart(ctx, u.ID.Hex(), books[1].ID.Hex()))
	got, err = svc.Cart(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFavourites(t *testing.T) {
	svc, _, u, books := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.AddFavourite(ctx, u.ID.Hex(), books[1].ID.Hex()))
	err := svc.AddFavourite(ctx, u.ID.Hex(), books[1].ID.Hex())
	require.Equal(t, apperror.AlreadyExists, apperror.CodeOf(err))

	got, err := svc.Favourites(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Emma", got[0].Name)

	require.NoError(t, svc.RemoveFavourite(ctx, u.ID.Hex(), books[1].ID.Hex()))
	got, err = svc.Favourites(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.Empty(t, got)
}

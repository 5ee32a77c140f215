package bookrequest

import (
	"context"
	"testing"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/repository/repotest"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndList(t *testing.T) {
	store := repotest.NewStore()
	u := store.PutUser(models.User{Username: "asha", Email: "a@example.com"})
	svc := New(store.BookRequests())
	ctx := context.Background()

	_, err := svc.ForUser(ctx, u.ID.Hex())
	require.Equal(t, apperror.NotFound, apperror.CodeOf(err))

	br, err := svc.Create(ctx, u.ID.Hex(), models.BookRequestReq{
		BookTitle: "Godaan", Author: "Premchand", ISBN: "9788171673407",
	})
	require.NoError(t, err)
	require.Equal(t, models.RequestPending, br.Status)
	require.False(t, br.RequestDate.IsZero())

	mine, err := svc.ForUser(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Equal(t, "asha", all[0].Requester.Username)
}

func TestCreate_RejectsBadISBN(t *testing.T) {
	svc := New(repotest.NewStore().BookRequests())
	uid := primitive.NewObjectID().Hex()

	for _, isbn := range []string{"978817167340", "97881716734071", "978-8171673407", ""} {
		_, err := svc.Create(context.Background(), uid, models.BookRequestReq{BookTitle: "t", Author: "a", ISBN: isbn})
		require.Equal(t, apperror.BadInput, apperror.CodeOf(err), isbn)
	}
}

func TestSetStatus(t *testing.T) {
	store := repotest.NewStore()
	svc := New(store.BookRequests())
	ctx := context.Background()

	br, err := svc.Create(ctx, primitive.NewObjectID().Hex(), models.BookRequestReq{
		BookTitle: "Godaan", Author: "Premchand", ISBN: "9788171673407",
	})
	require.NoError(t, err)

	got, err := svc.SetStatus(ctx, br.ID.Hex(), "Fulfilled")
	require.NoError(t, err)
	require.Equal(t, models.RequestFulfilled, got.Status)

	_, err = svc.SetStatus(ctx, br.ID.Hex(), "Shipped")
	require.Equal(t, apperror.BadInput, apperror.CodeOf(err))

	_, err = svc.SetStatus(ctx, primitive.NewObjectID().Hex(), "Rejected")
	require.Equal(t, apperror.NotFound, apperror.CodeOf(err))
}

// Package shelf manages the per-user cart and favourites lists.
package shelf

import (
	"context"
	"errors"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	users repository.UserRepository
	books repository.BookRepository
}

func New(users repository.UserRepository, books repository.BookRepository) *Service {
	return &Service{users: users, books: books}
}

// AddToCart records the requested quantity on the book and appends it to the
// cart. A zero quantity means one copy.
func (s *Service) AddToCart(ctx context.Context, userID, bookID string, quantity int) error {
	if quantity < 0 {
		return apperror.New(apperror.BadInput, "Quantity must be at least 1")
	}
	if quantity == 0 {
		quantity = 1
	}

	u, b, err := s.load(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if u.InCart(b.ID) {
		return apperror.New(apperror.AlreadyExists, "Book is already in cart")
	}

	if err := s.books.SetQuantity(ctx, b.ID, quantity); err != nil {
		return notFound(err)
	}
	return notFound(s.users.AddToCart(ctx, u.ID, b.ID))
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, bookID string) error {
	uid, bid, err := parseIDs(userID, bookID)
	if err != nil {
		return err
	}
	return notFound(s.users.RemoveFromCart(ctx, uid, bid))
}

// Cart lists the cart's books, most recently added first.
func (s *Service) Cart(ctx context.Context, userID string) ([]models.Book, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	books, err := s.resolve(ctx, u.Cart)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(books)-1; i < j; i, j = i+1, j-1 {
		books[i], books[j] = books[j], books[i]
	}
	return books, nil
}

func (s *Service) AddFavourite(ctx context.Context, userID, bookID string) error {
	u, b, err := s.load(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if u.IsFavourite(b.ID) {
		return apperror.New(apperror.AlreadyExists, "Book is already in favourites")
	}
	return notFound(s.users.AddFavourite(ctx, u.ID, b.ID))
}

func (s *Service) RemoveFavourite(ctx context.Context, userID, bookID string) error {
	uid, bid, err := parseIDs(userID, bookID)
	if err != nil {
		return err
	}
	return notFound(s.users.RemoveFavourite(ctx, uid, bid))
}

func (s *Service) Favourites(ctx context.Context, userID string) ([]models.Book, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, u.Favourites)
}

// resolve returns the books for ids in the order given, skipping books that
// no longer exist.
func (s *Service) resolve(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error) {
	found, err := s.books.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Book, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}
	out := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, userID, bookID string) (*models.User, *models.Book, error) {
	_, bid, err := parseIDs(userID, bookID)
	if err != nil {
		return nil, nil, err
	}
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.books.GetByID(ctx, bid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, apperror.New(apperror.BookNotFound, "Book not found")
	}
	if err != nil {
		return nil, nil, err
	}
	return u, b, nil
}

func (s *Service) user(ctx context.Context, userID string) (*models.User, error) {
	uid, err := models.ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.New(apperror.UserNotFound, "User not found")
	}
	return u, err
}

func parseIDs(userID, bookID string) (primitive.ObjectID, primitive.ObjectID, error) {
	uid, err := models.ParseID(userID, "user")
	if err != nil {
		return uid, primitive.NilObjectID, err
	}
	bid, err := models.ParseID(bookID, "book")
	return uid, bid, err
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.New(apperror.NotFound, "User or book not found")
	}
	return err
}

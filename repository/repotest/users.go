package repotest

import (
	"context"
	"time"

	"bookstore/models"
	"bookstore/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Users struct{ s *Store }

var _ repository.UserRepository = (*Users)(nil)

func (r *Users) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r *Users) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) UpdateAddress(ctx context.Context, id primitive.ObjectID, address string) (*models.User, error) {
	var out *models.User
	err := r.mutate(id, func(u *models.User) {
		u.Address = address
		out = u
	})
	return out, err
}

func (r *Users) AddToCart(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Cart = addToSet(u.Cart, bookID) })
}

func (r *Users) RemoveFromCart(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Cart = pull(u.Cart, bookID) })
}

func (r *Users) AddFavourite(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Favourites = addToSet(u.Favourites, bookID) })
}

func (r *Users) RemoveFavourite(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Favourites = pull(u.Favourites, bookID) })
}

func (r *Users) AttachOrders(ctx context.Context, userID primitive.ObjectID, orderIDs, bookIDs []primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) {
		u.Orders = append(u.Orders, orderIDs...)
		for _, b := range bookIDs {
			u.Cart = pull(u.Cart, b)
		}
	})
}

func (r *Users) mutate(id primitive.ObjectID, fn func(u *models.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now().UTC()
	r.s.users[id] = u
	return nil
}

func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

func pull(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

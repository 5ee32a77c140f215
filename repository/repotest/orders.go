package repotest

import (
	"context"
	"time"

	"bookstore/models"
	"bookstore/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Orders struct{ s *Store }

var _ repository.OrderRepository = (*Orders)(nil)

func (r *Orders) InsertMany(ctx context.Context, orders []models.Order) ([]primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	ids := make([]primitive.ObjectID, 0, len(orders))
	for i := range orders {
		orders[i].ID = primitive.NewObjectID()
		if orders[i].CreatedAt.IsZero() {
			orders[i].CreatedAt = now
		}
		orders[i].UpdatedAt = orders[i].CreatedAt
		r.s.orders[orders[i].ID] = orders[i]
		ids = append(ids, orders[i].ID)
	}
	return ids, nil
}

func (r *Orders) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *Orders) GetDetail(ctx context.Context, id primitive.ObjectID) (*models.OrderDetail, error) {
	out := r.details(func(o models.Order) bool { return o.ID == id }, false)
	if len(out) == 0 {
		return nil, repository.ErrNotFound
	}
	return &out[0], nil
}

func (r *Orders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error) {
	return r.details(func(o models.Order) bool { return o.User == userID }, false), nil
}

func (r *Orders) ListAll(ctx context.Context) ([]models.OrderDetail, error) {
	return r.details(func(models.Order) bool { return true }, true), nil
}

func (r *Orders) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]models.OrderDetail, error) {
	return r.details(func(o models.Order) bool {
		return !o.CreatedAt.Before(start) && !o.CreatedAt.After(end)
	}, false), nil
}

func (r *Orders) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.orders)), nil
}

func (r *Orders) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, o := range r.s.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *Orders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	r.s.orders[id] = o
	return &o, nil
}

func (r *Orders) details(match func(models.Order) bool, withUser bool) []models.OrderDetail {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.OrderDetail{}
	for _, o := range r.s.orders {
		if !match(o) {
			continue
		}
		d := models.OrderDetail{
			ID:        o.ID,
			UserID:    o.User,
			Books:     []models.Book{},
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		}
		for _, bid := range o.Book {
			if b, ok := r.s.books[bid]; ok {
				d.Books = append(d.Books, b)
			}
		}
		if withUser {
			if u, ok := r.s.users[o.User]; ok {
				u.Password = ""
				d.User = &u
			}
		}
		out = append(out, d)
	}
	newestFirst(out,
		func(d models.OrderDetail) time.Time { return d.CreatedAt },
		func(d models.OrderDetail) primitive.ObjectID { return d.ID })
	return out
}

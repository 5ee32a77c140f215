package repotest

import (
	"context"
	"time"

	"bookstore/models"
	"bookstore/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Sessions struct{ s *Store }

var _ repository.CheckoutSessionRepository = (*Sessions)(nil)

func (r *Sessions) Record(ctx context.Context, cs *models.CheckoutSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[cs.ID]; ok {
		return repository.ErrDuplicate
	}
	r.s.sessions[cs.ID] = *cs
	return nil
}

type Blacklist struct{ s *Store }

var _ repository.TokenBlacklist = (*Blacklist)(nil)

func (b *Blacklist) Add(ctx context.Context, token string, expiresAt time.Time) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	b.s.blacklist[token] = expiresAt
	return nil
}

func (b *Blacklist) Contains(ctx context.Context, token string) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	_, ok := b.s.blacklist[token]
	return ok, nil
}

type BookRequests struct{ s *Store }

var _ repository.BookRequestRepository = (*BookRequests)(nil)

func (r *BookRequests) Create(ctx context.Context, req *models.BookRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if req.RequestDate.IsZero() {
		req.RequestDate = now
	}
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.requests[req.ID] = *req
	return nil
}

func (r *BookRequests) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.BookRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.BookRequest{}
	for _, req := range r.s.requests {
		if req.User == userID {
			out = append(out, req)
		}
	}
	newestFirst(out,
		func(q models.BookRequest) time.Time { return q.CreatedAt },
		func(q models.BookRequest) primitive.ObjectID { return q.ID })
	return out, nil
}

func (r *BookRequests) ListAll(ctx context.Context) ([]models.BookRequestDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.BookRequestDetail{}
	for _, req := range r.s.requests {
		d := models.BookRequestDetail{BookRequest: req}
		if u, ok := r.s.users[req.User]; ok {
			d.Requester = &models.Requester{ID: u.ID, Username: u.Username, Email: u.Email}
		}
		out = append(out, d)
	}
	newestFirst(out,
		func(d models.BookRequestDetail) time.Time { return d.CreatedAt },
		func(d models.BookRequestDetail) primitive.ObjectID { return d.ID })
	return out, nil
}

func (r *BookRequests) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus) (*models.BookRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = time.Now().UTC()
	r.s.requests[id] = req
	return &req, nil
}

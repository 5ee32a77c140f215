// Package repotest provides in-memory repositories for service and handler
// tests.
package repotest

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bookstore/models"
	"bookstore/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu        sync.Mutex
	books     map[primitive.ObjectID]models.Book
	users     map[primitive.ObjectID]models.User
	orders    map[primitive.ObjectID]models.Order
	sessions  map[string]models.CheckoutSession
	blacklist map[string]time.Time
	requests  map[primitive.ObjectID]models.BookRequest
}

func NewStore() *Store {
	return &Store{
		books:     map[primitive.ObjectID]models.Book{},
		users:     map[primitive.ObjectID]models.User{},
		orders:    map[primitive.ObjectID]models.Order{},
		sessions:  map[string]models.CheckoutSession{},
		blacklist: map[string]time.Time{},
		requests:  map[primitive.ObjectID]models.BookRequest{},
	}
}

func (s *Store) Books() *Books { return &Books{s} }
func (s *Store) Users() *Users { return &Users{s} }
func (s *Store) Orders() *Orders { return &Orders{s} }
func (s *Store) Sessions() *Sessions { return &Sessions{s} }
func (s *Store) Blacklist() *Blacklist { return &Blacklist{s} }
func (s *Store) BookRequests() *BookRequests { return &BookRequests{s} }

// WithTransaction restores every collection when fn fails.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := NewStore()
	for k, v := range s.books {
		c.books[k] = v
	}
	for k, v := range s.users {
		v.Cart = append([]primitive.ObjectID(nil), v.Cart...)
		v.Orders = append([]primitive.ObjectID(nil), v.Orders...)
		v.Favourites = append([]primitive.ObjectID(nil), v.Favourites...)
		c.users[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.blacklist {
		c.blacklist[k] = v
	}
	for k, v := range s.requests {
		c.requests[k] = v
	}
	return c
}

func (s *Store) restore(c *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books, s.users, s.orders = c.books, c.users, c.orders
	s.sessions, s.blacklist, s.requests = c.sessions, c.blacklist, c.requests
}

// Seed helpers write directly, bypassing id and timestamp assignment.

func (s *Store) PutBook(b models.Book) models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	s.books[b.ID] = b
	return b
}

func (s *Store) PutUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = u
	return u
}

func (s *Store) PutOrder(o models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders[o.ID] = o
	if u, ok := s.users[o.User]; ok {
		u.Orders = append(u.Orders, o.ID)
		s.users[o.User] = u
	}
	return o
}

func (s *Store) User(id primitive.ObjectID) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func newestFirst[T any](items []T, created func(T) time.Time, id func(T) primitive.ObjectID) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		a, b := id(items[i]), id(items[j])
		return bytes.Compare(a[:], b[:]) > 0
	})
}

type Books struct{ s *Store }

var _ repository.BookRepository = (*Books)(nil)

func (r *Books) Create(ctx context.Context, b *models.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b.ISBN != "" {
		for _, other := range r.s.books {
			if other.ISBN == b.ISBN {
				return repository.ErrDuplicate
			}
		}
	}
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	r.s.books[b.ID] = *b
	return nil
}

func (r *Books) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *Books) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Book{}
	for _, id := range ids {
		if b, ok := r.s.books[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *Books) list(match func(models.Book) bool, limit int) []models.Book {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Book{}
	for _, b := range r.s.books {
		if match(b) {
			out = append(out, b)
		}
	}
	newestFirst(out, func(b models.Book) time.Time { return b.CreatedAt }, func(b models.Book) primitive.ObjectID { return b.ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *Books) GetAll(ctx context.Context) ([]models.Book, error) {
	return r.list(func(models.Book) bool { return true }, 0), nil
}

func (r *Books) GetRecent(ctx context.Context) ([]models.Book, error) {
	return r.list(func(models.Book) bool { return true }, repository.RecentLimit), nil
}

func (r *Books) Search(ctx context.Context, field, q string) ([]models.Book, error) {
	q = strings.ToLower(q)
	has := func(v string) bool { return strings.Contains(strings.ToLower(v), q) }
	return r.list(func(b models.Book) bool {
		fields := map[string]string{
			"name": b.Name, "author": b.Author, "language": b.Language,
			"description": b.Description, "isbn": b.ISBN, "category": b.Category,
		}
		if field != "" {
			return has(fields[field])
		}
		for _, f := range []string{"name", "author", "language", "description", "isbn"} {
			if has(fields[f]) {
				return true
			}
		}
		return false
	}, repository.SearchLimit), nil
}

func (r *Books) Update(ctx context.Context, b *models.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.books[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if b.ISBN != "" {
		for id, other := range r.s.books {
			if id != b.ID && other.ISBN == b.ISBN {
				return repository.ErrDuplicate
			}
		}
	}
	b.CreatedAt = old.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	r.s.books[b.ID] = *b
	return nil
}

func (r *Books) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.books, id)
	return nil
}

func (r *Books) SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Quantity = quantity
	r.s.books[id] = b
	return nil
}

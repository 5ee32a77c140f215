package repository

import (
	"context"
	"time"

	"bookstore/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RecentLimit = 4
	SearchLimit = 20
)

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error)
	GetAll(ctx context.Context) ([]models.Book, error)
	GetRecent(ctx context.Context) ([]models.Book, error)
	// Search matches q case-insensitively against field, or against every
	// searchable field when field is empty.
	Search(ctx context.Context, field, q string) ([]models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateAddress(ctx context.Context, id primitive.ObjectID, address string) (*models.User, error)

	AddToCart(ctx context.Context, userID, bookID primitive.ObjectID) error
	RemoveFromCart(ctx context.Context, userID, bookID primitive.ObjectID) error
	AddFavourite(ctx context.Context, userID, bookID primitive.ObjectID) error
	RemoveFavourite(ctx context.Context, userID, bookID primitive.ObjectID) error

	// AttachOrders appends orderIDs to the user's orders and removes bookIDs
	// from the cart in a single update.
	AttachOrders(ctx context.Context, userID primitive.ObjectID, orderIDs, bookIDs []primitive.ObjectID) error
}

type OrderRepository interface {
	InsertMany(ctx context.Context, orders []models.Order) ([]primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetDetail(ctx context.Context, id primitive.ObjectID) (*models.OrderDetail, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error)
	ListAll(ctx context.Context) ([]models.OrderDetail, error)
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]models.OrderDetail, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
}

type CheckoutSessionRepository interface {
	// Record fails with ErrDuplicate when the session was already consumed.
	Record(ctx context.Context, session *models.CheckoutSession) error
}

type TokenBlacklist interface {
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)
}

type BookRequestRepository interface {
	Create(ctx context.Context, req *models.BookRequest) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.BookRequest, error)
	ListAll(ctx context.Context) ([]models.BookRequestDetail, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus) (*models.BookRequest, error)
}

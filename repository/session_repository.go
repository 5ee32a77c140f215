package repository

import (
	"context"
	"errors"
	"time"

	"bookstore/database"
	"bookstore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoCheckoutSessionRepository struct {
	coll *mongo.Collection
}

func NewCheckoutSessionRepository(db *mongo.Database) *MongoCheckoutSessionRepository {
	return &MongoCheckoutSessionRepository{coll: db.Collection(database.CheckoutSessionCollection)}
}

func (r *MongoCheckoutSessionRepository) Record(ctx context.Context, session *models.CheckoutSession) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, session)
	return translate(err)
}

// MongoTokenBlacklist stores revoked tokens until their natural expiry; a TTL
// index on expiresAt removes them afterwards.
type MongoTokenBlacklist struct {
	coll *mongo.Collection
}

func NewTokenBlacklist(db *mongo.Database) *MongoTokenBlacklist {
	return &MongoTokenBlacklist{coll: db.Collection(database.BlacklistCollection)}
}

func (b *MongoTokenBlacklist) Add(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := b.coll.InsertOne(ctx, bson.M{
		"token":     token,
		"expiresAt": expiresAt.UTC(),
		"createdAt": time.Now().UTC(),
	})
	if err = translate(err); errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}

func (b *MongoTokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.coll.CountDocuments(ctx, bson.M{"token": token})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

package repository

import (
	"context"
	"time"

	"bookstore/database"
	"bookstore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(database.UserCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Favourites == nil {
		user.Favourites = []primitive.ObjectID{}
	}
	if user.Cart == nil {
		user.Cart = []primitive.ObjectID{}
	}
	if user.Orders == nil {
		user.Orders = []primitive.ObjectID{}
	}

	_, err := r.coll.InsertOne(ctx, user)
	return translate(err)
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) UpdateAddress(ctx context.Context, id primitive.ObjectID, address string) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"address": address, "updatedAt": time.Now().UTC()},
	}, opts).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) AddToCart(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return r.update(ctx, userID, bson.M{"$addToSet": bson.M{"cart": bookID}})
}

func (r *MongoUserRepository) RemoveFromCart(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"cart": bookID}})
}

func (r *MongoUserRepository) AddFavourite(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return r.update(ctx, userID, bson.M{"$addToSet": bson.M{"favourites": bookID}})
}

func (r *MongoUserRepository) RemoveFavourite(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"favourites": bookID}})
}

func (r *MongoUserRepository) AttachOrders(ctx context.Context, userID primitive.ObjectID, orderIDs, bookIDs []primitive.ObjectID) error {
	return r.update(ctx, userID, bson.M{
		"$push": bson.M{"orders": bson.M{"$each": orderIDs}},
		"$pull": bson.M{"cart": bson.M{"$in": bookIDs}},
	})
}

func (r *MongoUserRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

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

type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(database.OrderCollection)}
}

func (r *MongoOrderRepository) InsertMany(ctx context.Context, orders []models.Order) ([]primitive.ObjectID, error) {
	if len(orders) == 0 {
		return []primitive.ObjectID{}, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(orders))
	ids := make([]primitive.ObjectID, len(orders))
	for i := range orders {
		orders[i].ID = primitive.NewObjectID()
		if orders[i].CreatedAt.IsZero() {
			orders[i].CreatedAt = now
		}
		orders[i].UpdatedAt = orders[i].CreatedAt
		docs[i] = orders[i]
		ids[i] = orders[i].ID
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

func (r *MongoOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *MongoOrderRepository) GetDetail(ctx context.Context, id primitive.ObjectID) (*models.OrderDetail, error) {
	details, err := r.aggregate(ctx, bson.M{"_id": id}, false)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}
	return &details[0], nil
}

func (r *MongoOrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error) {
	return r.aggregate(ctx, bson.M{"user": userID}, false)
}

func (r *MongoOrderRepository) ListAll(ctx context.Context) ([]models.OrderDetail, error) {
	return r.aggregate(ctx, bson.M{}, true)
}

func (r *MongoOrderRepository) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]models.OrderDetail, error) {
	return r.aggregate(ctx, bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}, false)
}

func (r *MongoOrderRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *MongoOrderRepository) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"status": status})
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	}, opts).Decode(&order)
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// aggregate resolves each order's books, newest order first. withUser also
// resolves the owner, minus the password hash.
func (r *MongoOrderRepository) aggregate(ctx context.Context, match bson.M, withUser bool) ([]models.OrderDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: newestFirst}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.BookCollection,
			"localField":   "book",
			"foreignField": "_id",
			"as":           "books",
		}}},
	}
	if withUser {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.M{
				"from":         database.UserCollection,
				"localField":   "user",
				"foreignField": "_id",
				"as":           "userDoc",
			}}},
			bson.D{{Key: "$unwind", Value: bson.M{"path": "$userDoc", "preserveNullAndEmptyArrays": true}}},
			bson.D{{Key: "$project", Value: bson.M{"userDoc.password": 0}}},
		)
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	details := []models.OrderDetail{}
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

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

type MongoBookRequestRepository struct {
	coll *mongo.Collection
}

func NewBookRequestRepository(db *mongo.Database) *MongoBookRequestRepository {
	return &MongoBookRequestRepository{coll: db.Collection(database.BookRequestCollection)}
}

func (r *MongoBookRequestRepository) Create(ctx context.Context, req *models.BookRequest) error {
	now := time.Now().UTC()
	req.ID = primitive.NewObjectID()
	if req.RequestDate.IsZero() {
		req.RequestDate = now
	}
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, req)
	return translate(err)
}

func (r *MongoBookRequestRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.BookRequest, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reqs := []models.BookRequest{}
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *MongoBookRequestRepository) ListAll(ctx context.Context) ([]models.BookRequestDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: newestFirst}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.UserCollection,
			"localField":   "user",
			"foreignField": "_id",
			"as":           "requester",
			"pipeline": bson.A{
				bson.M{"$project": bson.M{"username": 1, "email": 1}},
			},
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$requester", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reqs := []models.BookRequestDetail{}
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *MongoBookRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus) (*models.BookRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.BookRequest
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	}, opts).Decode(&req)
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

package repository

import (
	"context"
	"regexp"
	"time"

	"bookstore/database"
	"bookstore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var searchFields = []string{"name", "author", "language", "description", "isbn"}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type MongoBookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *MongoBookRepository {
	return &MongoBookRepository{coll: db.Collection(database.BookCollection)}
}

func (r *MongoBookRepository) Create(ctx context.Context, book *models.Book) error {
	now := time.Now().UTC()
	book.ID = primitive.NewObjectID()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, book)
	return translate(err)
}

func (r *MongoBookRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

func (r *MongoBookRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error) {
	if len(ids) == 0 {
		return []models.Book{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *MongoBookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

func (r *MongoBookRepository) GetRecent(ctx context.Context) ([]models.Book, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(RecentLimit))
}

func (r *MongoBookRepository) Search(ctx context.Context, field, q string) ([]models.Book, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}

	var filter bson.M
	if field == "" {
		or := make(bson.A, 0, len(searchFields))
		for _, f := range searchFields {
			or = append(or, bson.M{f: pattern})
		}
		filter = bson.M{"$or": or}
	} else {
		filter = bson.M{field: pattern}
	}

	return r.find(ctx, filter, options.Find().SetSort(newestFirst).SetLimit(SearchLimit))
}

func (r *MongoBookRepository) Update(ctx context.Context, book *models.Book) error {
	book.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"url":             book.URL,
		"name":            book.Name,
		"author":          book.Author,
		"description":     book.Description,
		"price":           book.Price,
		"discountedPrice": book.DiscountedPrice,
		"discountPercent": book.DiscountPercent,
		"category":        book.Category,
		"language":        book.Language,
		"stock":           book.Stock,
		"quantity":        book.Quantity,
		"updatedAt":       book.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if book.ISBN != "" {
		set["isbn"] = book.ISBN
	} else {
		update["$unset"] = bson.M{"isbn": ""}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": book.ID}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookRepository) SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"quantity": quantity, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Book, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

package models

import (
	"bookstore/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID parses a hex ObjectID, reporting a malformed value as bad input.
func ParseID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperror.New(apperror.BadInput, "invalid "+what+" id")
	}
	return id, nil
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestFulfilled RequestStatus = "Fulfilled"
	RequestRejected  RequestStatus = "Rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestFulfilled, RequestRejected:
		return true
	}
	return false
}

type BookRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	BookTitle   string             `bson:"bookTitle" json:"bookTitle"`
	Author      string             `bson:"author" json:"author"`
	ISBN        string             `bson:"isbn" json:"isbn"`
	RequestDate time.Time          `bson:"requestDate" json:"requestDate"`
	Status      RequestStatus      `bson:"status" json:"status"`
	Message     string             `bson:"message" json:"message"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Requester struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
}

// BookRequestDetail is a request with the requesting user's public fields.
type BookRequestDetail struct {
	BookRequest `bson:",inline"`
	Requester   *Requester `bson:"requester,omitempty" json:"requester,omitempty"`
}

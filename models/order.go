package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Order Placed"
	StatusOutForDelivery OrderStatus = "Out For Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPlaced:         {StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func (s OrderStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransition reports whether an admin may move an order from s to next.
// Status only ever moves forward; Delivered and Cancelled are terminal.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, n := range validTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Order is the stored record. Book is fixed at creation.
type Order struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID   `bson:"user" json:"user"`
	Book      []primitive.ObjectID `bson:"book" json:"book"`
	Status    OrderStatus          `bson:"status" json:"status"`
	SessionID string               `bson:"sessionId,omitempty" json:"-"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// OrderDetail is an order with its books (and optionally its user) resolved.
type OrderDetail struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	UserID    primitive.ObjectID `bson:"user" json:"userId"`
	User      *User              `bson:"userDoc,omitempty" json:"user,omitempty"`
	Books     []Book             `bson:"books" json:"book"`
	Status    OrderStatus        `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

package models

import "time"

// CheckoutSession records a payment session that has already been turned into
// orders. Its _id is the gateway session id, so a second insert fails.
type CheckoutSession struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	OrderIDs  []string  `bson:"orderIds" json:"orderIds"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	URL             string             `bson:"url" json:"url"`
	Name            string             `bson:"name" json:"name"`
	Author          string             `bson:"author" json:"author"`
	Description     string             `bson:"description" json:"description"`
	Price           float64            `bson:"price" json:"price"`
	DiscountedPrice float64            `bson:"discountedPrice" json:"discountedPrice"`
	DiscountPercent float64            `bson:"discountPercent" json:"discountPercent"`
	Category        string             `bson:"category" json:"category"`
	Language        string             `bson:"language" json:"language"`
	Stock           int                `bson:"stock" json:"stock"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	ISBN            string             `bson:"isbn,omitempty" json:"isbn,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const (
	DefaultStock    = 10
	DefaultQuantity = 1
)

// ApplyDiscount fills DiscountedPrice from Price and DiscountPercent.
// Without a discount the two prices are equal. With a discount and no explicit
// discounted price, the price is derived and rounded to two decimals.
func (b *Book) ApplyDiscount() {
	if b.DiscountPercent <= 0 {
		b.DiscountPercent = 0
		b.DiscountedPrice = b.Price
		return
	}
	if b.DiscountedPrice <= 0 {
		b.DiscountedPrice = math.Round(b.Price*(100-b.DiscountPercent)) / 100
	}
}

// SalePrice is what the customer is charged at checkout.
func (b *Book) SalePrice() float64 {
	if b.DiscountPercent > 0 && b.DiscountedPrice > 0 {
		return b.DiscountedPrice
	}
	return b.Price
}

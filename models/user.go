package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultAvatar = "https://i.pinimg.com/236x/cd/4b/d9/cd4bd9b0ea2807611ba3a67c331bff0b.jpg"
)

type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username   string               `bson:"username" json:"username"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Address    string               `bson:"address" json:"address"`
	Avatar     string               `bson:"avatar" json:"avatar"`
	Role       string               `bson:"role" json:"role"`
	Favourites []primitive.ObjectID `bson:"favourites" json:"favourites"`
	Cart       []primitive.ObjectID `bson:"cart" json:"cart"`
	Orders     []primitive.ObjectID `bson:"orders" json:"orders"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// HasOrder reports whether id is one of the user's orders.
func (u *User) HasOrder(id primitive.ObjectID) bool {
	for _, o := range u.Orders {
		if o == id {
			return true
		}
	}
	return false
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (u *User) InCart(bookID primitive.ObjectID) bool { return containsID(u.Cart, bookID) }

func (u *User) IsFavourite(bookID primitive.ObjectID) bool { return containsID(u.Favourites, bookID) }

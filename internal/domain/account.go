package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	FirstName  string               `bson:"firstName"`
	LastName   string               `bson:"lastName"`
	Email      string               `bson:"email"`
	Role       string               `bson:"role"`
	AddressIDs []primitive.ObjectID `bson:"address"`
	CreatedAt  time.Time            `bson:"createdAt"`
}

type Address struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"firstName"`
	LastName      string             `bson:"lastName"`
	StreetAddress string             `bson:"streetAddress"`
	City          string             `bson:"city"`
	State         string             `bson:"state"`
	ZipCode       string             `bson:"zipCode"`
	Mobile        string             `bson:"mobile"`
	UserID        primitive.ObjectID `bson:"user"`
}

type WishlistEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user"`
	ProductID primitive.ObjectID `bson:"product"`
}

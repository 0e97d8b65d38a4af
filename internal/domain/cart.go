package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Cart struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	UserID      primitive.ObjectID   `bson:"user"`
	CartItemIDs []primitive.ObjectID `bson:"cartItems"`
	TotalPrice  float64              `bson:"totalPrice"`
	TotalItems  int64                `bson:"totalItems"`
	CartItems   []CartItem           `bson:"-"`
}

type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CartID    primitive.ObjectID `bson:"cart"`
	ProductID primitive.ObjectID `bson:"product"`
	Price     float64            `bson:"price"`
	Quantity  int64              `bson:"quantity"`
	UserID    primitive.ObjectID `bson:"user"`
	Product   *Product           `bson:"-"`
}

// RecalculateTotals refreshes the cached aggregates from the populated items.
func (c *Cart) RecalculateTotals() {
	var totalPrice float64
	var totalItems int64

	for _, item := range c.CartItems {
		totalPrice += item.Price * float64(item.Quantity)
		totalItems += item.Quantity
	}

	c.TotalPrice = totalPrice
	c.TotalItems = totalItems
}

package domain

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderStateTransitions lists the outgoing edges of every status. Terminal
// statuses have none.
var orderStateTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPlaced:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStateTransitions[s]
	return ok
}

// CanTransition reports whether an order in current may move to target.
// Re-applying the current status is allowed while the order is still open.
func CanTransition(current, target OrderStatus) bool {
	next, ok := orderStateTransitions[current]
	if !ok || !target.IsValid() {
		return false
	}

	if current == target {
		return !current.IsTerminal()
	}

	return slices.Contains(next, target)
}

type PaymentMethod string

const PaymentMethodCOD PaymentMethod = "COD"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

type PaymentDetails struct {
	PaymentMethod PaymentMethod `bson:"paymentMethod"`
	PaymentStatus PaymentStatus `bson:"paymentStatus"`
	PaymentID     *string       `bson:"paymentId"`
	PaymentDate   time.Time     `bson:"paymentDate"`
}

type Order struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty"`
	UserID            primitive.ObjectID   `bson:"user"`
	OrderItemIDs      []primitive.ObjectID `bson:"orderItems"`
	ShippingAddressID primitive.ObjectID   `bson:"shippingAddress"`
	TotalPrice        float64              `bson:"totalPrice"`
	TotalItems        int64                `bson:"totalItems"`
	PaymentDetails    PaymentDetails       `bson:"paymentDetails"`
	OrderStatus       OrderStatus          `bson:"orderStatus"`
	Version           int64                `bson:"version"`
	CreatedAt         time.Time            `bson:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt"`
}

type OrderItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID primitive.ObjectID `bson:"product"`
	Price     float64            `bson:"price"`
	Quantity  int64              `bson:"quantity"`
	UserID    primitive.ObjectID `bson:"user"`
}

// OrderDetail is an order with its references resolved.
type OrderDetail struct {
	Order           Order
	User            *User
	Items           []OrderItemDetail
	ShippingAddress *Address
}

type OrderItemDetail struct {
	OrderItem
	Product *Product
}

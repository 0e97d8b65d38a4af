package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusUpdated = "order_status_updated"
	EventOrderCancelled     = "order_cancelled"
	EventOrderDeleted       = "order_deleted"
)

// OutboxEvent is stored in the same transaction as the change it describes
// and relayed to the broker afterwards.
type OutboxEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	EventID     string             `bson:"eventId"`
	EventType   string             `bson:"eventType"`
	AggregateID string             `bson:"aggregateId"`
	Payload     OrderEventPayload  `bson:"payload"`
	Attempts    int                `bson:"attempts"`
	PublishedAt *time.Time         `bson:"publishedAt"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type OrderEventPayload struct {
	OrderID     string      `bson:"orderId" json:"order_id"`
	UserID      string      `bson:"userId" json:"user_id"`
	OrderStatus OrderStatus `bson:"orderStatus" json:"order_status"`
	TotalPrice  float64     `bson:"totalPrice" json:"total_price"`
	TotalItems  int64       `bson:"totalItems" json:"total_items"`
	OccurredAt  int64       `bson:"occurredAt" json:"occurred_at"`
}

type OrderStatusHistory struct {
	ID          int64  `db:"id" json:"id"`
	EventID     string `db:"event_id" json:"event_id"`
	OrderID     string `db:"order_id" json:"order_id"`
	EventType   string `db:"event_type" json:"event_type"`
	OrderStatus string `db:"order_status" json:"order_status"`
	OccurredAt  int64  `db:"occurred_at" json:"occurred_at"`
}

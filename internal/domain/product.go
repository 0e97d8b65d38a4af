package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductState string

const (
	ProductStateUnset           ProductState = ""
	ProductStateUnsold          ProductState = "Unsold"
	ProductStateSold            ProductState = "Sold"
	ProductStateRequestApproved ProductState = "Request_Approved"
	ProductStateRequestPending  ProductState = "Request_Pending"
)

// ListableProductStates are the persisted states shown in public listings.
// Documents with no state field at all or a null state are listable too.
var ListableProductStates = []ProductState{
	ProductStateUnsold,
	ProductStateUnset,
	ProductStateRequestApproved,
}

func (s ProductState) IsListable() bool {
	for _, state := range ListableProductStates {
		if s == state {
			return true
		}
	}

	return false
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	CategoryID  primitive.ObjectID `bson:"category,omitempty"`
	ImageURL    string             `bson:"imageURL"`
	State       ProductState       `bson:"state,omitempty"`
	Version     int64              `bson:"version"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
	Category    *Category          `bson:"-"`
}

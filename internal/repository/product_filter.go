package repository

import (
	"github.com/AatishKamble/swapify/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SortOrder int

const (
	SortAscending  SortOrder = 1
	SortDescending SortOrder = -1
)

// ProductQuery describes one page of the public listing. A zero Limit returns
// every matching product.
type ProductQuery struct {
	CategoryIDs []primitive.ObjectID
	MinPrice    float64
	MaxPrice    float64
	SortField   string
	SortOrder   SortOrder
	Skip        int64
	Limit       int64
}

// BuildProductFilter renders the listing query. Products without a state, or
// with a null state, are listed alongside the explicit listable states.
func BuildProductFilter(q ProductQuery) bson.D {
	visible := bson.A{
		bson.D{{Key: "state", Value: bson.D{{Key: "$exists", Value: false}}}},
		bson.D{{Key: "state", Value: nil}},
	}
	for _, state := range domain.ListableProductStates {
		visible = append(visible, bson.D{{Key: "state", Value: string(state)}})
	}

	filter := bson.D{{Key: "$or", Value: visible}}

	if len(q.CategoryIDs) > 0 {
		filter = append(filter, bson.E{Key: "category", Value: bson.D{{Key: "$in", Value: q.CategoryIDs}}})
	}

	filter = append(filter, bson.E{Key: "price", Value: bson.D{
		{Key: "$gte", Value: q.MinPrice},
		{Key: "$lte", Value: q.MaxPrice},
	}})

	return filter
}

func BuildProductFindOptions(q ProductQuery) *options.FindOptions {
	opts := options.Find()

	if q.SortField != "" {
		order := q.SortOrder
		if order == 0 {
			order = SortDescending
		}
		opts.SetSort(bson.D{{Key: q.SortField, Value: int(order)}})
	}

	if q.Limit > 0 {
		opts.SetSkip(q.Skip).SetLimit(q.Limit)
	}

	return opts
}

// reservationFilter matches an unsold product at the version the caller read.
// Documents written before versioning carry no version field and read as 0.
func reservationFilter(id primitive.ObjectID, version int64) bson.D {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "state", Value: bson.D{{Key: "$ne", Value: string(domain.ProductStateSold)}}},
	}

	if version == 0 {
		return append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "version", Value: int64(0)}},
			bson.D{{Key: "version", Value: bson.D{{Key: "$exists", Value: false}}}},
		}})
	}

	return append(filter, bson.E{Key: "version", Value: version})
}

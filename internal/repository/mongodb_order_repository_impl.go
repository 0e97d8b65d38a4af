package repository

import (
	"context"
	"time"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBOrderRepositoryImpl struct {
	mongoDBRepository
}

func CreateOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoDBOrderRepositoryImpl{mongoDBRepository{db: db}}
}

func (r *MongoDBOrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(ordersCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBOrderRepositoryImpl) AddOrderItem(ctx context.Context, data domain.OrderItem) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(orderItemsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrderItem").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrderByID(ctx context.Context, id primitive.ObjectID) (order domain.Order, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(ordersCollection).FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return order, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return order, err
	}

	return order, nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrdersByUserID(ctx context.Context, userID primitive.ObjectID) (data []domain.Order, err error) {
	return r.findOrders(ctx, "GetOrdersByUserID", bson.D{{Key: "user", Value: userID}})
}

func (r *MongoDBOrderRepositoryImpl) GetOrders(ctx context.Context) (data []domain.Order, err error) {
	return r.findOrders(ctx, "GetOrders", bson.D{})
}

func (r *MongoDBOrderRepositoryImpl) findOrders(ctx context.Context, component string, filter bson.D) (data []domain.Order, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(ordersCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	data = []domain.Order{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return data, nil
}

// GetOrderItemsByIDs returns the items in the order of ids. Dangling ids are skipped.
func (r *MongoDBOrderRepositoryImpl) GetOrderItemsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.OrderItem, err error) {
	data = []domain.OrderItem{}
	if len(ids) == 0 {
		return data, nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}

	cursor, err := r.db.Collection(orderItemsCollection).Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderItemsByIDs").Msg("")
		return
	}

	var items []domain.OrderItem
	if err = cursor.All(ctx, &items); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderItemsByIDs").Msg("")
		return
	}

	byID := make(map[primitive.ObjectID]domain.OrderItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for _, id := range ids {
		if item, ok := byID[id]; ok {
			data = append(data, item)
		}
	}

	return data, nil
}

// UpdateOrderStatus writes the status and payment details if the stored
// version still equals data.Version.
func (r *MongoDBOrderRepositoryImpl) UpdateOrderStatus(ctx context.Context, data domain.Order) (err error) {
	filter := bson.D{
		{Key: "_id", Value: data.ID},
		{Key: "version", Value: data.Version},
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "orderStatus", Value: data.OrderStatus},
			{Key: "paymentDetails", Value: data.PaymentDetails},
			{Key: "updatedAt", Value: time.Now()},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	result, err := r.db.Collection(ordersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateOrderStatus").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		log.Ctx(ctx).Warn().Str("component", "UpdateOrderStatus").Str("order_id", data.ID.Hex()).Msg("stale order version")
		return errs.ErrConflict
	}

	return nil
}

func (r *MongoDBOrderRepositoryImpl) DeleteOrderItems(ctx context.Context, ids []primitive.ObjectID) (err error) {
	if len(ids) == 0 {
		return nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}

	_, err = r.db.Collection(orderItemsCollection).DeleteMany(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteOrderItems").Msg("")
		return
	}

	return nil
}

func (r *MongoDBOrderRepositoryImpl) DeleteOrder(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := r.db.Collection(ordersCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteOrder").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

package repository

import (
	"context"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBCartRepositoryImpl struct {
	mongoDBRepository
}

func CreateCartRepository(db *mongo.Database) CartRepository {
	return &MongoDBCartRepositoryImpl{mongoDBRepository{db: db}}
}

func (r *MongoDBCartRepositoryImpl) AddCart(ctx context.Context, data domain.Cart) (id primitive.ObjectID, err error) {
	if data.CartItemIDs == nil {
		data.CartItemIDs = []primitive.ObjectID{}
	}

	result, err := r.db.Collection(cartsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddCart").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBCartRepositoryImpl) GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (cart domain.Cart, err error) {
	filter := bson.D{{Key: "user", Value: userID}}

	err = r.db.Collection(cartsCollection).FindOne(ctx, filter).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return cart, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetCartByUserID").Msg("")
		return cart, err
	}

	return cart, nil
}

func (r *MongoDBCartRepositoryImpl) UpdateCart(ctx context.Context, data domain.Cart) (err error) {
	if data.CartItemIDs == nil {
		data.CartItemIDs = []primitive.ObjectID{}
	}

	filter := bson.D{{Key: "_id", Value: data.ID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "cartItems", Value: data.CartItemIDs},
		{Key: "totalPrice", Value: data.TotalPrice},
		{Key: "totalItems", Value: data.TotalItems},
	}}}

	result, err := r.db.Collection(cartsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateCart").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBCartRepositoryImpl) AddCartItem(ctx context.Context, data domain.CartItem) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(cartItemsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddCartItem").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBCartRepositoryImpl) GetCartItemByID(ctx context.Context, id primitive.ObjectID) (item domain.CartItem, err error) {
	return r.findOneItem(ctx, "GetCartItemByID", bson.D{{Key: "_id", Value: id}})
}

func (r *MongoDBCartRepositoryImpl) GetCartItemByProduct(ctx context.Context, cartID, productID primitive.ObjectID) (item domain.CartItem, err error) {
	return r.findOneItem(ctx, "GetCartItemByProduct", bson.D{
		{Key: "cart", Value: cartID},
		{Key: "product", Value: productID},
	})
}

// GetCartItemsByIDs returns the items in the order of ids. Dangling ids are skipped.
func (r *MongoDBCartRepositoryImpl) GetCartItemsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.CartItem, err error) {
	data = []domain.CartItem{}
	if len(ids) == 0 {
		return data, nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}

	cursor, err := r.db.Collection(cartItemsCollection).Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCartItemsByIDs").Msg("")
		return
	}

	var items []domain.CartItem
	if err = cursor.All(ctx, &items); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCartItemsByIDs").Msg("")
		return
	}

	byID := make(map[primitive.ObjectID]domain.CartItem, len(items))
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

func (r *MongoDBCartRepositoryImpl) DeleteCartItem(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := r.db.Collection(cartItemsCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteCartItem").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBCartRepositoryImpl) findOneItem(ctx context.Context, component string, filter bson.D) (item domain.CartItem, err error) {
	err = r.db.Collection(cartItemsCollection).FindOne(ctx, filter).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return item, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return item, err
	}

	return item, nil
}

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
)

type MongoDBProductRepositoryImpl struct {
	mongoDBRepository
}

func CreateProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{mongoDBRepository{db: db}}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(productsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(productsCollection).FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return product, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, err
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, query ProductQuery) (data []domain.Product, err error) {
	cursor, err := r.db.Collection(productsCollection).Find(ctx, BuildProductFilter(query), BuildProductFindOptions(query))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) CountProducts(ctx context.Context, query ProductQuery) (total int64, err error) {
	total, err = r.db.Collection(productsCollection).CountDocuments(ctx, BuildProductFilter(query))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountProducts").Msg("")
		return
	}

	return total, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "title", Value: data.Title},
			{Key: "description", Value: data.Description},
			{Key: "price", Value: data.Price},
			{Key: "imageURL", Value: data.ImageURL},
			{Key: "state", Value: string(data.State)},
			{Key: "updatedAt", Value: time.Now()},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := r.db.Collection(productsCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// ReserveProduct marks the product Sold only if nobody sold or changed it
// since it was read.
func (r *MongoDBProductRepositoryImpl) ReserveProduct(ctx context.Context, data domain.Product) (err error) {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "state", Value: string(domain.ProductStateSold)},
			{Key: "updatedAt", Value: time.Now()},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, reservationFilter(data.ID, data.Version), update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReserveProduct").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductSold
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) ReleaseProduct(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "state", Value: string(domain.ProductStateUnsold)},
			{Key: "updatedAt", Value: time.Now()},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReleaseProduct").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

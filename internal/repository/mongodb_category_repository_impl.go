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

type MongoDBCategoryRepositoryImpl struct {
	mongoDBRepository
}

func CreateCategoryRepository(db *mongo.Database) CategoryRepository {
	return &MongoDBCategoryRepositoryImpl{mongoDBRepository{db: db}}
}

func (r *MongoDBCategoryRepositoryImpl) AddCategory(ctx context.Context, data domain.Category) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(categoriesCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddCategory").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBCategoryRepositoryImpl) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (category domain.Category, err error) {
	return r.findOne(ctx, "GetCategoryByID", bson.D{{Key: "_id", Value: id}})
}

func (r *MongoDBCategoryRepositoryImpl) GetTopLevelCategoryByName(ctx context.Context, name string) (category domain.Category, err error) {
	return r.findOne(ctx, "GetTopLevelCategoryByName", bson.D{
		{Key: "name", Value: name},
		{Key: "level", Value: domain.CategoryLevelTop},
	})
}

func (r *MongoDBCategoryRepositoryImpl) GetChildCategoryByName(ctx context.Context, name string, parentID primitive.ObjectID) (category domain.Category, err error) {
	return r.findOne(ctx, "GetChildCategoryByName", bson.D{
		{Key: "name", Value: name},
		{Key: "parentCategory", Value: parentID},
	})
}

func (r *MongoDBCategoryRepositoryImpl) GetCategoriesByNamePattern(ctx context.Context, pattern string) (data []domain.Category, err error) {
	filter := bson.D{{Key: "name", Value: primitive.Regex{Pattern: pattern, Options: "i"}}}

	return r.find(ctx, "GetCategoriesByNamePattern", filter)
}

func (r *MongoDBCategoryRepositoryImpl) GetChildCategories(ctx context.Context, parentIDs []primitive.ObjectID) (data []domain.Category, err error) {
	if len(parentIDs) == 0 {
		return []domain.Category{}, nil
	}

	filter := bson.D{{Key: "parentCategory", Value: bson.D{{Key: "$in", Value: parentIDs}}}}

	return r.find(ctx, "GetChildCategories", filter)
}

func (r *MongoDBCategoryRepositoryImpl) findOne(ctx context.Context, component string, filter bson.D) (category domain.Category, err error) {
	err = r.db.Collection(categoriesCollection).FindOne(ctx, filter).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return category, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return category, err
	}

	return category, nil
}

func (r *MongoDBCategoryRepositoryImpl) find(ctx context.Context, component string, filter bson.D) (data []domain.Category, err error) {
	cursor, err := r.db.Collection(categoriesCollection).Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	data = []domain.Category{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return data, nil
}

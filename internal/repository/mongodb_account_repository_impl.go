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

type MongoDBUserRepositoryImpl struct {
	mongoDBRepository
}

func CreateUserRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{mongoDBRepository{db: db}}
}

func (r *MongoDBUserRepositoryImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (user domain.User, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return user, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByID").Msg("")
		return user, err
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) AddUserAddress(ctx context.Context, userID, addressID primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: userID}}
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "address", Value: addressID}}}}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUserAddress").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

type MongoDBAddressRepositoryImpl struct {
	mongoDBRepository
}

func CreateAddressRepository(db *mongo.Database) AddressRepository {
	return &MongoDBAddressRepositoryImpl{mongoDBRepository{db: db}}
}

func (r *MongoDBAddressRepositoryImpl) AddAddress(ctx context.Context, data domain.Address) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(addressesCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddAddress").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBAddressRepositoryImpl) GetAddressByID(ctx context.Context, id primitive.ObjectID) (address domain.Address, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(addressesCollection).FindOne(ctx, filter).Decode(&address)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return address, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetAddressByID").Msg("")
		return address, err
	}

	return address, nil
}

type MongoDBWishlistRepositoryImpl struct {
	mongoDBRepository
}

func CreateWishlistRepository(db *mongo.Database) WishlistRepository {
	return &MongoDBWishlistRepositoryImpl{mongoDBRepository{db: db}}
}

// DeleteWishlistEntry removes at most one entry. A missing entry is not an error.
func (r *MongoDBWishlistRepositoryImpl) DeleteWishlistEntry(ctx context.Context, userID, productID primitive.ObjectID) (err error) {
	filter := bson.D{
		{Key: "user", Value: userID},
		{Key: "product", Value: productID},
	}

	err = r.db.Collection(wishlistsCollection).FindOneAndDelete(ctx, filter).Err()
	if err != nil && err != mongo.ErrNoDocuments {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteWishlistEntry").Msg("")
		return err
	}

	return nil
}

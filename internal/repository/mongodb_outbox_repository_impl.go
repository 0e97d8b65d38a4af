package repository

import (
	"context"
	"time"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBOutboxRepositoryImpl struct {
	mongoDBRepository
}

func CreateOutboxRepository(db *mongo.Database) OutboxRepository {
	return &MongoDBOutboxRepositoryImpl{mongoDBRepository{db: db}}
}

func (r *MongoDBOutboxRepositoryImpl) AddEvent(ctx context.Context, data domain.OutboxEvent) (err error) {
	_, err = r.db.Collection(outboxCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddEvent").Msg("")
		return
	}

	return nil
}

func (r *MongoDBOutboxRepositoryImpl) GetUnpublishedEvents(ctx context.Context, limit int) (data []domain.OutboxEvent, err error) {
	filter := bson.D{{Key: "publishedAt", Value: nil}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.db.Collection(outboxCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUnpublishedEvents").Msg("")
		return
	}

	data = []domain.OutboxEvent{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUnpublishedEvents").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBOutboxRepositoryImpl) MarkEventPublished(ctx context.Context, id primitive.ObjectID, publishedAt time.Time) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "publishedAt", Value: publishedAt}}}}

	_, err = r.db.Collection(outboxCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MarkEventPublished").Msg("")
		return
	}

	return nil
}

func (r *MongoDBOutboxRepositoryImpl) IncrementEventAttempts(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "attempts", Value: 1}}}}

	_, err = r.db.Collection(outboxCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IncrementEventAttempts").Msg("")
		return
	}

	return nil
}

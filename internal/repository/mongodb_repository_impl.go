package repository

import (
	"context"

	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	usersCollection      = "users"
	addressesCollection  = "addresses"
	productsCollection   = "products"
	categoriesCollection = "categories"
	cartsCollection      = "carts"
	cartItemsCollection  = "cart_items"
	ordersCollection     = "orders"
	orderItemsCollection = "order_items"
	wishlistsCollection  = "wishlists"
	outboxCollection     = "outbox_events"
)

type mongoDBRepository struct {
	db *mongo.Database
}

func (r *mongoDBRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	// Defers ending the session after the transaction is committed or ended
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx mongo.SessionContext) (interface{}, error) {
		err := fn(ctx)
		if err != nil {
			logTrxError(ctx, err)
		}
		return nil, err
	})

	return err
}

// logTrxError keeps rejected requests out of the error log.
func logTrxError(ctx context.Context, err error) {
	if errs.IsClientError(err) {
		log.Ctx(ctx).Warn().Err(err).Str("component", "HandleTrx").Msg("")
		return
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
}

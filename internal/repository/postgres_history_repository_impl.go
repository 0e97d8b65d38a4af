package repository

import (
	"context"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const orderStatusHistorySchema = `CREATE TABLE IF NOT EXISTS order_status_histories (
	id BIGSERIAL PRIMARY KEY,
	event_id VARCHAR(26) NOT NULL UNIQUE,
	order_id VARCHAR(24) NOT NULL,
	event_type VARCHAR(64) NOT NULL,
	order_status VARCHAR(16) NOT NULL,
	occurred_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS order_status_histories_order_id_idx ON order_status_histories (order_id)`

type PostgresOrderHistoryRepositoryImpl struct {
	db *sqlx.DB
}

func CreateOrderHistoryRepository(db *sqlx.DB) *PostgresOrderHistoryRepositoryImpl {
	return &PostgresOrderHistoryRepositoryImpl{db: db}
}

func (r *PostgresOrderHistoryRepositoryImpl) EnsureSchema(ctx context.Context) (err error) {
	_, err = r.db.ExecContext(ctx, orderStatusHistorySchema)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureSchema").Msg("")
		return
	}

	return nil
}

// AddHistory is idempotent on event_id so redelivered events are dropped.
func (r *PostgresOrderHistoryRepositoryImpl) AddHistory(ctx context.Context, data domain.OrderStatusHistory) (err error) {
	_, err = r.db.NamedExecContext(ctx, "INSERT INTO order_status_histories(event_id, order_id, event_type, order_status, occurred_at) VALUES (:event_id, :order_id, :event_type, :order_status, :occurred_at) ON CONFLICT (event_id) DO NOTHING", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddHistory").Msg("")
		return
	}

	return nil
}

func (r *PostgresOrderHistoryRepositoryImpl) GetHistoriesByOrderID(ctx context.Context, orderID string) (data []domain.OrderStatusHistory, err error) {
	data = []domain.OrderStatusHistory{}

	err = r.db.SelectContext(ctx, &data, "SELECT id, event_id, order_id, event_type, order_status, occurred_at FROM order_status_histories WHERE order_id = $1 ORDER BY occurred_at ASC, id ASC", orderID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetHistoriesByOrderID").Msg("")
		return
	}

	return data, nil
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const deliveryLocationColumns = `
	o.id AS order_id,
	o.order_number,
	o.status,
	o.activated_date,
	a.name AS account_name,
	a.billing_address,
	a.shipping_address,
	a.billing_lat,
	a.billing_lon,
	a.shipping_lat,
	a.shipping_lon`

type orderRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewOrderRepository(db *DB) repository.OrderRepository {
	return &orderRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *orderRepository) GetDeliveryLocation(ctx context.Context, orderID string) (*domain.DeliveryLocation, error) {
	query := `SELECT` + deliveryLocationColumns + `
		FROM orders o
		JOIN accounts a ON a.id = o.account_id
		WHERE o.id = $1`

	var loc domain.DeliveryLocation
	err := r.db.GetContext(ctx, &loc, query, orderID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrOrderNotFound.WithDetails(map[string]interface{}{
			"order_id": orderID,
		})
	}
	if err != nil {
		r.logger.Error("Failed to get delivery location",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &loc, nil
}

func (r *orderRepository) ListDeliveryLocations(ctx context.Context, orderIDs []string) ([]domain.DeliveryLocation, error) {
	if len(orderIDs) == 0 {
		return []domain.DeliveryLocation{}, nil
	}

	query := `SELECT` + deliveryLocationColumns + `
		FROM orders o
		JOIN accounts a ON a.id = o.account_id
		WHERE o.id = ANY($1)
		ORDER BY o.order_number`

	locations := []domain.DeliveryLocation{}
	if err := r.db.SelectContext(ctx, &locations, query, pq.Array(orderIDs)); err != nil {
		r.logger.Error("Failed to list delivery locations",
			zap.Int("orders", len(orderIDs)),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	r.logger.Debug("Delivery locations loaded",
		zap.Int("requested", len(orderIDs)),
		zap.Int("found", len(locations)))

	return locations, nil
}

package queries

import (
	"context"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetOrphanedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrphanedOrdersQueryHandler(db *gorm.DB) GetOrphanedOrdersQueryHandler {
	return GetOrphanedOrdersQueryHandler{db: db}
}

func (h GetOrphanedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrphanedOrdersQuery,
) ([]GetOrphanedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrphanedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, customer_id, order_time
		FROM orders
		WHERE status = ?
			AND runner_message_id IS NULL
			AND order_time < ?
		ORDER BY order_time, id
	`, order.Pending.String(), query.CreatedBefore()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp       GetOrphanedOrdersQueryResponse
			id         string
			customerID int64
		)
		if err = rows.Scan(&id, &customerID, &resp.CreatedAt); err != nil {
			return nil, err
		}
		if resp.ID, err = order.ParseID(id); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.NewUserID(customerID); err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

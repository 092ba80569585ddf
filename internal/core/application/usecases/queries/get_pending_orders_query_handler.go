package queries

import (
	"context"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			delivery_type,
			from_location,
			to_location,
			order_time,
			runner_message_id IS NOT NULL
		FROM orders
		WHERE status = ?
		ORDER BY order_time, id
	`, order.Pending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp       GetPendingOrdersQueryResponse
			id, kind   string
			customerID int64
		)

		err = rows.Scan(
			&id,
			&customerID,
			&kind,
			&resp.From,
			&resp.To,
			&resp.CreatedAt,
			&resp.Published,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = order.ParseID(id); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.NewUserID(customerID); err != nil {
			return nil, err
		}
		if resp.Kind, err = order.ParseDeliveryKind(kind); err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

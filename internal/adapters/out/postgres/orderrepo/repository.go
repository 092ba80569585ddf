package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Transition writes the new status of aggregate with a single conditional UPDATE.
// Zero affected rows means another transition got there first.
func (r *GormOrderRepository) Transition(ctx context.Context, aggregate *order.Order, from order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, from.String())

	var columns map[string]any
	switch aggregate.Status() {
	case order.Accepted:
		query = query.Where("runner_id IS NULL")
		columns = map[string]any{
			"status":      dto.Status,
			"runner_id":   dto.RunnerID,
			"accept_time": dto.AcceptTime,
		}
	case order.Cancelled:
		query = query.Where("customer_id = ?", dto.CustomerID)
		columns = map[string]any{
			"status":       dto.Status,
			"cancelled_at": dto.CancelledAt,
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not the target of a transition", aggregate.Status()),
		)
	}

	result := query.Updates(columns)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStateConflictError("order", dto.ID, from.String())
	}

	return nil
}

// UpdateMessages stores where the order's notifications were rendered.
func (r *GormOrderRepository) UpdateMessages(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"customer_chat_id":    dto.CustomerChatID,
			"customer_message_id": dto.CustomerMessageID,
			"runner_chat_id":      dto.RunnerChatID,
			"runner_message_id":   dto.RunnerMessageID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	return nil
}

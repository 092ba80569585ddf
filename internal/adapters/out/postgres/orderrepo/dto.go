// Package orderrepo maps the order aggregate to the orders table and implements
// the conditional status transition that resolves claim/cancel races.
package orderrepo

import (
	"time"

	"makanapa/internal/adapters/out/postgres/customerrepo"
	"makanapa/internal/adapters/out/postgres/runnerrepo"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
)

// OrderDTO is a row of the orders table.
//
// Message references are stored as nullable pairs; a null runner message id means
// the runner post was never published.
type OrderDTO struct {
	ID           string    `gorm:"primaryKey;size:64"`
	CustomerID   int64     `gorm:"not null;index"`
	RunnerID     *int64    `gorm:"index"`
	DeliveryType string    `gorm:"size:16;not null"`
	FromLocation string    `gorm:"type:text;not null"`
	ToLocation   string    `gorm:"type:text;not null"`
	Status       string    `gorm:"size:16;not null;index"`
	OrderTime    time.Time `gorm:"not null"`
	AcceptTime   *time.Time
	CancelledAt  *time.Time

	CustomerChatID    *int64
	CustomerMessageID *int
	RunnerChatID      *int64
	RunnerMessageID   *int

	Customer *customerrepo.CustomerDTO `gorm:"foreignKey:CustomerID;references:UserID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Runner   *runnerrepo.RunnerDTO     `gorm:"foreignKey:RunnerID;references:UserID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	var runnerID *int64
	if s.RunnerID != nil {
		id := s.RunnerID.Int64()
		runnerID = &id
	}

	dto := OrderDTO{
		ID:           s.ID.String(),
		CustomerID:   s.CustomerID.Int64(),
		RunnerID:     runnerID,
		DeliveryType: s.Kind.String(),
		FromLocation: s.From,
		ToLocation:   s.To,
		Status:       s.Status.String(),
		OrderTime:    s.CreatedAt,
		AcceptTime:   s.AcceptedAt,
		CancelledAt:  s.CancelledAt,
	}
	dto.CustomerChatID, dto.CustomerMessageID = refToColumns(s.CustomerMessage)
	dto.RunnerChatID, dto.RunnerMessageID = refToColumns(s.RunnerMessage)
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := order.ParseID(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var runnerID *kernel.UserID
	if dto.RunnerID != nil {
		id := kernel.UserID(*dto.RunnerID)
		runnerID = &id
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		CustomerID:      kernel.UserID(dto.CustomerID),
		RunnerID:        runnerID,
		Kind:            order.DeliveryKind(dto.DeliveryType),
		From:            dto.FromLocation,
		To:              dto.ToLocation,
		Status:          status,
		CreatedAt:       dto.OrderTime,
		AcceptedAt:      dto.AcceptTime,
		CancelledAt:     dto.CancelledAt,
		CustomerMessage: refFromColumns(dto.CustomerChatID, dto.CustomerMessageID),
		RunnerMessage:   refFromColumns(dto.RunnerChatID, dto.RunnerMessageID),
	})
}

func refToColumns(ref kernel.MessageRef) (*int64, *int) {
	if ref.IsZero() {
		return nil, nil
	}
	chatID, messageID := ref.ChatID, ref.MessageID
	return &chatID, &messageID
}

func refFromColumns(chatID *int64, messageID *int) kernel.MessageRef {
	if chatID == nil || messageID == nil {
		return kernel.MessageRef{}
	}
	return kernel.MessageRef{ChatID: *chatID, MessageID: *messageID}
}

// Package customerrepo persists the customer aggregate.
package customerrepo

import (
	"time"

	"makanapa/internal/core/domain/model/customer"
	"makanapa/internal/core/domain/model/kernel"
)

// CustomerDTO is a row of the customers table. Rows are keyed by the platform user id.
type CustomerDTO struct {
	UserID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Username  string `gorm:"size:255"`
	IsBlocked bool   `gorm:"not null"`
	CreatedAt time.Time
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		UserID:    aggregate.ID().Int64(),
		Username:  string(aggregate.Handle()),
		IsBlocked: aggregate.IsBlocked(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	return customer.RestoreCustomer(
		kernel.UserID(dto.UserID),
		kernel.Handle(dto.Username),
		dto.IsBlocked,
		dto.CreatedAt,
	)
}

// Package customer provides the Customer aggregate: a person who requests deliveries.
//
// Customers are created lazily the first time they confirm an order and are never
// deleted. Apart from the moderation flag, a customer record is read-only.
package customer

import (
	"errors"
	"time"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/errs"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is a requester known to the store.
type Customer struct {
	id        kernel.UserID
	handle    kernel.Handle
	blocked   bool
	createdAt time.Time

	isConstructed bool
}

// NewCustomer creates an unblocked customer.
func NewCustomer(id kernel.UserID, handle kernel.Handle, createdAt time.Time) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}

	return &Customer{
		id:            id,
		handle:        handle,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreCustomer rebuilds a customer from storage.
func RestoreCustomer(id kernel.UserID, handle kernel.Handle, blocked bool, createdAt time.Time) (*Customer, error) {
	c, err := NewCustomer(id, handle, createdAt)
	if err != nil {
		return nil, err
	}
	c.blocked = blocked
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.UserID     { return c.id }
func (c *Customer) Handle() kernel.Handle { return c.handle }
func (c *Customer) IsBlocked() bool       { return c.blocked }
func (c *Customer) CreatedAt() time.Time  { return c.createdAt }

// Block bars the customer from starting new dialogues.
func (c *Customer) Block() {
	c.blocked = true
}

// Unblock lifts a previous Block.
func (c *Customer) Unblock() {
	c.blocked = false
}

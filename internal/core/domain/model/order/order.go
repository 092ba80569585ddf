package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a request by a customer to have something carried from one place to
// another. It is the aggregate root of the lifecycle: created pending, then
// accepted by exactly one runner or cancelled by its customer.
//
// Order follows these invariants:
//   - id, customer, kind, from and to are set at creation and never change
//   - runnerID and acceptedAt are set if and only if status is Accepted
//   - cancelledAt is set if and only if status is Cancelled
//   - status only moves out of Pending, and only once
type Order struct {
	id         ID
	customerID kernel.UserID
	runnerID   *kernel.UserID
	kind       DeliveryKind
	from       string
	to         string
	status     Status

	createdAt   time.Time
	acceptedAt  *time.Time
	cancelledAt *time.Time

	// customerMessage and runnerMessage locate the notifications rendered for this
	// order so they can be edited or deleted on later transitions.
	customerMessage kernel.MessageRef
	runnerMessage   kernel.MessageRef

	isConstructed bool
}

// NewOrder creates a pending order. This is the only way, besides RestoreOrder,
// to obtain an Order that passes Validate.
//
// Parameters:
//   - id: identifier from NewID, built from createdAt and the next sequence value
//   - customerID: the requester who confirmed the draft
//   - kind: Food or Item
//   - from, to: pickup and drop-off places; surrounding spaces are trimmed and
//     neither may be empty
//   - createdAt: creation instant (must not be zero)
//
// Returns:
//   - *Order: the order in Pending status with no runner and no messages
//   - error: every validation failure joined together
//
// Example:
//
//	id, _ := order.NewID(now, 17)
//	o, err := order.NewOrder(id, customerID, order.Food, "Block A", "Safiyyah", now)
func NewOrder(
	id ID,
	customerID kernel.UserID,
	kind DeliveryKind,
	from string,
	to string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID),
		o.setKind(kind),
		o.setRoute(from, to),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the flat representation of an order used by persistence adapters.
type Snapshot struct {
	ID              ID
	CustomerID      kernel.UserID
	RunnerID        *kernel.UserID
	Kind            DeliveryKind
	From            string
	To              string
	Status          Status
	CreatedAt       time.Time
	AcceptedAt      *time.Time
	CancelledAt     *time.Time
	CustomerMessage kernel.MessageRef
	RunnerMessage   kernel.MessageRef
}

// RestoreOrder rebuilds an order from storage and re-checks every invariant, so a
// row that violates them is reported instead of silently loaded.
func RestoreOrder(s Snapshot) (*Order, error) {
	o, err := NewOrder(s.ID, s.CustomerID, s.Kind, s.From, s.To, s.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err = s.Status.Validate(); err != nil {
		return nil, err
	}

	if (s.Status == Accepted) != (s.RunnerID != nil && s.AcceptedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must have runner and acceptance time only when accepted", s.Status),
		)
	}
	if (s.Status == Cancelled) != (s.CancelledAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must have cancellation time only when cancelled", s.Status),
		)
	}

	o.status = s.Status
	o.runnerID = s.RunnerID
	o.acceptedAt = s.AcceptedAt
	o.cancelledAt = s.CancelledAt
	o.customerMessage = s.CustomerMessage
	o.runnerMessage = s.RunnerMessage
	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() ID                             { return o.id }
func (o *Order) CustomerID() kernel.UserID          { return o.customerID }
func (o *Order) Kind() DeliveryKind                 { return o.kind }
func (o *Order) From() string                       { return o.from }
func (o *Order) To() string                         { return o.to }
func (o *Order) Status() Status                     { return o.status }
func (o *Order) CreatedAt() time.Time               { return o.createdAt }
func (o *Order) CustomerMessage() kernel.MessageRef { return o.customerMessage }
func (o *Order) RunnerMessage() kernel.MessageRef   { return o.runnerMessage }

// RunnerID returns the claiming runner, or nil while the order is not accepted.
func (o *Order) RunnerID() *kernel.UserID {
	return o.runnerID
}

// AcceptedAt returns the claim time, or nil while the order is not accepted.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// CancelledAt returns the cancellation time, or nil while the order is not cancelled.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// IsPending reports whether the order can still be claimed or cancelled.
func (o *Order) IsPending() bool {
	return o.status == Pending
}

// BelongsTo reports whether customerID owns the order.
func (o *Order) BelongsTo(customerID kernel.UserID) bool {
	return o.customerID == customerID
}

// Accept records the claim by runnerID at the given time.
//
// Parameters:
//   - runnerID: the runner who pressed the accept button
//   - at: claim instant (must not be zero)
//
// Returns:
//   - nil when the order moved to Accepted
//   - a ValueIsInvalid error when the order is no longer Pending
//   - a validation error for an invalid runner or a zero time
//
// This only changes the in-memory aggregate. Persisting it must be conditional
// on the stored status still being Pending; see ports.OrderRepository.Transition.
func (o *Order) Accept(runnerID kernel.UserID, at time.Time) error {
	if err := runnerID.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("accepted at")
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.runnerID = &runnerID
	o.acceptedAt = &at
	return nil
}

// Cancel records the withdrawal of the order at the given time. Persisting it
// follows the same conditional rule as Accept.
func (o *Order) Cancel(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("cancelled at")
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelledAt = &at
	return nil
}

// AttachMessages records where the order's notifications were rendered. Either
// reference may be zero when its send failed.
func (o *Order) AttachMessages(customerMessage, runnerMessage kernel.MessageRef) {
	o.customerMessage = customerMessage
	o.runnerMessage = runnerMessage
}

// Snapshot returns the flat representation of the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:              o.id,
		CustomerID:      o.customerID,
		RunnerID:        o.runnerID,
		Kind:            o.kind,
		From:            o.from,
		To:              o.to,
		Status:          o.status,
		CreatedAt:       o.createdAt,
		AcceptedAt:      o.acceptedAt,
		CancelledAt:     o.cancelledAt,
		CustomerMessage: o.customerMessage,
		RunnerMessage:   o.runnerMessage,
	}
}

func (o *Order) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID kernel.UserID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setKind(kind DeliveryKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

func (o *Order) setRoute(from, to string) error {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	var err error
	if from == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("from location"))
	}
	if to == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("to location"))
	}
	if err != nil {
		return err
	}

	o.from = from
	o.to = to
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}

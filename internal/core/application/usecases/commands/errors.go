package commands

import "errors"

var (
	// ErrCustomerBlocked is returned when a blocked customer tries to start or
	// confirm a dialogue.
	ErrCustomerBlocked = errors.New("customer is blocked")

	// ErrOrderNoLongerAvailable is the claim race-lost outcome: the order was
	// missing or had already left pending. The runner has been told.
	ErrOrderNoLongerAvailable = errors.New("order is no longer available")

	// ErrOrderCannotBeCancelled is the cancel race-lost outcome, also used for
	// orders that belong to someone else. The customer has been told.
	ErrOrderCannotBeCancelled = errors.New("order cannot be cancelled")

	// ErrPublishFailed means the order was stored but never reached the runner
	// channel. It stays pending and is not retried.
	ErrPublishFailed = errors.New("order could not be published to runners")

	// ErrNoActiveDialogue is returned for dialogue input from a requester
	// without an open session.
	ErrNoActiveDialogue = errors.New("no active dialogue")
)

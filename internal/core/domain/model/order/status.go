package order

import (
	"fmt"

	"makanapa/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──┬──> Accepted
//	          └──> Cancelled
//
// Both targets are terminal.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending orders are visible to runners and may be claimed or cancelled.
	Pending

	// Accepted orders were claimed by exactly one runner.
	Accepted

	// Cancelled orders were withdrawn by their customer before any claim.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		Cancelled: "cancelled",
	}
}

// ParseStatus converts the persisted representation back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != Pending && s != Accepted && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name, which is also the persisted value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Accepted || s == Cancelled
}

// Accept transitions Pending to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to accept", s),
		)
	}
	return Accepted, nil
}

// Cancel transitions Pending to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	return Cancelled, nil
}

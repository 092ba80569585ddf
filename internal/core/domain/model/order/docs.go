// Package order provides the Order aggregate for the runner brokering system.
//
// The package includes:
//   - Order: the aggregate root holding who asked, what to move, from where to where,
//     and who (if anyone) claimed it
//   - Status: the pending → accepted | cancelled state machine
//   - ID: the human-readable identifier "YYMMDD_HHMMSS_<seq>"
//   - DeliveryKind: food or item
//
// Key business rules:
//   - A new order is always pending
//   - Accepted and cancelled are terminal; neither can be left
//   - An order has a runner and an acceptance time if and only if it is accepted
//   - An order has a cancellation time if and only if it is cancelled
//   - The owning customer never changes
package order

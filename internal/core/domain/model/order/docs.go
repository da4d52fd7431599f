// Package order provides the Order aggregate: a priced trip from a pickup to a
// dropoff point, handled by one driver.
//
// The package includes:
//   - Order: the aggregate root; every behaviour method raises an event
//   - Status: the state machine that guards transitions
//
// Key business rules:
//   - Price is never negative, at creation or on update
//   - Status follows Pending -> InProgress -> Completed
//   - Cancelled is reachable from Pending or InProgress only
//   - Completing or cancelling stamps the finish time
//
// State changes go through apply, which is shared by the live behaviour
// methods and by Rehydrate, so an order loaded from its event stream and the
// same order loaded from a snapshot row are indistinguishable.
package order

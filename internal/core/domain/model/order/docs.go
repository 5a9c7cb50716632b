// Package order contains the order aggregate: the state machine that governs
// a purchased service from placement through requirement submission, delivery,
// approval or revision, negotiation and cancellation.
//
// Order is the aggregate root. It owns the requirement entries, the
// delivered-work submissions, the append-only event log, the delivery clock
// and the reviews. Negotiations and payments are separate aggregates that
// reference an order by id; the order only tracks the id of its single
// outstanding negotiation.
//
// All mutating methods take the current time as a parameter so transitions
// are deterministic under test. Guard violations surface as conflict errors
// carrying the order's current status.
package order

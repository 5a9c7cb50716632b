// Package payment contains the payment aggregate: one monetary transaction
// tied to an order. An order accumulates several payments over time (the
// initial charge, later cancellations or refunds); exactly one of them is
// "current" (Pending or Paid) at any moment.
//
// Payments are mutated by gateway webhook confirmations and by the
// asynchronous refund/cancel job handlers. The status checks double as
// idempotence guards: a retried job skips payments that already reached
// Refunded or Canceled, so a gateway call happens at most once per payment.
package payment

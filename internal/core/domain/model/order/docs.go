// Package order implements the order aggregate and its supporting value
// objects for the OrderFlow domain.
//
// The package provides:
//   - Order: the aggregate root, created when an agent submits a cart and
//     mutated only by status changes thereafter
//   - Item: an order line with denormalized product name/price snapshots
//   - Status: the order lifecycle enumeration (Pending through Delivered or
//     Cancelled)
//   - StatusTransition: the ephemeral snapshot handed to the notification
//     drafting service for a single status change attempt
//
// The aggregate enforces the core invariant that an order's total equals the
// sum of its line items' price x quantity at creation time; status changes
// never recompute it.
package order

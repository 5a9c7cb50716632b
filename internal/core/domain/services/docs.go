// Package services provides domain services that implement business logic
// spanning multiple aggregates or belonging to none of them.
//
// The package includes:
//   - PriceCalculator: computes an order's cost breakdown, applying the
//     marketplace's marginal service-fee tiers
//
// Domain services are stateless; they are constructed once in the composition
// root and shared across use cases.
package services

// Package kernel provides the core domain primitives shared by every
// aggregate in the order service.
//
// It contains two building blocks:
//   - UUID: an immutable value object for aggregate identity with validation
//     and comparison behavior
//   - PartyRole: the side of the marketplace an actor acts from (buyer or
//     seller), used by orders and negotiations alike
//
// External actor and catalog identifiers (buyer, seller, gig) are opaque
// strings owned by other services and deliberately do not get a kernel type;
// only identities this service mints are UUIDs.
package kernel

// Package negotiation contains the negotiation aggregate: a proposed,
// mutually resolvable change to an in-flight order's terms.
//
// A negotiation references its order by id and is persisted independently;
// the order aggregate only tracks the id of its single pending negotiation.
// The proposal itself is a tagged union keyed by type, each variant carrying
// only its relevant fields. A negotiation is created Pending and resolved
// exactly once, to Accepted or Rejected; it is never mutated afterward.
package negotiation

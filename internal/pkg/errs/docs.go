// Package errs provides the standardized error types used across the order
// service. It implements a consistent pattern for error creation, formatting,
// and unwrapping.
//
// The taxonomy mirrors how failures surface to callers:
//   - ObjectNotFoundError: a referenced order/negotiation/payment is absent
//   - ConflictError: a state-guard violation (wrong status, pending
//     negotiation, unreviewed delivery, unauthorized actor)
//   - MissingRequirementsError: required requirement answers are missing
//   - UploadFailedError: the file store rejected one or more files
//   - ValueIsInvalid/ValueIsRequired/ValueIsOutOfRange: constructor-level
//     validation failures
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrConflict) for errors.Is checks
//   - a struct carrying enough context for the caller to self-correct
//     (ids, current status, offending field names)
//   - constructors with and without a cause
//   - Error() and Unwrap() methods
//
// Guard violations and validation failures are detected before any write and
// are never retried automatically; the HTTP adapter maps the sentinels onto
// response status codes.
package errs

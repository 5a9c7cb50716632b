package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
// Every typed error in this package unwraps to exactly one of these.
var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrConflict            = errors.New("state conflict")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsRequired     = errors.New("value is required")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrMissingRequirements = errors.New("required requirements are not answered")
	ErrUploadFailed        = errors.New("file upload failed")
)

// sanitize strips newlines from values before they are interpolated into
// error messages, keeping log lines single-line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that a referenced order, negotiation or
// payment does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError indicates a state-guard violation: an operation was attempted
// against an order, negotiation or payment whose current status forbids it,
// or by an actor who is not allowed to perform it. CurrentStatus carries the
// observed status so the caller can refresh and decide how to proceed.
type ConflictError struct {
	Resource      string
	ID            string
	CurrentStatus string
	Reason        string
	Cause         error
}

func NewConflictError(resource, id, currentStatus, reason string) *ConflictError {
	return &ConflictError{Resource: resource, ID: id, CurrentStatus: currentStatus, Reason: reason}
}

func NewConflictErrorWithCause(resource, id, currentStatus, reason string, cause error) *ConflictError {
	return &ConflictError{Resource: resource, ID: id, CurrentStatus: currentStatus, Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s is %s: %s",
		ErrConflict, e.Resource, sanitize(e.ID), e.CurrentStatus, sanitize(e.Reason))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsOutOfRangeError indicates that a numeric value is outside its
// permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// MissingRequirementsError enumerates the required requirement entries that
// the buyer did not answer with either text or an uploaded file. The ids let
// the caller highlight the exact offending fields.
type MissingRequirementsError struct {
	OrderID string
	Missing []string
}

func NewMissingRequirementsError(orderID string, missing []string) *MissingRequirementsError {
	return &MissingRequirementsError{OrderID: orderID, Missing: missing}
}

func (e *MissingRequirementsError) Error() string {
	return fmt.Sprintf("%s: order %s, missing: %s",
		ErrMissingRequirements, e.OrderID, strings.Join(e.Missing, ", "))
}

func (e *MissingRequirementsError) Unwrap() error {
	return ErrMissingRequirements
}

// FileFailure is one rejected file in a batch upload.
type FileFailure struct {
	FileName string
	Reason   string
}

// UploadFailedError indicates that the file store rejected one or more files.
// Any single failure aborts the whole submission.
type UploadFailedError struct {
	Failures []FileFailure
}

func NewUploadFailedError(failures []FileFailure) *UploadFailedError {
	return &UploadFailedError{Failures: failures}
}

func (e *UploadFailedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.FileName, sanitize(f.Reason)))
	}
	return fmt.Sprintf("%s: %s", ErrUploadFailed, strings.Join(parts, "; "))
}

func (e *UploadFailedError) Unwrap() error {
	return ErrUploadFailed
}

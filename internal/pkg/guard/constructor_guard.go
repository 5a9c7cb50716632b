// Package guard implements the constructor-guard pattern: a small embedded
// marker that lets a struct detect whether it was built through its designated
// constructor or left as a zero value. Commands and value objects embed a
// ConstructorGuard so that handlers can refuse half-initialized input.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value
// fails validation, so accidentally bypassing the constructor is detected at
// the first Validate call.
//
// Example:
//
//	type DeliverOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewDeliverOrderCommand(orderID kernel.UUID) (DeliverOrderCommand, error) {
//	    ...
//	    return DeliverOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c DeliverOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the embedding object as built
// through its constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was properly constructed. Otherwise it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

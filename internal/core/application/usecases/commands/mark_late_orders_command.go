package commands

import (
	"errors"

	"orders/internal/pkg/guard"
)

var ErrMarkLateOrdersCommandIsNotConstructed = errors.New(
	"MarkLateOrdersCommand must be created via NewMarkLateOrdersCommand constructor",
)

// MarkLateOrdersCommand represents a sweep for in-progress orders past their
// due date. Triggered on a schedule; carries no parameters.
type MarkLateOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewMarkLateOrdersCommand creates a command to flag overdue orders.
func NewMarkLateOrdersCommand() MarkLateOrdersCommand {
	return MarkLateOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c MarkLateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrMarkLateOrdersCommandIsNotConstructed)
}

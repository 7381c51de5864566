package checkout

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or invalid field. It is recovered
// locally by re-prompting the customer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ErrConfirmationMismatch means the submitted code did not match the
// issued one. The flow stays in AwaitingConfirmation and allows retry.
var ErrConfirmationMismatch = errors.New("confirmation code does not match")

// ErrInvalidState is returned when a transition is triggered from a
// state that does not allow it.
var ErrInvalidState = errors.New("operation not allowed in current state")

// PersistenceError wraps a storage failure after confirmation. The cart
// is preserved so the customer does not lose their selection; there is
// no automatic retry.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save order: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

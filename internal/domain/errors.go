package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories, services and the HTTP layer.
// Callers match them with errors.Is; the specific errors wrap their category.
var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("trip is full")
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrPeselTaken            = fmt.Errorf("client with this pesel already exists: %w", ErrConflict)
	ErrDuplicateRegistration = fmt.Errorf("client is already registered for this trip: %w", ErrConflict)

	ErrClientNotFound       = fmt.Errorf("client %w", ErrNotFound)
	ErrTripNotFound         = fmt.Errorf("trip %w", ErrNotFound)
	ErrRegistrationNotFound = fmt.Errorf("registration %w", ErrNotFound)
)

// ValidationError returns an error carrying msg that matches ErrValidation.
func ValidationError(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

// ValidationMessage returns the message of the first validation error in err's chain.
func ValidationMessage(err error) (string, bool) {
	var ve *validationError
	if errors.As(err, &ve) {
		return ve.msg, true
	}
	return "", false
}

package entities

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the quote workflow wraps exactly one of
// these so callers can classify it with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrPermission    = errors.New("permission denied")
	ErrStateConflict = errors.New("state conflict")
	ErrNotFound      = errors.New("not found")
	ErrPersistence   = errors.New("persistence error")
)

var (
	ErrQuoteNotFound       = fmt.Errorf("%w: quote", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("%w: user", ErrNotFound)
	ErrCompanyNotFound     = fmt.Errorf("%w: providing company", ErrNotFound)
	ErrNotificationMissing = fmt.Errorf("%w: notification", ErrNotFound)

	// ErrDuplicateQuoteNumber is reported by repositories when the unique
	// number constraint rejects an insert.
	ErrDuplicateQuoteNumber = fmt.Errorf("%w: duplicate quote number", ErrPersistence)
	// ErrVersionConflict is reported by repositories when the stored version
	// no longer matches the one the caller loaded.
	ErrVersionConflict = fmt.Errorf("%w: version conflict", ErrPersistence)
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// PersistenceFailure wraps a store error so that it classifies as
// ErrPersistence while keeping the driver error reachable.
func PersistenceFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

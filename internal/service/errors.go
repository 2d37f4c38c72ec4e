package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrDuplicateFound = errors.New("possible duplicate found")
)

// ValidationError describes invalid client input. It matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateError refuses a customer creation and carries the record that looks the same.
type DuplicateError struct {
	Existing CustomerResponse
}

func (e *DuplicateError) Error() string {
	return ErrDuplicateFound.Error()
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateFound
}

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

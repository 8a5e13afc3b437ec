package usecase

import (
	"errors"
	"fmt"

	"eventmate/pkg/utils"
)

// Error taxonomy returned by the services. Handlers map each one to a status code.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
)

// ValidationError carries per-field messages alongside ErrInvalidInput
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every input validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrUnsupportedType is returned when a validator receives a value it
	// does not know how to check.
	ErrUnsupportedType = errors.New("unsupported type for validation")
	// ErrUnknownModule is returned for settings of a module name outside the
	// known set.
	ErrUnknownModule = fmt.Errorf("%w: unknown module", ErrValidation)
)

// ValidationError describes the first failing field of a value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for request payloads and
// module settings documents.
//
// Struct rules are declared with go-playground/validator tags on the models;
// module settings are checked against a per-module schema with unknown keys
// rejected. Every failure matches [ErrValidation] via errors.Is and carries a
// message naming the failing field.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// RequestValidator checks structs against their `validate` tags.
// Field names in messages are the JSON names.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator returns a ready RequestValidator.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	return &RequestValidator{validate: v}
}

// Validate checks obj, a struct or pointer to struct. When fields are given
// only those struct fields (Go names) are checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return describe(fieldErrs[0])
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func describe(fe validator.FieldError) *ValidationError {
	field := fe.Field()
	if ns := fe.Namespace(); strings.Contains(ns, "[") {
		// keep the index for slice elements, e.g. hashtags[3]
		field = ns[strings.Index(ns, ".")+1:]
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return NewValidationError(field, "%s is required", field)
	case "min":
		if isString {
			return NewValidationError(field, "%s must be at least %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return NewValidationError(field, "%s must contain at least %s items", field, fe.Param())
		}
		return NewValidationError(field, "%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return NewValidationError(field, "%s must be at most %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return NewValidationError(field, "%s must contain at most %s items", field, fe.Param())
		}
		return NewValidationError(field, "%s must be at most %s", field, fe.Param())
	case "bcryptmax":
		return NewValidationError(field, "%s must be at most %d bytes", field, maxPasswordBytes)
	case "email":
		return NewValidationError(field, "%s must be a valid email address", field)
	case "url":
		return NewValidationError(field, "%s must be a valid URL", field)
	case "oneof":
		return NewValidationError(field, "%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return NewValidationError(field, "%s is invalid", field)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/imperial-command/models"
)

// SettingsValidator checks a module settings document against the schema
// of its module.
type SettingsValidator struct {
	requests *RequestValidator
}

func NewSettingsValidator(requests *RequestValidator) *SettingsValidator {
	return &SettingsValidator{requests: requests}
}

// Validate accepts a models.Module (or pointer) and checks its Settings
// against the schema selected by its Name.
func (v *SettingsValidator) Validate(ctx context.Context, obj any, _ ...string) error {
	switch m := obj.(type) {
	case models.Module:
		_, err := v.Normalize(ctx, m.Name, m.Settings)
		return err
	case *models.Module:
		_, err := v.Normalize(ctx, m.Name, m.Settings)
		return err
	default:
		return ErrUnsupportedType
	}
}

// Normalize decodes raw strictly into the schema of name, validates it and
// returns the re-encoded document with unset keys dropped.
func (v *SettingsValidator) Normalize(ctx context.Context, name models.ModuleName, raw json.RawMessage) (json.RawMessage, error) {
	schema, err := schemaFor(name)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, NewValidationError("settings", "settings is required")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(schema); err != nil {
		return nil, settingsDecodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, NewValidationError("settings", "settings must be a single JSON object")
	}

	if err := v.requests.Validate(ctx, schema); err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("error encoding settings: %w", err)
	}
	return normalized, nil
}

func schemaFor(name models.ModuleName) (any, error) {
	switch name {
	case models.ModuleInstagram:
		return &models.InstagramSettings{}, nil
	case models.ModuleYouTube:
		return &models.YouTubeSettings{}, nil
	case models.ModuleStatistics:
		return &models.StatisticsSettings{}, nil
	default:
		return nil, ErrUnknownModule
	}
}

func settingsDecodeError(err error) error {
	msg := err.Error()
	// encoding/json reports unknown keys as: json: unknown field "x"
	if strings.HasPrefix(msg, "json: unknown field ") {
		key := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return NewValidationError(key, "settings: unknown key %q", key)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return NewValidationError(typeErr.Field, "settings: %s must be of type %s", typeErr.Field, typeErr.Type.String())
	}
	return NewValidationError("settings", "settings must be a JSON object")
}

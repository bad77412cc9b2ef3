// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/service"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/internal/validators"
)

// internalErrorMessage is the only message a 5xx response ever carries.
const internalErrorMessage = "internal server error"

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidToken:               http.StatusUnauthorized,
	ErrForbidden:                  http.StatusForbidden,
	ErrRouteNotFound:              http.StatusNotFound,
	ErrTooManyRequests:            http.StatusTooManyRequests,
	ErrAvatarTooLarge:             http.StatusRequestEntityTooLarge,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrRealtimeUnavailable:        http.StatusServiceUnavailable,

	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrWrongOldPassword:        http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified:   http.StatusInternalServerError,
	service.ErrInvalidAvatar:           http.StatusBadRequest,
	service.ErrInvalidStatsRange:       http.StatusBadRequest,
	service.ErrUnknownStatsModule:      http.StatusBadRequest,

	validators.ErrUnknownModule:   http.StatusBadRequest,
	validators.ErrUnsupportedType: http.StatusInternalServerError,

	store.ErrNotFound:          http.StatusNotFound,
	store.ErrNoUserWasFound:    http.StatusNotFound,
	store.ErrModuleNotFound:    http.StatusNotFound,
	store.ErrAPIKeyNotFound:    http.StatusNotFound,
	store.ErrSettingNotFound:   http.StatusNotFound,
	store.ErrAvatarNotFound:    http.StatusNotFound,
	store.ErrInvalidAvatarName: http.StatusNotFound,
	store.ErrAlreadyExists:     http.StatusConflict,
	store.ErrUsernameTaken:     http.StatusConflict,
	store.ErrEmailTaken:        http.StatusConflict,
	store.ErrAPIKeyExists:      http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError returns the HTTP status of err together with the message
// safe to show to the client. Field validation failures carry their own
// message; known sentinels answer with their text, the outermost one winning
// when several are wrapped; everything else is an opaque 500.
func statusFromError(err error) (int, string) {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message
	}

	if target, status, ok := lookupStatus(err); ok {
		if status >= http.StatusInternalServerError {
			return status, internalErrorMessage
		}
		return status, target.Error()
	}

	if errors.Is(err, validators.ErrValidation) {
		return http.StatusBadRequest, validators.ErrValidation.Error()
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// lookupStatus walks the wrap tree of err depth first and returns the first
// node that is a key of errorStatusMap.
func lookupStatus(err error) (error, int, bool) {
	if err == nil {
		return nil, 0, false
	}
	if reflect.TypeOf(err).Comparable() {
		if status, ok := errorStatusMap[err]; ok {
			return err, status, true
		}
	}

	switch wrapped := err.(type) {
	case interface{ Unwrap() error }:
		return lookupStatus(wrapped.Unwrap())
	case interface{ Unwrap() []error }:
		for _, inner := range wrapped.Unwrap() {
			if target, status, ok := lookupStatus(inner); ok {
				return target, status, true
			}
		}
	}
	return nil, 0, false
}

// respondError logs err with the request logger and writes the uniform
// {"error": message} body. Client mistakes are logged at warn level.
func respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", status).Msg(msg)
	}

	utils.WriteError(w, message, status)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/service"
	"github.com/MKhiriev/love-health/internal/store"
	"github.com/MKhiriev/love-health/internal/utils"
	"github.com/MKhiriev/love-health/internal/validators"
)

// errorStatuses is matched in order; the first target found in the error
// chain decides the status and the client-facing message.
var errorStatuses = []struct {
	target error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidGzip, http.StatusBadRequest},
	{ErrInvalidID, http.StatusBadRequest},
	{ErrInvalidQuery, http.StatusBadRequest},
	{ErrMissingFile, http.StatusBadRequest},
	{ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	{ErrRequestBodyTooLarge, http.StatusRequestEntityTooLarge},
	{ErrRequestTimeout, http.StatusGatewayTimeout},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrTooManyRequests, http.StatusTooManyRequests},
	{ErrRouteNotFound, http.StatusNotFound},
	{ErrMethodNotAllowed, http.StatusMethodNotAllowed},

	{validators.ErrInvalidInput, http.StatusBadRequest},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrUserExists, http.StatusConflict},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrUserNotDeleted, http.StatusNotFound},
	{service.ErrWrongPassword, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenRevoked, http.StatusUnauthorized},
	{service.ErrPrincipalNotFound, http.StatusUnauthorized},
	{service.ErrUserDisabled, http.StatusForbidden},
	{service.ErrUnsupportedFileType, http.StatusUnsupportedMediaType},

	{store.ErrAlreadyExists, http.StatusConflict},
	{store.ErrNotFound, http.StatusNotFound},
	{store.ErrBlobNotFound, http.StatusNotFound},
	{store.ErrInvalidBlobName, http.StatusNotFound},
}

// internalErrorMessage replaces internal error details in production.
const internalErrorMessage = "internal server error"

// statusFromError returns the HTTP status for err and the sentinel it matched,
// or 500 and nil.
func statusFromError(err error) (int, error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.target
		}
	}
	return http.StatusInternalServerError, nil
}

// messageFromError picks the client-facing text: validation details, the
// matched sentinel's text, or for internal errors the error itself outside
// production.
func (h *Handler) messageFromError(err error, target error) string {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	if target != nil {
		return target.Error()
	}
	if h.production {
		return internalErrorMessage
	}
	return err.Error()
}

// writeError translates err into an error envelope. Internal errors are
// logged with full detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status, target := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "*Handler.writeError").Msg("internal error")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, writeErr := utils.WriteEnvelope(w, status, h.messageFromError(err, target), nil); writeErr != nil {
		log.Err(writeErr).Str("func", "*Handler.writeError").Msg("error writing response")
	}
}

// writeOK writes a success envelope.
func (h *Handler) writeOK(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	if _, err := utils.WriteEnvelope(w, status, message, data); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writeOK").Msg("error writing response")
	}
}

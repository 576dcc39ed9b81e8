// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrForbidden is returned when the principal lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidGzip is returned when a gzip-encoded body cannot be read.
	ErrInvalidGzip = errors.New("invalid gzip data")

	// ErrInvalidID is returned when a path id is not a positive integer.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidQuery is returned when query parameters cannot be parsed.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrMissingFile is returned when a multipart upload has no "file" part.
	ErrMissingFile = errors.New("missing `file` form field")

	// ErrFileTooLarge is returned when an upload exceeds the configured size.
	ErrFileTooLarge = errors.New("file is too large")

	// ErrTooManyRequests is returned when the login throttle rejects a request.
	ErrTooManyRequests = errors.New("too many login attempts, try again later")

	// ErrRouteNotFound is returned for unknown paths.
	ErrRouteNotFound = errors.New("route not found")

	// ErrRequestTimeout is returned when a handler outlives the request timeout.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrRequestBodyTooLarge is returned when a JSON body exceeds the limit.
	ErrRequestBodyTooLarge = errors.New("request body is too large")

	// ErrPanic wraps a value recovered from a panicking handler.
	ErrPanic = errors.New("recovered panic")

	// ErrMethodNotAllowed is returned when the path exists but not for the method.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

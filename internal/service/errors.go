// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Authentication errors.
var (
	// ErrUserExists is returned by Register when the username, e-mail or
	// phone is already taken by a visible account.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is returned when no visible account matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrWrongPassword is returned when the supplied password does not match
	// the stored hash.
	ErrWrongPassword = errors.New("wrong password")

	// ErrUserDisabled is returned when the account status is not active.
	ErrUserDisabled = errors.New("user is disabled")

	// ErrTokenCreationFailed is returned when signing a new token fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is returned for any token that fails
	// signature, issuer or expiry checks.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenRevoked is returned for a well-formed token whose id was revoked
	// by logout or account deletion.
	ErrTokenRevoked = errors.New("token is revoked")

	// ErrPrincipalNotFound is returned when a valid token names an account
	// that no longer exists or was soft-deleted.
	ErrPrincipalNotFound = errors.New("token owner not found")

	// ErrHashingPassword wraps bcrypt failures.
	ErrHashingPassword = errors.New("error hashing password")
)

// User and administration errors.
var (
	// ErrInvalidDataProvided is returned when a request carries no usable data.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrUnsupportedFileType is returned when an upload is not an image.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrUserNotDeleted is returned by Restore when the account is absent or
	// not soft-deleted.
	ErrUserNotDeleted = errors.New("user does not exist or is not deleted")
)

// ErrVersionIsNotSpecified is returned by NewAppInfoService when no version
// is configured.
var ErrVersionIsNotSpecified = errors.New("app version is not specified")

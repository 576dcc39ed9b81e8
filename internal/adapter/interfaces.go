// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the love-health REST API.
//
// The primary abstraction is [APIClient]. The package ships an HTTP
// implementation built on resty ([NewHTTPAPIClient]) that unwraps the response
// envelope and holds the bearer token between calls.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/love-health/models"
)

// APIClient is a client of the love-health REST API. Register and Login
// store the issued token; every other call except PublicProfile and Version
// requires it.
type APIClient interface {
	// SetToken stores the bearer token attached to subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently held, or "".
	Token() string

	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Logout revokes the held token and forgets it.
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (models.UserWithProfile, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserWithProfile, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// UploadAvatar sends body as the multipart "file" field and returns the
	// avatar URL.
	UploadAvatar(ctx context.Context, filename string, body io.Reader) (string, error)

	CommunityStats(ctx context.Context) (models.CommunityStats, error)
	DeleteAccount(ctx context.Context) error
	PublicProfile(ctx context.Context, userID int64) (models.PublicProfileResponse, error)

	ListUsers(ctx context.Context, req models.ListUsersRequest) (models.UserListResponse, error)
	RestoreUser(ctx context.Context, userID int64) error

	Version(ctx context.Context) (string, error)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/love-health/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// PrincipalCtxKey is the key under which the authentication middleware
	// stores the [models.Principal] of the request.
	PrincipalCtxKey = contextKey("principal")

	// TokenCtxKey is the key under which the authentication middleware
	// stores the verified access token.
	TokenCtxKey = contextKey("token")
)

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, p)
}

// PrincipalFromContext retrieves the authenticated principal.
//
// ok is false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(PrincipalCtxKey).(models.Principal)
	return p, ok
}

// GetUserIDFromContext retrieves the identifier of the authenticated user.
//
// Example usage:
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // handle missing user in context
//	}
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	p, ok := PrincipalFromContext(ctx)
	return p.ID, ok
}

// WithToken returns a copy of ctx carrying the verified token.
func WithToken(ctx context.Context, token models.Token) context.Context {
	return context.WithValue(ctx, TokenCtxKey, token)
}

// TokenFromContext retrieves the token the request authenticated with.
func TokenFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(TokenCtxKey).(models.Token)
	return token, ok
}

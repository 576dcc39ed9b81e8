// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/utils"
	"github.com/MKhiriev/love-health/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header and resolves
// it via [service.AuthService.Authenticate]. On success the principal and the
// parsed token are stored in the request context under [utils.PrincipalCtxKey]
// and [utils.TokenCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with:
//   - 401 when the header is absent or malformed, or the token is invalid,
//     expired, revoked, or names an absent or soft-deleted account.
//   - 403 when the account is disabled.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := bearerToken(r)
		if err != nil {
			log.Debug().Err(err).Msg("missing credentials")
			h.writeError(w, r, err)
			return
		}

		principal, token, err := h.services.AuthService.Authenticate(r.Context(), tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("authentication failed")
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r, principal, token)))
	})
}

// optionalAuth attaches the principal when the request carries a usable
// token and passes every request through unchanged otherwise.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		principal, token, err := h.services.AuthService.Authenticate(r.Context(), tokenString)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("optional authentication skipped")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r, principal, token)))
	})
}

// requireAdmin must run after auth. It rejects non-admin principals with 403.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := utils.PrincipalFromContext(r.Context())
		if !ok || !principal.IsAdmin() {
			logger.FromRequest(r).Warn().Int64("user_id", principal.ID).Msg("admin access denied")
			h.writeError(w, r, ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token of a "Bearer <token>" Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
	}
	return token, nil
}

func withPrincipal(r *http.Request, principal models.Principal, token models.Token) context.Context {
	ctx := utils.WithPrincipal(r.Context(), principal)
	return utils.WithToken(ctx, token)
}

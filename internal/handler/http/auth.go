// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/metrics"
	"github.com/MKhiriev/love-health/internal/utils"
	"github.com/MKhiriev/love-health/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.ObserveRegistration()

	token, err := h.services.AuthService.CreateToken(ctx, user.User, false)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.writeError(w, r, err)
		return
	}

	h.writeOK(w, r, http.StatusCreated, "registration successful", models.AuthResponse{
		User:  user,
		Token: token.SignedString,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if !h.loginLimiter.Allow(loginKey(req.Username, r)) {
		h.metrics.ObserveLogin(metrics.LoginThrottled)
		log.Warn().Str("identifier", req.Username).Str("remote_addr", r.RemoteAddr).Msg("login throttled")
		h.writeError(w, r, ErrTooManyRequests)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		h.metrics.ObserveLogin(metrics.LoginFailure)
		h.writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user.User, req.Remember)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.writeError(w, r, err)
		return
	}
	h.metrics.ObserveLogin(metrics.LoginSuccess)

	log.Debug().Int64("id", user.ID).Msg("user successfully logged in")
	h.writeOK(w, r, http.StatusOK, "login successful", models.AuthResponse{
		User:     user,
		Token:    token.SignedString,
		Remember: req.Remember,
	})
}

// loginKey identifies a login throttle bucket: the identifier from one client
// address.
func loginKey(identifier string, r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return strings.ToLower(identifier) + "|" + host
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, _ := utils.TokenFromContext(r.Context())

	if err := h.services.AuthService.Logout(r.Context(), token); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeOK(w, r, http.StatusOK, "logged out", nil)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req models.ChangePasswordRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ChangePassword(r.Context(), userID, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeOK(w, r, http.StatusOK, "password changed", nil)
}

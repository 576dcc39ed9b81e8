// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/utils"
	"github.com/MKhiriev/love-health/models"
)

// defaultMaxUploadSize applies when no upload limit is configured.
const defaultMaxUploadSize = 5 << 20

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	user, err := h.services.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeOK(w, r, http.StatusOK, "ok", models.ProfileResponse{User: user})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req models.UpdateProfileRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeOK(w, r, http.StatusOK, "profile updated", models.ProfileResponse{User: user})
}

func (h *Handler) publicProfile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.PublicProfile(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	viewerID, ok := utils.GetUserIDFromContext(r.Context())
	h.writeOK(w, r, http.StatusOK, "ok", models.PublicProfileResponse{
		User:   user,
		IsSelf: ok && viewerID == id,
	})
}

func (h *Handler) communityStats(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	stats, err := h.services.UserService.CommunityStats(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeOK(w, r, http.StatusOK, "ok", stats)
}

// deleteAccount soft-deletes the caller's account and revokes the token the
// request was made with.
func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	if err := h.services.UserService.DeleteAccount(ctx, userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	token, _ := utils.TokenFromContext(ctx)
	if err := h.services.AuthService.Logout(ctx, token); err != nil {
		logger.FromRequest(r).Err(err).Int64("user_id", userID).Msg("account deleted but token revocation failed")
	}

	h.writeOK(w, r, http.StatusOK, "account deleted", nil)
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	limit := h.maxUploadSize
	if limit <= 0 {
		limit = defaultMaxUploadSize
	}
	if r.ContentLength > limit {
		h.writeError(w, r, ErrFileTooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, r, ErrFileTooLarge)
			return
		}
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrMissingFile, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrMissingFile, err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}

	url, err := h.services.UserService.UploadAvatar(r.Context(), userID, models.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeOK(w, r, http.StatusOK, "avatar uploaded", models.AvatarResponse{Avatar: url})
}

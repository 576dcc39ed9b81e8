// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/go-chi/chi/v5"
)

// getFile streams a public object, e.g. an avatar stored by the local blob
// backend.
func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	bucket, name := chi.URLParam(r, "bucket"), chi.URLParam(r, "name")

	body, err := h.services.UserService.OpenFile(r.Context(), bucket, name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, body); err != nil {
		logger.FromRequest(r).Err(err).Str("object", name).Msg("error streaming file")
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/utils"
	"github.com/MKhiriev/love-health/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	h.writeOK(w, r, http.StatusOK, "ok", models.VersionResponse{
		Version: h.services.AppInfoService.GetAppVersion(r.Context()),
	})
}

// health reports 503 when the database does not answer.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AppInfoService.Health(r.Context()); err != nil {
		if _, writeErr := utils.WriteEnvelope(w, http.StatusServiceUnavailable, "database unavailable", models.HealthResponse{
			Status:   "degraded",
			Database: "down",
		}); writeErr != nil {
			logger.FromRequest(r).Err(writeErr).Msg("error writing response")
		}
		return
	}

	h.writeOK(w, r, http.StatusOK, "ok", models.HealthResponse{Status: "ok", Database: "up"})
}

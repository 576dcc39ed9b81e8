// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"
)

// withCORS answers preflight requests and sets the CORS headers for allowed
// origins. "*" in the configured list allows every origin.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	allowAll := slices.Contains(h.corsOrigins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && (allowAll || slices.Contains(h.corsOrigins, origin)) {
			header := w.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
			header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Trace-ID")
			header.Set("Access-Control-Expose-Headers", "X-Trace-ID")
			header.Set("Access-Control-Max-Age", "3600")
			header.Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

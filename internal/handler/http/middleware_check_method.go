// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

var routableMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch,
}

// methodNotAllowed returns the router's MethodNotAllowed handler. It answers
// with a 405 envelope and an Allow header listing the methods the path does
// serve, found by matching the path against router for each method.
func (h *Handler) methodNotAllowed(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range routableMethods {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) == 0 {
			h.writeError(w, r, ErrRouteNotFound)
			return
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		h.writeError(w, r, ErrMethodNotAllowed)
	}
}

// notFound answers unknown paths with a 404 envelope.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, ErrRouteNotFound)
}

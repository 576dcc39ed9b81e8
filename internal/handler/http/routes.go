// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router with the full middleware chain.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTraceID,
		h.withLogging,
		middleware.RealIP,
		h.withRecover,
		h.metrics.InstrumentHandler,
		h.withCORS,
		h.withGZip,
	)
	if h.requestTimeout > 0 {
		router.Use(h.withTimeout(h.requestTimeout))
	}

	// must be set before any Route call so subrouters inherit them
	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed(router))

	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/health", h.health)
	router.Method("GET", "/metrics", h.metrics.Handler())
	router.Get("/files/{bucket}/{name}", h.getFile)

	router.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.With(h.optionalAuth).Get("/public/{id}", h.publicProfile)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/logout", h.logout)
			r.Get("/profile", h.getProfile)
			r.Put("/profile", h.updateProfile)
			r.Put("/password", h.changePassword)
			r.Post("/avatar", h.uploadAvatar)
			r.Get("/community", h.communityStats)
			r.Delete("/account", h.deleteAccount)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)
				r.Get("/list", h.listUsers)
				r.Post("/{id}/restore", h.restoreUser)
			})
		})
	})

	return router
}

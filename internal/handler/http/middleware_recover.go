// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/love-health/internal/logger"
)

// withRecover turns a handler panic into a 500 error envelope. The
// http.ErrAbortHandler sentinel is re-panicked so the server aborts the
// response as intended.
func (h *Handler) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler { //nolint:errorlint
				panic(rvr)
			}

			logger.FromRequest(r).Error().
				Str("func", "*Handler.withRecover").
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if r.Header.Get("Connection") != "Upgrade" {
				h.writeError(w, r, fmt.Errorf("%w: %v", ErrPanic, rvr))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

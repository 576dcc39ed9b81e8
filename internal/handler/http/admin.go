// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/love-health/models"
)

// listUsers serves GET /list?page=&limit=&with_deleted=.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	req, err := parseListUsersRequest(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.validator.Validate(r.Context(), &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.services.AdminService.ListUsers(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeOK(w, r, http.StatusOK, "ok", resp)
}

func parseListUsersRequest(q url.Values) (models.ListUsersRequest, error) {
	req := models.ListUsersRequest{Page: 1, Limit: 10}

	var err error
	if v := q.Get("page"); v != "" {
		if req.Page, err = strconv.ParseUint(v, 10, 64); err != nil {
			return req, fmt.Errorf("%w: page: %w", ErrInvalidQuery, err)
		}
	}
	if v := q.Get("limit"); v != "" {
		if req.Limit, err = strconv.ParseUint(v, 10, 64); err != nil {
			return req, fmt.Errorf("%w: limit: %w", ErrInvalidQuery, err)
		}
	}
	if v := q.Get("with_deleted"); v != "" {
		if req.WithDeleted, err = strconv.ParseBool(v); err != nil {
			return req, fmt.Errorf("%w: with_deleted: %w", ErrInvalidQuery, err)
		}
	}
	return req, nil
}

func (h *Handler) restoreUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.AdminService.RestoreUser(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeOK(w, r, http.StatusOK, "user restored", nil)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Envelope is the body of every JSON response produced by the HTTP API.
type Envelope struct {
	Code      int    `json:"code"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	User     UserWithProfile `json:"user"`
	Token    string          `json:"token"`
	Remember bool            `json:"remember,omitempty"`
}

// ProfileResponse wraps the composite view of the current user.
type ProfileResponse struct {
	User UserWithProfile `json:"user"`
}

// PublicProfileResponse is the public view of another user's profile.
type PublicProfileResponse struct {
	User   UserWithProfile `json:"user"`
	IsSelf bool            `json:"is_self"`
}

// AvatarResponse carries the public URL of a freshly uploaded avatar.
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total      int64  `json:"total"`
	Page       uint64 `json:"page"`
	Limit      uint64 `json:"limit"`
	TotalPages uint64 `json:"total_pages"`
}

// NewPagination computes the page count for total items split into pages of limit.
func NewPagination(total int64, page, limit uint64) Pagination {
	var pages uint64
	if limit > 0 && total > 0 {
		pages = (uint64(total) + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// UserListResponse is returned by the administrative user listing.
type UserListResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// VersionResponse exposes the running application version.
type VersionResponse struct {
	Version string `json:"version"`
}

// HealthResponse reports the state of backing services.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

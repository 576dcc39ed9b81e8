// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Principal is the authenticated actor attached to a request.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`

	// TokenID is the jti of the token the principal authenticated with.
	TokenID string `json:"-"`
}

// IsAdmin reports whether the principal may use administrative endpoints.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

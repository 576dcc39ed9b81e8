// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role classifies a principal for authorization decisions.
type Role string

const (
	// RoleUser is assigned to every account created through registration.
	RoleUser Role = "user"
	// RoleAdmin grants access to the administrative endpoints
	// (user listing, account restore).
	RoleAdmin Role = "admin"
)

// UserStatus is the account activity state stored in users.status.
type UserStatus int16

const (
	// StatusDisabled accounts cannot log in.
	StatusDisabled UserStatus = 0
	// StatusActive is the default status of a registered account.
	StatusActive UserStatus = 1
	// StatusPending accounts are created but not yet confirmed.
	StatusPending UserStatus = 2
)

// User represents a row of the "users" table.
//
// PasswordHash is never serialized; handlers may return User values directly.
type User struct {
	// ID is the generated primary key.
	ID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// Email is an optional unique e-mail address, usable as a login identifier.
	Email *string `json:"email,omitempty"`

	// Phone is an optional unique all-digit phone number, usable as a login identifier.
	Phone *string `json:"phone,omitempty"`

	// Avatar is the public URL of the uploaded avatar image.
	Avatar *string `json:"avatar,omitempty"`

	// Role is the authorization class of the account.
	Role Role `json:"role"`

	// Status is the activity state of the account.
	Status UserStatus `json:"status"`

	// IsDeleted reports whether the account has been soft-deleted.
	IsDeleted bool `json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsActive reports whether the account may authenticate.
func (u User) IsActive() bool {
	return !u.IsDeleted && u.Status == StatusActive
}

// Principal returns the authenticated-actor view of the user.
func (u User) Principal() Principal {
	return Principal{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

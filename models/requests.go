// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of POST /api/v1/users/register.
type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=32,username"`
	Password string  `json:"password" validate:"required,min=6,max=64"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=128"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,numeric,min=5,max=20"`
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,max=64"`
	Gender   *Gender `json:"gender,omitempty" validate:"omitempty,min=0,max=2"`
}

// LoginRequest is the body of POST /api/v1/users/login.
//
// Username may hold a username, an e-mail address or a phone number.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=64"`
	Remember bool   `json:"remember"`
}

// UpdateProfileRequest is the body of PUT /api/v1/users/profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Password *string     `json:"password,omitempty" validate:"omitempty,min=6,max=64"`
	Email    *string     `json:"email,omitempty" validate:"omitempty,email,max=128"`
	Phone    *string     `json:"phone,omitempty" validate:"omitempty,numeric,min=5,max=20"`
	Avatar   *string     `json:"avatar,omitempty" validate:"omitempty,url,max=512"`
	Status   *UserStatus `json:"status,omitempty" validate:"omitempty,min=0,max=2"`

	Nickname     *string  `json:"nickname,omitempty" validate:"omitempty,max=64"`
	Gender       *Gender  `json:"gender,omitempty" validate:"omitempty,min=0,max=2"`
	Birthday     *Date    `json:"birthday,omitempty"`
	Height       *float64 `json:"height,omitempty" validate:"omitempty,gt=0,lt=300"`
	Weight       *float64 `json:"weight,omitempty" validate:"omitempty,gt=0,lt=700"`
	TargetWeight *float64 `json:"target_weight,omitempty" validate:"omitempty,gt=0,lt=700"`
	Bio          *string  `json:"bio,omitempty" validate:"omitempty,max=500"`
	Preference   JSONText `json:"preference,omitempty"`
}

// ChangePasswordRequest is the body of PUT /api/v1/users/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,max=64"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=64,nefield=OldPassword"`
}

// MaxListPage bounds the page number so the offset cannot overflow.
const MaxListPage = 1_000_000

// ListUsersRequest holds the query parameters of the administrative listing.
type ListUsersRequest struct {
	Page        uint64 `json:"page" validate:"min=1,max=1000000"`
	Limit       uint64 `json:"limit" validate:"min=1,max=100"`
	WithDeleted bool   `json:"with_deleted"`
}

// Offset returns the number of rows skipped before the requested page.
func (r ListUsersRequest) Offset() uint64 {
	return (r.Page - 1) * r.Limit
}

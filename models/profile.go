// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Gender is stored in user_profiles.gender.
type Gender int16

const (
	GenderUnknown Gender = 0
	GenderMale    Gender = 1
	GenderFemale  Gender = 2
)

// Profile represents a row of the "user_profiles" table, the 1:1 detail
// record of a [User]. Every descriptive field is optional.
type Profile struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Nickname     *string   `json:"nickname,omitempty"`
	Gender       *Gender   `json:"gender,omitempty"`
	Birthday     *Date     `json:"birthday,omitempty"`
	Height       *float64  `json:"height,omitempty"`
	Weight       *float64  `json:"weight,omitempty"`
	TargetWeight *float64  `json:"target_weight,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Preference   JSONText  `json:"preference,omitempty"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "user_profiles"
}

// UserWithProfile is the composite view of a user left-joined with its
// profile. Profile fields are nil when no profile row exists yet.
type UserWithProfile struct {
	User

	Nickname     *string  `json:"nickname"`
	Gender       *Gender  `json:"gender"`
	Birthday     *Date    `json:"birthday"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	TargetWeight *float64 `json:"target_weight"`
	Bio          *string  `json:"bio"`
	Preference   JSONText `json:"preference"`
}

// CommunityStats aggregates the social counters of a user.
type CommunityStats struct {
	Posts       int64 `json:"posts"`
	Following   int64 `json:"following"`
	Followers   int64 `json:"followers"`
	Collections int64 `json:"collections"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/love-health/models"
)

// UsersTable describes the "users" table.
var UsersTable = Table[models.User]{
	Name: models.User{}.TableName(),
	Columns: []string{
		"id", "username", "password_hash", "email", "phone", "avatar",
		"role", "status", "is_deleted", "created_at", "updated_at",
	},
	SoftDelete:  true,
	TouchColumn: "updated_at",
	Scan:        scanUser,
}

func scanUser(row RowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Phone, &u.Avatar,
		&u.Role, &u.Status, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// ProfilesTable describes the "user_profiles" table.
var ProfilesTable = Table[models.Profile]{
	Name: models.Profile{}.TableName(),
	Columns: []string{
		"id", "user_id", "nickname", "gender", "birthday", "height", "weight",
		"target_weight", "bio", "preference", "is_deleted", "created_at", "updated_at",
	},
	SoftDelete:  true,
	TouchColumn: "updated_at",
	Scan:        scanProfile,
}

func scanProfile(row RowScanner) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Nickname, &p.Gender, &p.Birthday, &p.Height, &p.Weight,
		&p.TargetWeight, &p.Bio, &p.Preference, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Community tables are only counted, so their rows scan to the primary key
// and the remaining columns are discarded.
var (
	PostsTable = Table[int64]{
		Name:       "posts",
		Columns:    []string{"id", "user_id", "content", "is_deleted"},
		SoftDelete: true,
		Scan:       scanID(4),
	}
	FollowsTable = Table[int64]{
		Name:       "user_follows",
		Columns:    []string{"id", "user_id", "followed_id", "is_deleted"},
		SoftDelete: true,
		Scan:       scanID(4),
	}
	CollectionsTable = Table[int64]{
		Name:       "collections",
		Columns:    []string{"id", "user_id", "post_id", "is_deleted"},
		SoftDelete: true,
		Scan:       scanID(4),
	}
)

func scanID(columns int) func(RowScanner) (int64, error) {
	return func(row RowScanner) (int64, error) {
		var id int64
		dest := make([]any, columns)
		dest[0] = &id
		for i := 1; i < columns; i++ {
			dest[i] = new(any)
		}
		err := row.Scan(dest...)
		return id, err
	}
}

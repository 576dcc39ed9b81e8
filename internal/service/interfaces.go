// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"

	"github.com/MKhiriev/love-health/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService covers registration, credential checks and the token lifecycle.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.UserWithProfile, error)
	Login(ctx context.Context, req models.LoginRequest) (models.UserWithProfile, error)
	CreateToken(ctx context.Context, user models.User, remember bool) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// Authenticate parses tokenString and resolves the principal it names.
	Authenticate(ctx context.Context, tokenString string) (models.Principal, models.Token, error)

	// Logout revokes token until it would have expired.
	Logout(ctx context.Context, token models.Token) error
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
}

// UserService serves the self-service profile endpoints.
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (models.UserWithProfile, error)
	UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.UserWithProfile, error)
	DeleteAccount(ctx context.Context, userID int64) error
	PublicProfile(ctx context.Context, userID int64) (models.UserWithProfile, error)
	CommunityStats(ctx context.Context, userID int64) (models.CommunityStats, error)

	// UploadAvatar stores the image in the public bucket and returns its URL.
	UploadAvatar(ctx context.Context, userID int64, file models.Upload) (string, error)

	// OpenFile reads an object of the public bucket.
	OpenFile(ctx context.Context, bucket, name string) (io.ReadCloser, error)
}

// AdminService serves the administrative endpoints.
type AdminService interface {
	ListUsers(ctx context.Context, req models.ListUsersRequest) (models.UserListResponse, error)
	RestoreUser(ctx context.Context, userID int64) error
}

// AppInfoService exposes build metadata and backend health.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) error
}

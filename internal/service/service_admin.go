// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/store"
	"github.com/MKhiriev/love-health/models"
)

// Listing defaults applied to zero query parameters.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type adminService struct {
	userRepository store.UserRepository

	logger *logger.Logger
}

// NewAdminService constructs the AdminService. Authorization is enforced by
// the transport layer before any method is called.
func NewAdminService(userRepository store.UserRepository, logger *logger.Logger) AdminService {
	return &adminService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ListUsers returns one page of accounts, newest first, with the total count
// computed under the same soft-delete visibility.
func (s *adminService) ListUsers(ctx context.Context, req models.ListUsersRequest) (models.UserListResponse, error) {
	if req.Page == 0 {
		req.Page = defaultPage
	}
	if req.Limit == 0 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	if req.Page > models.MaxListPage {
		return models.UserListResponse{}, fmt.Errorf("%w: page %d exceeds %d", ErrInvalidDataProvided, req.Page, models.MaxListPage)
	}

	users, err := s.userRepository.List(ctx, store.Query{
		Limit:          req.Limit,
		Offset:         req.Offset(),
		IncludeDeleted: req.WithDeleted,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*adminService.ListUsers").Msg("error listing users")
		return models.UserListResponse{}, err
	}

	total, err := s.userRepository.Count(ctx, req.WithDeleted)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*adminService.ListUsers").Msg("error counting users")
		return models.UserListResponse{}, err
	}

	return models.UserListResponse{
		Users:      users,
		Pagination: models.NewPagination(total, req.Page, req.Limit),
	}, nil
}

// RestoreUser clears the soft-delete flag. Returns ErrUserNotDeleted when the
// account is absent or active.
func (s *adminService) RestoreUser(ctx context.Context, userID int64) error {
	res, err := s.userRepository.Restore(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*adminService.RestoreUser").Int64("user_id", userID).Msg("error restoring user")
		return err
	}
	if res.RowsAffected == 0 {
		return ErrUserNotDeleted
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("user restored")
	return nil
}

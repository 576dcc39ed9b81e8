// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/store"
	"github.com/MKhiriev/love-health/models"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepository store.UserRepository
	blob           store.BlobStorage

	// publicBucket receives avatars.
	publicBucket string
	bcryptCost   int
	now          func() time.Time

	logger *logger.Logger
}

// NewUserService constructs the UserService backed by the user repository and
// the object store.
func NewUserService(userRepository store.UserRepository, blob store.BlobStorage, cfg config.StructuredConfig, logger *logger.Logger) UserService {
	cost := cfg.App.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &userService{
		userRepository: userRepository,
		blob:           blob,
		publicBucket:   cfg.Storage.Blob.PublicBucket,
		bcryptCost:     cost,
		now:            time.Now,
		logger:         logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (models.UserWithProfile, error) {
	view, err := s.userRepository.GetWithProfile(ctx, userID)
	if err != nil {
		return models.UserWithProfile{}, notFound(err)
	}
	return view, nil
}

// UpdateProfile applies the non-nil request fields to the user and profile
// rows in one transaction. A new password is hashed before storage.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.UserWithProfile, error) {
	log := logger.FromContext(ctx)

	user, err := s.userFields(req)
	if err != nil {
		return models.UserWithProfile{}, err
	}
	profile := profileFields(req)

	if len(user) == 0 && len(profile) == 0 {
		return models.UserWithProfile{}, ErrInvalidDataProvided
	}

	view, err := s.userRepository.UpdateWithProfile(ctx, userID, user, profile)
	if err != nil {
		log.Err(err).Str("func", "*userService.UpdateProfile").Int64("user_id", userID).Msg("error updating profile")
		return models.UserWithProfile{}, conflictOrNotFound(err)
	}

	return view, nil
}

func (s *userService) userFields(req models.UpdateProfileRequest) (store.Fields, error) {
	fields := store.Fields{}
	if req.Email != nil {
		fields["email"] = nullIfEmpty(*req.Email)
	}
	if req.Phone != nil {
		fields["phone"] = nullIfEmpty(*req.Phone)
	}
	if req.Avatar != nil {
		fields["avatar"] = nullIfEmpty(*req.Avatar)
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHashingPassword, err)
		}
		fields["password_hash"] = string(hash)
	}
	return fields, nil
}

// nullIfEmpty clears a unique nullable column instead of storing "".
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func profileFields(req models.UpdateProfileRequest) store.Fields {
	fields := store.Fields{}
	if req.Nickname != nil {
		fields["nickname"] = *req.Nickname
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Birthday != nil {
		fields["birthday"] = *req.Birthday
	}
	if req.Height != nil {
		fields["height"] = *req.Height
	}
	if req.Weight != nil {
		fields["weight"] = *req.Weight
	}
	if req.TargetWeight != nil {
		fields["target_weight"] = *req.TargetWeight
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if len(req.Preference) > 0 {
		fields["preference"] = req.Preference
	}
	return fields
}

// DeleteAccount soft-deletes the account. Its profile row is kept so a later
// restore brings the account back unchanged.
func (s *userService) DeleteAccount(ctx context.Context, userID int64) error {
	res, err := s.userRepository.SoftDelete(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.DeleteAccount").Int64("user_id", userID).Msg("error deleting account")
		return err
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("account deleted")
	return nil
}

func (s *userService) PublicProfile(ctx context.Context, userID int64) (models.UserWithProfile, error) {
	view, err := s.userRepository.GetWithProfile(ctx, userID)
	if err != nil {
		return models.UserWithProfile{}, notFound(err)
	}

	view.Email = nil
	view.Phone = nil
	return view, nil
}

func (s *userService) CommunityStats(ctx context.Context, userID int64) (models.CommunityStats, error) {
	if _, err := s.userRepository.FindByID(ctx, userID, false); err != nil {
		return models.CommunityStats{}, notFound(err)
	}
	return s.userRepository.CommunityStats(ctx, userID)
}

// UploadAvatar stores an image under a unique name in the public bucket and
// points users.avatar at it. The object is removed again when the row update
// fails.
func (s *userService) UploadAvatar(ctx context.Context, userID int64, file models.Upload) (string, error) {
	log := logger.FromContext(ctx)

	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, file.ContentType)
	}

	name, err := store.ObjectName(file.Filename, s.now())
	if err != nil {
		return "", err
	}

	url, err := s.blob.Put(ctx, s.publicBucket, name, file.ContentType, file.Body, file.Size)
	if err != nil {
		log.Err(err).Str("func", "*userService.UploadAvatar").Int64("user_id", userID).Msg("error storing avatar")
		return "", err
	}

	res, err := s.userRepository.Update(ctx, userID, store.Fields{"avatar": url})
	if err == nil && res.RowsAffected == 0 {
		err = ErrUserNotFound
	}
	if err != nil {
		if delErr := s.blob.Delete(ctx, s.publicBucket, name); delErr != nil {
			log.Err(delErr).Str("func", "*userService.UploadAvatar").Str("object", name).Msg("error removing orphaned avatar")
		}
		return "", err
	}

	log.Info().Int64("user_id", userID).Str("avatar", url).Msg("avatar uploaded")
	return url, nil
}

// OpenFile returns the content of a public object. Objects of any other
// bucket are reported as missing.
func (s *userService) OpenFile(ctx context.Context, bucket, name string) (io.ReadCloser, error) {
	if bucket != s.publicBucket {
		return nil, store.ErrBlobNotFound
	}
	return s.blob.Get(ctx, bucket, name)
}

func conflictOrNotFound(err error) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return fmt.Errorf("%w: %w", ErrUserExists, err)
	}
	return notFound(err)
}

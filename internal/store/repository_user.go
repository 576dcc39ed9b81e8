// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/models"
)

// userRepository implements [UserRepository] on top of the generic
// repositories of the users, user_profiles and community tables.
//
// Composite writes (user + profile) run in one transaction through
// [DB.WithTx]; reads of the composite view use a LEFT JOIN so a user
// without a profile row is still returned.
type userRepository struct {
	db          *DB
	users       *Repository[models.User]
	profiles    *Repository[models.Profile]
	posts       *Repository[int64]
	follows     *Repository[int64]
	collections *Repository[int64]
	logger      *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:          db,
		users:       NewRepository(db, UsersTable),
		profiles:    NewRepository(db, ProfilesTable),
		posts:       NewRepository(db, PostsTable),
		follows:     NewRepository(db, FollowsTable),
		collections: NewRepository(db, CollectionsTable),
		logger:      logger,
	}
}

// CreateWithProfile inserts the user and its profile atomically and returns
// the composite view. The profile's user_id is set from the generated user id;
// the caller's map is not modified.
func (r *userRepository) CreateWithProfile(ctx context.Context, user, profile Fields) (models.UserWithProfile, error) {
	log := logger.FromContext(ctx)

	var userID int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		id, err := r.users.WithTx(tx).Insert(ctx, user)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		profileFields := maps.Clone(profile)
		if profileFields == nil {
			profileFields = Fields{}
		}
		profileFields["user_id"] = id

		if _, err = r.profiles.WithTx(tx).Insert(ctx, profileFields); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}

		userID = id
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateWithProfile").Msg("error creating user with profile")
		return models.UserWithProfile{}, err
	}

	return r.GetWithProfile(ctx, userID)
}

// UpdateWithProfile applies partial updates to the user and its profile in
// one transaction. An empty user field set skips the user UPDATE; the profile
// row is updated when present and inserted otherwise.
//
// A soft-deleted or missing user is left untouched and [ErrNotFound] is
// returned.
func (r *userRepository) UpdateWithProfile(ctx context.Context, id int64, user, profile Fields) (models.UserWithProfile, error) {
	log := logger.FromContext(ctx)

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		users := r.users.WithTx(tx)
		profiles := r.profiles.WithTx(tx)

		active, err := users.Count(ctx, sq.Eq{"id": id}, false)
		if err != nil {
			return err
		}
		if active == 0 {
			return nil
		}

		if len(user) > 0 {
			if _, err = users.UpdateWhere(ctx, sq.Eq{"id": id, softDeleteColumn: flagActive}, user); err != nil {
				return fmt.Errorf("update user: %w", err)
			}
		}

		if len(profile) == 0 {
			return nil
		}

		existing, err := profiles.Count(ctx, sq.Eq{"user_id": id}, true)
		if err != nil {
			return err
		}
		if existing > 0 {
			if _, err = profiles.UpdateWhere(ctx, sq.Eq{"user_id": id}, profile); err != nil {
				return fmt.Errorf("update profile: %w", err)
			}
			return nil
		}

		profileFields := maps.Clone(profile)
		profileFields["user_id"] = id
		if _, err = profiles.Insert(ctx, profileFields); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateWithProfile").Int64("user_id", id).Msg("error updating user with profile")
		return models.UserWithProfile{}, err
	}

	return r.GetWithProfile(ctx, id)
}

var userWithProfileColumns = []string{
	"u.id", "u.username", "u.password_hash", "u.email", "u.phone", "u.avatar",
	"u.role", "u.status", "u.is_deleted", "u.created_at", "u.updated_at",
	"p.nickname", "p.gender", "p.birthday", "p.height", "p.weight",
	"p.target_weight", "p.bio", "p.preference",
}

// GetWithProfile returns the active user left-joined with its active profile.
func (r *userRepository) GetWithProfile(ctx context.Context, id int64) (models.UserWithProfile, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userWithProfileColumns...).
		From(UsersTable.Name + " u").
		LeftJoin(ProfilesTable.Name + " p ON u.id = p.user_id AND p.is_deleted = 0").
		Where(sq.Eq{"u.id": id}).
		Where(sq.Eq{"u.is_deleted": flagActive}).
		ToSql()
	if err != nil {
		return models.UserWithProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var v models.UserWithProfile
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&v.ID, &v.Username, &v.PasswordHash, &v.Email, &v.Phone, &v.Avatar,
		&v.Role, &v.Status, &v.IsDeleted, &v.CreatedAt, &v.UpdatedAt,
		&v.Nickname, &v.Gender, &v.Birthday, &v.Height, &v.Weight,
		&v.TargetWeight, &v.Bio, &v.Preference,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserWithProfile{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetWithProfile").Int64("user_id", id).Msg("error scanning user with profile")
		return models.UserWithProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return v, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64, includeDeleted bool) (models.User, error) {
	return r.users.FindByID(ctx, id, includeDeleted)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"phone": phone})
}

func (r *userRepository) findOne(ctx context.Context, filter sq.Sqlizer) (models.User, error) {
	users, err := r.users.FindAll(ctx, Query{Filter: filter, Limit: 1})
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, ErrNotFound
	}
	return users[0], nil
}

func (r *userRepository) List(ctx context.Context, q Query) ([]models.User, error) {
	return r.users.FindAll(ctx, q)
}

func (r *userRepository) Count(ctx context.Context, includeDeleted bool) (int64, error) {
	return r.users.Count(ctx, nil, includeDeleted)
}

func (r *userRepository) Update(ctx context.Context, id int64, fields Fields) (Result, error) {
	return r.users.Update(ctx, id, fields)
}

func (r *userRepository) SoftDelete(ctx context.Context, id int64) (Result, error) {
	return r.users.SoftDelete(ctx, id)
}

func (r *userRepository) Restore(ctx context.Context, id int64) (Result, error) {
	return r.users.Restore(ctx, id)
}

// CommunityStats counts the user's posts, followed users, followers and
// collections, ignoring soft-deleted rows.
func (r *userRepository) CommunityStats(ctx context.Context, id int64) (models.CommunityStats, error) {
	var (
		stats models.CommunityStats
		err   error
	)

	if stats.Posts, err = r.posts.Count(ctx, sq.Eq{"user_id": id}, false); err != nil {
		return models.CommunityStats{}, err
	}
	if stats.Following, err = r.follows.Count(ctx, sq.Eq{"user_id": id}, false); err != nil {
		return models.CommunityStats{}, err
	}
	if stats.Followers, err = r.follows.Count(ctx, sq.Eq{"followed_id": id}, false); err != nil {
		return models.CommunityStats{}, err
	}
	if stats.Collections, err = r.collections.Count(ctx, sq.Eq{"user_id": id}, false); err != nil {
		return models.CommunityStats{}, err
	}

	return stats, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/mock"
	"github.com/MKhiriev/love-health/internal/store"
	"github.com/MKhiriev/love-health/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:          "test-sign-key",
		TokenIssuer:           "love-health",
		TokenDuration:         time.Hour,
		RememberTokenDuration: 24 * time.Hour,
		BcryptCost:            bcrypt.MinCost,
		Version:               "1.0.0",
	}
}

func newTestAuthService(t *testing.T) (*authService, *mock.MockUserRepository, *mock.MockTokenRevocationStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	revocation := mock.NewMockTokenRevocationStore(ctrl)

	svc := NewAuthService(repo, revocation, testAppConfig(), logger.Nop()).(*authService)
	return svc, repo, revocation
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func strPtr(s string) *string { return &s }

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	req := models.RegisterRequest{Username: "alice1", Password: "Aa123456", Email: strPtr("alice@example.com")}

	gomock.InOrder(
		repo.EXPECT().FindByUsername(ctx, "alice1").Return(models.User{}, store.ErrNotFound),
		repo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(models.User{}, store.ErrNotFound),
		repo.EXPECT().CreateWithProfile(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, user, profile store.Fields) (models.UserWithProfile, error) {
				assert.Equal(t, "alice1", user["username"])
				assert.Equal(t, "alice@example.com", user["email"])
				assert.Equal(t, models.RoleUser, user["role"])
				assert.Equal(t, models.StatusActive, user["status"])
				assert.NotContains(t, user, "phone")

				hash, ok := user["password_hash"].(string)
				require.True(t, ok)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Aa123456")))

				assert.Equal(t, "alice1", profile["nickname"], "nickname defaults to the username")
				assert.NotContains(t, profile, "gender")

				return models.UserWithProfile{User: models.User{ID: 1, Username: "alice1"}}, nil
			}),
	)

	got, err := svc.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestAuthService_Register_KeepsNicknameAndGender(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()
	gender := models.GenderFemale

	repo.EXPECT().FindByUsername(ctx, "bob").Return(models.User{}, store.ErrNotFound)
	repo.EXPECT().FindByPhone(ctx, "79991234567").Return(models.User{}, store.ErrNotFound)
	repo.EXPECT().CreateWithProfile(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user, profile store.Fields) (models.UserWithProfile, error) {
			assert.Equal(t, "79991234567", user["phone"])
			assert.Equal(t, "Bobby", profile["nickname"])
			assert.Equal(t, models.GenderFemale, profile["gender"])
			return models.UserWithProfile{User: models.User{ID: 2}}, nil
		})

	_, err := svc.Register(ctx, models.RegisterRequest{
		Username: "bob",
		Password: "secret1",
		Phone:    strPtr("79991234567"),
		Nickname: strPtr("Bobby"),
		Gender:   &gender,
	})

	require.NoError(t, err)
}

func TestAuthService_Register_Taken(t *testing.T) {
	tests := []struct {
		name   string
		expect func(repo *mock.MockUserRepository)
	}{
		{
			name: "username",
			expect: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByUsername(gomock.Any(), "alice1").Return(models.User{ID: 5}, nil)
			},
		},
		{
			name: "email",
			expect: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByUsername(gomock.Any(), "alice1").Return(models.User{}, store.ErrNotFound)
				repo.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(models.User{ID: 5}, nil)
			},
		},
		{
			name: "phone",
			expect: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByUsername(gomock.Any(), "alice1").Return(models.User{}, store.ErrNotFound)
				repo.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(models.User{}, store.ErrNotFound)
				repo.EXPECT().FindByPhone(gomock.Any(), "12345").Return(models.User{ID: 5}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestAuthService(t)
			tt.expect(repo)

			_, err := svc.Register(context.Background(), models.RegisterRequest{
				Username: "alice1",
				Password: "Aa123456",
				Email:    strPtr("alice@example.com"),
				Phone:    strPtr("12345"),
			})

			require.ErrorIs(t, err, ErrUserExists)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestAuthService_Register_LookupError(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	dbErr := errors.New("connection reset")

	repo.EXPECT().FindByUsername(gomock.Any(), "alice1").Return(models.User{}, dbErr)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice1", Password: "Aa123456"})

	require.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrUserExists)
}

func TestAuthService_Register_ConstraintRace(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	repo.EXPECT().FindByUsername(gomock.Any(), "alice1").Return(models.User{}, store.ErrNotFound)
	repo.EXPECT().CreateWithProfile(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.UserWithProfile{}, store.ErrAlreadyExists)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice1", Password: "Aa123456"})

	require.ErrorIs(t, err, ErrUserExists)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestAuthService_Register_EmptyCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice1"})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestAuthService_Login_IdentifierResolution(t *testing.T) {
	hash := hashOf(t, "Aa123456")
	user := models.User{ID: 7, Username: "alice1", PasswordHash: hash, Status: models.StatusActive}

	tests := []struct {
		name       string
		identifier string
		expect     func(repo *mock.MockUserRepository)
	}{
		{
			name:       "username",
			identifier: "alice1",
			expect: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByUsername(gomock.Any(), "alice1").Return(user, nil)
			},
		},
		{
			name:       "username match wins over email",
			identifier: "odd@name",
			expect: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByUsername(gomock.Any(), "odd@name").Return(user, nil)
			},
		},
		{
			name:       "email",
			identifier: "alice@example.com",
			expect: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByUsername(gomock.Any(), "alice@example.com").Return(models.User{}, store.ErrNotFound)
				repo.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(user, nil)
			},
		},
		{
			name:       "phone",
			identifier: "79991234567",
			expect: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByUsername(gomock.Any(), "79991234567").Return(models.User{}, store.ErrNotFound)
				repo.EXPECT().FindByPhone(gomock.Any(), "79991234567").Return(user, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestAuthService(t)
			tt.expect(repo)
			repo.EXPECT().GetWithProfile(gomock.Any(), int64(7)).
				Return(models.UserWithProfile{User: user}, nil)

			got, err := svc.Login(context.Background(), models.LoginRequest{Username: tt.identifier, Password: "Aa123456"})

			require.NoError(t, err)
			assert.Equal(t, int64(7), got.ID)
		})
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	repo.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrNotFound)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "Aa123456"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Login_EmailNotFound(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	repo.EXPECT().FindByUsername(gomock.Any(), "nobody@example.com").Return(models.User{}, store.ErrNotFound)
	repo.EXPECT().FindByEmail(gomock.Any(), "nobody@example.com").Return(models.User{}, store.ErrNotFound)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "nobody@example.com", Password: "Aa123456"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	repo.EXPECT().FindByUsername(gomock.Any(), "alice1").Return(models.User{
		ID: 7, PasswordHash: hashOf(t, "Aa123456"), Status: models.StatusActive,
	}, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice1", Password: "wrong"})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_Disabled(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	repo.EXPECT().FindByUsername(gomock.Any(), "alice1").Return(models.User{
		ID: 7, PasswordHash: hashOf(t, "Aa123456"), Status: models.StatusDisabled,
	}, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice1", Password: "Aa123456"})

	assert.ErrorIs(t, err, ErrUserDisabled)
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestAuthService_CreateToken_RememberExtendsLifetime(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	user := models.User{ID: 3, Username: "alice1"}

	short, err := svc.CreateToken(ctx, user, false)
	require.NoError(t, err)
	long, err := svc.CreateToken(ctx, user, true)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(time.Hour), short.ExpiresAt.Time, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), long.ExpiresAt.Time, 5*time.Second)
	assert.NotEqual(t, short.ID, long.ID)
}

func TestAuthService_ParseToken_RoundTrip(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: 3, Username: "alice1"}, false)
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, token.SignedString)

	require.NoError(t, err)
	assert.Equal(t, int64(3), parsed.UserID)
	assert.Equal(t, "alice1", parsed.Username)
	assert.Equal(t, token.ID, parsed.ID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.ParseToken(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ─────────────────────────────────────────────
// Authenticate
// ─────────────────────────────────────────────

func TestAuthService_Authenticate(t *testing.T) {
	dbErr := errors.New("redis down")

	tests := []struct {
		name    string
		expect  func(repo *mock.MockUserRepository, revocation *mock.MockTokenRevocationStore, jti string)
		wantErr error
	}{
		{
			name: "active admin",
			expect: func(repo *mock.MockUserRepository, revocation *mock.MockTokenRevocationStore, jti string) {
				revocation.EXPECT().IsRevoked(gomock.Any(), jti).Return(false, nil)
				repo.EXPECT().FindByID(gomock.Any(), int64(9), false).Return(models.User{
					ID: 9, Username: "root", Role: models.RoleAdmin, Status: models.StatusActive,
				}, nil)
			},
		},
		{
			name: "revoked",
			expect: func(_ *mock.MockUserRepository, revocation *mock.MockTokenRevocationStore, jti string) {
				revocation.EXPECT().IsRevoked(gomock.Any(), jti).Return(true, nil)
			},
			wantErr: ErrTokenRevoked,
		},
		{
			name: "revocation store failure",
			expect: func(_ *mock.MockUserRepository, revocation *mock.MockTokenRevocationStore, jti string) {
				revocation.EXPECT().IsRevoked(gomock.Any(), jti).Return(false, dbErr)
			},
			wantErr: dbErr,
		},
		{
			name: "deleted user",
			expect: func(repo *mock.MockUserRepository, revocation *mock.MockTokenRevocationStore, jti string) {
				revocation.EXPECT().IsRevoked(gomock.Any(), jti).Return(false, nil)
				repo.EXPECT().FindByID(gomock.Any(), int64(9), false).Return(models.User{}, store.ErrNotFound)
			},
			wantErr: ErrPrincipalNotFound,
		},
		{
			name: "disabled user",
			expect: func(repo *mock.MockUserRepository, revocation *mock.MockTokenRevocationStore, jti string) {
				revocation.EXPECT().IsRevoked(gomock.Any(), jti).Return(false, nil)
				repo.EXPECT().FindByID(gomock.Any(), int64(9), false).Return(models.User{
					ID: 9, Status: models.StatusDisabled,
				}, nil)
			},
			wantErr: ErrUserDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, revocation := newTestAuthService(t)
			ctx := context.Background()

			token, err := svc.CreateToken(ctx, models.User{ID: 9, Username: "root"}, false)
			require.NoError(t, err)
			tt.expect(repo, revocation, token.ID)

			principal, parsed, err := svc.Authenticate(ctx, token.SignedString)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(9), principal.ID)
			assert.True(t, principal.IsAdmin())
			assert.Equal(t, token.ID, principal.TokenID)
			assert.Equal(t, token.ID, parsed.ID)
		})
	}
}

func TestAuthService_Authenticate_InvalidToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, _, err := svc.Authenticate(context.Background(), "garbage")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ─────────────────────────────────────────────
// Logout
// ─────────────────────────────────────────────

func TestAuthService_Logout_RevokesForRemainingLifetime(t *testing.T) {
	svc, _, revocation := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: 1, Username: "alice1"}, false)
	require.NoError(t, err)
	svc.now = func() time.Time { return token.ExpiresAt.Add(-10 * time.Minute) }

	revocation.EXPECT().Revoke(ctx, token.ID, 10*time.Minute).Return(nil)

	require.NoError(t, svc.Logout(ctx, token))
}

func TestAuthService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: 1, Username: "alice1"}, false)
	require.NoError(t, err)
	svc.now = func() time.Time { return token.ExpiresAt.Add(time.Minute) }

	assert.NoError(t, svc.Logout(ctx, token))
}

func TestAuthService_Logout_StoreError(t *testing.T) {
	svc, _, revocation := newTestAuthService(t)
	ctx := context.Background()
	storeErr := errors.New("unreachable")

	token, err := svc.CreateToken(ctx, models.User{ID: 1, Username: "alice1"}, false)
	require.NoError(t, err)

	revocation.EXPECT().Revoke(ctx, token.ID, gomock.Any()).Return(storeErr)

	assert.ErrorIs(t, svc.Logout(ctx, token), storeErr)
}

// ─────────────────────────────────────────────
// ChangePassword
// ─────────────────────────────────────────────

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	repo.EXPECT().FindByID(ctx, int64(4), false).Return(models.User{ID: 4, PasswordHash: hashOf(t, "old-pass")}, nil)
	repo.EXPECT().Update(ctx, int64(4), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, fields store.Fields) (store.Result, error) {
			require.Len(t, fields, 1)
			hash := fields["password_hash"].(string)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-pass")))
			return store.Result{RowsAffected: 1}, nil
		})

	err := svc.ChangePassword(ctx, 4, models.ChangePasswordRequest{OldPassword: "old-pass", NewPassword: "new-pass"})

	require.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	repo.EXPECT().FindByID(gomock.Any(), int64(4), false).Return(models.User{ID: 4, PasswordHash: hashOf(t, "old-pass")}, nil)

	err := svc.ChangePassword(context.Background(), 4, models.ChangePasswordRequest{OldPassword: "nope", NewPassword: "new-pass"})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_ChangePassword_UnknownUser(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	repo.EXPECT().FindByID(gomock.Any(), int64(4), false).Return(models.User{}, store.ErrNotFound)

	err := svc.ChangePassword(context.Background(), 4, models.ChangePasswordRequest{OldPassword: "a", NewPassword: "b"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

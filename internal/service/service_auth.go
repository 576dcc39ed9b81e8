// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/store"
	"github.com/MKhiriev/love-health/internal/utils"
	"github.com/MKhiriev/love-health/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the JWT token
// lifecycle using a UserRepository for persistence, bcrypt for password
// hashing and a TokenRevocationStore for logout.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// revocation remembers the ids of tokens revoked before their expiry.
	revocation store.TokenRevocationStore

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// rememberTokenDuration replaces tokenDuration for "remember me" logins.
	rememberTokenDuration time.Duration

	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	// now is the clock used for revocation TTLs.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, revocation store.TokenRevocationStore, cfg config.App, logger *logger.Logger) AuthService {
	rememberDuration := cfg.RememberTokenDuration
	if rememberDuration <= 0 {
		rememberDuration = cfg.TokenDuration
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository:        userRepository,
		revocation:            revocation,
		tokenSignKey:          cfg.TokenSignKey,
		tokenIssuer:           cfg.TokenIssuer,
		tokenDuration:         cfg.TokenDuration,
		rememberTokenDuration: rememberDuration,
		bcryptCost:            cost,
		now:                   time.Now,
		logger:                logger,
	}
}

// Register creates a new account together with its profile.
//
// Username, e-mail and phone are checked against visible accounts first so the
// caller gets [ErrUserExists] instead of a constraint violation. The nickname
// defaults to the username. The new account is an active regular user.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.UserWithProfile, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		return models.UserWithProfile{}, ErrInvalidDataProvided
	}

	if err := a.checkAvailable(ctx, req); err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", req.Username).Msg("account is not available")
		return models.UserWithProfile{}, err
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return models.UserWithProfile{}, err
	}

	userFields := store.Fields{
		"username":      req.Username,
		"password_hash": hash,
		"role":          models.RoleUser,
		"status":        models.StatusActive,
	}
	if req.Email != nil && *req.Email != "" {
		userFields["email"] = *req.Email
	}
	if req.Phone != nil && *req.Phone != "" {
		userFields["phone"] = *req.Phone
	}

	nickname := req.Username
	if req.Nickname != nil && *req.Nickname != "" {
		nickname = *req.Nickname
	}
	profileFields := store.Fields{"nickname": nickname}
	if req.Gender != nil {
		profileFields["gender"] = *req.Gender
	}

	registered, err := a.userRepository.CreateWithProfile(ctx, userFields, profileFields)
	if errors.Is(err, store.ErrAlreadyExists) {
		return models.UserWithProfile{}, fmt.Errorf("%w: %w", ErrUserExists, err)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", req.Username).Msg("user creation ended with error")
		return models.UserWithProfile{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", registered.ID).Str("username", registered.Username).Msg("user registered")
	return registered, nil
}

func (a *authService) checkAvailable(ctx context.Context, req models.RegisterRequest) error {
	lookups := []struct {
		value *string
		find  func(context.Context, string) (models.User, error)
		field string
	}{
		{&req.Username, a.userRepository.FindByUsername, "username"},
		{req.Email, a.userRepository.FindByEmail, "email"},
		{req.Phone, a.userRepository.FindByPhone, "phone"},
	}

	for _, l := range lookups {
		if l.value == nil || *l.value == "" {
			continue
		}
		_, err := l.find(ctx, *l.value)
		if err == nil {
			return fmt.Errorf("%w: %s is taken", ErrUserExists, l.field)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}

// Login authenticates an existing user.
//
// The identifier is tried as a username first, then as an e-mail address when
// it contains "@", then as a phone number when it is all digits. The first
// match wins.
//
// Returns the composite view of the user or:
//   - ErrUserNotFound if no visible account matches.
//   - ErrWrongPassword if the password does not match the stored hash.
//   - ErrUserDisabled if the account is not active.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.UserWithProfile, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		return models.UserWithProfile{}, ErrInvalidDataProvided
	}

	user, err := a.resolveIdentifier(ctx, req.Username)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("identifier", req.Username).Msg("user search failed")
		return models.UserWithProfile{}, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("func", "*authService.Login").Int64("user_id", user.ID).Msg("wrong password")
		return models.UserWithProfile{}, ErrWrongPassword
	}

	if user.Status != models.StatusActive {
		log.Warn().Str("func", "*authService.Login").Int64("user_id", user.ID).Int16("status", int16(user.Status)).Msg("login of inactive user")
		return models.UserWithProfile{}, ErrUserDisabled
	}

	view, err := a.userRepository.GetWithProfile(ctx, user.ID)
	if err != nil {
		return models.UserWithProfile{}, notFound(err)
	}

	return view, nil
}

func (a *authService) resolveIdentifier(ctx context.Context, identifier string) (models.User, error) {
	user, err := a.userRepository.FindByUsername(ctx, identifier)
	if !errors.Is(err, store.ErrNotFound) {
		return user, err
	}

	if strings.Contains(identifier, "@") {
		user, err = a.userRepository.FindByEmail(ctx, identifier)
		if !errors.Is(err, store.ErrNotFound) {
			return user, err
		}
	}

	if isDigits(identifier) {
		user, err = a.userRepository.FindByPhone(ctx, identifier)
		if !errors.Is(err, store.ErrNotFound) {
			return user, err
		}
	}

	return models.User{}, ErrUserNotFound
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration, or after
// rememberTokenDuration when remember is set.
func (a *authService) CreateToken(ctx context.Context, user models.User, remember bool) (models.Token, error) {
	duration := a.tokenDuration
	if remember {
		duration = a.rememberTokenDuration
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Username, duration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CreateToken").Int64("user_id", user.ID).Msg("error signing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Authenticate resolves the principal behind tokenString.
//
// Returns:
//   - ErrTokenIsExpiredOrInvalid or ErrTokenRevoked for unusable tokens.
//   - ErrPrincipalNotFound if the account is gone or soft-deleted.
//   - ErrUserDisabled if the account status is not active.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Principal, models.Token, error) {
	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.Principal{}, models.Token{}, err
	}

	revoked, err := a.revocation.IsRevoked(ctx, token.ID)
	if err != nil {
		return models.Principal{}, models.Token{}, err
	}
	if revoked {
		return models.Principal{}, models.Token{}, ErrTokenRevoked
	}

	user, err := a.userRepository.FindByID(ctx, token.UserID, false)
	if errors.Is(err, store.ErrNotFound) {
		return models.Principal{}, models.Token{}, ErrPrincipalNotFound
	}
	if err != nil {
		return models.Principal{}, models.Token{}, err
	}
	if user.Status != models.StatusActive {
		return models.Principal{}, models.Token{}, ErrUserDisabled
	}

	principal := user.Principal()
	principal.TokenID = token.ID
	return principal, token, nil
}

// Logout revokes the token for the rest of its lifetime. Already expired
// tokens need no revocation.
func (a *authService) Logout(ctx context.Context, token models.Token) error {
	ttl := token.TTL(a.now())
	if ttl <= 0 || token.ID == "" {
		return nil
	}

	if err := a.revocation.Revoke(ctx, token.ID, ttl); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Int64("user_id", token.UserID).Msg("error revoking token")
		return err
	}

	return nil
}

// ChangePassword replaces the password hash after verifying the old password.
func (a *authService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	user, err := a.userRepository.FindByID(ctx, userID, false)
	if err != nil {
		return notFound(err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	res, err := a.userRepository.Update(ctx, userID, store.Fields{"password_hash": hash})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", userID).Msg("error updating password")
		return err
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (a *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}
	return string(hash), nil
}

// notFound translates the repository's not-found sentinel into the service one.
func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}
	return err
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by access tokens.
//
// Subject holds the user id, ID (jti) identifies the token for revocation.
type Claims struct {
	jwt.RegisteredClaims

	// Username is copied into the token so logs can show it without a DB lookup.
	Username string `json:"username"`
}

// Token is a signed access token together with its parsed claims.
type Token struct {
	Claims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the parsed "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the "sub" claim.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// TTL returns the time left until the token expires, or zero when it has no
// expiry or is already expired.
func (t *Token) TTL(now time.Time) time.Duration {
	if t.ExpiresAt == nil {
		return 0
	}
	ttl := t.ExpiresAt.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

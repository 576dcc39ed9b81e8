// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/MKhiriev/love-health/internal/service"
	"github.com/MKhiriev/love-health/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var alice = models.Principal{ID: 1, Username: "alice1", Role: models.RoleUser}

// ─────────────────────────────────────────────
// profile
// ─────────────────────────────────────────────

func TestGetProfile(t *testing.T) {
	h, deps := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
	authorize(deps, req, alice)

	deps.user.EXPECT().GetProfile(gomock.Any(), int64(1)).Return(testUser(), nil)

	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp models.ProfileResponse
	decodeEnvelope(t, rr, &resp)
	assert.Equal(t, "alice1", *resp.User.Nickname)
}

func TestGetProfile_NotFound(t *testing.T) {
	h, deps := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
	authorize(deps, req, alice)

	deps.user.EXPECT().GetProfile(gomock.Any(), int64(1)).Return(models.UserWithProfile{}, service.ErrUserNotFound)

	rr := serve(h, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateProfile(t *testing.T) {
	h, deps := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile",
		strings.NewReader(`{"nickname":"Ally","height":170.5,"birthday":"1990-05-01","preference":{"theme":"dark"}}`))
	authorize(deps, req, alice)

	deps.user.EXPECT().UpdateProfile(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
		func(_ any, _ int64, upd models.UpdateProfileRequest) (models.UserWithProfile, error) {
			require.NotNil(t, upd.Nickname)
			assert.Equal(t, "Ally", *upd.Nickname)
			assert.Equal(t, 170.5, *upd.Height)
			assert.Equal(t, "1990-05-01", upd.Birthday.String())
			assert.JSONEq(t, `{"theme":"dark"}`, string(upd.Preference))
			assert.Nil(t, upd.Email)
			return testUser(), nil
		})

	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "profile updated", decodeEnvelope(t, rr, nil).Message)
}

func TestUpdateProfile_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "invalid email", body: `{"email":"not-an-email"}`, wantStatus: http.StatusBadRequest},
		{name: "negative height", body: `{"height":-1}`, wantStatus: http.StatusBadRequest},
		{name: "nothing to update", body: `{}`, serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "email taken", body: `{"email":"bob@example.com"}`, serviceErr: service.ErrUserExists, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile", strings.NewReader(tt.body))
			authorize(deps, req, alice)
			if tt.serviceErr != nil {
				deps.user.EXPECT().UpdateProfile(gomock.Any(), int64(1), gomock.Any()).
					Return(models.UserWithProfile{}, tt.serviceErr)
			}

			rr := serve(h, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ─────────────────────────────────────────────
// public profile
// ─────────────────────────────────────────────

func TestPublicProfile(t *testing.T) {
	tests := []struct {
		name       string
		viewer     *models.Principal
		wantIsSelf bool
	}{
		{name: "anonymous", viewer: nil, wantIsSelf: false},
		{name: "owner", viewer: &alice, wantIsSelf: true},
		{name: "other user", viewer: &models.Principal{ID: 2, Username: "bob", Role: models.RoleUser}, wantIsSelf: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/public/1", nil)
			if tt.viewer != nil {
				authorize(deps, req, *tt.viewer)
			}
			deps.user.EXPECT().PublicProfile(gomock.Any(), int64(1)).Return(testUser(), nil)

			rr := serve(h, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			var resp models.PublicProfileResponse
			decodeEnvelope(t, rr, &resp)
			assert.Equal(t, tt.wantIsSelf, resp.IsSelf)
			assert.Equal(t, int64(1), resp.User.ID)
		})
	}
}

func TestPublicProfile_InvalidTokenIsIgnored(t *testing.T) {
	h, deps := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/public/1", nil)
	req.Header.Set("Authorization", "Bearer expired")

	deps.auth.EXPECT().Authenticate(gomock.Any(), "expired").
		Return(models.Principal{}, models.Token{}, service.ErrTokenIsExpiredOrInvalid)
	deps.user.EXPECT().PublicProfile(gomock.Any(), int64(1)).Return(testUser(), nil)

	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPublicProfile_BadID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-4"} {
		t.Run(id, func(t *testing.T) {
			h, _ := newTestHandler(t)

			rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/users/public/"+id, nil))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, ErrInvalidID.Error(), decodeEnvelope(t, rr, nil).Message)
		})
	}
}

// ─────────────────────────────────────────────
// community / account
// ─────────────────────────────────────────────

func TestCommunityStats(t *testing.T) {
	h, deps := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/community", nil)
	authorize(deps, req, alice)

	deps.user.EXPECT().CommunityStats(gomock.Any(), int64(1)).
		Return(models.CommunityStats{Posts: 4, Followers: 9}, nil)

	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var stats models.CommunityStats
	decodeEnvelope(t, rr, &stats)
	assert.Equal(t, int64(4), stats.Posts)
	assert.Equal(t, int64(9), stats.Followers)
}

func TestDeleteAccount_RevokesToken(t *testing.T) {
	h, deps := newTestHandler(t)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/account", nil)
	token := authorize(deps, req, alice)

	gomock.InOrder(
		deps.user.EXPECT().DeleteAccount(gomock.Any(), int64(1)).Return(nil),
		deps.auth.EXPECT().Logout(gomock.Any(), token).Return(nil),
	)

	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "account deleted", decodeEnvelope(t, rr, nil).Message)
}

func TestDeleteAccount_RevocationFailureStillSucceeds(t *testing.T) {
	h, deps := newTestHandler(t)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/account", nil)
	authorize(deps, req, alice)

	deps.user.EXPECT().DeleteAccount(gomock.Any(), int64(1)).Return(nil)
	deps.auth.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDeleteAccount_AlreadyDeleted(t *testing.T) {
	h, deps := newTestHandler(t)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/account", nil)
	authorize(deps, req, alice)

	deps.user.EXPECT().DeleteAccount(gomock.Any(), int64(1)).Return(service.ErrUserNotFound)

	rr := serve(h, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ─────────────────────────────────────────────
// avatar
// ─────────────────────────────────────────────

func multipartBody(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadAvatar(t *testing.T) {
	h, deps := newTestHandler(t)
	body, contentType := multipartBody(t, "file", "me.png", "image/png", []byte("\x89PNG"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/avatar", body)
	req.Header.Set("Content-Type", contentType)
	authorize(deps, req, alice)

	deps.user.EXPECT().UploadAvatar(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
		func(_ any, _ int64, file models.Upload) (string, error) {
			assert.Equal(t, "me.png", file.Filename)
			assert.Equal(t, "image/png", file.ContentType)
			assert.Equal(t, int64(4), file.Size)
			data, err := io.ReadAll(file.Body)
			require.NoError(t, err)
			assert.Equal(t, "\x89PNG", string(data))
			return "/files/public/me.png", nil
		})

	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp models.AvatarResponse
	decodeEnvelope(t, rr, &resp)
	assert.Equal(t, "/files/public/me.png", resp.Avatar)
}

func TestUploadAvatar_ContentTypeFromExtension(t *testing.T) {
	h, deps := newTestHandler(t)
	body, contentType := multipartBody(t, "file", "me.jpg", "", []byte("jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/avatar", body)
	req.Header.Set("Content-Type", contentType)
	authorize(deps, req, alice)

	deps.user.EXPECT().UploadAvatar(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
		func(_ any, _ int64, file models.Upload) (string, error) {
			assert.Equal(t, "image/jpeg", file.ContentType)
			return "/files/public/me.jpg", nil
		})

	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUploadAvatar_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		content    []byte
		wantStatus int
		wantErr    error
	}{
		{name: "missing file field", field: "avatar", content: []byte("png"), wantStatus: http.StatusBadRequest, wantErr: ErrMissingFile},
		{name: "file too large", field: "file", content: bytes.Repeat([]byte("x"), 2<<10), wantStatus: http.StatusRequestEntityTooLarge, wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			body, contentType := multipartBody(t, tt.field, "me.png", "image/png", tt.content)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/avatar", body)
			req.Header.Set("Content-Type", contentType)
			authorize(deps, req, alice)

			rr := serve(h, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantErr.Error(), decodeEnvelope(t, rr, nil).Message)
		})
	}
}

func TestUploadAvatar_UnsupportedType(t *testing.T) {
	h, deps := newTestHandler(t)
	body, contentType := multipartBody(t, "file", "notes.txt", "text/plain", []byte("hi"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/avatar", body)
	req.Header.Set("Content-Type", contentType)
	authorize(deps, req, alice)

	deps.user.EXPECT().UploadAvatar(gomock.Any(), int64(1), gomock.Any()).Return("", service.ErrUnsupportedFileType)

	rr := serve(h, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

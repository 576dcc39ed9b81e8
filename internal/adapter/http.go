// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/utils"
	"github.com/MKhiriev/love-health/models"
	"github.com/go-resty/resty/v2"
)

const usersPath = "/api/v1/users"

type httpAPIClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAPIClient constructs the HTTP implementation of [APIClient]. address
// may omit the scheme, in which case http is assumed.
//
// Returns an error if address is empty or cannot be parsed as a URL.
func NewHTTPAPIClient(address string, timeout time.Duration, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid api address: %w", err)
	}

	return &httpAPIClient{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (c *httpAPIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *httpAPIClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *httpAPIClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	resp, err := send[models.AuthResponse](c.request(ctx).SetBody(req), resty.MethodPost, usersPath+"/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register: %w", err)
	}
	c.SetToken(resp.Token)
	return resp, nil
}

func (c *httpAPIClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	resp, err := send[models.AuthResponse](c.request(ctx).SetBody(req), resty.MethodPost, usersPath+"/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login: %w", err)
	}
	c.SetToken(resp.Token)
	return resp, nil
}

func (c *httpAPIClient) Logout(ctx context.Context) error {
	if _, err := send[json.RawMessage](c.request(ctx), resty.MethodPost, usersPath+"/logout"); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	c.SetToken("")
	return nil
}

func (c *httpAPIClient) Profile(ctx context.Context) (models.UserWithProfile, error) {
	resp, err := send[models.ProfileResponse](c.request(ctx), resty.MethodGet, usersPath+"/profile")
	if err != nil {
		return models.UserWithProfile{}, fmt.Errorf("profile: %w", err)
	}
	return resp.User, nil
}

func (c *httpAPIClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserWithProfile, error) {
	resp, err := send[models.ProfileResponse](c.request(ctx).SetBody(req), resty.MethodPut, usersPath+"/profile")
	if err != nil {
		return models.UserWithProfile{}, fmt.Errorf("update profile: %w", err)
	}
	return resp.User, nil
}

func (c *httpAPIClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if _, err := send[json.RawMessage](c.request(ctx).SetBody(req), resty.MethodPut, usersPath+"/password"); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (c *httpAPIClient) UploadAvatar(ctx context.Context, filename string, body io.Reader) (string, error) {
	resp, err := send[models.AvatarResponse](c.request(ctx).SetFileReader("file", filename, body), resty.MethodPost, usersPath+"/avatar")
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return resp.Avatar, nil
}

func (c *httpAPIClient) CommunityStats(ctx context.Context) (models.CommunityStats, error) {
	resp, err := send[models.CommunityStats](c.request(ctx), resty.MethodGet, usersPath+"/community")
	if err != nil {
		return models.CommunityStats{}, fmt.Errorf("community stats: %w", err)
	}
	return resp, nil
}

func (c *httpAPIClient) DeleteAccount(ctx context.Context) error {
	if _, err := send[json.RawMessage](c.request(ctx), resty.MethodDelete, usersPath+"/account"); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	c.SetToken("")
	return nil
}

func (c *httpAPIClient) PublicProfile(ctx context.Context, userID int64) (models.PublicProfileResponse, error) {
	path := usersPath + "/public/" + strconv.FormatInt(userID, 10)
	resp, err := send[models.PublicProfileResponse](c.request(ctx), resty.MethodGet, path)
	if err != nil {
		return models.PublicProfileResponse{}, fmt.Errorf("public profile: %w", err)
	}
	return resp, nil
}

func (c *httpAPIClient) ListUsers(ctx context.Context, req models.ListUsersRequest) (models.UserListResponse, error) {
	r := c.request(ctx).SetQueryParam("with_deleted", strconv.FormatBool(req.WithDeleted))
	if req.Page > 0 {
		r.SetQueryParam("page", strconv.FormatUint(req.Page, 10))
	}
	if req.Limit > 0 {
		r.SetQueryParam("limit", strconv.FormatUint(req.Limit, 10))
	}

	resp, err := send[models.UserListResponse](r, resty.MethodGet, usersPath+"/list")
	if err != nil {
		return models.UserListResponse{}, fmt.Errorf("list users: %w", err)
	}
	return resp, nil
}

func (c *httpAPIClient) RestoreUser(ctx context.Context, userID int64) error {
	path := usersPath + "/" + strconv.FormatInt(userID, 10) + "/restore"
	if _, err := send[json.RawMessage](c.request(ctx), resty.MethodPost, path); err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	return nil
}

func (c *httpAPIClient) Version(ctx context.Context) (string, error) {
	resp, err := send[models.VersionResponse](c.request(ctx), resty.MethodGet, "/api/version")
	if err != nil {
		return "", fmt.Errorf("version: %w", err)
	}
	return resp.Version, nil
}

// request starts a request carrying the held token, if any.
func (c *httpAPIClient) request(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// envelope mirrors the server's response body with a typed payload.
type envelope[T any] struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// send executes req and unwraps the data of a success envelope.
func send[T any](req *resty.Request, method, path string) (T, error) {
	var env envelope[T]

	resp, err := req.SetResult(&env).Execute(method, path)
	if err != nil {
		return env.Data, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return env.Data, err
	}
	if !env.Success {
		return env.Data, fmt.Errorf("%w: %s %s", ErrMalformedResponse, method, path)
	}
	return env.Data, nil
}

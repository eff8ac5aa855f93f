package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/common"
	"fintrack/internal/models"
)

const basePath = "/auth"

// HTTPClient is the Client implementation speaking the JSON REST contract.
// The bearer tokens live on the struct: they are updated by every successful
// login/register/refresh and seeded via SetTokens after a session restore.
type HTTPClient struct {
	baseURL      string
	hc           *http.Client
	accessToken  string
	refreshToken string
}

// NewHTTPClient builds a client for the API at baseURL (scheme and host,
// without the /auth prefix). A zero timeout disables the client-side limit.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetTokens(accessToken, refreshToken string) {
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// envelope is the general response wrapper used by the API. Data stays raw:
// which payload it carries depends on the endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// credentialsPayload is the envelope data for login, register and refresh.
type credentialsPayload struct {
	Tokens models.AuthTokens `json:"tokens"`
	User   models.User       `json:"user"`
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body any, authed bool) (int, []byte, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, rdr)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if authed && c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+c.accessToken)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp.StatusCode, data, nil
}

// mapError converts a non-2xx response into a sentinel-wrapped error.
// The server's error code takes precedence; the HTTP status is the fallback.
func mapError(status int, body []byte) error {
	var env envelope
	_ = json.Unmarshal(body, &env)

	base := common.ErrorInternal
	switch env.Code {
	case "INVALID_CREDENTIALS":
		base = common.ErrorInvalidCredentials
	case "EMAIL_EXISTS":
		base = common.ErrorAlreadyExists
	case "VALIDATION_ERROR":
		base = common.ErrorValidation
	case "TOKEN_EXPIRED":
		base = common.ErrorTokenExpired
	case "REFRESH_TOKEN_EXPIRED":
		base = common.ErrorRefreshTokenExpired
	case "INVALID_TOKEN":
		base = common.ErrorInvalidToken
	default:
		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			base = common.ErrorUnauthorized
		case http.StatusConflict:
			base = common.ErrorAlreadyExists
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			base = common.ErrorValidation
		}
	}

	if env.Message != "" {
		return fmt.Errorf("%w: %s", base, env.Message)
	}
	return fmt.Errorf("%w: http %d", base, status)
}

// doCredentials performs a call against one of the enveloped endpoints and
// unwraps data.tokens/data.user. On success the client adopts the new tokens.
func (c *HTTPClient) doCredentials(ctx context.Context, method, path string, body any) (*models.AuthTokens, *models.User, error) {
	status, data, err := c.roundTrip(ctx, method, path, body, false)
	if err != nil {
		return nil, nil, err
	}
	if status >= http.StatusBadRequest {
		return nil, nil, mapError(status, data)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	var payload credentialsPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if payload.Tokens.AccessToken == "" || payload.Tokens.RefreshToken == "" {
		return nil, nil, fmt.Errorf("%w: envelope without tokens", ErrBadResponse)
	}

	c.accessToken = payload.Tokens.AccessToken
	c.refreshToken = payload.Tokens.RefreshToken

	tokens, user := payload.Tokens, payload.User
	return &tokens, &user, nil
}

// doUser performs a bearer-authenticated call against one of the flat
// endpoints and decodes the body directly as a User, no envelope.
func (c *HTTPClient) doUser(ctx context.Context, method, path string, body any) (*models.User, error) {
	status, data, err := c.roundTrip(ctx, method, path, body, true)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest {
		return nil, mapError(status, data)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return &user, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string, monthlyIncome float64) (*models.AuthTokens, *models.User, error) {
	body := map[string]any{
		"name":            name,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
		"monthlyIncome":   monthlyIncome,
	}
	return c.doCredentials(ctx, http.MethodPost, "/register", body)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthTokens, *models.User, error) {
	body := map[string]any{"email": email, "password": password}
	return c.doCredentials(ctx, http.MethodPost, "/login", body)
}

func (c *HTTPClient) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, *models.User, error) {
	body := map[string]any{"refreshToken": refreshToken}
	return c.doCredentials(ctx, http.MethodPost, "/refresh-token", body)
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	return c.doUser(ctx, http.MethodGet, "/profile", nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	body := map[string]any{"name": name, "email": email}
	return c.doUser(ctx, http.MethodPut, "/update-profile", body)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]any{"currentPassword": currentPassword, "newPassword": newPassword}
	status, data, err := c.roundTrip(ctx, http.MethodPost, "/change-password", body, true)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		return mapError(status, data)
	}
	return nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	status, data, err := c.roundTrip(ctx, http.MethodPost, "/logout", nil, true)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		return mapError(status, data)
	}
	return nil
}

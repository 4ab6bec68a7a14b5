// Package client is a typed Go consumer of the excusator HTTP API, intended
// for scripts and other services that talk to the backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/aargibay-evolmind/excusator-3000/internal/dto"
)

// ErrUnauthorized is returned when the server rejects the bearer token (or
// the credentials on login). The local session is cleared first, so the next
// call starts anonymous.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries the server's error envelope together with the HTTP status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
	}
}

// Register creates an account and stores the returned token in the session.
func (c *Client) Register(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	var resp dto.TokenResponse
	body := dto.RegisterRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}
	if err := c.session.Set(resp.Token, resp.Email); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates and stores the returned token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	var resp dto.TokenResponse
	body := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if err := c.session.Set(resp.Token, resp.Email); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout drops the local session. There is no server-side state to revoke.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	var resp []dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) RandomExcuse(ctx context.Context, categoryID uint) (*dto.ExcuseResponse, error) {
	var resp dto.ExcuseResponse
	path := "/api/excuse?category_id=" + strconv.FormatUint(uint64(categoryID), 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LegacyExcuse(ctx context.Context, id int) (*dto.LegacyExcuseResponse, error) {
	var resp dto.LegacyExcuseResponse
	path := "/api/excuse/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me requires a logged-in session.
func (c *Client) Me(ctx context.Context) (*dto.MeResponse, error) {
	var resp dto.MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, _ := c.session.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		// Stale token: forget it so the caller can re-login.
		if err := c.session.Clear(); err != nil {
			return err
		}
		return ErrUnauthorized
	}
	if res.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		msg := res.Status
		if err := json.NewDecoder(res.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		return &APIError{Status: res.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

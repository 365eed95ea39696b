// Package api implements the HTTP client for the remote vault service and
// the durable token file shared across process restarts.
package api

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

const (
	registerPath = "/api/register"
	loginPath    = "/api/login"
	dataPath     = "/api/data"
)

// Client talks to the vault API. Every call is a single attempt; non-2xx
// responses surface as errors and no retry logic exists.
type Client struct {
	http *resty.Client
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL).SetHeader("Content-Type", "application/json"),
	}
}

// Register creates a remote account. Registration does not log the user in.
func (c *Client) Register(ctx context.Context, login, password string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(models.AuthRequest{Login: login, Password: password}).
		Post(registerPath)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("register failed: status %d", resp.StatusCode())
	}
	return nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	var token models.Token
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(models.AuthRequest{Login: login, Password: password}).
		SetResult(&token).
		Post(loginPath)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("login failed: status %d", resp.StatusCode())
	}
	if token.Token == "" {
		return "", fmt.Errorf("login failed: empty token in response")
	}
	return token.Token, nil
}

// Secrets fetches all stored secrets for the token's user.
func (c *Client) Secrets(ctx context.Context, token string) ([]models.StoredSecret, error) {
	var secrets []models.StoredSecret
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&secrets).
		Get(dataPath)
	if err != nil {
		return nil, fmt.Errorf("fetch secrets: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch secrets failed: status %d", resp.StatusCode())
	}
	return secrets, nil
}

// Upsert sends encrypted secrets to the server. Existing ids are updated.
func (c *Client) Upsert(ctx context.Context, token string, secrets []models.StoredSecret) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(models.SyncRequest{Secrets: secrets}).
		Post(dataPath)
	if err != nil {
		return fmt.Errorf("upsert secrets: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("upsert secrets failed: status %d", resp.StatusCode())
	}
	return nil
}

// Delete removes a secret by id.
func (c *Client) Delete(ctx context.Context, token, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("id", id).
		Delete(dataPath)
	if err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete secret failed: status %d", resp.StatusCode())
	}
	return nil
}

// Package api is the HTTP client for the authentication server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/authkeep/authkeep/internal/common"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Register creates an account on the server. The password slice is not
// retained; the caller remains responsible for wiping it.
func (c *Client) Register(ctx context.Context, username string, password []byte) error {
	resp, err := c.postCredentials(ctx, "/api/v1/register", username, password)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusConflict:
		return common.ErrDuplicateUsername
	case http.StatusBadRequest:
		return common.ErrValidation
	default:
		return unexpectedStatus(resp)
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username string, password []byte) (string, error) {
	resp, err := c.postCredentials(ctx, "/api/v1/login", username, password)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("decoding login response: %w", err)
		}
		return body.Token, nil
	case http.StatusUnauthorized:
		return "", common.ErrInvalidCredentials
	default:
		return "", unexpectedStatus(resp)
	}
}

// Whoami asks the server which identity the token resolves to.
func (c *Client) Whoami(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/profile", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("decoding profile response: %w", err)
		}
		return body.Username, nil
	case http.StatusUnauthorized:
		return "", common.ErrUnauthenticated
	case http.StatusForbidden:
		return "", common.ErrForbidden
	default:
		return "", unexpectedStatus(resp)
	}
}

func (c *Client) postCredentials(ctx context.Context, path, username string, password []byte) (*http.Response, error) {
	payload, err := json.Marshal(credentialsRequest{Username: username, Password: string(password)})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

func unexpectedStatus(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}

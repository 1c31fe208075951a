// Package api is the client for the remote OctalTask backend. The backend
// itself is an external collaborator: this package only speaks its REST
// surface and never retries or wraps its failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/octaltask/octaltask/internal/models"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to the backend at Base using bearer-token auth.
type Client struct {
	base   string
	token  string
	http   *http.Client
	logger *log.Logger
}

// New creates a client. Timeout 0 means no client-side timeout beyond the
// caller's context.
func New(base, token string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		base:   base,
		token:  token,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// do sends one JSON request and decodes the JSON response into out (when out
// is non-nil). Error bodies are decoded from {"message": ...} when possible.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		bs, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		body = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		bs, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(bs, &msg) != nil || msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// Whoami resolves the bearer token to the authenticated user.
func (c *Client) Whoami(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &u)
	return u, err
}

package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrUnavailable means the identity provider's admin API could not answer.
// Callers decide whether to fall back or fail.
var ErrUnavailable = errors.New("directory unavailable")

// User is one entry from the identity provider's admin directory.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
}

type listUsersResponse struct {
	Users []User `json:"users"`
}

type Config struct {
	BaseURL        string
	ServiceRoleKey string
	RequestTimeout time.Duration
}

// Client calls the identity provider's privileged admin API. The service role
// key never leaves the server; no browser ever sees these requests.
type Client struct {
	baseURL        string
	serviceRoleKey string
	httpClient     *http.Client
	logger         *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:        config.BaseURL,
		serviceRoleKey: config.ServiceRoleKey,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}
}

// Configured reports whether the admin API can be called at all. An empty base
// URL or key means the deployment runs without the directory source.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.serviceRoleKey != ""
}

// ListUsers fetches the full user directory through the admin endpoint.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	if !c.Configured() {
		return nil, ErrUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/admin/users", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceRoleKey)
	req.Header.Set("apikey", c.serviceRoleKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("directory request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("directory returned non-200", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body listUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	return body.Users, nil
}

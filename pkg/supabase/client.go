package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// ErrUnauthorized is returned when the access token is missing, expired or
// rejected by the auth backend.
var ErrUnauthorized = errors.New("unauthorized")

// User is the subset of the auth user object the service relies on.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthClient verifies access tokens against the Supabase auth API.
type AuthClient interface {
	GetUser(ctx context.Context, accessToken string) (*User, error)
}

type authClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *cache.Cache
}

// NewAuthClient creates an AuthClient. Verified tokens are remembered for
// cacheTTL; a zero TTL disables caching.
func NewAuthClient(baseURL, apiKey string, cacheTTL time.Duration, httpClient *http.Client) AuthClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	var c *cache.Cache
	if cacheTTL > 0 {
		c = cache.New(cacheTTL, 2*cacheTTL)
	}
	return &authClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      c,
	}
}

// GetUser returns the user owning accessToken.
func (c *authClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, ErrUnauthorized
	}

	if c.cache != nil {
		if cached, found := c.cache.Get(accessToken); found {
			return cached.(*User), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth backend: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("auth backend returned status %d: %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode auth user: %w", err)
	}
	if user.ID == "" {
		return nil, ErrUnauthorized
	}

	if c.cache != nil {
		c.cache.SetDefault(accessToken, &user)
	}
	return &user, nil
}

package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Lookup resolves a wallet address to a display name.
type Lookup interface {
	Username(ctx context.Context, address string) (string, error)
}

// Client calls the check-wallet endpoint of the username service.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

type checkWalletResponse struct {
	User *struct {
		Username string `json:"username"`
	} `json:"user"`
}

func (c *Client) Username(ctx context.Context, address string) (string, error) {
	u := c.base + "/api/check-wallet?wallet=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("check-wallet: response status %d", resp.StatusCode)
	}
	var body checkWalletResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("check-wallet: decode: %w", err)
	}
	if body.User == nil {
		return "", nil
	}
	return body.User.Username, nil
}

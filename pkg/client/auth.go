package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// authedDo sends an authenticated request with the transparent-renewal
// contract: a 401 triggers exactly one silent refresh, then exactly one
// replay with the fresh token. A second 401 propagates to the caller as
// a plain HTTP error; a failed refresh surfaces as ErrSessionExpired.
func (c *Client) authedDo(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	token := c.Token()
	resp, err := c.send(ctx, method, path, payload, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close() //nolint:errcheck // body discarded before replay

	slog.Debug("access token rejected, attempting refresh", "path", path)
	fresh, err := c.refreshAccessToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return c.send(ctx, method, path, payload, fresh)
}

// refreshAccessToken obtains a new access token via /api/refresh, which
// consumes the renewal cookie from the jar. stale is the token the caller
// was rejected with: if the stored token has already moved past it, a
// concurrent refresh won and its result is reused without another call.
func (c *Client) refreshAccessToken(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.Token(); current != "" && current != stale {
		slog.Debug("reusing token from concurrent refresh")
		return current, nil
	}

	resp, err := c.send(ctx, http.MethodPost, "/api/refresh", nil, "")
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := decodeEnvelope(resp, &data); err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	if data.AccessToken == "" {
		return "", fmt.Errorf("refresh: empty access token in response")
	}

	c.setToken(data.AccessToken)
	if c.OnTokenRefresh != nil {
		c.OnTokenRefresh(data.AccessToken)
	}
	slog.Debug("access token refreshed")
	return data.AccessToken, nil
}

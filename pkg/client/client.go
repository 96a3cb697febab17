package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samroche/recyco/pkg/domain"
)

// Client is the Récy&Co API client. It holds the current bearer token
// and a cookie jar carrying the HTTP-only renewal cookie; an expired
// token is renewed transparently (see auth.go).
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	token string

	// refreshMu serializes refresh cycles so concurrent 401s collapse
	// into a single /api/refresh call.
	refreshMu sync.Mutex

	// OnTokenRefresh, when set, is called with every newly issued access
	// token (login and silent refresh). Used to persist the credential.
	OnTokenRefresh func(token string)
}

// New creates a new API client.
func New(baseURL, token string) *Client {
	jar, _ := cookiejar.New(nil) //nolint:errcheck // never fails with default options
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// Token returns the current access token.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setToken(tok string) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
}

// Cookies returns the cookies currently valid for the API base URL,
// so the renewal cookie can be persisted across runs.
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil
	}
	return c.httpClient.Jar.Cookies(u)
}

// SetCookies primes the jar with previously persisted cookies.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	c.httpClient.Jar.SetCookies(u, cookies)
}

// LoginResult is the payload of a successful /api/login call. AccessToken
// may be empty when the deployment runs on cookie-only sessions.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

// Login authenticates with email and password. A success:false answer
// surfaces as *APIError with the server's message; on success the client
// adopts the returned access token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.send(ctx, http.MethodPost, "/api/login", mustJSON(body), "")
	if err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	var result LoginResult
	if err := decodeEnvelope(resp, &result); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if result.AccessToken != "" {
		c.setToken(result.AccessToken)
		if c.OnTokenRefresh != nil {
			c.OnTokenRefresh(result.AccessToken)
		}
	}
	return &result, nil
}

// Register creates a new account. The server's refusal message (taken
// email, weak password...) comes back as *APIError.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	resp, err := c.send(ctx, http.MethodPost, "/api/register", mustJSON(body), "")
	if err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	if err := decodeEnvelope(resp, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// Logout invalidates the server session. The local token is cleared even
// when the call fails.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, "/api/logout", nil, "")
	c.setToken("")
	if err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	if err := decodeEnvelope(resp, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// Me returns the authenticated player's profile.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/me", &u); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &u, nil
}

// CheckAuth probes the current session identity. It never enters the
// refresh cycle (a probe must not recurse into token renewal) and maps
// every failure, including network errors, to a nil user.
func (c *Client) CheckAuth(ctx context.Context) *domain.User {
	resp, err := c.send(ctx, http.MethodGet, "/api/me", nil, c.Token())
	if err != nil {
		slog.Debug("auth probe failed", "error", err)
		return nil
	}
	var u domain.User
	if err := decodeEnvelope(resp, &u); err != nil {
		slog.Debug("auth probe rejected", "error", err)
		return nil
	}
	return &u
}

// Rules fetches the full sorting-rules dataset. The endpoint is public
// and answers with the raw dataset rather than the usual envelope.
func (c *Client) Rules(ctx context.Context) (domain.RuleSet, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/rules", nil, "")
	if err != nil {
		return nil, fmt.Errorf("client.Rules: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("client.Rules: %w", httpErrorFrom(resp))
	}
	var rules domain.RuleSet
	if err := json.NewDecoder(resp.Body).Decode(&rules); err != nil {
		return nil, fmt.Errorf("client.Rules: decode response: %w", err)
	}
	return rules, nil
}

// SubmitScore flushes a finished game session and returns the new
// cumulative total.
func (c *Client) SubmitScore(ctx context.Context, report domain.ScoreReport) (*domain.ScoreResult, error) {
	var result domain.ScoreResult
	if err := c.post(ctx, "/api/scores", report, &result); err != nil {
		return nil, fmt.Errorf("client.SubmitScore: %w", err)
	}
	return &result, nil
}

// MyScore returns the authenticated player's cumulative total.
func (c *Client) MyScore(ctx context.Context) (int, error) {
	var data struct {
		TotalScore int `json:"total_score"`
	}
	if err := c.get(ctx, "/api/scores/me", &data); err != nil {
		return 0, fmt.Errorf("client.MyScore: %w", err)
	}
	return data.TotalScore, nil
}

// MyStats returns the authenticated player's aggregated game stats.
func (c *Client) MyStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := c.get(ctx, "/api/stats/me", &stats); err != nil {
		return nil, fmt.Errorf("client.MyStats: %w", err)
	}
	return &stats, nil
}

// MyBadges returns the badges the player has unlocked.
func (c *Client) MyBadges(ctx context.Context) ([]domain.Badge, error) {
	var badges []domain.Badge
	if err := c.get(ctx, "/api/badges/me", &badges); err != nil {
		return nil, fmt.Errorf("client.MyBadges: %w", err)
	}
	return badges, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.authedDo(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	resp, err := c.authedDo(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, out)
}

// send performs one HTTP attempt. An empty token sends the request
// unauthenticated; cookies travel either way.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (*http.Response, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	slog.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
	return resp, nil
}

// envelope is the server's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeEnvelope consumes the response body and unwraps the
// {success, message, data} envelope into out. success:false becomes
// *APIError; a non-envelope error body becomes *HTTPError.
func decodeEnvelope(resp *http.Response, out any) error {
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max body
	if err != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &HTTPError{StatusCode: resp.StatusCode, Message: string(body)}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

func httpErrorFrom(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if err != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: string(body)}
}

// mustJSON marshals values that cannot fail (string maps, wire structs).
func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

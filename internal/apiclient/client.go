// Package apiclient talks to the remote auth REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"auth-panel/internal/domain"
	"auth-panel/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Client performs the login, register and current-user calls.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *logrus.Logger
}

// Options allows overriding the client's collaborators.
type Options struct {
	// Tokens supplies the bearer token for every request.
	Tokens    TokenSource
	Transport http.RoundTripper
	Timeout   time.Duration
	Logger    *logrus.Logger
}

func New(baseURL string, opts Options) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", baseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: &BearerTransport{Tokens: opts.Tokens, Base: opts.Transport},
		},
		logger: opts.Logger,
	}, nil
}

// Login exchanges credentials for an access token (POST /auth/login).
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.AccessToken, error) {
	const op = "login"
	var token domain.AccessToken
	if err := c.call(ctx, op, http.MethodPost, "/auth/login", creds, &token); err != nil {
		return domain.AccessToken{}, err
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return domain.AccessToken{}, &Error{Op: op, Kind: KindDecode, Status: http.StatusOK, Err: errors.New("empty access token")}
	}
	return token, nil
}

// Register creates an account (POST /auth/register).
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	var user domain.User
	if err := c.call(ctx, "register", http.MethodPost, "/auth/register", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the account owning the bearer token (GET /auth/me).
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	const op = "me"
	var user domain.User
	if err := c.call(ctx, op, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.Username) == "" {
		return nil, &Error{Op: op, Kind: KindDecode, Status: http.StatusOK, Err: errors.New("user without username")}
	}
	return &user, nil
}

func (c *Client) call(ctx context.Context, op, method, path string, payload, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.GatewayRequestDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
		metrics.GatewayRequestsTotal.WithLabelValues(op, outcome(err)).Inc()
		if err != nil {
			c.logger.WithFields(logrus.Fields{"op": op, "status": StatusOf(err)}).Debugf("api call failed: %v", err)
		}
	}()

	resp, err := c.doJSON(ctx, method, path, payload)
	if err != nil {
		return &Error{Op: op, Kind: KindNetwork, Err: fmt.Errorf("%w: %w", domain.ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return &Error{Op: op, Kind: KindUnauthorized, Status: resp.StatusCode, Detail: readDetail(resp.Body), Err: domain.ErrUnauthorized}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Kind: KindServer, Status: resp.StatusCode, Detail: readDetail(resp.Body), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, err
		}
		body = buf
	}

	rel, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(rel).String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

// resolve keeps any path prefix of the base URL (e.g. http://host/api/).
func (c *Client) resolve(rel *url.URL) *url.URL {
	base := *c.baseURL
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(rel)
}

func readDetail(r io.Reader) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}
	return string(body.Detail)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return string(apiErr.Kind)
	}
	return "error"
}

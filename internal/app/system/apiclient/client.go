// Package apiclient talks to the SupportHub remote API.
//
// All fetches normalize the response at this boundary (see wire.go) and
// report failures as errors wrapping ErrFetchFailed.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/supporthub/internal/app/system/limits"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// API paths.
const (
	PathAdminStats      = "/admin/stats"
	PathPendingRequests = "/sponsor/requests?status=pending"
	PathActiveMentees   = "/sponsor/mentees"
	PathLogin           = "/auth/login"
	PathHealth          = "/health"
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // optional; its Transport is used as the base transport
	Logger     *zap.Logger
}

// Client is a thin JSON client for the remote API. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	base    http.RoundTripper
	log     *zap.Logger
}

// New constructs a Client.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	base := http.DefaultTransport
	if cfg.HTTPClient != nil && cfg.HTTPClient.Transport != nil {
		base = cfg.HTTPClient.Transport
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		base:    base,
		log:     cfg.Logger,
	}
}

// AdminStats fetches the aggregate statistics snapshot. The API wraps it
// in an envelope; the payload is unwrapped before any field is read.
func (c *Client) AdminStats(ctx context.Context, token string) (models.AggregateStats, error) {
	var w *wireStats
	if err := c.getJSON(ctx, token, PathAdminStats, &w); err != nil {
		return models.AggregateStats{}, err
	}
	return normalizeStats(w), nil
}

// PendingRequests fetches the signed-in sponsor's pending relationship requests.
func (c *Client) PendingRequests(ctx context.Context, token string) ([]models.RelationshipRequest, error) {
	var w []wireRelationship
	if err := c.getJSON(ctx, token, PathPendingRequests, &w); err != nil {
		return nil, err
	}
	out, dropped := normalizeRequests(w)
	c.logDropped(PathPendingRequests, dropped)
	return out, nil
}

// ActiveMentees fetches the signed-in sponsor's active relationships.
func (c *Client) ActiveMentees(ctx context.Context, token string) ([]models.ActiveMentee, error) {
	var w []wireRelationship
	if err := c.getJSON(ctx, token, PathActiveMentees, &w); err != nil {
		return nil, err
	}
	out, dropped := normalizeMentees(w)
	c.logDropped(PathActiveMentees, dropped)
	return out, nil
}

func (c *Client) logDropped(endpoint string, n int) {
	if n > 0 {
		c.log.Warn("dropped records without a unique matching_request_id",
			zap.String("endpoint", endpoint),
			zap.Int("count", n))
	}
}

// Login exchanges credentials for a user and bearer token.
// A 401 from the API is reported as ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, loginID, password string) (models.User, string, error) {
	body, err := json.Marshal(map[string]string{"login_id": loginID, "password": password})
	if err != nil {
		return models.User{}, "", fetchErr(PathLogin, 0, err)
	}

	var w *wireLogin
	err = c.do(ctx, http.MethodPost, "", PathLogin, bytes.NewReader(body), &w)
	var fe *FetchError
	if errors.As(err, &fe) && (fe.Status == http.StatusUnauthorized || fe.Status == http.StatusForbidden) {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", err
	}
	if w == nil || w.Token == nil || *w.Token == "" || w.User == nil {
		return models.User{}, "", fetchErr(PathLogin, 0, errors.New("login response missing token or user"))
	}

	u := models.User{
		ID:       deref(w.User.ID),
		Username: str(w.User.Username),
		Name:     str(w.User.Name),
		Email:    str(w.User.Email),
		Role:     models.NormalizeRole(deref(w.User.Role)),
	}
	return u, *w.Token, nil
}

// Ping checks that the API answers its health endpoint with a 2xx.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "", PathHealth, nil, nil)
}

func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	return c.do(ctx, http.MethodGet, token, path, nil, out)
}

// do performs one request. When out is non-nil the body is unwrapped from
// its envelope (or taken as a bare array) and decoded into out.
func (c *Client) do(ctx context.Context, method, token, path string, body io.Reader, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fetchErr(path, 0, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient(token).Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return fetchErr(path, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, limits.MaxAPIResponseSize))
	if err != nil {
		return fetchErr(path, resp.StatusCode, err)
	}

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", reqID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fetchErr(path, resp.StatusCode, fmt.Errorf("unexpected status %s", http.StatusText(resp.StatusCode)))
	}
	if out == nil {
		return nil
	}

	payload, err := unwrap(raw)
	if err != nil {
		return fetchErr(path, resp.StatusCode, err)
	}
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fetchErr(path, resp.StatusCode, fmt.Errorf("decode: %w", err))
	}
	return nil
}

// httpClient returns a client that sends the user's bearer token, or the
// bare transport when there is none.
func (c *Client) httpClient(token string) *http.Client {
	if token == "" {
		return &http.Client{Transport: c.base}
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.base,
		},
	}
}

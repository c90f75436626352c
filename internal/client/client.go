// Package client provides the typed HTTP client for the upstream review
// API. All dashboard data lives upstream; this client is the only place
// that speaks its wire format.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/metrics"
	"veritas-dashboard/internal/resilience"
)

// Client calls the upstream review API with per-request bearer tokens.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *resilience.Breaker
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a client for the given upstream base URL.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewWithTransport(baseURL, timeout, logger, nil)
}

// NewWithTransport creates a client with a custom transport, used by tests.
func NewWithTransport(baseURL string, timeout time.Duration, logger *slog.Logger, transport http.RoundTripper) *Client {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			// Timeout is controlled per request via context deadline.
		},
		breaker: resilience.New(resilience.DefaultConfig()),
		timeout: timeout,
		logger:  logger,
	}
}

// listEnvelope is the upstream wire shape for paginated list responses.
type listEnvelope[T any] struct {
	Data       []T               `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// ToggleFlagResult is the authoritative flag state after a toggle.
type ToggleFlagResult struct {
	Flagged   bool     `json:"flagged"`
	FlaggedBy []string `json:"flaggedBy"`
}

// Login authenticates a reviewer.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a reviewer account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", nil, "", body, nil)
}

// FetchPosts fetches one page of the media feed for the given filters.
func (c *Client) FetchPosts(ctx context.Context, token string, filters domain.FilterSet, page, limit int) ([]domain.Post, domain.Pagination, error) {
	var envelope listEnvelope[domain.Post]
	err := c.do(ctx, http.MethodGet, "/api/posts/all", postsQuery(filters, page, limit), token, nil, &envelope)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return envelope.Data, envelope.Pagination, nil
}

// ToggleFlag flips the flag state of a post for the current user.
func (c *Client) ToggleFlag(ctx context.Context, token, postID string) (*ToggleFlagResult, error) {
	var result ToggleFlagResult
	if err := c.do(ctx, http.MethodPost, "/api/posts/toggle-flag/"+url.PathEscape(postID), nil, token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DismissPost removes a post from the active feed server-side.
func (c *Client) DismissPost(ctx context.Context, token, postID string) error {
	return c.do(ctx, http.MethodPost, "/api/posts/dismiss/"+url.PathEscape(postID), nil, token, nil, nil)
}

// DeletePost deletes a post outright.
func (c *Client) DeletePost(ctx context.Context, token, postID string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(postID), nil, token, nil, nil)
}

// UpdatePostStatus sets the review status of a flagged post.
func (c *Client) UpdatePostStatus(ctx context.Context, token, postID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(postID)+"/status", nil, token, body, nil)
}

// FetchStatistics fetches the aggregate counts behind the overview cards.
func (c *Client) FetchStatistics(ctx context.Context, token string) (domain.Statistics, error) {
	var stats domain.Statistics
	err := c.do(ctx, http.MethodGet, "/api/posts/statistics", nil, token, nil, &stats)
	return stats, err
}

// FetchFlagged fetches one page of the flagged review queue.
func (c *Client) FetchFlagged(ctx context.Context, token string, filters domain.FilterSet, page, limit int) ([]domain.FlaggedPost, domain.Pagination, error) {
	values := pageQuery(page, limit)
	if filters.Status != "" {
		values.Set("status", filters.Status)
	}
	if dr := dateRangeJSON(filters); dr != "" {
		values.Set("dateRange", dr)
	}

	var envelope listEnvelope[domain.FlaggedPost]
	err := c.do(ctx, http.MethodGet, "/api/posts/flagged", values, token, nil, &envelope)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return envelope.Data, envelope.Pagination, nil
}

// ListTopics fetches one page of saved tracking topics.
func (c *Client) ListTopics(ctx context.Context, token string, page, limit int) ([]domain.Topic, domain.Pagination, error) {
	var envelope listEnvelope[domain.Topic]
	err := c.do(ctx, http.MethodGet, "/api/topics", pageQuery(page, limit), token, nil, &envelope)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return envelope.Data, envelope.Pagination, nil
}

// CreateTopic creates a topic and returns the stored record.
func (c *Client) CreateTopic(ctx context.Context, token string, input domain.TopicInput) (*domain.Topic, error) {
	var topic domain.Topic
	if err := c.do(ctx, http.MethodPost, "/api/topics", nil, token, input, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// UpdateTopic updates a topic and returns the stored record.
func (c *Client) UpdateTopic(ctx context.Context, token, topicID string, input domain.TopicInput) (*domain.Topic, error) {
	var topic domain.Topic
	if err := c.do(ctx, http.MethodPut, "/api/topics/"+url.PathEscape(topicID), nil, token, input, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// DeleteTopic deletes a topic.
func (c *Client) DeleteTopic(ctx context.Context, token, topicID string) error {
	return c.do(ctx, http.MethodDelete, "/api/topics/"+url.PathEscape(topicID), nil, token, nil, nil)
}

// RefreshTopic asks upstream to re-run a topic's tracking query. Callers
// fire this without awaiting the collection itself; upstream only
// acknowledges that the refresh started.
func (c *Client) RefreshTopic(ctx context.Context, token, topicID string) error {
	return c.do(ctx, http.MethodPost, "/api/topics/"+url.PathEscape(topicID)+"/refresh", nil, token, nil, nil)
}

// chatEnvelope is the upstream wire shape for one assistant reply.
type chatEnvelope struct {
	Message domain.ChatMessage `json:"message"`
}

// Chat sends the transcript so far and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, token string, messages []domain.ChatMessage) (*domain.ChatMessage, error) {
	body := map[string]any{"messages": messages}
	var envelope chatEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/ai/chat", nil, token, body, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Message, nil
}

// ChatHistory fetches the prior assistant transcript.
func (c *Client) ChatHistory(ctx context.Context, token string) ([]domain.ChatMessage, error) {
	var envelope struct {
		Messages []domain.ChatMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ai/history", nil, token, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Messages, nil
}

// ListAudit fetches one page of the audit trail.
func (c *Client) ListAudit(ctx context.Context, token string, page, limit int) ([]domain.AuditEntry, domain.Pagination, error) {
	var envelope listEnvelope[domain.AuditEntry]
	err := c.do(ctx, http.MethodGet, "/api/audit", pageQuery(page, limit), token, nil, &envelope)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return envelope.Data, envelope.Pagination, nil
}

// RecordAudit appends one entry to the audit trail.
func (c *Client) RecordAudit(ctx context.Context, token string, entry domain.AuditEntry) error {
	return c.do(ctx, http.MethodPost, "/api/audit", nil, token, entry, nil)
}

// ListAuthors fetches one page of the watchlist authors.
func (c *Client) ListAuthors(ctx context.Context, token string, filters domain.FilterSet, page, limit int) ([]domain.Author, domain.Pagination, error) {
	values := pageQuery(page, limit)
	if filters.Search != "" {
		values.Set("search", filters.Search)
	}
	if len(filters.Platforms) > 0 {
		values.Set("platform", filters.Platforms[0])
	}
	if filters.FlagStatus == domain.FlagStatusFlagged {
		values.Set("flagged", "true")
	}

	var envelope listEnvelope[domain.Author]
	err := c.do(ctx, http.MethodGet, "/api/authors", values, token, nil, &envelope)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return envelope.Data, envelope.Pagination, nil
}

// pageQuery builds the page/limit parameters shared by all list endpoints.
func pageQuery(page, limit int) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(limit))
	return values
}

// postsQuery builds the upstream query for the posts endpoint. Only
// non-empty filter fields are sent; a half-open date range never reaches
// the wire because FilterSet.Normalize drops it.
func postsQuery(filters domain.FilterSet, page, limit int) url.Values {
	f := filters.Normalize()
	values := pageQuery(page, limit)

	if len(f.Platforms) > 0 {
		values.Set("platforms", strings.Join(f.Platforms, ","))
	}
	if f.Keyword != "" {
		values.Set("keyword", f.Keyword)
	}
	if dr := dateRangeJSON(f); dr != "" {
		values.Set("dateRange", dr)
	}
	if f.FlagStatus != "" {
		values.Set("flagStatus", f.FlagStatus)
	}
	if f.Language != "" {
		values.Set("language", f.Language)
	}
	if f.SortBy != "" {
		values.Set("sortBy", f.SortBy)
	}
	return values
}

// dateRangeJSON encodes a complete date range as the JSON object the
// upstream expects, or returns empty for no range.
func dateRangeJSON(filters domain.FilterSet) string {
	f := filters.Normalize()
	if f.DateRange == nil {
		return ""
	}
	encoded, err := json.Marshal(map[string]string{
		"start": f.DateRange.Start.Format(time.RFC3339),
		"end":   f.DateRange.End.Format(time.RFC3339),
	})
	if err != nil {
		return ""
	}
	return string(encoded)
}

// do performs one upstream request. The circuit breaker rejects calls
// while upstream is considered down; 4xx responses are the caller's
// problem and do not count against upstream health.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	if !c.breaker.Allow() {
		metrics.RecordUpstreamRequest(path, metrics.OutcomeRejected)
		return apperr.Unavailable(c.breaker.RetryAfter())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		metrics.RecordUpstreamRequest(path, metrics.OutcomeError)
		c.logger.ErrorContext(ctx, "upstream request failed",
			"method", method,
			"path", path,
			"error", err)
		return apperr.Network()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		if resp.StatusCode >= 500 {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		metrics.RecordUpstreamRequest(path, metrics.OutcomeError)
		c.logger.WarnContext(ctx, "upstream returned error status",
			"method", method,
			"path", path,
			"status", resp.StatusCode)
		return apperr.FromStatus(resp.StatusCode, resp.Header.Get("Retry-After"))
	}

	c.breaker.RecordSuccess()
	metrics.RecordUpstreamRequest(path, metrics.OutcomeSuccess)

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}
